// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import "context"

// EmailMessage represents a single outbound email.
type EmailMessage struct {
	To       string
	ToName   string
	Subject  string
	HTMLBody string
	TextBody string
}

// EmailSender defines the interface for email delivery.
type EmailSender interface {
	// Send delivers a single email message.
	Send(ctx context.Context, msg EmailMessage) error
}
