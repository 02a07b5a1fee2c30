package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/application/usecase/report"
	"github.com/finledger/backend/internal/domain/entity"
)

// ReminderWorker periodically emails users a summary of their pending
// commitments for the current month. Delivery is best effort; a failed
// send is logged and retried on the next tick.
type ReminderWorker struct {
	users       adapter.UserRepository
	commitments *report.GetPendingCommitmentsUseCase
	sender      adapter.EmailSender
	interval    time.Duration
}

// ReminderWorkerConfig holds configuration for the reminder worker.
type ReminderWorkerConfig struct {
	Interval time.Duration
}

// DefaultReminderWorkerConfig returns the default worker configuration.
func DefaultReminderWorkerConfig() ReminderWorkerConfig {
	return ReminderWorkerConfig{
		Interval: 24 * time.Hour,
	}
}

// NewReminderWorker creates a new reminder worker.
func NewReminderWorker(
	users adapter.UserRepository,
	commitments *report.GetPendingCommitmentsUseCase,
	sender adapter.EmailSender,
	config ReminderWorkerConfig,
) *ReminderWorker {
	return &ReminderWorker{
		users:       users,
		commitments: commitments,
		sender:      sender,
		interval:    config.Interval,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *ReminderWorker) Start(ctx context.Context) {
	slog.Info("Reminder worker started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Run immediately on start, then on ticker
	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Reminder worker shutting down")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// runOnce sends a reminder to every opted-in user with commitments due
// this month.
func (w *ReminderWorker) runOnce(ctx context.Context) {
	users, err := w.users.FindWithEmailNotifications(ctx)
	if err != nil {
		slog.Error("Failed to list users for reminders", "error", err)
		return
	}

	for _, user := range users {
		select {
		case <-ctx.Done():
			return
		default:
			w.remindUser(ctx, user)
		}
	}
}

func (w *ReminderWorker) remindUser(ctx context.Context, user *entity.User) {
	logger := slog.With("user_id", user.ID)

	output, err := w.commitments.Execute(ctx, report.GetPendingCommitmentsInput{UserID: user.ID})
	if err != nil {
		logger.Error("Failed to compute pending commitments", "error", err)
		return
	}
	if output.ThisMonth.Count == 0 {
		return
	}

	msg := adapter.EmailMessage{
		To:      user.Email,
		ToName:  user.Name,
		Subject: "Upcoming commitments this month",
		TextBody: fmt.Sprintf(
			"Hi %s, you have %d pending commitment(s) totaling %s due this month.",
			user.Name, output.ThisMonth.Count, output.ThisMonth.Total.StringFixed(2),
		),
	}
	if err := w.sender.Send(ctx, msg); err != nil {
		logger.Error("Failed to send reminder email", "error", err)
		return
	}
	logger.Debug("Reminder email sent", "pending_count", output.ThisMonth.Count)
}
