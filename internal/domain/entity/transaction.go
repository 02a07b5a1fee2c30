// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the direction of a ledger entry. Amounts are
// always stored as non-negative magnitudes; direction lives only here.
type TransactionKind string

const (
	TransactionKindExpense TransactionKind = "expense"
	TransactionKindIncome  TransactionKind = "income"
)

// PaymentMethod represents how a transaction is (or will be) paid.
type PaymentMethod string

const (
	PaymentMethodPix        PaymentMethod = "pix"
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodOther      PaymentMethod = "other"
)

// SettlesImmediately reports whether the method settles at registration
// time (cash-like methods) rather than leaving the obligation pending.
func (m PaymentMethod) SettlesImmediately() bool {
	return m == PaymentMethodPix || m == PaymentMethodCash || m == PaymentMethodDebitCard
}

// SettlementStatus represents the two-state lifecycle of an obligation.
type SettlementStatus string

const (
	SettlementStatusPending SettlementStatus = "pending"
	SettlementStatusSettled SettlementStatus = "settled"
)

// Transaction represents a single ledger entry. Rows are created once
// (or N times by recurring expansion) and never split or merged.
type Transaction struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Amount           decimal.Decimal // non-negative magnitude
	Kind             TransactionKind
	CategoryID       uuid.UUID
	PaymentMethod    PaymentMethod
	CreditCardID     *uuid.UUID // required iff PaymentMethod is credit_card
	InstallmentCount int
	IsRecurring      bool
	Description      string
	DueDate          time.Time
	PaidDate         *time.Time // nil exactly while the obligation is pending
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewTransaction creates a new pending Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	amount decimal.Decimal,
	kind TransactionKind,
	categoryID uuid.UUID,
	paymentMethod PaymentMethod,
	description string,
	dueDate time.Time,
) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		ID:               uuid.New(),
		UserID:           userID,
		Amount:           amount,
		Kind:             kind,
		CategoryID:       categoryID,
		PaymentMethod:    paymentMethod,
		InstallmentCount: 1,
		Description:      description,
		DueDate:          dueDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Status derives the settlement status from the paid date, keeping the
// pending/settled distinction a typed enum rather than scattered nil checks.
func (t *Transaction) Status() SettlementStatus {
	if t.PaidDate == nil {
		return SettlementStatusPending
	}
	return SettlementStatusSettled
}

// Settle marks the obligation as honored on the given date. Settling an
// already settled transaction is a no-op; there is no way back to pending.
func (t *Transaction) Settle(paidDate time.Time) bool {
	if t.PaidDate != nil {
		return false
	}
	t.PaidDate = &paidDate
	t.UpdatedAt = time.Now().UTC()
	return true
}

// TransactionWithCategory pairs a transaction with its category for listings.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
	CreditCard  *CreditCard
}
