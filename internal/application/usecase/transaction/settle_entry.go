// Package transaction contains ledger entry write and listing use cases.
package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/application/adapter"
	domainerror "github.com/finledger/backend/internal/domain/error"
)

// SettleEntryInput represents the input for marking an entry paid/received.
type SettleEntryInput struct {
	UserID   uuid.UUID
	EntryID  uuid.UUID
	PaidDate *time.Time // nil settles on today's date
}

// SettleEntryOutput represents the output of settling an entry.
type SettleEntryOutput struct {
	Entry          *EntryOutput
	AlreadySettled bool
}

// SettleEntryUseCase marks a pending obligation as honored. Settlement is
// one-way: settling an already settled entry is an idempotent no-op.
type SettleEntryUseCase struct {
	transactionRepo adapter.TransactionRepository
	now             func() time.Time
}

// NewSettleEntryUseCase creates a new SettleEntryUseCase instance.
func NewSettleEntryUseCase(transactionRepo adapter.TransactionRepository) *SettleEntryUseCase {
	return &SettleEntryUseCase{
		transactionRepo: transactionRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Execute performs the settlement.
func (uc *SettleEntryUseCase) Execute(ctx context.Context, input SettleEntryInput) (*SettleEntryOutput, error) {
	entry, err := uc.transactionRepo.FindByID(ctx, input.EntryID, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				err,
			)
		}
		return nil, err
	}

	paidDate := dateOnly(uc.now())
	if input.PaidDate != nil {
		paidDate = dateOnly(*input.PaidDate)
	}

	if !entry.Settle(paidDate) {
		return &SettleEntryOutput{Entry: entryOutputFrom(entry), AlreadySettled: true}, nil
	}

	if err := uc.transactionRepo.Update(ctx, entry, nil); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionWriteFailed,
			"failed to settle transaction",
			err,
		)
	}

	return &SettleEntryOutput{Entry: entryOutputFrom(entry)}, nil
}
