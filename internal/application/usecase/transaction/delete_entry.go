// Package transaction contains ledger entry write and listing use cases.
package transaction

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
)

// DeleteEntryInput represents the input for deleting a ledger entry.
type DeleteEntryInput struct {
	UserID  uuid.UUID
	EntryID uuid.UUID
}

// DeleteEntryOutput represents the output of deleting a ledger entry.
type DeleteEntryOutput struct {
	DeletedID uuid.UUID
}

// DeleteEntryUseCase removes a ledger entry. Deleting a credit card entry
// decrements its statement cycle in the same database transaction, keeping
// the running total consistent with the remaining ledger.
type DeleteEntryUseCase struct {
	transactionRepo adapter.TransactionRepository
	creditCardRepo  adapter.CreditCardRepository
}

// NewDeleteEntryUseCase creates a new DeleteEntryUseCase instance.
func NewDeleteEntryUseCase(
	transactionRepo adapter.TransactionRepository,
	creditCardRepo adapter.CreditCardRepository,
) *DeleteEntryUseCase {
	return &DeleteEntryUseCase{
		transactionRepo: transactionRepo,
		creditCardRepo:  creditCardRepo,
	}
}

// Execute performs the deletion.
func (uc *DeleteEntryUseCase) Execute(ctx context.Context, input DeleteEntryInput) (*DeleteEntryOutput, error) {
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

	var posting *adapter.StatementPosting
	if entry.PaymentMethod == entity.PaymentMethodCreditCard && entry.CreditCardID != nil {
		card, err := uc.creditCardRepo.FindByID(ctx, *entry.CreditCardID, input.UserID)
		if err == nil {
			posting = statementPosting(
				input.UserID,
				card,
				int(entry.DueDate.Month()),
				entry.DueDate.Year(),
				entry.Amount.Neg(),
			)
		}
	}

	if err := uc.transactionRepo.Delete(ctx, input.EntryID, input.UserID, posting); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionWriteFailed,
			"failed to delete transaction",
			err,
		)
	}

	return &DeleteEntryOutput{DeletedID: input.EntryID}, nil
}
