// Package transaction contains ledger entry write and listing use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
	"github.com/finledger/backend/internal/domain/valueobject"
)

// UpdateEntryInput represents the input for a partial field edit. Nil
// pointers leave the field untouched.
type UpdateEntryInput struct {
	UserID        uuid.UUID
	EntryID       uuid.UUID
	Amount        *decimal.Decimal
	Description   *string
	CategoryID    *uuid.UUID
	PaymentMethod *entity.PaymentMethod
	CreditCardID  *uuid.UUID // considered only when the method becomes credit_card
}

// UpdateEntryOutput represents the output of an entry edit.
type UpdateEntryOutput struct {
	Entry *EntryOutput
}

// UpdateEntryUseCase edits amount/description/category/payment method of a
// ledger entry. Edits touching a credit card entry compensate the affected
// statement cycles with signed deltas so the running totals keep matching
// the ledger; the row update and every delta commit atomically.
type UpdateEntryUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	creditCardRepo  adapter.CreditCardRepository
	now             func() time.Time
}

// NewUpdateEntryUseCase creates a new UpdateEntryUseCase instance.
func NewUpdateEntryUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	creditCardRepo adapter.CreditCardRepository,
) *UpdateEntryUseCase {
	return &UpdateEntryUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		creditCardRepo:  creditCardRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Execute performs the edit.
func (uc *UpdateEntryUseCase) Execute(ctx context.Context, input UpdateEntryInput) (*UpdateEntryOutput, error) {
	if input.Amount == nil && input.Description == nil && input.CategoryID == nil && input.PaymentMethod == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNoFieldsToUpdate,
			"no fields to update",
			domainerror.ErrNoFieldsToUpdate,
		)
	}

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

	oldAmount := entry.Amount
	oldCardID := entry.CreditCardID
	oldDueDate := entry.DueDate
	wasCard := entry.PaymentMethod == entity.PaymentMethodCreditCard && oldCardID != nil

	if err := uc.applyChanges(ctx, entry, input); err != nil {
		return nil, err
	}

	isCard := entry.PaymentMethod == entity.PaymentMethodCreditCard

	var postings []adapter.StatementPosting
	switch {
	case wasCard && isCard:
		// Same cycle: a single net delta. Card entries keep their cycle on edit.
		delta := entry.Amount.Sub(oldAmount)
		if !delta.IsZero() {
			card, err := uc.findCard(ctx, *entry.CreditCardID, input.UserID)
			if err != nil {
				return nil, err
			}
			p := statementPosting(input.UserID, card, int(oldDueDate.Month()), oldDueDate.Year(), delta)
			postings = append(postings, *p)
		}
	case wasCard && !isCard:
		// Moved off the card: unpost the old amount from its cycle.
		card, err := uc.findCard(ctx, *oldCardID, input.UserID)
		if err != nil {
			return nil, err
		}
		p := statementPosting(input.UserID, card, int(oldDueDate.Month()), oldDueDate.Year(), oldAmount.Neg())
		postings = append(postings, *p)
		entry.CreditCardID = nil
		entry.InstallmentCount = 1
	case !wasCard && isCard:
		// Moved onto a card: the purchase is re-assigned to a billing cycle
		// as of the edit date and posted there in full.
		if input.CreditCardID == nil {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeCreditCardRequired,
				"credit card id is required for credit card payments",
				domainerror.ErrCreditCardRequired,
			)
		}
		card, err := uc.findCard(ctx, *input.CreditCardID, input.UserID)
		if err != nil {
			return nil, err
		}
		cycle := valueobject.AssignCycle(dateOnly(uc.now()), card.ClosingDay, card.DueDay)
		entry.CreditCardID = &card.ID
		entry.DueDate = cycle.DueDate
		p := statementPosting(input.UserID, card, cycle.Month(), cycle.Year(), entry.Amount)
		postings = append(postings, *p)
	}

	entry.UpdatedAt = uc.now()
	if err := uc.transactionRepo.Update(ctx, entry, postings); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionWriteFailed,
			"failed to update transaction",
			err,
		)
	}

	return &UpdateEntryOutput{Entry: entryOutputFrom(entry)}, nil
}

// applyChanges mutates the entry with the requested field edits after
// validating them. Statement side effects are handled by the caller.
func (uc *UpdateEntryUseCase) applyChanges(ctx context.Context, entry *entity.Transaction, input UpdateEntryInput) error {
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionAmount,
				"amount must be positive",
				domainerror.ErrInvalidTransactionAmount,
			)
		}
		entry.Amount = *input.Amount
	}
	if input.Description != nil {
		if len(*input.Description) > MaxDescriptionLength {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeDescriptionTooLong,
				fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
				nil,
			)
		}
		entry.Description = *input.Description
	}
	if input.CategoryID != nil {
		if _, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID, input.UserID); err != nil {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		entry.CategoryID = *input.CategoryID
	}
	if input.PaymentMethod != nil {
		if !isValidPaymentMethod(*input.PaymentMethod) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidPaymentMethod,
				fmt.Sprintf("unknown payment method %q", *input.PaymentMethod),
				domainerror.ErrInvalidPaymentMethod,
			)
		}
		entry.PaymentMethod = *input.PaymentMethod
	}
	return nil
}

func (uc *UpdateEntryUseCase) findCard(ctx context.Context, cardID, userID uuid.UUID) (*entity.CreditCard, error) {
	card, err := uc.creditCardRepo.FindByID(ctx, cardID, userID)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCardNotFound,
			"credit card not found",
			domainerror.ErrCreditCardNotFound,
		)
	}
	return card, nil
}
