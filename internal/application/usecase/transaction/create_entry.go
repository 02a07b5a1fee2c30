// Package transaction contains ledger entry write and listing use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
	"github.com/finledger/backend/internal/domain/valueobject"
)

// MaxDescriptionLength is the maximum allowed length for entry descriptions.
const MaxDescriptionLength = 255

// RecurringOptions declares a recurring expansion: the target day of month
// and how many monthly entries to generate (0 selects the default).
type RecurringOptions struct {
	DueDay int
	Months int
}

// CreateEntryInput represents the input for ledger entry creation.
type CreateEntryInput struct {
	UserID           uuid.UUID
	Amount           decimal.Decimal
	Kind             entity.TransactionKind
	CategoryID       uuid.UUID
	PaymentMethod    entity.PaymentMethod
	CreditCardID     *uuid.UUID
	InstallmentCount int
	Description      string
	Recurring        *RecurringOptions
}

// CreateEntryOutput represents the output of ledger entry creation. For a
// recurring declaration Entries holds the whole expanded series.
type CreateEntryOutput struct {
	Entries []*EntryOutput
}

// CreateEntryUseCase handles ledger entry registration: validation,
// settlement rules per payment method, billing cycle assignment with
// statement posting, and recurring expansion.
type CreateEntryUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	creditCardRepo  adapter.CreditCardRepository
	now             func() time.Time
}

// NewCreateEntryUseCase creates a new CreateEntryUseCase instance.
func NewCreateEntryUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	creditCardRepo adapter.CreditCardRepository,
) *CreateEntryUseCase {
	return &CreateEntryUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		creditCardRepo:  creditCardRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Execute performs the ledger entry creation.
func (uc *CreateEntryUseCase) Execute(ctx context.Context, input CreateEntryInput) (*CreateEntryOutput, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	if _, err := uc.categoryRepo.FindByID(ctx, input.CategoryID, input.UserID); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForTransaction,
		)
	}

	var card *entity.CreditCard
	if input.PaymentMethod == entity.PaymentMethodCreditCard {
		found, err := uc.creditCardRepo.FindByID(ctx, *input.CreditCardID, input.UserID)
		if err != nil {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCardNotFound,
				"credit card not found",
				domainerror.ErrCreditCardNotFound,
			)
		}
		card = found
	}

	if input.Recurring != nil {
		return uc.createRecurring(ctx, input, card)
	}
	return uc.createSingle(ctx, input, card)
}

// createSingle registers one ledger entry, applying the settlement rules of
// the payment method: cash-like methods settle immediately, credit card
// purchases are assigned to a billing cycle and accumulated onto its
// statement, everything else falls due today and stays pending.
func (uc *CreateEntryUseCase) createSingle(
	ctx context.Context,
	input CreateEntryInput,
	card *entity.CreditCard,
) (*CreateEntryOutput, error) {
	today := dateOnly(uc.now())

	entry := entity.NewTransaction(
		input.UserID,
		input.Amount,
		input.Kind,
		input.CategoryID,
		input.PaymentMethod,
		input.Description,
		today,
	)

	var posting *adapter.StatementPosting
	switch {
	case input.PaymentMethod.SettlesImmediately():
		paid := today
		entry.PaidDate = &paid
	case card != nil:
		cycle := valueobject.AssignCycle(today, card.ClosingDay, card.DueDay)
		entry.DueDate = cycle.DueDate
		entry.CreditCardID = &card.ID
		if input.InstallmentCount > 1 {
			entry.InstallmentCount = input.InstallmentCount
		}
		posting = statementPosting(input.UserID, card, cycle.Month(), cycle.Year(), input.Amount)
	}

	if err := uc.transactionRepo.Create(ctx, entry, posting); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionWriteFailed,
			"failed to create transaction",
			err,
		)
	}

	return &CreateEntryOutput{Entries: []*EntryOutput{entryOutputFrom(entry)}}, nil
}

// createRecurring expands a recurring declaration into one independent
// entry per consecutive month and inserts the whole series as a single
// atomic batch. Every entry starts pending regardless of payment method;
// credit card entries each post to their own due-month statement.
func (uc *CreateEntryUseCase) createRecurring(
	ctx context.Context,
	input CreateEntryInput,
	card *entity.CreditCard,
) (*CreateEntryOutput, error) {
	schedule, err := valueobject.NewRecurringSchedule(input.Recurring.DueDay, input.Recurring.Months)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidRecurringSchedule,
			err.Error(),
			err,
		)
	}

	dueDates := schedule.DueDates(dateOnly(uc.now()))
	entries := make([]*entity.Transaction, 0, len(dueDates))
	postings := make([]adapter.StatementPosting, 0, len(dueDates))

	for _, dueDate := range dueDates {
		description := fmt.Sprintf("%s - %s", input.Description, valueobject.MonthLabel(dueDate))
		entry := entity.NewTransaction(
			input.UserID,
			input.Amount,
			input.Kind,
			input.CategoryID,
			input.PaymentMethod,
			description,
			dueDate,
		)
		entry.IsRecurring = true
		if card != nil {
			entry.CreditCardID = &card.ID
			posting := statementPosting(input.UserID, card, int(dueDate.Month()), dueDate.Year(), input.Amount)
			postings = append(postings, *posting)
		}
		entries = append(entries, entry)
	}

	if err := uc.transactionRepo.CreateBatch(ctx, entries, postings); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeRecurringBatchFailed,
			fmt.Sprintf("failed to create recurring series of %d entries, no entry was saved", len(entries)),
			err,
		)
	}

	output := &CreateEntryOutput{Entries: make([]*EntryOutput, 0, len(entries))}
	for _, entry := range entries {
		output.Entries = append(output.Entries, entryOutputFrom(entry))
	}
	return output, nil
}

func (uc *CreateEntryUseCase) validate(input CreateEntryInput) error {
	if !input.Amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be positive",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if input.Kind != entity.TransactionKindExpense && input.Kind != entity.TransactionKindIncome {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionKind,
			"kind must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionKind,
		)
	}
	if !isValidPaymentMethod(input.PaymentMethod) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidPaymentMethod,
			fmt.Sprintf("unknown payment method %q", input.PaymentMethod),
			domainerror.ErrInvalidPaymentMethod,
		)
	}
	if len(input.Description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			nil,
		)
	}
	if input.PaymentMethod == entity.PaymentMethodCreditCard && input.CreditCardID == nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeCreditCardRequired,
			"credit card id is required for credit card payments",
			domainerror.ErrCreditCardRequired,
		)
	}
	if input.InstallmentCount > 1 && input.PaymentMethod != entity.PaymentMethodCreditCard {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInstallmentsWithoutCard,
			"installments are only valid for credit card payments",
			domainerror.ErrInstallmentsWithoutCreditCard,
		)
	}
	return nil
}

// statementPosting builds the posting for a credit card purchase: the
// amount delta plus the candidate statement row used on lazy creation,
// with the cycle's due date derived from the card's configured due day.
func statementPosting(
	userID uuid.UUID,
	card *entity.CreditCard,
	month, year int,
	amount decimal.Decimal,
) *adapter.StatementPosting {
	dueDate := valueobject.CycleDueDate(year, time.Month(month), card.DueDay)
	return &adapter.StatementPosting{
		Statement: entity.NewStatement(userID, card.ID, month, year, dueDate),
		Amount:    amount,
	}
}

func isValidPaymentMethod(m entity.PaymentMethod) bool {
	switch m {
	case entity.PaymentMethodPix, entity.PaymentMethodCash, entity.PaymentMethodDebitCard,
		entity.PaymentMethodCreditCard, entity.PaymentMethodOther:
		return true
	}
	return false
}

// dateOnly truncates a timestamp to midnight UTC; the ledger stores dates,
// not instants.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
