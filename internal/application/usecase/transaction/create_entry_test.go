package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
)

// stubTransactionRepo records writes without touching a database.
type stubTransactionRepo struct {
	created       []*entity.Transaction
	postings      []adapter.StatementPosting
	batchEntries  []*entity.Transaction
	batchPostings []adapter.StatementPosting
	failCreate    error
	byID          map[uuid.UUID]*entity.Transaction
	updated       []*entity.Transaction
	deletedIDs    []uuid.UUID
}

func (s *stubTransactionRepo) Create(_ context.Context, t *entity.Transaction, p *adapter.StatementPosting) error {
	if s.failCreate != nil {
		return s.failCreate
	}
	s.created = append(s.created, t)
	if p != nil {
		s.postings = append(s.postings, *p)
	}
	return nil
}

func (s *stubTransactionRepo) CreateBatch(_ context.Context, ts []*entity.Transaction, ps []adapter.StatementPosting) error {
	if s.failCreate != nil {
		return s.failCreate
	}
	s.batchEntries = append(s.batchEntries, ts...)
	s.batchPostings = append(s.batchPostings, ps...)
	return nil
}

func (s *stubTransactionRepo) FindByID(_ context.Context, id, _ uuid.UUID) (*entity.Transaction, error) {
	if t, ok := s.byID[id]; ok {
		return t, nil
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (s *stubTransactionRepo) FindByFilter(_ context.Context, _ adapter.EntryFilter, p adapter.EntryPagination) (*adapter.EntryListResult, error) {
	return &adapter.EntryListResult{Page: p.Page, Limit: p.Limit}, nil
}

func (s *stubTransactionRepo) Update(_ context.Context, t *entity.Transaction, ps []adapter.StatementPosting) error {
	s.updated = append(s.updated, t)
	s.postings = append(s.postings, ps...)
	return nil
}

func (s *stubTransactionRepo) Delete(_ context.Context, id, _ uuid.UUID, p *adapter.StatementPosting) error {
	s.deletedIDs = append(s.deletedIDs, id)
	if p != nil {
		s.postings = append(s.postings, *p)
	}
	return nil
}

func (s *stubTransactionRepo) ExistsByCategory(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}

type stubCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func (s *stubCategoryRepo) Create(_ context.Context, c *entity.Category) error { return nil }
func (s *stubCategoryRepo) FindByID(_ context.Context, id, _ uuid.UUID) (*entity.Category, error) {
	if c, ok := s.categories[id]; ok {
		return c, nil
	}
	return nil, domainerror.ErrCategoryNotFound
}
func (s *stubCategoryRepo) FindByUser(_ context.Context, _ uuid.UUID) ([]*entity.Category, error) {
	return nil, nil
}
func (s *stubCategoryRepo) Update(_ context.Context, _ *entity.Category) error { return nil }
func (s *stubCategoryRepo) Delete(_ context.Context, _, _ uuid.UUID) error     { return nil }

type stubCardRepo struct {
	cards map[uuid.UUID]*entity.CreditCard
}

func (s *stubCardRepo) Create(_ context.Context, _ *entity.CreditCard) error { return nil }
func (s *stubCardRepo) FindByID(_ context.Context, id, _ uuid.UUID) (*entity.CreditCard, error) {
	if c, ok := s.cards[id]; ok {
		return c, nil
	}
	return nil, domainerror.ErrCreditCardNotFound
}
func (s *stubCardRepo) FindByUser(_ context.Context, _ uuid.UUID) ([]*entity.CreditCard, error) {
	return nil, nil
}

type createFixture struct {
	uc       *CreateEntryUseCase
	repo     *stubTransactionRepo
	userID   uuid.UUID
	category *entity.Category
	card     *entity.CreditCard
}

func newCreateFixture(t *testing.T, today time.Time) *createFixture {
	t.Helper()
	userID := uuid.New()
	category := entity.NewCategory(userID, "Groceries", entity.CategoryKindExpense)
	card := entity.NewCreditCard(userID, "Visa", 1, 10, decimal.NewFromInt(5000))

	repo := &stubTransactionRepo{byID: map[uuid.UUID]*entity.Transaction{}}
	uc := NewCreateEntryUseCase(
		repo,
		&stubCategoryRepo{categories: map[uuid.UUID]*entity.Category{category.ID: category}},
		&stubCardRepo{cards: map[uuid.UUID]*entity.CreditCard{card.ID: card}},
	)
	uc.now = func() time.Time { return today }

	return &createFixture{uc: uc, repo: repo, userID: userID, category: category, card: card}
}

func TestCreateEntry_ImmediateSettlement(t *testing.T) {
	today := time.Date(2025, time.January, 5, 14, 30, 0, 0, time.UTC)
	f := newCreateFixture(t, today)

	out, err := f.uc.Execute(context.Background(), CreateEntryInput{
		UserID:        f.userID,
		Amount:        decimal.NewFromFloat(25.50),
		Kind:          entity.TransactionKindExpense,
		CategoryID:    f.category.ID,
		PaymentMethod: entity.PaymentMethodPix,
		Description:   "Lunch",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := out.Entries[0]
	wantDate := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	if !entry.DueDate.Equal(wantDate) {
		t.Errorf("due date = %s, want %s", entry.DueDate, wantDate)
	}
	if entry.Status != entity.SettlementStatusSettled {
		t.Errorf("status = %s, want settled", entry.Status)
	}
	if len(f.repo.postings) != 0 {
		t.Errorf("expected no statement posting for pix, got %d", len(f.repo.postings))
	}
}

func TestCreateEntry_CreditCardAssignsCycle(t *testing.T) {
	t.Run("purchase on closing day stays in current month", func(t *testing.T) {
		today := time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)
		f := newCreateFixture(t, today)

		out, err := f.uc.Execute(context.Background(), CreateEntryInput{
			UserID:        f.userID,
			Amount:        decimal.NewFromInt(100),
			Kind:          entity.TransactionKindExpense,
			CategoryID:    f.category.ID,
			PaymentMethod: entity.PaymentMethodCreditCard,
			CreditCardID:  &f.card.ID,
			Description:   "Headphones",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entry := out.Entries[0]
		wantDue := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
		if !entry.DueDate.Equal(wantDue) {
			t.Errorf("due date = %s, want %s", entry.DueDate, wantDue)
		}
		if entry.Status != entity.SettlementStatusPending {
			t.Errorf("status = %s, want pending", entry.Status)
		}

		if len(f.repo.postings) != 1 {
			t.Fatalf("expected 1 statement posting, got %d", len(f.repo.postings))
		}
		posting := f.repo.postings[0]
		if posting.Statement.Month != 1 || posting.Statement.Year != 2025 {
			t.Errorf("posting cycle = %d/%d, want 1/2025", posting.Statement.Month, posting.Statement.Year)
		}
		if !posting.Amount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("posting amount = %s, want 100", posting.Amount)
		}
	})

	t.Run("purchase after closing day rolls to next month", func(t *testing.T) {
		today := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)
		f := newCreateFixture(t, today)

		out, err := f.uc.Execute(context.Background(), CreateEntryInput{
			UserID:        f.userID,
			Amount:        decimal.NewFromInt(100),
			Kind:          entity.TransactionKindExpense,
			CategoryID:    f.category.ID,
			PaymentMethod: entity.PaymentMethodCreditCard,
			CreditCardID:  &f.card.ID,
			Description:   "Shoes",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantDue := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)
		if !out.Entries[0].DueDate.Equal(wantDue) {
			t.Errorf("due date = %s, want %s", out.Entries[0].DueDate, wantDue)
		}
		if f.repo.postings[0].Statement.Month != 2 {
			t.Errorf("posting month = %d, want 2", f.repo.postings[0].Statement.Month)
		}
	})
}

func TestCreateEntry_RecurringExpansion(t *testing.T) {
	today := time.Date(2025, time.January, 7, 12, 0, 0, 0, time.UTC)
	f := newCreateFixture(t, today)

	out, err := f.uc.Execute(context.Background(), CreateEntryInput{
		UserID:        f.userID,
		Amount:        decimal.NewFromInt(100),
		Kind:          entity.TransactionKindExpense,
		CategoryID:    f.category.ID,
		PaymentMethod: entity.PaymentMethodPix,
		Description:   "Gym",
		Recurring:     &RecurringOptions{DueDay: 31, Months: 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(out.Entries))
	}
	wantDue := []time.Time{
		time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
	wantDescription := []string{"Gym - 01/2025", "Gym - 02/2025", "Gym - 03/2025"}
	for i, entry := range out.Entries {
		if !entry.DueDate.Equal(wantDue[i]) {
			t.Errorf("entries[%d] due = %s, want %s", i, entry.DueDate, wantDue[i])
		}
		if entry.Description != wantDescription[i] {
			t.Errorf("entries[%d] description = %q, want %q", i, entry.Description, wantDescription[i])
		}
		if entry.Status != entity.SettlementStatusPending {
			t.Errorf("entries[%d] status = %s, want pending", i, entry.Status)
		}
		if !entry.IsRecurring {
			t.Errorf("entries[%d] not flagged recurring", i)
		}
	}

	if len(f.repo.batchEntries) != 3 {
		t.Errorf("batch size = %d, want 3", len(f.repo.batchEntries))
	}
	if len(f.repo.batchPostings) != 0 {
		t.Errorf("expected no postings for pix recurring, got %d", len(f.repo.batchPostings))
	}
}

func TestCreateEntry_RecurringOnCreditCardPostsEachMonth(t *testing.T) {
	today := time.Date(2025, time.April, 3, 8, 0, 0, 0, time.UTC)
	f := newCreateFixture(t, today)

	out, err := f.uc.Execute(context.Background(), CreateEntryInput{
		UserID:        f.userID,
		Amount:        decimal.NewFromInt(40),
		Kind:          entity.TransactionKindExpense,
		CategoryID:    f.category.ID,
		PaymentMethod: entity.PaymentMethodCreditCard,
		CreditCardID:  &f.card.ID,
		Description:   "Streaming",
		Recurring:     &RecurringOptions{DueDay: 15},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Entries) != 6 {
		t.Fatalf("got %d entries, want default 6", len(out.Entries))
	}
	if len(f.repo.batchPostings) != 6 {
		t.Fatalf("got %d postings, want 6", len(f.repo.batchPostings))
	}
	for i, posting := range f.repo.batchPostings {
		wantMonth := int(time.April) + i
		wantYear := 2025
		if wantMonth > 12 {
			wantMonth -= 12
			wantYear++
		}
		if posting.Statement.Month != wantMonth || posting.Statement.Year != wantYear {
			t.Errorf("postings[%d] cycle = %d/%d, want %d/%d",
				i, posting.Statement.Month, posting.Statement.Year, wantMonth, wantYear)
		}
	}
}

func TestCreateEntry_RecurringBatchFailureLeavesNoPartialSeries(t *testing.T) {
	today := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	f := newCreateFixture(t, today)
	f.repo.failCreate = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), CreateEntryInput{
		UserID:        f.userID,
		Amount:        decimal.NewFromInt(10),
		Kind:          entity.TransactionKindExpense,
		CategoryID:    f.category.ID,
		PaymentMethod: entity.PaymentMethodPix,
		Description:   "Rent",
		Recurring:     &RecurringOptions{DueDay: 5, Months: 6},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) || txnErr.Code != domainerror.ErrCodeRecurringBatchFailed {
		t.Errorf("error = %v, want recurring batch failure code", err)
	}
	if len(f.repo.batchEntries) != 0 {
		t.Errorf("expected no persisted entries, got %d", len(f.repo.batchEntries))
	}
}

func TestCreateEntry_Validation(t *testing.T) {
	today := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		mutate   func(*CreateEntryInput)
		wantCode domainerror.TransactionErrorCode
	}{
		{
			name:     "zero amount",
			mutate:   func(in *CreateEntryInput) { in.Amount = decimal.Zero },
			wantCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:     "negative amount",
			mutate:   func(in *CreateEntryInput) { in.Amount = decimal.NewFromInt(-5) },
			wantCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:     "invalid kind",
			mutate:   func(in *CreateEntryInput) { in.Kind = "transfer" },
			wantCode: domainerror.ErrCodeInvalidTransactionKind,
		},
		{
			name:     "unknown payment method",
			mutate:   func(in *CreateEntryInput) { in.PaymentMethod = "check" },
			wantCode: domainerror.ErrCodeInvalidPaymentMethod,
		},
		{
			name: "credit card method without card id",
			mutate: func(in *CreateEntryInput) {
				in.PaymentMethod = entity.PaymentMethodCreditCard
				in.CreditCardID = nil
			},
			wantCode: domainerror.ErrCodeCreditCardRequired,
		},
		{
			name: "installments without credit card",
			mutate: func(in *CreateEntryInput) {
				in.InstallmentCount = 3
			},
			wantCode: domainerror.ErrCodeInstallmentsWithoutCard,
		},
		{
			name: "recurring due day out of range",
			mutate: func(in *CreateEntryInput) {
				in.Recurring = &RecurringOptions{DueDay: 32}
			},
			wantCode: domainerror.ErrCodeInvalidRecurringSchedule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCreateFixture(t, today)
			input := CreateEntryInput{
				UserID:        f.userID,
				Amount:        decimal.NewFromInt(10),
				Kind:          entity.TransactionKindExpense,
				CategoryID:    f.category.ID,
				PaymentMethod: entity.PaymentMethodPix,
				Description:   "x",
			}
			tt.mutate(&input)

			_, err := f.uc.Execute(context.Background(), input)
			if err == nil {
				t.Fatal("expected error")
			}
			var txnErr *domainerror.TransactionError
			if !errors.As(err, &txnErr) {
				t.Fatalf("error type = %T, want *TransactionError", err)
			}
			if txnErr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", txnErr.Code, tt.wantCode)
			}
		})
	}
}

func TestCreateEntry_UnknownCategory(t *testing.T) {
	f := newCreateFixture(t, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC))

	_, err := f.uc.Execute(context.Background(), CreateEntryInput{
		UserID:        f.userID,
		Amount:        decimal.NewFromInt(10),
		Kind:          entity.TransactionKindExpense,
		CategoryID:    uuid.New(),
		PaymentMethod: entity.PaymentMethodCash,
		Description:   "x",
	})
	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) || txnErr.Code != domainerror.ErrCodeTxnCategoryNotFound {
		t.Errorf("error = %v, want category not found code", err)
	}
}
