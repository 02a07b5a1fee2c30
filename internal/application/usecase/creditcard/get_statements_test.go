package creditcard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
)

func TestGetStatementsUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	newCard := func(name string) *entity.CreditCard {
		return entity.NewCreditCard(userID, name, 1, 10, decimal.NewFromInt(5000))
	}

	t.Run("should sum statements across all cards for the month", func(t *testing.T) {
		cardA := newCard("A")
		cardB := newCard("B")
		stmtA := entity.NewStatement(userID, cardA.ID, 8, 2025, time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC))
		stmtA.TotalAmount = decimal.NewFromInt(300)
		stmtB := entity.NewStatement(userID, cardB.ID, 8, 2025, time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC))
		stmtB.TotalAmount = decimal.NewFromFloat(150.25)

		statementRepo := &stubStatementRepo{
			byMonth: []*entity.StatementWithCard{
				{Statement: stmtA, CreditCard: cardA},
				{Statement: stmtB, CreditCard: cardB},
			},
		}
		uc := NewGetStatementsUseCase(statementRepo, &stubCardRepo{})
		uc.now = func() time.Time { return time.Date(2025, time.August, 20, 12, 0, 0, 0, time.UTC) }

		output, err := uc.Execute(context.Background(), GetStatementsInput{UserID: userID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.Month != 8 || output.Year != 2025 {
			t.Errorf("expected default cycle 8/2025, got %d/%d", output.Month, output.Year)
		}
		if len(output.Statements) != 2 {
			t.Fatalf("expected 2 statements, got %d", len(output.Statements))
		}
		if !output.Total.Equal(decimal.NewFromFloat(450.25)) {
			t.Errorf("expected total 450.25, got %s", output.Total)
		}
	})

	t.Run("should return a single card's statement", func(t *testing.T) {
		card := newCard("Solo")
		statement := entity.NewStatement(userID, card.ID, 9, 2025, time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC))
		statement.TotalAmount = decimal.NewFromInt(80)

		statementRepo := &stubStatementRepo{
			byCycle: map[string]*entity.Statement{cycleKey(card.ID, 9, 2025): statement},
		}
		cardRepo := &stubCardRepo{cards: map[uuid.UUID]*entity.CreditCard{card.ID: card}}
		uc := NewGetStatementsUseCase(statementRepo, cardRepo)

		output, err := uc.Execute(context.Background(), GetStatementsInput{
			UserID:       userID,
			CreditCardID: &card.ID,
			Month:        9,
			Year:         2025,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(output.Statements) != 1 || output.Statements[0].CardName != "Solo" {
			t.Fatalf("expected the Solo card statement, got %+v", output.Statements)
		}
		if !output.Total.Equal(decimal.NewFromInt(80)) {
			t.Errorf("expected total 80, got %s", output.Total)
		}
	})

	t.Run("should report missing statement for a single card lookup", func(t *testing.T) {
		card := newCard("Empty")
		cardRepo := &stubCardRepo{cards: map[uuid.UUID]*entity.CreditCard{card.ID: card}}
		uc := NewGetStatementsUseCase(&stubStatementRepo{byCycle: map[string]*entity.Statement{}}, cardRepo)

		_, err := uc.Execute(context.Background(), GetStatementsInput{
			UserID:       userID,
			CreditCardID: &card.ID,
			Month:        9,
			Year:         2025,
		})
		if !errors.Is(err, domainerror.ErrStatementNotFound) {
			t.Errorf("expected ErrStatementNotFound, got %v", err)
		}
	})

	t.Run("should reject an invalid cycle", func(t *testing.T) {
		uc := NewGetStatementsUseCase(&stubStatementRepo{}, &stubCardRepo{})

		_, err := uc.Execute(context.Background(), GetStatementsInput{UserID: userID, Month: 13, Year: 2025})
		if !errors.Is(err, domainerror.ErrInvalidStatementCycle) {
			t.Errorf("expected ErrInvalidStatementCycle, got %v", err)
		}
	})

	t.Run("should reject another user's card", func(t *testing.T) {
		card := newCard("Mine")
		cardRepo := &stubCardRepo{cards: map[uuid.UUID]*entity.CreditCard{card.ID: card}}
		uc := NewGetStatementsUseCase(&stubStatementRepo{}, cardRepo)

		otherUser := uuid.New()
		_, err := uc.Execute(context.Background(), GetStatementsInput{
			UserID:       otherUser,
			CreditCardID: &card.ID,
			Month:        9,
			Year:         2025,
		})
		if !errors.Is(err, domainerror.ErrCreditCardNotFound) {
			t.Errorf("expected ErrCreditCardNotFound, got %v", err)
		}
	})
}

func TestSettleStatementUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("should settle an open statement on today by default", func(t *testing.T) {
		statement := entity.NewStatement(userID, uuid.New(), 8, 2025, time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC))
		repo := &stubStatementRepo{paid: map[uuid.UUID]*entity.Statement{statement.ID: statement}}
		uc := NewSettleStatementUseCase(repo)
		uc.now = func() time.Time { return time.Date(2025, time.August, 9, 18, 45, 0, 0, time.UTC) }

		output, err := uc.Execute(context.Background(), SettleStatementInput{UserID: userID, StatementID: statement.ID})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := time.Date(2025, time.August, 9, 0, 0, 0, 0, time.UTC)
		if !output.IsPaid || !output.PaidDate.Equal(want) {
			t.Errorf("expected paid on %s, got %+v", want, output)
		}
	})

	t.Run("should reject settling an already paid statement", func(t *testing.T) {
		statement := entity.NewStatement(userID, uuid.New(), 8, 2025, time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC))
		statement.IsPaid = true
		repo := &stubStatementRepo{paid: map[uuid.UUID]*entity.Statement{statement.ID: statement}}
		uc := NewSettleStatementUseCase(repo)

		_, err := uc.Execute(context.Background(), SettleStatementInput{UserID: userID, StatementID: statement.ID})
		if !errors.Is(err, domainerror.ErrStatementAlreadyPaid) {
			t.Errorf("expected ErrStatementAlreadyPaid, got %v", err)
		}
	})

	t.Run("should report a missing statement", func(t *testing.T) {
		uc := NewSettleStatementUseCase(&stubStatementRepo{paid: map[uuid.UUID]*entity.Statement{}})

		_, err := uc.Execute(context.Background(), SettleStatementInput{UserID: userID, StatementID: uuid.New()})
		if !errors.Is(err, domainerror.ErrStatementNotFound) {
			t.Errorf("expected ErrStatementNotFound, got %v", err)
		}
	})
}
