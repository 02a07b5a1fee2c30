package dto

import (
	"time"

	"github.com/finledger/backend/internal/application/usecase/creditcard"
)

// CreateCreditCardRequest represents the request body for card creation.
type CreateCreditCardRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	ClosingDay  int     `json:"closing_day" binding:"required,min=1,max=31"`
	DueDay      int     `json:"due_day" binding:"required,min=1,max=31"`
	CreditLimit float64 `json:"credit_limit,omitempty" binding:"omitempty,min=0"`
}

// SettleStatementRequest represents the request body for paying a statement.
type SettleStatementRequest struct {
	PaidDate *string `json:"paid_date,omitempty"` // YYYY-MM-DD, defaults to today
}

// CreditCardResponse represents a single credit card in API responses.
type CreditCardResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ClosingDay  int    `json:"closing_day"`
	DueDay      int    `json:"due_day"`
	CreditLimit string `json:"credit_limit"`
}

// CreditCardListResponse represents the response for listing credit cards.
type CreditCardListResponse struct {
	Cards []CreditCardResponse `json:"cards"`
}

// StatementResponse represents a single statement in API responses.
type StatementResponse struct {
	ID           string     `json:"id"`
	CreditCardID string     `json:"credit_card_id"`
	CardName     string     `json:"card_name"`
	Month        int        `json:"month"`
	Year         int        `json:"year"`
	TotalAmount  string     `json:"total_amount"`
	DueDate      string     `json:"due_date"`
	IsPaid       bool       `json:"is_paid"`
	PaidDate     *time.Time `json:"paid_date,omitempty"`
}

// SettleStatementResponse represents the response for paying a statement.
type SettleStatementResponse struct {
	ID       string    `json:"id"`
	IsPaid   bool      `json:"is_paid"`
	PaidDate time.Time `json:"paid_date"`
}

// StatementListResponse represents the response for a statement lookup.
type StatementListResponse struct {
	Month      int                 `json:"month"`
	Year       int                 `json:"year"`
	Statements []StatementResponse `json:"statements"`
	Total      string              `json:"total"`
}

// ToCreditCardListResponse converts a listing output to its response DTO.
func ToCreditCardListResponse(output *creditcard.ListCardsOutput) CreditCardListResponse {
	cards := make([]CreditCardResponse, len(output.Cards))
	for i, c := range output.Cards {
		cards[i] = CreditCardResponse{
			ID:          c.ID.String(),
			Name:        c.Name,
			ClosingDay:  c.ClosingDay,
			DueDay:      c.DueDay,
			CreditLimit: c.CreditLimit.StringFixed(2),
		}
	}
	return CreditCardListResponse{Cards: cards}
}

// ToStatementListResponse converts a statement lookup output to its DTO.
func ToStatementListResponse(output *creditcard.GetStatementsOutput) StatementListResponse {
	statements := make([]StatementResponse, len(output.Statements))
	for i, s := range output.Statements {
		statements[i] = StatementResponse{
			ID:           s.ID.String(),
			CreditCardID: s.CreditCardID.String(),
			CardName:     s.CardName,
			Month:        s.Month,
			Year:         s.Year,
			TotalAmount:  s.TotalAmount.StringFixed(2),
			DueDate:      s.DueDate.Format("2006-01-02"),
			IsPaid:       s.IsPaid,
			PaidDate:     s.PaidDate,
		}
	}
	return StatementListResponse{
		Month:      output.Month,
		Year:       output.Year,
		Statements: statements,
		Total:      output.Total.StringFixed(2),
	}
}
