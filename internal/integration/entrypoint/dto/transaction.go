package dto

import (
	"time"

	"github.com/finledger/backend/internal/application/usecase/transaction"
)

// RecurringRequest declares a recurring expansion on entry creation.
type RecurringRequest struct {
	DueDay int `json:"due_day" binding:"required,min=1,max=31"`
	Months int `json:"months,omitempty" binding:"omitempty,min=1,max=36"`
}

// CreateEntryRequest represents the request body for ledger entry creation.
type CreateEntryRequest struct {
	Amount           float64           `json:"amount" binding:"required,gt=0"`
	Kind             string            `json:"kind" binding:"required,oneof=expense income"`
	CategoryID       string            `json:"category_id" binding:"required,uuid"`
	PaymentMethod    string            `json:"payment_method" binding:"required,oneof=pix cash debit_card credit_card other"`
	CreditCardID     *string           `json:"credit_card_id,omitempty" binding:"omitempty,uuid"`
	InstallmentCount int               `json:"installment_count,omitempty" binding:"omitempty,min=1,max=48"`
	Description      string            `json:"description" binding:"required,min=1,max=255"`
	Recurring        *RecurringRequest `json:"recurring,omitempty"`
}

// UpdateEntryRequest represents the request body for a partial entry edit.
type UpdateEntryRequest struct {
	Amount        *float64 `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Description   *string  `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	CategoryID    *string  `json:"category_id,omitempty" binding:"omitempty,uuid"`
	PaymentMethod *string  `json:"payment_method,omitempty" binding:"omitempty,oneof=pix cash debit_card credit_card other"`
	CreditCardID  *string  `json:"credit_card_id,omitempty" binding:"omitempty,uuid"`
}

// SettleEntryRequest represents the request body for settling an entry.
type SettleEntryRequest struct {
	PaidDate *string `json:"paid_date,omitempty"` // YYYY-MM-DD, defaults to today
}

// EntryCategoryResponse represents category information in entry responses.
type EntryCategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// EntryResponse represents a single ledger entry in API responses.
type EntryResponse struct {
	ID               string                 `json:"id"`
	Amount           string                 `json:"amount"`
	Kind             string                 `json:"kind"`
	CategoryID       string                 `json:"category_id"`
	Category         *EntryCategoryResponse `json:"category,omitempty"`
	PaymentMethod    string                 `json:"payment_method"`
	CreditCardID     *string                `json:"credit_card_id,omitempty"`
	InstallmentCount int                    `json:"installment_count"`
	IsRecurring      bool                   `json:"is_recurring"`
	Description      string                 `json:"description"`
	DueDate          string                 `json:"due_date"`
	PaidDate         *time.Time             `json:"paid_date,omitempty"`
	Status           string                 `json:"status"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// EntryPaginationResponse represents pagination information in API responses.
type EntryPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// EntryListResponse represents the response for listing ledger entries.
type EntryListResponse struct {
	Entries    []EntryResponse         `json:"entries"`
	Pagination EntryPaginationResponse `json:"pagination"`
}

// CreateEntryResponse represents the response for entry creation. Entries
// holds the whole expanded series for a recurring declaration.
type CreateEntryResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// ToEntryResponse converts an EntryOutput to an EntryResponse DTO.
func ToEntryResponse(entry *transaction.EntryOutput) EntryResponse {
	response := EntryResponse{
		ID:               entry.ID.String(),
		Amount:           entry.Amount.StringFixed(2),
		Kind:             string(entry.Kind),
		CategoryID:       entry.CategoryID.String(),
		PaymentMethod:    string(entry.PaymentMethod),
		InstallmentCount: entry.InstallmentCount,
		IsRecurring:      entry.IsRecurring,
		Description:      entry.Description,
		DueDate:          entry.DueDate.Format("2006-01-02"),
		PaidDate:         entry.PaidDate,
		Status:           string(entry.Status),
		CreatedAt:        entry.CreatedAt,
		UpdatedAt:        entry.UpdatedAt,
	}
	if entry.CreditCardID != nil {
		id := entry.CreditCardID.String()
		response.CreditCardID = &id
	}
	if entry.Category != nil {
		response.Category = &EntryCategoryResponse{
			ID:   entry.Category.ID.String(),
			Name: entry.Category.Name,
			Kind: string(entry.Category.Kind),
		}
	}
	return response
}

// ToEntryListResponse converts a listing output to its response DTO.
func ToEntryListResponse(output *transaction.ListEntriesOutput) EntryListResponse {
	entries := make([]EntryResponse, len(output.Entries))
	for i, entry := range output.Entries {
		entries[i] = ToEntryResponse(entry)
	}
	return EntryListResponse{
		Entries: entries,
		Pagination: EntryPaginationResponse{
			Page:       output.Page,
			Limit:      output.Limit,
			Total:      output.Total,
			TotalPages: output.TotalPages,
		},
	}
}
