package dto

import (
	"github.com/finledger/backend/internal/application/usecase/report"
)

// BalanceResponse represents the balance view in API responses. Pending
// sums are informational and never netted into the balance.
type BalanceResponse struct {
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	TotalIncome    string `json:"total_income"`
	TotalExpense   string `json:"total_expense"`
	Balance        string `json:"balance"`
	IncomeCount    int    `json:"income_count"`
	ExpenseCount   int    `json:"expense_count"`
	PendingIncome  string `json:"pending_income"`
	PendingExpense string `json:"pending_expense"`
}

// CategorySummaryRowResponse represents one category group in the summary.
type CategorySummaryRowResponse struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Kind         string `json:"kind"`
	Total        string `json:"total"`
	Count        int    `json:"count"`
	Average      string `json:"average"`
	Percentage   string `json:"percentage"`
}

// CategorySummaryResponse represents the category summary view.
type CategorySummaryResponse struct {
	StartDate  string                       `json:"start_date"`
	EndDate    string                       `json:"end_date"`
	Categories []CategorySummaryRowResponse `json:"categories"`
	Total      string                       `json:"total"`
}

// TrendMonthResponse represents one month in the trend view.
type TrendMonthResponse struct {
	Label   string `json:"label"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

// MonthlyTrendResponse represents the monthly trend view.
type MonthlyTrendResponse struct {
	Months         []TrendMonthResponse `json:"months"`
	AverageIncome  string               `json:"average_income"`
	AverageExpense string               `json:"average_expense"`
	AverageBalance string               `json:"average_balance"`
}

// CommitmentItemResponse represents one listed pending expense.
type CommitmentItemResponse struct {
	ID           string `json:"id"`
	Amount       string `json:"amount"`
	Description  string `json:"description"`
	DueDate      string `json:"due_date"`
	CategoryName string `json:"category_name"`
	CardName     string `json:"card_name,omitempty"`
}

// CommitmentBucketResponse represents one commitments bucket.
type CommitmentBucketResponse struct {
	Total string                   `json:"total"`
	Count int                      `json:"count"`
	Items []CommitmentItemResponse `json:"items"`
}

// PendingCommitmentsResponse represents the commitments view.
type PendingCommitmentsResponse struct {
	ThisMonth CommitmentBucketResponse `json:"this_month"`
	NextMonth CommitmentBucketResponse `json:"next_month"`
	Future    CommitmentBucketResponse `json:"future"`
}

// ToBalanceResponse converts a balance output to its response DTO.
func ToBalanceResponse(output *report.GetBalanceOutput) BalanceResponse {
	return BalanceResponse{
		StartDate:      output.StartDate.Format("2006-01-02"),
		EndDate:        output.EndDate.Format("2006-01-02"),
		TotalIncome:    output.TotalIncome.StringFixed(2),
		TotalExpense:   output.TotalExpense.StringFixed(2),
		Balance:        output.Balance.StringFixed(2),
		IncomeCount:    output.IncomeCount,
		ExpenseCount:   output.ExpenseCount,
		PendingIncome:  output.PendingIncome.StringFixed(2),
		PendingExpense: output.PendingExpense.StringFixed(2),
	}
}

// ToCategorySummaryResponse converts a summary output to its response DTO.
func ToCategorySummaryResponse(output *report.GetCategorySummaryOutput) CategorySummaryResponse {
	categories := make([]CategorySummaryRowResponse, len(output.Categories))
	for i, row := range output.Categories {
		categories[i] = CategorySummaryRowResponse{
			CategoryID:   row.CategoryID.String(),
			CategoryName: row.CategoryName,
			Kind:         string(row.Kind),
			Total:        row.Total.StringFixed(2),
			Count:        row.Count,
			Average:      row.Average.StringFixed(2),
			Percentage:   row.Percentage.StringFixed(1),
		}
	}
	return CategorySummaryResponse{
		StartDate:  output.StartDate.Format("2006-01-02"),
		EndDate:    output.EndDate.Format("2006-01-02"),
		Categories: categories,
		Total:      output.Total.StringFixed(2),
	}
}

// ToMonthlyTrendResponse converts a trend output to its response DTO.
func ToMonthlyTrendResponse(output *report.GetMonthlyTrendOutput) MonthlyTrendResponse {
	months := make([]TrendMonthResponse, len(output.Months))
	for i, m := range output.Months {
		months[i] = TrendMonthResponse{
			Label:   m.Label,
			Income:  m.Income.StringFixed(2),
			Expense: m.Expense.StringFixed(2),
			Balance: m.Balance.StringFixed(2),
		}
	}
	return MonthlyTrendResponse{
		Months:         months,
		AverageIncome:  output.AverageIncome.StringFixed(2),
		AverageExpense: output.AverageExpense.StringFixed(2),
		AverageBalance: output.AverageBalance.StringFixed(2),
	}
}

// ToPendingCommitmentsResponse converts a commitments output to its DTO.
func ToPendingCommitmentsResponse(output *report.GetPendingCommitmentsOutput) PendingCommitmentsResponse {
	return PendingCommitmentsResponse{
		ThisMonth: toBucketResponse(output.ThisMonth),
		NextMonth: toBucketResponse(output.NextMonth),
		Future:    toBucketResponse(output.Future),
	}
}

func toBucketResponse(bucket report.CommitmentBucket) CommitmentBucketResponse {
	items := make([]CommitmentItemResponse, len(bucket.Items))
	for i, item := range bucket.Items {
		items[i] = CommitmentItemResponse{
			ID:           item.ID.String(),
			Amount:       item.Amount.StringFixed(2),
			Description:  item.Description,
			DueDate:      item.DueDate.Format("2006-01-02"),
			CategoryName: item.CategoryName,
			CardName:     item.CardName,
		}
	}
	return CommitmentBucketResponse{
		Total: bucket.Total.StringFixed(2),
		Count: bucket.Count,
		Items: items,
	}
}
