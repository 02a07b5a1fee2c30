package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finledger/backend/internal/application/usecase/report"
	"github.com/finledger/backend/internal/domain/entity"
)

// reportRepository implements the report.Repository interface.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance.
func NewReportRepository(db *gorm.DB) report.Repository {
	return &reportRepository{
		db: db,
	}
}

// GetSettledTotals sums settled income/expense by paid date in range.
// Conditional sums keep it a single pass; COALESCE turns an empty range
// into zeroes instead of NULL scan failures.
func (r *reportRepository) GetSettledTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) (*report.SettledTotals, error) {
	var row struct {
		Income       decimal.Decimal `gorm:"column:income"`
		Expense      decimal.Decimal `gorm:"column:expense"`
		IncomeCount  int             `gorm:"column:income_count"`
		ExpenseCount int             `gorm:"column:expense_count"`
	}

	err := r.db.WithContext(ctx).
		Table("transactions").
		Select(`
			COALESCE(SUM(CASE WHEN kind = 'income' THEN amount ELSE 0 END), 0) as income,
			COALESCE(SUM(CASE WHEN kind = 'expense' THEN amount ELSE 0 END), 0) as expense,
			COALESCE(SUM(CASE WHEN kind = 'income' THEN 1 ELSE 0 END), 0) as income_count,
			COALESCE(SUM(CASE WHEN kind = 'expense' THEN 1 ELSE 0 END), 0) as expense_count`).
		Where("user_id = ?", userID).
		Where("paid_date IS NOT NULL").
		Where("paid_date >= ? AND paid_date <= ?", start, end).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get settled totals: %w", err)
	}

	return &report.SettledTotals{
		Income:       row.Income,
		Expense:      row.Expense,
		IncomeCount:  row.IncomeCount,
		ExpenseCount: row.ExpenseCount,
	}, nil
}

// GetPendingTotals sums pending income/expense by due date in range.
func (r *reportRepository) GetPendingTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) (*report.PendingTotals, error) {
	var row struct {
		Income       decimal.Decimal `gorm:"column:income"`
		Expense      decimal.Decimal `gorm:"column:expense"`
		IncomeCount  int             `gorm:"column:income_count"`
		ExpenseCount int             `gorm:"column:expense_count"`
	}

	err := r.db.WithContext(ctx).
		Table("transactions").
		Select(`
			COALESCE(SUM(CASE WHEN kind = 'income' THEN amount ELSE 0 END), 0) as income,
			COALESCE(SUM(CASE WHEN kind = 'expense' THEN amount ELSE 0 END), 0) as expense,
			COALESCE(SUM(CASE WHEN kind = 'income' THEN 1 ELSE 0 END), 0) as income_count,
			COALESCE(SUM(CASE WHEN kind = 'expense' THEN 1 ELSE 0 END), 0) as expense_count`).
		Where("user_id = ?", userID).
		Where("paid_date IS NULL").
		Where("due_date >= ? AND due_date <= ?", start, end).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pending totals: %w", err)
	}

	return &report.PendingTotals{
		Income:       row.Income,
		Expense:      row.Expense,
		IncomeCount:  row.IncomeCount,
		ExpenseCount: row.ExpenseCount,
	}, nil
}

// GetCategoryGroups aggregates settled entries by category over the
// paid-date range, optionally restricted to one kind.
func (r *reportRepository) GetCategoryGroups(ctx context.Context, userID uuid.UUID, start, end time.Time, kind *entity.TransactionKind) ([]report.RawCategoryGroup, error) {
	query := r.db.WithContext(ctx).
		Table("transactions").
		Select(`
			transactions.category_id,
			categories.name as category_name,
			transactions.kind,
			COALESCE(SUM(transactions.amount), 0) as total,
			COUNT(*) as count`).
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ?", userID).
		Where("transactions.paid_date IS NOT NULL").
		Where("transactions.paid_date >= ? AND transactions.paid_date <= ?", start, end).
		Group("transactions.category_id, categories.name, transactions.kind")

	if kind != nil {
		query = query.Where("transactions.kind = ?", string(*kind))
	}

	var rows []struct {
		CategoryID   uuid.UUID       `gorm:"column:category_id"`
		CategoryName string          `gorm:"column:category_name"`
		Kind         string          `gorm:"column:kind"`
		Total        decimal.Decimal `gorm:"column:total"`
		Count        int             `gorm:"column:count"`
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get category groups: %w", err)
	}

	groups := make([]report.RawCategoryGroup, len(rows))
	for i, row := range rows {
		groups[i] = report.RawCategoryGroup{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Kind:         entity.TransactionKind(row.Kind),
			Total:        row.Total,
			Count:        row.Count,
		}
	}
	return groups, nil
}

// GetPendingExpenses returns every pending expense entry for the user,
// ordered by due date ascending.
func (r *reportRepository) GetPendingExpenses(ctx context.Context, userID uuid.UUID) ([]report.PendingEntry, error) {
	var rows []struct {
		ID           uuid.UUID       `gorm:"column:id"`
		Amount       decimal.Decimal `gorm:"column:amount"`
		Description  string          `gorm:"column:description"`
		DueDate      time.Time       `gorm:"column:due_date"`
		CategoryName string          `gorm:"column:category_name"`
		CardName     *string         `gorm:"column:card_name"`
	}

	err := r.db.WithContext(ctx).
		Table("transactions").
		Select(`
			transactions.id,
			transactions.amount,
			transactions.description,
			transactions.due_date,
			categories.name as category_name,
			credit_cards.name as card_name`).
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Joins("LEFT JOIN credit_cards ON credit_cards.id = transactions.credit_card_id").
		Where("transactions.user_id = ?", userID).
		Where("transactions.kind = ?", string(entity.TransactionKindExpense)).
		Where("transactions.paid_date IS NULL").
		Order("transactions.due_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pending expenses: %w", err)
	}

	entries := make([]report.PendingEntry, len(rows))
	for i, row := range rows {
		entries[i] = report.PendingEntry{
			ID:          row.ID,
			Amount:      row.Amount,
			Description: row.Description,
			DueDate:     row.DueDate,
		}
		entries[i].CategoryName = row.CategoryName
		if row.CardName != nil {
			entries[i].CardName = *row.CardName
		}
	}
	return entries, nil
}
