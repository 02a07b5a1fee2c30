// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
	"github.com/finledger/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// applyPosting accumulates a signed amount onto a statement cycle inside
// the caller's database transaction. The first posting for a cycle inserts
// the row; later postings (or a concurrent first posting losing the race)
// land on the unique (credit_card_id, month, year) index and turn into a
// single atomic addition on the stored total.
func applyPosting(tx *gorm.DB, posting adapter.StatementPosting) error {
	statementModel := model.StatementFromEntity(posting.Statement)
	statementModel.TotalAmount = posting.Amount

	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "credit_card_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_amount": gorm.Expr("statements.total_amount + ?", posting.Amount),
			"updated_at":   time.Now().UTC(),
		}),
	}).Create(statementModel).Error
}

// Create creates a new transaction, applying the statement posting in the
// same database transaction when one is given.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction, posting *adapter.StatementPosting) error {
	transactionModel := model.TransactionFromEntity(transaction)

	if posting == nil {
		return r.db.WithContext(ctx).Create(transactionModel).Error
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transactionModel).Error; err != nil {
			return err
		}
		return applyPosting(tx, *posting)
	})
}

// CreateBatch inserts an expanded recurring series atomically: either every
// entry and every posting commits, or none do.
func (r *transactionRepository) CreateBatch(ctx context.Context, transactions []*entity.Transaction, postings []adapter.StatementPosting) error {
	if len(transactions) == 0 {
		return nil
	}

	transactionModels := make([]*model.TransactionModel, len(transactions))
	for i, t := range transactions {
		transactionModels[i] = model.TransactionFromEntity(t)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transactionModels).Error; err != nil {
			return err
		}
		for _, posting := range postings {
			if err := applyPosting(tx, posting); err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID retrieves a transaction by its ID, scoped to the user.
func (r *transactionRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByFilter retrieves transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.EntryFilter, pagination adapter.EntryPagination) (*adapter.EntryListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{})

	// Apply filters
	query = query.Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("due_date >= ?", filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("due_date <= ?", filter.EndDate)
	}
	if filter.Kind != nil {
		query = query.Where("kind = ?", string(*filter.Kind))
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.PaymentMethod != nil {
		query = query.Where("payment_method = ?", string(*filter.PaymentMethod))
	}
	if filter.CreditCardID != nil {
		query = query.Where("credit_card_id = ?", filter.CreditCardID)
	}
	if filter.Status != nil {
		if *filter.Status == entity.SettlementStatusPending {
			query = query.Where("paid_date IS NULL")
		} else {
			query = query.Where("paid_date IS NOT NULL")
		}
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(description) LIKE ?", searchPattern)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", filter.MaxAmount)
	}

	// Get total count
	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	// Calculate pagination
	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	// Fetch entries with relations preloaded
	var transactionModels []model.TransactionModel
	result := query.
		Preload("Category").
		Preload("CreditCard").
		Order("due_date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.TransactionWithCategory, len(transactionModels))
	for i, tm := range transactionModels {
		entries[i] = tm.ToEntityWithCategory()
	}

	return &adapter.EntryListResult{
		Entries:    entries,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
	}, nil
}

// Update persists field edits together with any compensating statement
// postings in one database transaction.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction, postings []adapter.StatementPosting) error {
	transactionModel := model.TransactionFromEntity(transaction)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.TransactionModel{}).
			Where("id = ? AND user_id = ?", transaction.ID, transaction.UserID).
			Select("*").
			Omit("id", "user_id", "created_at").
			Updates(transactionModel)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTransactionNotFound
		}
		for _, posting := range postings {
			if err := applyPosting(tx, posting); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a transaction, decrementing its statement cycle in the
// same database transaction when a posting is given.
func (r *transactionRepository) Delete(ctx context.Context, id, userID uuid.UUID, posting *adapter.StatementPosting) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.TransactionModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTransactionNotFound
		}
		if posting != nil {
			return applyPosting(tx, *posting)
		}
		return nil
	})
}

// ExistsByCategory reports whether any transaction references the category.
func (r *transactionRepository) ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("category_id = ?", categoryID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
