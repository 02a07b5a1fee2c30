package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
	"github.com/finledger/backend/internal/integration/persistence/model"
)

// statementRepository implements the adapter.StatementRepository interface.
type statementRepository struct {
	db *gorm.DB
}

// NewStatementRepository creates a new statement repository instance.
func NewStatementRepository(db *gorm.DB) adapter.StatementRepository {
	return &statementRepository{
		db: db,
	}
}

// FindByCycle retrieves the statement for a (card, month, year) cycle.
func (r *statementRepository) FindByCycle(ctx context.Context, userID, creditCardID uuid.UUID, month, year int) (*entity.Statement, error) {
	var statementModel model.StatementModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND credit_card_id = ? AND month = ? AND year = ?", userID, creditCardID, month, year).
		First(&statementModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrStatementNotFound
		}
		return nil, result.Error
	}
	return statementModel.ToEntity(), nil
}

// FindByMonth retrieves the statements of all the user's cards for a month.
func (r *statementRepository) FindByMonth(ctx context.Context, userID uuid.UUID, month, year int) ([]*entity.StatementWithCard, error) {
	var statementModels []model.StatementModel
	result := r.db.WithContext(ctx).
		Preload("CreditCard").
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Order("due_date ASC").
		Find(&statementModels)
	if result.Error != nil {
		return nil, result.Error
	}

	statements := make([]*entity.StatementWithCard, len(statementModels))
	for i, sm := range statementModels {
		statements[i] = sm.ToEntityWithCard()
	}
	return statements, nil
}

// RecomputeTotal rebuilds a cycle's total from the sum of the card's
// transactions due in the statement month. Purchases are assigned to a
// cycle by setting their due date to the cycle's due date, so the month
// window over due_date recovers exactly the cycle's members.
func (r *statementRepository) RecomputeTotal(ctx context.Context, userID, creditCardID uuid.UUID, month, year int) (*entity.Statement, error) {
	var statementModel model.StatementModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("user_id = ? AND credit_card_id = ? AND month = ? AND year = ?", userID, creditCardID, month, year).
			First(&statementModel)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return domainerror.ErrStatementNotFound
			}
			return result.Error
		}

		monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, -1)

		var row struct {
			Total decimal.Decimal
		}
		if err := tx.Model(&model.TransactionModel{}).
			Select("COALESCE(SUM(amount), 0) as total").
			Where("user_id = ? AND credit_card_id = ?", userID, creditCardID).
			Where("payment_method = ?", string(entity.PaymentMethodCreditCard)).
			Where("due_date >= ? AND due_date <= ?", monthStart, monthEnd).
			Scan(&row).Error; err != nil {
			return err
		}

		statementModel.TotalAmount = row.Total
		statementModel.UpdatedAt = time.Now().UTC()
		return tx.Model(&model.StatementModel{}).
			Where("id = ?", statementModel.ID).
			Updates(map[string]interface{}{
				"total_amount": statementModel.TotalAmount,
				"updated_at":   statementModel.UpdatedAt,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return statementModel.ToEntity(), nil
}

// MarkPaid settles a statement on the given date.
func (r *statementRepository) MarkPaid(ctx context.Context, id, userID uuid.UUID, paidDate time.Time) (*entity.Statement, error) {
	var statementModel model.StatementModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).First(&statementModel)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return domainerror.ErrStatementNotFound
			}
			return result.Error
		}
		if statementModel.IsPaid {
			return domainerror.ErrStatementAlreadyPaid
		}

		statementModel.IsPaid = true
		statementModel.PaidDate = &paidDate
		statementModel.UpdatedAt = time.Now().UTC()
		return tx.Model(&model.StatementModel{}).
			Where("id = ?", statementModel.ID).
			Updates(map[string]interface{}{
				"is_paid":    true,
				"paid_date":  paidDate,
				"updated_at": statementModel.UpdatedAt,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return statementModel.ToEntity(), nil
}
