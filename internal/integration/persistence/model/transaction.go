package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Kind             string          `gorm:"type:varchar(10);not null;index"`
	CategoryID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentMethod    string          `gorm:"type:varchar(20);not null;index"`
	CreditCardID     *uuid.UUID      `gorm:"type:uuid;index"`
	InstallmentCount int             `gorm:"default:1"`
	IsRecurring      bool            `gorm:"default:false"`
	Description      string          `gorm:"type:varchar(255);not null"`
	DueDate          time.Time       `gorm:"type:date;not null;index"`
	PaidDate         *time.Time      `gorm:"type:date;index"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Category   *CategoryModel   `gorm:"foreignKey:CategoryID;references:ID"`
	CreditCard *CreditCardModel `gorm:"foreignKey:CreditCardID;references:ID"`
	User       *UserModel       `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:               m.ID,
		UserID:           m.UserID,
		Amount:           m.Amount,
		Kind:             entity.TransactionKind(m.Kind),
		CategoryID:       m.CategoryID,
		PaymentMethod:    entity.PaymentMethod(m.PaymentMethod),
		CreditCardID:     m.CreditCardID,
		InstallmentCount: m.InstallmentCount,
		IsRecurring:      m.IsRecurring,
		Description:      m.Description,
		DueDate:          m.DueDate,
		PaidDate:         m.PaidDate,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ToEntityWithCategory converts a TransactionModel with its preloaded
// relations to a TransactionWithCategory entity.
func (m *TransactionModel) ToEntityWithCategory() *entity.TransactionWithCategory {
	result := &entity.TransactionWithCategory{
		Transaction: m.ToEntity(),
	}
	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}
	if m.CreditCard != nil {
		result.CreditCard = m.CreditCard.ToEntity()
	}
	return result
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:               transaction.ID,
		UserID:           transaction.UserID,
		Amount:           transaction.Amount,
		Kind:             string(transaction.Kind),
		CategoryID:       transaction.CategoryID,
		PaymentMethod:    string(transaction.PaymentMethod),
		CreditCardID:     transaction.CreditCardID,
		InstallmentCount: transaction.InstallmentCount,
		IsRecurring:      transaction.IsRecurring,
		Description:      transaction.Description,
		DueDate:          transaction.DueDate,
		PaidDate:         transaction.PaidDate,
		CreatedAt:        transaction.CreatedAt,
		UpdatedAt:        transaction.UpdatedAt,
	}
}
