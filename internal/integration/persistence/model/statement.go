package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/domain/entity"
)

// StatementModel represents the statements table. The unique index on
// (credit_card_id, month, year) is what makes lazy creation race-safe:
// concurrent first postings to the same cycle collide on it and resolve
// into a single accumulating upsert.
type StatementModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreditCardID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_statement_cycle"`
	Month        int             `gorm:"not null;uniqueIndex:idx_statement_cycle"`
	Year         int             `gorm:"not null;uniqueIndex:idx_statement_cycle"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	DueDate      time.Time       `gorm:"type:date;not null"`
	IsPaid       bool            `gorm:"default:false"`
	PaidDate     *time.Time      `gorm:"type:date"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`

	CreditCard *CreditCardModel `gorm:"foreignKey:CreditCardID;references:ID"`
}

// TableName returns the table name for the StatementModel.
func (StatementModel) TableName() string {
	return "statements"
}

// ToEntity converts a StatementModel to a domain Statement entity.
func (m *StatementModel) ToEntity() *entity.Statement {
	return &entity.Statement{
		ID:           m.ID,
		UserID:       m.UserID,
		CreditCardID: m.CreditCardID,
		Month:        m.Month,
		Year:         m.Year,
		TotalAmount:  m.TotalAmount,
		DueDate:      m.DueDate,
		IsPaid:       m.IsPaid,
		PaidDate:     m.PaidDate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToEntityWithCard converts a StatementModel with its preloaded card.
func (m *StatementModel) ToEntityWithCard() *entity.StatementWithCard {
	result := &entity.StatementWithCard{Statement: m.ToEntity()}
	if m.CreditCard != nil {
		result.CreditCard = m.CreditCard.ToEntity()
	}
	return result
}

// StatementFromEntity creates a StatementModel from a domain Statement entity.
func StatementFromEntity(statement *entity.Statement) *StatementModel {
	return &StatementModel{
		ID:           statement.ID,
		UserID:       statement.UserID,
		CreditCardID: statement.CreditCardID,
		Month:        statement.Month,
		Year:         statement.Year,
		TotalAmount:  statement.TotalAmount,
		DueDate:      statement.DueDate,
		IsPaid:       statement.IsPaid,
		PaidDate:     statement.PaidDate,
		CreatedAt:    statement.CreatedAt,
		UpdatedAt:    statement.UpdatedAt,
	}
}
