// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"type:varchar(50);not null"`
	PlannedAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt     time.Time       `gorm:"not null;index"`
	UpdatedAt     time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Expenses []ExpenseModel `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel and its loaded expenses to a domain Category.
// ActualSpent is recomputed from the expenses.
func (m *CategoryModel) ToEntity() entity.Category {
	expenses := make([]entity.Expense, len(m.Expenses))
	for i := range m.Expenses {
		expenses[i] = m.Expenses[i].ToEntity()
	}

	category := entity.Category{
		ID:            m.ID,
		Name:          m.Name,
		PlannedAmount: m.PlannedAmount,
		Expenses:      expenses,
	}
	return category.Recomputed()
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
// Expenses are persisted separately and are not copied.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:            category.ID,
		Name:          category.Name,
		PlannedAmount: category.PlannedAmount,
	}
}
