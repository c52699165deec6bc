package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// IncomeModel represents the income_records table in the database.
type IncomeModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GrossPay        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SHA             decimal.Decimal `gorm:"column:sha;type:decimal(15,2);not null"`
	PAYEE           decimal.Decimal `gorm:"column:payee;type:decimal(15,2);not null"`
	HousingLevy     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalDeductions decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	NetPay          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	IsCurrent       bool            `gorm:"not null;default:false;index"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for the IncomeModel.
func (IncomeModel) TableName() string {
	return "income_records"
}

// ToEntity converts an IncomeModel to a domain IncomeRecord.
func (m *IncomeModel) ToEntity() *entity.IncomeRecord {
	return &entity.IncomeRecord{
		ID: m.ID,
		Breakdown: entity.PayBreakdown{
			GrossPay:        m.GrossPay,
			SHA:             m.SHA,
			PAYEE:           m.PAYEE,
			HousingLevy:     m.HousingLevy,
			TotalDeductions: m.TotalDeductions,
			NetPay:          m.NetPay,
		},
		IsCurrent: m.IsCurrent,
		CreatedAt: m.CreatedAt,
	}
}

// IncomeFromEntity creates an IncomeModel from a domain IncomeRecord.
func IncomeFromEntity(record *entity.IncomeRecord) *IncomeModel {
	return &IncomeModel{
		ID:              record.ID,
		GrossPay:        record.Breakdown.GrossPay,
		SHA:             record.Breakdown.SHA,
		PAYEE:           record.Breakdown.PAYEE,
		HousingLevy:     record.Breakdown.HousingLevy,
		TotalDeductions: record.Breakdown.TotalDeductions,
		NetPay:          record.Breakdown.NetPay,
		IsCurrent:       record.IsCurrent,
		CreatedAt:       record.CreatedAt,
	}
}

// All returns every model managed by the relational store, in migration order.
func All() []any {
	return []any{&CategoryModel{}, &ExpenseModel{}, &IncomeModel{}}
}
