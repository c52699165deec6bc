// Package persistence implements the budget store on top of a relational
// database (GORM) or a Redis snapshot.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	"github.com/budget-ledger/backend/internal/domain/ledger"
	"github.com/budget-ledger/backend/internal/integration/persistence/model"
)

// gormStore implements the adapter.BudgetStore interface.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new relational budget store.
// The tables in model.All must already be migrated.
func NewGormStore(db *gorm.DB) adapter.BudgetStore {
	return &gormStore{
		db: db,
	}
}

// CreateCategory inserts a category without expenses.
func (s *gormStore) CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	categoryModel := model.CategoryFromEntity(category)
	if err := s.db.WithContext(ctx).Create(categoryModel).Error; err != nil {
		return nil, storeError("failed to create category", err)
	}

	created := categoryModel.ToEntity()
	return &created, nil
}

// UpdateCategory updates the name and planned amount of a category.
func (s *gormStore) UpdateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	var updated model.CategoryModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.CategoryModel{}).
			Where("id = ?", category.ID).
			Updates(map[string]any{
				"name":           category.Name,
				"planned_amount": category.PlannedAmount,
				"updated_at":     time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return categoryNotFound(category.ID)
		}
		return tx.Preload("Expenses", orderExpenses).First(&updated, "id = ?", category.ID).Error
	})
	if err != nil {
		return nil, storeError("failed to update category", err)
	}

	out := updated.ToEntity()
	return &out, nil
}

// DeleteCategory removes a category and its expenses in one transaction.
func (s *gormStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&model.ExpenseModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.CategoryModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return categoryNotFound(id)
		}
		return nil
	})
	if err != nil {
		return storeError("failed to delete category", err)
	}
	return nil
}

// AddExpense inserts an expense under an existing category.
func (s *gormStore) AddExpense(ctx context.Context, expense *entity.Expense) (*entity.Expense, error) {
	expenseModel := model.ExpenseFromEntity(expense)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.CategoryModel{}).Where("id = ?", expense.CategoryID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return categoryNotFound(expense.CategoryID)
		}
		return tx.Create(expenseModel).Error
	})
	if err != nil {
		return nil, storeError("failed to add expense", err)
	}

	created := expenseModel.ToEntity()
	return &created, nil
}

// UpdateExpense updates the amount, description and date of an expense.
func (s *gormStore) UpdateExpense(ctx context.Context, expense *entity.Expense) (*entity.Expense, error) {
	expenseModel := model.ExpenseFromEntity(expense)
	result := s.db.WithContext(ctx).Model(&model.ExpenseModel{}).
		Where("id = ?", expense.ID).
		Updates(map[string]any{
			"amount":      expenseModel.Amount,
			"description": expenseModel.Description,
			"date":        expenseModel.Date,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return nil, storeError("failed to update expense", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, expenseNotFound(expense.ID)
	}

	updated := expenseModel.ToEntity()
	return &updated, nil
}

// DeleteExpense removes an expense.
func (s *gormStore) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&model.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return storeError("failed to delete expense", result.Error)
	}
	if result.RowsAffected == 0 {
		return expenseNotFound(id)
	}
	return nil
}

// LoadIncome returns the current pay breakdown, or nil when none was saved.
func (s *gormStore) LoadIncome(ctx context.Context) (*entity.PayBreakdown, error) {
	var incomeModel model.IncomeModel
	result := s.db.WithContext(ctx).
		Where("is_current = ?", true).
		Order("created_at DESC").
		First(&incomeModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeError("failed to load income", result.Error)
	}

	return &incomeModel.ToEntity().Breakdown, nil
}

// SaveIncome stores a new current income record and marks every earlier record
// as not current.
func (s *gormStore) SaveIncome(ctx context.Context, breakdown entity.PayBreakdown) (*entity.PayBreakdown, error) {
	record := entity.NewIncomeRecord(breakdown)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.IncomeModel{}).
			Where("is_current = ?", true).
			Update("is_current", false).Error; err != nil {
			return err
		}
		return tx.Create(model.IncomeFromEntity(record)).Error
	})
	if err != nil {
		return nil, storeError("failed to save income", err)
	}

	return &record.Breakdown, nil
}

// LoadCategoriesWithExpenses returns every category with its expenses, in
// creation order.
func (s *gormStore) LoadCategoriesWithExpenses(ctx context.Context) (entity.Categories, error) {
	var categoryModels []model.CategoryModel
	result := s.db.WithContext(ctx).
		Preload("Expenses", orderExpenses).
		Order("created_at ASC").
		Order("id ASC").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, storeError("failed to load categories", result.Error)
	}

	categories := make(entity.Categories, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return ledger.Normalize(categories), nil
}

func orderExpenses(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}
