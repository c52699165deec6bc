package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
	"github.com/budget-ledger/backend/internal/domain/ledger"
	"github.com/budget-ledger/backend/internal/integration/persistence/model"
)

const snapshotKey = "budget:test"

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func openRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

// forEachStore runs fn against every backend.
func forEachStore(t *testing.T, fn func(t *testing.T, store adapter.BudgetStore)) {
	t.Run("gorm", func(t *testing.T) {
		fn(t, NewGormStore(openSQLite(t)))
	})
	t.Run("redis", func(t *testing.T) {
		_, client := openRedis(t)
		fn(t, NewRedisStore(client, snapshotKey))
	})
}

func amount(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func assertAmount(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, amount(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func newCategory(name, planned string) *entity.Category {
	category := entity.NewCategory(uuid.Nil, name, amount(planned))
	return &category
}

func newExpense(categoryID uuid.UUID, value, description string) *entity.Expense {
	expense := entity.NewExpense(uuid.Nil, categoryID, amount(value), description, time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC))
	return &expense
}

func TestStore_CategoryLifecycle(t *testing.T) {
	forEachStore(t, func(t *testing.T, store adapter.BudgetStore) {
		ctx := context.Background()

		loaded, err := store.LoadCategoriesWithExpenses(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded)

		rent := newCategory("Rent", "15000")
		created, err := store.CreateCategory(ctx, rent)
		require.NoError(t, err)
		assert.Equal(t, rent.ID, created.ID)
		assertAmount(t, "0", created.ActualSpent)

		food := newCategory("Food", "8000")
		_, err = store.CreateCategory(ctx, food)
		require.NoError(t, err)

		renamed := *food
		renamed.Name = "Groceries"
		renamed.PlannedAmount = amount("9000.50")
		updated, err := store.UpdateCategory(ctx, &renamed)
		require.NoError(t, err)
		assert.Equal(t, "Groceries", updated.Name)

		loaded, err = store.LoadCategoriesWithExpenses(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.Equal(t, rent.ID, loaded[0].ID)
		assert.Equal(t, "Groceries", loaded[1].Name)
		assertAmount(t, "9000.50", loaded[1].PlannedAmount)
		assert.NotNil(t, loaded[1].Expenses)

		require.NoError(t, store.DeleteCategory(ctx, rent.ID))
		loaded, err = store.LoadCategoriesWithExpenses(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, food.ID, loaded[0].ID)
	})
}

func TestStore_ExpenseLifecycle(t *testing.T) {
	forEachStore(t, func(t *testing.T, store adapter.BudgetStore) {
		ctx := context.Background()

		food := newCategory("Food", "8000")
		_, err := store.CreateCategory(ctx, food)
		require.NoError(t, err)

		first := newExpense(food.ID, "1250.50", "weekly shop")
		_, err = store.AddExpense(ctx, first)
		require.NoError(t, err)
		second := newExpense(food.ID, "99.99", "snacks")
		_, err = store.AddExpense(ctx, second)
		require.NoError(t, err)

		loaded, err := store.LoadCategoriesWithExpenses(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		require.Len(t, loaded[0].Expenses, 2)
		assertAmount(t, "1350.49", loaded[0].ActualSpent)
		assert.Equal(t, first.ID, loaded[0].Expenses[0].ID)
		assert.Equal(t, "2026-03-14", loaded[0].Expenses[0].Date.Format(entity.DateLayout))
		assert.NoError(t, ledger.CheckInvariant(loaded))

		changed := *second
		changed.Amount = amount("200")
		changed.Description = "party snacks"
		updated, err := store.UpdateExpense(ctx, &changed)
		require.NoError(t, err)
		assert.Equal(t, "party snacks", updated.Description)

		require.NoError(t, store.DeleteExpense(ctx, first.ID))

		loaded, err = store.LoadCategoriesWithExpenses(ctx)
		require.NoError(t, err)
		require.Len(t, loaded[0].Expenses, 1)
		assertAmount(t, "200", loaded[0].ActualSpent)
		assert.Equal(t, "party snacks", loaded[0].Expenses[0].Description)
	})
}

func TestStore_DeleteCategoryCascades(t *testing.T) {
	forEachStore(t, func(t *testing.T, store adapter.BudgetStore) {
		ctx := context.Background()

		food := newCategory("Food", "8000")
		_, err := store.CreateCategory(ctx, food)
		require.NoError(t, err)
		expense := newExpense(food.ID, "300", "bus fare")
		_, err = store.AddExpense(ctx, expense)
		require.NoError(t, err)

		require.NoError(t, store.DeleteCategory(ctx, food.ID))

		err = store.DeleteExpense(ctx, expense.ID)
		assert.True(t, domainerror.IsKind(err, domainerror.KindNotFound))
	})
}

func TestStore_NotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, store adapter.BudgetStore) {
		ctx := context.Background()
		missing := newCategory("Ghost", "1")

		_, err := store.UpdateCategory(ctx, missing)
		assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)

		err = store.DeleteCategory(ctx, missing.ID)
		assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)

		_, err = store.AddExpense(ctx, newExpense(missing.ID, "10", "lunch"))
		assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)

		_, err = store.UpdateExpense(ctx, newExpense(missing.ID, "10", "lunch"))
		assert.ErrorIs(t, err, domainerror.ErrExpenseNotFound)

		err = store.DeleteExpense(ctx, uuid.New())
		assert.ErrorIs(t, err, domainerror.ErrExpenseNotFound)
	})
}

func TestStore_Income(t *testing.T) {
	forEachStore(t, func(t *testing.T, store adapter.BudgetStore) {
		ctx := context.Background()

		income, err := store.LoadIncome(ctx)
		require.NoError(t, err)
		assert.Nil(t, income)

		_, err = store.SaveIncome(ctx, entity.PayBreakdown{GrossPay: amount("30000"), NetPay: amount("25000")})
		require.NoError(t, err)
		saved, err := store.SaveIncome(ctx, entity.PayBreakdown{
			GrossPay:        amount("40000"),
			SHA:             amount("1100"),
			PAYEE:           amount("4383.35"),
			HousingLevy:     amount("600"),
			TotalDeductions: amount("6083.35"),
			NetPay:          amount("33916.65"),
		})
		require.NoError(t, err)
		assertAmount(t, "33916.65", saved.NetPay)

		income, err = store.LoadIncome(ctx)
		require.NoError(t, err)
		require.NotNil(t, income)
		assertAmount(t, "40000", income.GrossPay)
		assertAmount(t, "4383.35", income.PAYEE)
		assertAmount(t, "33916.65", income.NetPay)
	})
}

func TestGormStore_SaveIncomeKeepsHistory(t *testing.T) {
	db := openSQLite(t)
	store := NewGormStore(db)
	ctx := context.Background()

	for _, gross := range []string{"20000", "30000", "40000"} {
		_, err := store.SaveIncome(ctx, entity.PayBreakdown{GrossPay: amount(gross)})
		require.NoError(t, err)
	}

	var total, current int64
	require.NoError(t, db.Model(&model.IncomeModel{}).Count(&total).Error)
	require.NoError(t, db.Model(&model.IncomeModel{}).Where("is_current = ?", true).Count(&current).Error)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, int64(1), current)
}

func TestGormStore_DeleteCategoryRemovesExpenseRows(t *testing.T) {
	db := openSQLite(t)
	store := NewGormStore(db)
	ctx := context.Background()

	food := newCategory("Food", "8000")
	_, err := store.CreateCategory(ctx, food)
	require.NoError(t, err)
	_, err = store.AddExpense(ctx, newExpense(food.ID, "300", "bus fare"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteCategory(ctx, food.ID))

	var count int64
	require.NoError(t, db.Model(&model.ExpenseModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGormStore_ClosedDatabase(t *testing.T) {
	db := openSQLite(t)
	store := NewGormStore(db)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = store.CreateCategory(context.Background(), newCategory("Rent", "1"))
	assert.True(t, domainerror.IsKind(err, domainerror.KindPersistence))
	assert.ErrorIs(t, err, domainerror.ErrPersistence)
}

func TestRedisStore_CorruptSnapshot(t *testing.T) {
	t.Run("load discards the payload", func(t *testing.T) {
		server, client := openRedis(t)
		require.NoError(t, server.Set(snapshotKey, "{not json"))
		store := NewRedisStore(client, snapshotKey)

		loaded, err := store.LoadCategoriesWithExpenses(context.Background())
		require.NoError(t, err)
		assert.Empty(t, loaded)
		assert.False(t, server.Exists(snapshotKey))
	})

	t.Run("write replaces the payload", func(t *testing.T) {
		server, client := openRedis(t)
		require.NoError(t, server.Set(snapshotKey, "[]"))
		store := NewRedisStore(client, snapshotKey)

		_, err := store.CreateCategory(context.Background(), newCategory("Rent", "15000"))
		require.NoError(t, err)

		loaded, err := store.LoadCategoriesWithExpenses(context.Background())
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "Rent", loaded[0].Name)
	})
}

func TestRedisStore_NormalizesLoadedSpend(t *testing.T) {
	server, client := openRedis(t)
	categoryID := uuid.New()
	payload := `{"income":null,"categories":[{"id":"` + categoryID.String() + `","name":"Food","planned_amount":"100",` +
		`"actual_spent":"999","expenses":[{"id":"` + uuid.NewString() + `","category_id":"` + categoryID.String() +
		`","amount":"40","description":"lunch","date":"2026-03-14T00:00:00Z"}]}]}`
	require.NoError(t, server.Set(snapshotKey, payload))

	loaded, err := NewRedisStore(client, snapshotKey).LoadCategoriesWithExpenses(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assertAmount(t, "40", loaded[0].ActualSpent)
}

func TestRedisStore_Unavailable(t *testing.T) {
	server, client := openRedis(t)
	store := NewRedisStore(client, snapshotKey)
	server.Close()

	_, err := store.LoadCategoriesWithExpenses(context.Background())
	assert.True(t, domainerror.IsKind(err, domainerror.KindPersistence))

	_, err = store.SaveIncome(context.Background(), entity.PayBreakdown{})
	assert.True(t, domainerror.IsKind(err, domainerror.KindPersistence))
}
