package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

var fixedToday = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

func withFixedClock(t *testing.T) {
	t.Helper()
	previous := now
	now = func() time.Time { return fixedToday }
	t.Cleanup(func() { now = previous })
}

func amount(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func day(offset int) time.Time {
	return entity.CalendarDate(fixedToday).AddDate(0, 0, offset)
}

func mustCreate(t *testing.T, categories entity.Categories, name, planned string) (entity.Categories, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	out, err := CreateCategory(categories, CategoryDraft{ID: id, Name: name, PlannedAmount: amount(planned)})
	require.NoError(t, err)
	return out, id
}

func mustAdd(t *testing.T, categories entity.Categories, categoryID uuid.UUID, value string) (entity.Categories, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	out, err := AddExpense(categories, ExpenseDraft{
		ID:          id,
		CategoryID:  categoryID,
		Amount:      amount(value),
		Description: "groceries run",
		Date:        day(-1),
	})
	require.NoError(t, err)
	return out, id
}

func TestCreateCategory(t *testing.T) {
	t.Run("appends an empty category", func(t *testing.T) {
		out, err := CreateCategory(nil, CategoryDraft{Name: "  Rent  ", PlannedAmount: amount("15000")})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Rent", out[0].Name)
		assert.NotEqual(t, uuid.Nil, out[0].ID)
		assert.True(t, out[0].ActualSpent.IsZero())
		assert.Empty(t, out[0].Expenses)
	})

	t.Run("does not modify the input snapshot", func(t *testing.T) {
		base, _ := mustCreate(t, nil, "Food", "100")
		before := base.Clone()
		_, err := CreateCategory(base, CategoryDraft{Name: "Transport", PlannedAmount: amount("50")})
		require.NoError(t, err)
		assert.Equal(t, before, base)
	})

	t.Run("rejects names differing only in case", func(t *testing.T) {
		base, _ := mustCreate(t, nil, "Food", "100")
		out, err := CreateCategory(base, CategoryDraft{Name: " fOOD ", PlannedAmount: amount("10")})
		assert.Nil(t, out)
		assert.True(t, domainerror.IsKind(err, domainerror.KindDuplicate))
		assert.ErrorIs(t, err, domainerror.ErrDuplicateName)
	})

	invalid := []struct {
		name    string
		input   string
		planned string
		field   string
	}{
		{"empty name", "   ", "10", FieldName},
		{"one character", "A", "10", FieldName},
		{"too long", "abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijk", "10", FieldName},
		{"forbidden angle bracket", "<script>", "10", FieldName},
		{"forbidden ampersand", "Food & Drink", "10", FieldName},
		{"forbidden quote", `Mom's`, "10", FieldName},
		{"negative planned amount", "Savings", "-0.01", FieldPlannedAmount},
		{"sub-cent planned amount", "Savings", "100.005", FieldPlannedAmount},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			out, err := CreateCategory(nil, CategoryDraft{Name: tt.input, PlannedAmount: amount(tt.planned)})
			assert.Nil(t, out)
			require.Error(t, err)
			assert.True(t, domainerror.IsKind(err, domainerror.KindValidation))

			var ledgerErr *domainerror.LedgerError
			require.ErrorAs(t, err, &ledgerErr)
			assert.Equal(t, tt.field, ledgerErr.Field)
			assert.NotEmpty(t, ledgerErr.Message)
		})
	}

	t.Run("zero planned amount is allowed", func(t *testing.T) {
		_, err := CreateCategory(nil, CategoryDraft{Name: "Misc", PlannedAmount: decimal.Zero})
		assert.NoError(t, err)
	})

	t.Run("rejects a reused id", func(t *testing.T) {
		base, id := mustCreate(t, nil, "Food", "100")
		_, err := CreateCategory(base, CategoryDraft{ID: id, Name: "Other", PlannedAmount: amount("1")})
		assert.True(t, domainerror.IsKind(err, domainerror.KindValidation))
	})
}

func TestUpdateCategory(t *testing.T) {
	base, food := mustCreate(t, nil, "Food", "100")
	base, _ = mustCreate(t, base, "Rent", "500")

	t.Run("renames and replans", func(t *testing.T) {
		out, err := UpdateCategory(base, food, "Groceries", amount("120"))
		require.NoError(t, err)
		c, ok := FindCategory(out, food)
		require.True(t, ok)
		assert.Equal(t, "Groceries", c.Name)
		assert.True(t, c.PlannedAmount.Equal(amount("120")))
	})

	t.Run("keeping its own name in another case is allowed", func(t *testing.T) {
		_, err := UpdateCategory(base, food, "FOOD", amount("100"))
		assert.NoError(t, err)
	})

	t.Run("taking another category's name fails", func(t *testing.T) {
		_, err := UpdateCategory(base, food, "rent", amount("100"))
		assert.True(t, domainerror.IsKind(err, domainerror.KindDuplicate))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := UpdateCategory(base, uuid.New(), "Whatever", amount("1"))
		assert.True(t, domainerror.IsKind(err, domainerror.KindNotFound))
		assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
	})

	t.Run("is idempotent", func(t *testing.T) {
		once, err := UpdateCategory(base, food, "Groceries", amount("120"))
		require.NoError(t, err)
		twice, err := UpdateCategory(once, food, "Groceries", amount("120"))
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	})
}

func TestDeleteCategoryCascades(t *testing.T) {
	withFixedClock(t)

	base, food := mustCreate(t, nil, "Food", "100")
	base, rent := mustCreate(t, base, "Rent", "500")
	base, _ = mustAdd(t, base, food, "10")
	base, _ = mustAdd(t, base, food, "15")
	base, rentExpense := mustAdd(t, base, rent, "500")

	out, err := DeleteCategory(base, food)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, ExpensesByCategory(out, food))
	_, found := FindExpense(out, rentExpense)
	assert.True(t, found)
	assert.Len(t, ExpensesByCategory(base, food), 2, "input snapshot must be untouched")

	_, err = DeleteCategory(out, food)
	assert.True(t, domainerror.IsKind(err, domainerror.KindNotFound))
}

func TestExpenseOperations(t *testing.T) {
	withFixedClock(t)

	base, food := mustCreate(t, nil, "Food", "100")

	t.Run("add recomputes actual spent", func(t *testing.T) {
		out, _ := mustAdd(t, base, food, "10.10")
		out, _ = mustAdd(t, out, food, "0.20")
		c, _ := FindCategory(out, food)
		assert.True(t, c.ActualSpent.Equal(amount("10.30")), "got %s", c.ActualSpent)
		require.NoError(t, CheckInvariant(out))
	})

	t.Run("add to unknown category", func(t *testing.T) {
		_, err := AddExpense(base, ExpenseDraft{CategoryID: uuid.New(), Amount: amount("1"), Description: "coffee", Date: day(0)})
		assert.True(t, domainerror.IsKind(err, domainerror.KindNotFound))
	})

	invalid := []struct {
		name        string
		value       string
		description string
		date        time.Time
		field       string
	}{
		{"zero amount", "0", "coffee", day(0), FieldAmount},
		{"negative amount", "-5", "coffee", day(0), FieldAmount},
		{"sub-cent amount", "10.005", "coffee", day(0), FieldAmount},
		{"short description", "5", " ab ", day(0), FieldDescription},
		{"empty description", "5", "", day(0), FieldDescription},
		{"future date", "5", "coffee", day(1), FieldDate},
		{"older than two years", "5", "coffee", entity.CalendarDate(fixedToday).AddDate(-2, 0, -1), FieldDate},
		{"missing date", "5", "coffee", time.Time{}, FieldDate},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AddExpense(base, ExpenseDraft{CategoryID: food, Amount: amount(tt.value), Description: tt.description, Date: tt.date})
			var ledgerErr *domainerror.LedgerError
			require.ErrorAs(t, err, &ledgerErr)
			assert.Equal(t, domainerror.KindValidation, ledgerErr.Kind)
			assert.Equal(t, tt.field, ledgerErr.Field)
		})
	}

	t.Run("trailing zeros are whole cents", func(t *testing.T) {
		out, err := AddExpense(base, ExpenseDraft{CategoryID: food, Amount: amount("10.500"), Description: "coffee", Date: day(0)})
		require.NoError(t, err)
		c, _ := FindCategory(out, food)
		assert.True(t, c.ActualSpent.Equal(amount("10.50")))
	})

	t.Run("update rejects a sub-cent amount", func(t *testing.T) {
		out, expenseID := mustAdd(t, base, food, "10")
		_, err := UpdateExpense(out, expenseID, amount("10.005"), "groceries run", day(-1))
		var ledgerErr *domainerror.LedgerError
		require.ErrorAs(t, err, &ledgerErr)
		assert.Equal(t, FieldAmount, ledgerErr.Field)
	})

	t.Run("exactly two years ago is accepted", func(t *testing.T) {
		_, err := AddExpense(base, ExpenseDraft{
			CategoryID:  food,
			Amount:      amount("5"),
			Description: "old receipt",
			Date:        entity.CalendarDate(fixedToday).AddDate(-2, 0, 0),
		})
		assert.NoError(t, err)
	})

	t.Run("update replaces fields and recomputes", func(t *testing.T) {
		out, expenseID := mustAdd(t, base, food, "10")
		out, _ = mustAdd(t, out, food, "5")
		out, err := UpdateExpense(out, expenseID, amount("42.5"), "  weekly shop  ", day(-3))
		require.NoError(t, err)

		e, ok := FindExpense(out, expenseID)
		require.True(t, ok)
		assert.Equal(t, "weekly shop", e.Description)
		assert.Equal(t, day(-3), e.Date)
		assert.Equal(t, food, e.CategoryID)

		c, _ := FindCategory(out, food)
		assert.True(t, c.ActualSpent.Equal(amount("47.5")))
	})

	t.Run("update unknown expense", func(t *testing.T) {
		_, err := UpdateExpense(base, uuid.New(), amount("1"), "coffee", day(0))
		assert.True(t, domainerror.IsKind(err, domainerror.KindNotFound))
		assert.ErrorIs(t, err, domainerror.ErrExpenseNotFound)
	})

	t.Run("delete recomputes", func(t *testing.T) {
		out, first := mustAdd(t, base, food, "10")
		out, _ = mustAdd(t, out, food, "5")
		out, err := DeleteExpense(out, first)
		require.NoError(t, err)
		c, _ := FindCategory(out, food)
		assert.True(t, c.ActualSpent.Equal(amount("5")))
		assert.Len(t, c.Expenses, 1)

		_, err = DeleteExpense(out, first)
		assert.True(t, domainerror.IsKind(err, domainerror.KindNotFound))
	})
}

func TestInvariantHoldsUnderRandomOperations(t *testing.T) {
	withFixedClock(t)

	rng := rand.New(rand.NewSource(20261015))
	categories := entity.Categories{}
	for i, name := range []string{"Food", "Rent", "Transport", "Fun"} {
		var err error
		categories, err = CreateCategory(categories, CategoryDraft{Name: name, PlannedAmount: decimal.NewFromInt(int64(100 * (i + 1)))})
		require.NoError(t, err)
	}

	var expenseIDs []uuid.UUID
	for step := 0; step < 2000; step++ {
		var next entity.Categories
		var err error

		switch op := rng.Intn(3); {
		case op == 0 || len(expenseIDs) == 0:
			id := uuid.New()
			next, err = AddExpense(categories, ExpenseDraft{
				ID:          id,
				CategoryID:  categories[rng.Intn(len(categories))].ID,
				Amount:      decimal.New(rng.Int63n(100000)+1, -2),
				Description: "random spend",
				Date:        day(-rng.Intn(700)),
			})
			if err == nil {
				expenseIDs = append(expenseIDs, id)
			}
		case op == 1:
			target := expenseIDs[rng.Intn(len(expenseIDs))]
			next, err = UpdateExpense(categories, target, decimal.New(rng.Int63n(100000)+1, -2), "changed spend", day(-rng.Intn(700)))
		default:
			i := rng.Intn(len(expenseIDs))
			next, err = DeleteExpense(categories, expenseIDs[i])
			if err == nil {
				expenseIDs = append(expenseIDs[:i], expenseIDs[i+1:]...)
			}
		}

		require.NoError(t, err, "step %d", step)
		categories = next
		require.NoError(t, CheckInvariant(categories), "step %d", step)
	}
}

func TestUpdateExpenseKeepsAgedDateEditable(t *testing.T) {
	withFixedClock(t)

	base, food := mustCreate(t, nil, "Food", "100")
	base, expenseID := mustAdd(t, base, food, "10")

	// three years on, the original date is past the plausibility window
	later := fixedToday.AddDate(3, 0, 0)
	now = func() time.Time { return later }

	out, err := UpdateExpense(base, expenseID, amount("12"), "corrected receipt", day(-1))
	require.NoError(t, err)
	e, _ := FindExpense(out, expenseID)
	assert.Equal(t, "corrected receipt", e.Description)
	assert.Equal(t, day(-1), e.Date)

	_, err = UpdateExpense(base, expenseID, amount("12"), "corrected receipt", day(-2))
	var ledgerErr *domainerror.LedgerError
	require.ErrorAs(t, err, &ledgerErr)
	assert.Equal(t, FieldDate, ledgerErr.Field)
}

func TestExpensesByCategoryReturnsCopy(t *testing.T) {
	withFixedClock(t)

	base, food := mustCreate(t, nil, "Food", "100")
	base, _ = mustAdd(t, base, food, "10")

	expenses := ExpensesByCategory(base, food)
	expenses[0].Amount = amount("999")

	c, _ := FindCategory(base, food)
	assert.True(t, c.Expenses[0].Amount.Equal(amount("10")))
}

func TestNormalizeRepairsSpend(t *testing.T) {
	withFixedClock(t)

	base, food := mustCreate(t, nil, "Food", "100")
	base, _ = mustAdd(t, base, food, "10")
	broken := base.Clone()
	broken[0].ActualSpent = amount("3")

	require.Error(t, CheckInvariant(broken))
	require.NoError(t, CheckInvariant(Normalize(broken)))
}

func TestCheckInvariantRejectsNameCollision(t *testing.T) {
	broken := entity.Categories{
		entity.NewCategory(uuid.New(), "Rent", amount("100")),
		entity.NewCategory(uuid.New(), " rent", amount("50")),
	}

	err := CheckInvariant(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "share the name")
}
