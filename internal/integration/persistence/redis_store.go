package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	"github.com/budget-ledger/backend/internal/domain/ledger"
)

// maxSnapshotRetries bounds optimistic WATCH retries when another writer
// changes the snapshot key mid-update.
const maxSnapshotRetries = 5

// snapshotReader is satisfied by both a client and a WATCH transaction.
type snapshotReader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// redisStore keeps the whole budget as one JSON snapshot under a single key.
type redisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a budget store that persists an entity.Snapshot under key.
func NewRedisStore(client *redis.Client, key string) adapter.BudgetStore {
	return &redisStore{
		client: client,
		key:    key,
	}
}

func (s *redisStore) CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	created := category.Clone()
	created.Expenses = []entity.Expense{}
	created = created.Recomputed()

	err := s.update(ctx, func(snapshot *entity.Snapshot) error {
		if snapshot.Categories.IndexOf(created.ID) >= 0 {
			return fmt.Errorf("category %s already stored", created.ID)
		}
		snapshot.Categories = append(snapshot.Categories, created)
		return nil
	})
	if err != nil {
		return nil, storeError("failed to create category", err)
	}
	return &created, nil
}

func (s *redisStore) UpdateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	var updated entity.Category
	err := s.update(ctx, func(snapshot *entity.Snapshot) error {
		idx := snapshot.Categories.IndexOf(category.ID)
		if idx < 0 {
			return categoryNotFound(category.ID)
		}
		snapshot.Categories[idx].Name = category.Name
		snapshot.Categories[idx].PlannedAmount = category.PlannedAmount
		updated = snapshot.Categories[idx].Clone()
		return nil
	})
	if err != nil {
		return nil, storeError("failed to update category", err)
	}
	return &updated, nil
}

func (s *redisStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	err := s.update(ctx, func(snapshot *entity.Snapshot) error {
		idx := snapshot.Categories.IndexOf(id)
		if idx < 0 {
			return categoryNotFound(id)
		}
		snapshot.Categories = append(snapshot.Categories[:idx], snapshot.Categories[idx+1:]...)
		return nil
	})
	if err != nil {
		return storeError("failed to delete category", err)
	}
	return nil
}

func (s *redisStore) AddExpense(ctx context.Context, expense *entity.Expense) (*entity.Expense, error) {
	added := *expense
	err := s.update(ctx, func(snapshot *entity.Snapshot) error {
		idx := snapshot.Categories.IndexOf(expense.CategoryID)
		if idx < 0 {
			return categoryNotFound(expense.CategoryID)
		}
		category := &snapshot.Categories[idx]
		category.Expenses = append(category.Expenses, added)
		*category = category.Recomputed()
		return nil
	})
	if err != nil {
		return nil, storeError("failed to add expense", err)
	}
	return &added, nil
}

func (s *redisStore) UpdateExpense(ctx context.Context, expense *entity.Expense) (*entity.Expense, error) {
	var updated entity.Expense
	err := s.update(ctx, func(snapshot *entity.Snapshot) error {
		category, idx := findStoredExpense(snapshot.Categories, expense.ID)
		if category == nil {
			return expenseNotFound(expense.ID)
		}
		stored := &category.Expenses[idx]
		stored.Amount = expense.Amount
		stored.Description = expense.Description
		stored.Date = entity.CalendarDate(expense.Date)
		updated = *stored
		*category = category.Recomputed()
		return nil
	})
	if err != nil {
		return nil, storeError("failed to update expense", err)
	}
	return &updated, nil
}

func (s *redisStore) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	err := s.update(ctx, func(snapshot *entity.Snapshot) error {
		category, idx := findStoredExpense(snapshot.Categories, id)
		if category == nil {
			return expenseNotFound(id)
		}
		category.Expenses = append(category.Expenses[:idx], category.Expenses[idx+1:]...)
		*category = category.Recomputed()
		return nil
	})
	if err != nil {
		return storeError("failed to delete expense", err)
	}
	return nil
}

func (s *redisStore) LoadIncome(ctx context.Context) (*entity.PayBreakdown, error) {
	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, storeError("failed to load income", err)
	}
	return snapshot.Income, nil
}

// SaveIncome replaces the stored income. The snapshot only keeps the current record.
func (s *redisStore) SaveIncome(ctx context.Context, breakdown entity.PayBreakdown) (*entity.PayBreakdown, error) {
	err := s.update(ctx, func(snapshot *entity.Snapshot) error {
		snapshot.Income = &breakdown
		return nil
	})
	if err != nil {
		return nil, storeError("failed to save income", err)
	}
	return &breakdown, nil
}

func (s *redisStore) LoadCategoriesWithExpenses(ctx context.Context) (entity.Categories, error) {
	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, storeError("failed to load categories", err)
	}
	return ledger.Normalize(snapshot.Categories), nil
}

// load reads the snapshot outside of a transaction. A payload that cannot be
// decoded is deleted, best effort, and read as an empty snapshot.
func (s *redisStore) load(ctx context.Context) (entity.Snapshot, error) {
	snapshot, corrupt, err := s.read(ctx, s.client)
	if err != nil {
		return entity.Snapshot{}, err
	}
	if corrupt {
		if err := s.client.Del(ctx, s.key).Err(); err != nil {
			slog.Warn("Failed to remove corrupt budget snapshot", "key", s.key, "error", err)
		}
	}
	return snapshot, nil
}

func (s *redisStore) read(ctx context.Context, reader snapshotReader) (entity.Snapshot, bool, error) {
	empty := entity.Snapshot{Categories: entity.Categories{}}

	payload, err := reader.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return empty, false, nil
	}
	if err != nil {
		return entity.Snapshot{}, false, err
	}

	var snapshot entity.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		slog.Warn("Discarding corrupt budget snapshot", "key", s.key, "error", err)
		return empty, true, nil
	}
	if snapshot.Categories == nil {
		snapshot.Categories = entity.Categories{}
	}
	return snapshot, false, nil
}

// update applies fn to the stored snapshot inside a WATCH transaction and
// retries when the key changed concurrently. A corrupt payload is overwritten.
func (s *redisStore) update(ctx context.Context, fn func(*entity.Snapshot) error) error {
	txf := func(tx *redis.Tx) error {
		snapshot, _, err := s.read(ctx, tx)
		if err != nil {
			return err
		}
		if err := fn(&snapshot); err != nil {
			return err
		}

		payload, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, payload, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxSnapshotRetries; attempt++ {
		err := s.client.Watch(ctx, txf, s.key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		slog.Debug("Budget snapshot changed during update, retrying", "key", s.key, "attempt", attempt+1)
	}
	return fmt.Errorf("snapshot %s kept changing after %d attempts", s.key, maxSnapshotRetries)
}

func findStoredExpense(categories entity.Categories, id uuid.UUID) (*entity.Category, int) {
	for ci := range categories {
		for ei := range categories[ci].Expenses {
			if categories[ci].Expenses[ei].ID == id {
				return &categories[ci], ei
			}
		}
	}
	return nil, -1
}
