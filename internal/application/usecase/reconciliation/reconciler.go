package reconciliation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// Reconciler owns the confirmed baseline and the visible ledger snapshot.
//
// Apply publishes the mutated snapshot immediately and commits it in the
// background. Committed mutations are folded into the confirmed baseline in
// issue order. When a commit fails, the visible snapshot is rebuilt from the
// confirmed baseline by replaying the mutations still in flight, so with nothing
// else in flight it is exactly the snapshot the failed mutation was applied to.
type Reconciler struct {
	store         adapter.BudgetStore
	commitTimeout time.Duration

	mu               sync.Mutex
	confirmed        entity.Categories
	confirmedVersion uint64
	visible          entity.Categories
	visibleVersion   uint64
	nextVersion      uint64
	inFlight         []*Pending
	listeners        []func(RollbackEvent)
	diverged         bool

	// commits counts durable writes still running; idle is closed when it
	// drops to zero and a Drain is waiting.
	commits int
	idle    chan struct{}
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithCommitTimeout bounds every durable write. Zero means no bound.
func WithCommitTimeout(timeout time.Duration) Option {
	return func(r *Reconciler) {
		r.commitTimeout = timeout
	}
}

// WithBaseline seeds the confirmed and visible snapshots.
func WithBaseline(categories entity.Categories) Option {
	return func(r *Reconciler) {
		r.confirmed = categories
		r.visible = categories
	}
}

// NewReconciler creates a Reconciler over store with an empty baseline.
func NewReconciler(store adapter.BudgetStore, opts ...Option) *Reconciler {
	r := &Reconciler{
		store:     store,
		confirmed: entity.Categories{},
		visible:   entity.Categories{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load replaces both snapshots with the store's current categories. It refuses
// to run while mutations are in flight.
func (r *Reconciler) Load(ctx context.Context) error {
	r.mu.Lock()
	busy := len(r.inFlight)
	r.mu.Unlock()
	if busy > 0 {
		return staleStateError(busy)
	}

	categories, err := r.store.LoadCategoriesWithExpenses(ctx)
	if err != nil {
		return persistenceError("loading categories failed", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.inFlight) > 0 {
		return staleStateError(len(r.inFlight))
	}
	version := r.bumpVersion()
	r.confirmed, r.confirmedVersion = categories, version
	r.visible, r.visibleVersion = categories, version
	r.diverged = false

	slog.Info("Ledger loaded from store", "categories", len(categories))
	return nil
}

// Visible returns the snapshot callers should display, including speculative
// changes. The returned snapshot is shared and must not be modified.
func (r *Reconciler) Visible() entity.Categories {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

// Confirmed returns the last committed baseline.
func (r *Reconciler) Confirmed() entity.Categories {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.confirmed
}

// InFlight returns the number of mutations not yet folded into the confirmed
// baseline. A committed mutation stays in flight until every mutation issued
// before it has settled.
func (r *Reconciler) InFlight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inFlight)
}

// Diverged reports whether a committed mutation could not be applied to the
// confirmed baseline, meaning the baseline should be reloaded from the store.
func (r *Reconciler) Diverged() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.diverged
}

// OnRollback registers a listener called after a failed mutation was rolled back.
func (r *Reconciler) OnRollback(listener func(RollbackEvent)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, listener)
}

// Apply applies m to the visible snapshot and starts its durable write. Ledger
// errors are returned synchronously and leave every snapshot untouched.
func (r *Reconciler) Apply(ctx context.Context, m Mutation) (*Pending, error) {
	r.mu.Lock()
	next, err := m.Apply(r.visible)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}

	version := r.bumpVersion()
	p := newPending(m, r.visible, next, r.visibleVersion, version)
	r.visible, r.visibleVersion = next, version
	r.inFlight = append(r.inFlight, p)
	r.commits++
	r.mu.Unlock()

	go r.commit(context.WithoutCancel(ctx), p)

	return p, nil
}

// Submit applies m and waits for its durable write. On success it returns the
// snapshot the mutation produced; on rollback it returns the commit error.
func (r *Reconciler) Submit(ctx context.Context, m Mutation) (entity.Categories, error) {
	p, err := r.Apply(ctx, m)
	if err != nil {
		return nil, err
	}
	if err := p.Wait(ctx); err != nil {
		return nil, err
	}
	return p.Snapshot(), nil
}

// Drain waits until no durable write is running or ctx ends. Mutations applied
// while Drain waits extend the wait, so it is safe to call while requests are
// still being served.
func (r *Reconciler) Drain(ctx context.Context) error {
	r.mu.Lock()
	if r.commits == 0 {
		r.mu.Unlock()
		return nil
	}
	if r.idle == nil {
		r.idle = make(chan struct{})
	}
	idle := r.idle
	r.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Reconciler) commitFinished() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits--
	if r.commits == 0 && r.idle != nil {
		close(r.idle)
		r.idle = nil
	}
}

func (r *Reconciler) commit(ctx context.Context, p *Pending) {
	defer r.commitFinished()

	if r.commitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.commitTimeout)
		defer cancel()
	}

	commitErr := p.mutation.Commit(ctx, r.store, p.speculative)

	if commitErr != nil {
		r.rollback(p, commitErr)
		return
	}

	r.mu.Lock()
	p.committed = true
	r.foldCommitted()
	r.mu.Unlock()

	p.finish(StateCommitted, nil)
	slog.Info("Mutation committed",
		"mutation", p.mutation.Name,
		"subject", p.mutation.Subject,
	)
}

func (r *Reconciler) rollback(p *Pending, commitErr error) {
	err := persistenceError(fmt.Sprintf("%s was not saved", p.mutation.Name), commitErr)

	r.mu.Lock()
	r.remove(p)
	r.rebuildVisible()
	r.foldCommitted()
	event := RollbackEvent{
		Mutation: p.mutation.Name,
		Subject:  p.mutation.Subject,
		Err:      err,
		Restored: r.visible,
	}
	listeners := append([]func(RollbackEvent){}, r.listeners...)
	r.mu.Unlock()

	p.finish(StateRolledBack, err)
	slog.Warn("Mutation rolled back",
		"mutation", p.mutation.Name,
		"subject", p.mutation.Subject,
		"error", commitErr,
	)
	for _, listener := range listeners {
		listener(event)
	}
}

// foldCommitted advances the confirmed baseline past the committed mutations at
// the head of the in-flight list.
func (r *Reconciler) foldCommitted() {
	for len(r.inFlight) > 0 && r.inFlight[0].committed {
		r.advanceBaseline(r.inFlight[0])
		r.inFlight = r.inFlight[1:]
	}
}

// advanceBaseline moves the confirmed baseline past a committed mutation. When the
// mutation was issued directly on the baseline its speculative snapshot becomes
// the baseline as is; otherwise it is re-applied to the baseline.
func (r *Reconciler) advanceBaseline(p *Pending) {
	if p.baseVersion == r.confirmedVersion {
		r.confirmed, r.confirmedVersion = p.speculative, p.version
		return
	}

	next, err := p.mutation.Apply(r.confirmed)
	if err != nil {
		r.diverged = true
		slog.Warn("Committed mutation does not apply to confirmed baseline",
			"mutation", p.mutation.Name,
			"subject", p.mutation.Subject,
			"error", err,
		)
		return
	}
	r.confirmed, r.confirmedVersion = next, r.bumpVersion()
}

// rebuildVisible replays the in-flight mutations over the confirmed baseline.
// Mutations that no longer apply stay in flight but are not visible.
// When nothing is in flight the visible snapshot is the baseline itself.
func (r *Reconciler) rebuildVisible() {
	visible, version := r.confirmed, r.confirmedVersion
	for _, p := range r.inFlight {
		next, err := p.mutation.Apply(visible)
		if err != nil {
			slog.Debug("In-flight mutation hidden after rollback",
				"mutation", p.mutation.Name,
				"subject", p.mutation.Subject,
				"error", err,
			)
			continue
		}
		visible, version = next, r.bumpVersion()
	}
	r.visible, r.visibleVersion = visible, version
}

func (r *Reconciler) remove(p *Pending) {
	for i, candidate := range r.inFlight {
		if candidate == p {
			r.inFlight = append(r.inFlight[:i], r.inFlight[i+1:]...)
			return
		}
	}
}

func (r *Reconciler) bumpVersion() uint64 {
	r.nextVersion++
	return r.nextVersion
}

func persistenceError(message string, err error) error {
	if domainerror.IsKind(err, domainerror.KindPersistence) {
		return err
	}
	return domainerror.NewPersistenceError(message, err)
}

func staleStateError(inFlight int) error {
	return domainerror.NewLedgerError(
		domainerror.KindPersistence,
		domainerror.ErrCodeStaleState,
		fmt.Sprintf("cannot reload while %d mutations are in flight", inFlight),
		domainerror.ErrPersistence,
	)
}

// Ledger is the view of a Reconciler used by the category and expense use cases.
type Ledger interface {
	Submit(ctx context.Context, m Mutation) (entity.Categories, error)
	Visible() entity.Categories
}

var _ Ledger = (*Reconciler)(nil)
