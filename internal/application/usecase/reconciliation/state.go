// Package reconciliation applies ledger mutations optimistically: the new snapshot is
// visible immediately, the durable write runs in the background, and a failed write
// rolls the visible snapshot back to the last committed baseline.
package reconciliation

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// State is the lifecycle state of one optimistic mutation.
type State string

const (
	StateSpeculative State = "speculative"
	StateCommitted   State = "committed"
	StateRolledBack  State = "rolled_back"
)

// Pending tracks one mutation from speculative apply until its durable write settles.
type Pending struct {
	mutation    Mutation
	before      entity.Categories
	speculative entity.Categories
	baseVersion uint64
	version     uint64
	// committed is set by the reconciler, under its lock, once the durable
	// write succeeded but earlier mutations have not settled yet.
	committed bool

	mu    sync.Mutex
	state State
	err   error
	done  chan struct{}
}

func newPending(m Mutation, before, speculative entity.Categories, baseVersion, version uint64) *Pending {
	return &Pending{
		mutation:    m,
		before:      before,
		speculative: speculative,
		baseVersion: baseVersion,
		version:     version,
		state:       StateSpeculative,
		done:        make(chan struct{}),
	}
}

// Name returns the mutation name.
func (p *Pending) Name() string {
	return p.mutation.Name
}

// Subject returns the id of the category or expense the mutation targets.
func (p *Pending) Subject() uuid.UUID {
	return p.mutation.Subject
}

// Before returns the visible snapshot at the time the mutation was issued.
func (p *Pending) Before() entity.Categories {
	return p.before
}

// Snapshot returns the speculative snapshot published for the mutation.
func (p *Pending) Snapshot() entity.Categories {
	return p.speculative
}

// State returns the current state.
func (p *Pending) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Err returns the commit error once the mutation was rolled back.
func (p *Pending) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Done is closed once the mutation is committed or rolled back.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the durable write settles and returns its error, or returns
// ctx.Err() if ctx ends first. The mutation keeps settling in the background.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pending) finish(state State, err error) {
	p.mu.Lock()
	p.state = state
	p.err = err
	p.mu.Unlock()
	close(p.done)
}

// RollbackEvent describes a mutation whose durable write failed.
type RollbackEvent struct {
	Mutation string
	Subject  uuid.UUID
	Err      error
	Restored entity.Categories
}
