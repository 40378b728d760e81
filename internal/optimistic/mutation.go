// Package optimistic applies a change to locally held copies of a remote
// entity before the server confirms it, and puts the copies back if it doesn't.
package optimistic

import (
	"context"
	"sync"
)

// Mutation describes one optimistic change to every local copy of an entity
type Mutation[T any] struct {
	// Copies are the locally held values. Nil entries are skipped.
	Copies []*T
	// Locate, when set, is used instead of Copies. It is called with Locker
	// held before the change and again before a restore, so copies that moved
	// while Commit ran are still found. Each position must name the same copy
	// on both calls.
	Locate func() []*T
	// Transform computes the expected post-mutation value
	Transform func(T) T
	// Commit performs the remote mutation
	Commit func(ctx context.Context) error
	// OnRestore runs after the copies were rolled back
	OnRestore func(err error)
	// Locker, when set, guards reads and writes of the copies
	Locker sync.Locker
}

// Run snapshots the copies, applies Transform to all of them, then commits.
// If Commit fails every copy is restored to its snapshot and the error is returned.
func (m Mutation[T]) Run(ctx context.Context) error {
	m.lock()
	copies := m.copies()
	snapshot := make([]T, len(copies))
	applied := make([]bool, len(copies))
	for i, c := range copies {
		if c == nil {
			continue
		}
		snapshot[i] = *c
		applied[i] = true
		*c = m.Transform(*c)
	}
	m.unlock()

	err := m.Commit(ctx)
	if err == nil {
		return nil
	}

	m.lock()
	for i, c := range m.copies() {
		if c != nil && i < len(applied) && applied[i] {
			*c = snapshot[i]
		}
	}
	m.unlock()

	if m.OnRestore != nil {
		m.OnRestore(err)
	}
	return err
}

func (m Mutation[T]) copies() []*T {
	if m.Locate != nil {
		return m.Locate()
	}
	return m.Copies
}

func (m Mutation[T]) lock() {
	if m.Locker != nil {
		m.Locker.Lock()
	}
}

func (m Mutation[T]) unlock() {
	if m.Locker != nil {
		m.Locker.Unlock()
	}
}

// InFlight tracks which keys have a mutation outstanding
type InFlight[K comparable] struct {
	mu     sync.Mutex
	active map[K]struct{}
}

// Begin marks k busy. It returns false if k was already busy.
func (f *InFlight[K]) Begin(k K) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active == nil {
		f.active = make(map[K]struct{})
	}
	if _, busy := f.active[k]; busy {
		return false
	}
	f.active[k] = struct{}{}
	return true
}

// End clears the busy marker for k
func (f *InFlight[K]) End(k K) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.active, k)
}

// Active reports whether k is busy
func (f *InFlight[K]) Active(k K) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, busy := f.active[k]
	return busy
}
