// Package store implements the entity storage backends behind the
// types.DataSource and types.SessionStorage capabilities: an in-memory store
// (the default), a SQLite-backed session store, and a Badger-backed record
// store. Centers never construct these directly; the composition root wires
// whichever backend config selects.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"solohub/internal/logging"
	"solohub/internal/types"
)

// record constrains a pointer entity type that can clone itself.
type record[T any] interface {
	types.Record
	Clone() T
}

// NewID builds a store id: type prefix, millisecond timestamp, short random
// suffix. Uniqueness is probabilistic; good enough for a single-process
// store. A persistent backend should switch to full UUIDs.
func NewID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), uuid.New().String()[:8])
}

// ByUpdatedDesc orders newest-touched first. Default for projects,
// resources, and sessions.
func ByUpdatedDesc[T types.Record](a, b T) bool {
	if !a.UpdatedTime().Equal(b.UpdatedTime()) {
		return a.UpdatedTime().After(b.UpdatedTime())
	}
	return a.RecordID() < b.RecordID()
}

// ByCreatedAsc orders oldest-created first. Default for users.
func ByCreatedAsc[T types.Record](a, b T) bool {
	if !a.CreatedTime().Equal(b.CreatedTime()) {
		return a.CreatedTime().Before(b.CreatedTime())
	}
	return a.RecordID() < b.RecordID()
}

// Memory is the in-memory DataSource implementation. It hands out clones on
// every read so callers can never mutate stored state behind its back.
type Memory[T record[T]] struct {
	mu     sync.RWMutex
	prefix string
	less   func(a, b T) bool
	items  map[string]T
	now    func() time.Time
}

// NewMemory creates an empty store. prefix seeds generated ids ("proj",
// "res", ...); less is the default listing order.
func NewMemory[T record[T]](prefix string, less func(a, b T) bool) *Memory[T] {
	return &Memory[T]{
		prefix: prefix,
		less:   less,
		items:  make(map[string]T),
		now:    time.Now,
	}
}

// SetClock overrides the timestamp source. Test hook.
func (m *Memory[T]) SetClock(now func() time.Time) { m.now = now }

// GetAll returns all records in the store's default order.
func (m *Memory[T]) GetAll(ctx context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.items))
	for _, rec := range m.items {
		out = append(out, rec.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return m.less(out[i], out[j]) })
	return out, nil
}

// GetByID returns a clone of the record, or types.ErrNotFound.
func (m *Memory[T]) GetByID(ctx context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.items[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", m.prefix, id, types.ErrNotFound)
	}
	return rec.Clone(), nil
}

// Create assigns an id and timestamps, stores the record, and returns it.
func (m *Memory[T]) Create(ctx context.Context, rec T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	rec.SetRecordID(NewID(m.prefix))
	rec.StampCreated(now)
	m.items[rec.RecordID()] = rec.Clone()

	logging.Get(logging.CategoryStore).Debugw("record created",
		"prefix", m.prefix, "id", rec.RecordID())
	return rec, nil
}

// Update applies mutate to a copy of the stored record. The id and CreatedAt
// are restored afterwards, so mutate cannot change them; UpdatedAt is bumped
// even when mutate changes nothing.
func (m *Memory[T]) Update(ctx context.Context, id string, mutate func(T)) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.items[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", m.prefix, id, types.ErrNotFound)
	}

	next := cur.Clone()
	mutate(next)
	next.SetRecordID(id)
	next.SetCreatedTime(cur.CreatedTime())
	next.Touch(m.now())
	m.items[id] = next.Clone()

	logging.Get(logging.CategoryStore).Debugw("record updated",
		"prefix", m.prefix, "id", id)
	return next, nil
}

// Delete removes the record. Hard delete, no tombstone, no cascade to weak
// references held by other collections.
func (m *Memory[T]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("%s %q: %w", m.prefix, id, types.ErrNotFound)
	}
	delete(m.items, id)

	logging.Get(logging.CategoryStore).Debugw("record deleted",
		"prefix", m.prefix, "id", id)
	return nil
}

// Len returns the number of stored records.
func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
