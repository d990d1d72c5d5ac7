package progress

import (
	"context"
	"sync"
	"time"
)

// Repo persists learning records keyed by item id. Implementations create
// the zero record on first touch.
type Repo interface {
	// Get returns the record for an item, or the zero record if the item
	// has never been touched.
	Get(ctx context.Context, itemID string) (Record, error)

	// All returns every stored record keyed by item id.
	All(ctx context.Context) (map[string]Record, error)

	// RecordAccess stamps a visit to the item.
	RecordAccess(ctx context.Context, itemID string) error

	// RecordAnswer folds one confirmed answer into the item's state.
	RecordAnswer(ctx context.Context, itemID string, correct bool) error

	// RecordRetry counts one retry against the item.
	RecordRetry(ctx context.Context, itemID string) error

	// Reset deletes the record for one item.
	Reset(ctx context.Context, itemID string) error

	// ResetAll deletes every record.
	ResetAll(ctx context.Context) error

	Close() error
}

// MemoryRepo is an in-memory Repo for tests and ephemeral runs.
type MemoryRepo struct {
	mu      sync.Mutex
	records map[string]Record
	now     func() time.Time
}

// NewMemoryRepo returns an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{records: make(map[string]Record), now: time.Now}
}

// SetClock replaces the wall clock, for tests.
func (m *MemoryRepo) SetClock(now func() time.Time) { m.now = now }

func (m *MemoryRepo) get(itemID string) Record {
	if r, ok := m.records[itemID]; ok {
		return r
	}
	return NewRecord(itemID)
}

func (m *MemoryRepo) Get(_ context.Context, itemID string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(itemID), nil
}

func (m *MemoryRepo) All(context.Context) (map[string]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]Record, len(m.records))
	for k, v := range m.records {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryRepo) RecordAccess(_ context.Context, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.get(itemID)
	r.applyAccess(m.now())
	m.records[itemID] = r
	return nil
}

func (m *MemoryRepo) RecordAnswer(_ context.Context, itemID string, correct bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.get(itemID)
	r.applyAnswer(correct)
	m.records[itemID] = r
	return nil
}

func (m *MemoryRepo) RecordRetry(_ context.Context, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.get(itemID)
	r.applyRetry()
	m.records[itemID] = r
	return nil
}

func (m *MemoryRepo) Reset(_ context.Context, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, itemID)
	return nil
}

func (m *MemoryRepo) ResetAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]Record)
	return nil
}

func (m *MemoryRepo) Close() error { return nil }
