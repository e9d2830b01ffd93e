package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// Memory keeps reports in process memory. It backs the server when no
// MongoDB URI is configured.
type Memory struct {
	mu      sync.RWMutex
	reports map[string]*Report
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{reports: make(map[string]*Report)}
}

// Save implements [Store].
func (m *Memory) Save(ctx context.Context, r *Report) error {
	prepare(r)
	cp := *r
	m.mu.Lock()
	m.reports[r.ID] = &cp
	m.mu.Unlock()
	return nil
}

// Get implements [Store].
func (m *Memory) Get(ctx context.Context, id string) (*Report, error) {
	m.mu.RLock()
	r, ok := m.reports[id]
	m.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	cp := *r
	return &cp, nil
}

// List implements [Store].
func (m *Memory) List(ctx context.Context, limit int) ([]*Report, error) {
	m.mu.RLock()
	out := make([]*Report, 0, len(m.reports))
	for _, r := range m.reports {
		cp := *r
		out = append(out, &cp)
	}
	m.mu.RUnlock()
	slices.SortFunc(out, func(a, b *Report) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close implements [Store].
func (m *Memory) Close(ctx context.Context) error { return nil }

var _ Store = (*Memory)(nil)
