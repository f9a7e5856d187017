package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ridehub/ms-route/internal/criteria"
)

// MemoryStore implements Store over a map. Rows are deep-copied on the way
// in and out so callers never share pointers with the store. Foreign keys
// are not enforced here; services check relation existence themselves.
type MemoryStore[T any] struct {
	mu   sync.RWMutex
	t    *Table[T]
	rows map[int64]*T
	seq  int64
}

func NewMemoryStore[T any](t *Table[T]) *MemoryStore[T] {
	return &MemoryStore[T]{t: t, rows: make(map[int64]*T)}
}

// clone round-trips e through JSON; every entity is JSON-complete.
func clone[T any](e *T) (*T, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	c := new(T)
	if err := json.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (m *MemoryStore[T]) Insert(_ context.Context, e *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.t.SetID(e, m.seq+1)
	c, err := clone(e)
	if err != nil {
		return err
	}
	m.seq++
	m.rows[m.seq] = c
	return nil
}

func (m *MemoryStore[T]) Update(_ context.Context, e *T) error {
	id := m.t.ID(e)
	if id == nil {
		return ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[*id]; !ok {
		return ErrNotFound
	}
	c, err := clone(e)
	if err != nil {
		return err
	}
	m.rows[*id] = c
	return nil
}

func (m *MemoryStore[T]) FindByID(_ context.Context, id int64) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(e)
}

func (m *MemoryStore[T]) Exists(_ context.Context, id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.rows[id]
	return ok, nil
}

func (m *MemoryStore[T]) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

// snapshot copies every row so evaluation runs without holding the lock.
func (m *MemoryStore[T]) snapshot() ([]*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*T, 0, len(m.rows))
	for _, e := range m.rows {
		c, err := clone(e)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *MemoryStore[T]) Find(_ context.Context, q *criteria.Query[T]) ([]*T, error) {
	rows, err := m.snapshot()
	if err != nil {
		return nil, err
	}
	page, _ := q.Apply(rows)
	return page, nil
}

func (m *MemoryStore[T]) Count(_ context.Context, c criteria.Criteria[T]) (int64, error) {
	rows, err := m.snapshot()
	if err != nil {
		return 0, err
	}
	return int64(len(c.Filter(rows))), nil
}
