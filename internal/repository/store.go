package repository

import (
	"context"

	"github.com/ridehub/ms-route/internal/criteria"
)

// Store is the persistence contract every entity service depends on.
type Store[T any] interface {
	// Insert assigns a fresh id to e and persists it.
	Insert(ctx context.Context, e *T) error
	// Update replaces every column of the row with e's id.
	Update(ctx context.Context, e *T) error
	FindByID(ctx context.Context, id int64) (*T, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	// Find returns the page of matches selected by q in q's order.
	Find(ctx context.Context, q *criteria.Query[T]) ([]*T, error)
	// Count returns the number of rows matching c, ignoring paging.
	Count(ctx context.Context, c criteria.Criteria[T]) (int64, error)
}

// RowScanner is satisfied by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// Table maps an entity type onto its SQL table. Columns lists every
// persisted column except id, in the same order Args returns values and
// Scan reads them after id.
type Table[T any] struct {
	Entity  string
	Schema  *criteria.Schema[T]
	Columns []string
	ID      func(*T) *int64
	SetID   func(*T, int64)
	Args    func(*T) []any
	Scan    func(RowScanner) (*T, error)
}

// Name is the SQL table, taken from the schema.
func (t *Table[T]) Name() string { return t.Schema.Table() }
