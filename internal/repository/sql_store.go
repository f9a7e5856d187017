package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ridehub/ms-route/internal/criteria"
)

// SQLStore implements Store on MySQL for one Table.
type SQLStore[T any] struct {
	db *sql.DB
	t  *Table[T]
}

// NewSQLStore binds t to db.
func NewSQLStore[T any](db *sql.DB, t *Table[T]) *SQLStore[T] {
	return &SQLStore[T]{db: db, t: t}
}

func (s *SQLStore[T]) selectList() string {
	return "id, " + strings.Join(s.t.Columns, ", ")
}

func (s *SQLStore[T]) insertSQL() string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(s.t.Columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.t.Name(), strings.Join(s.t.Columns, ", "), marks)
}

func (s *SQLStore[T]) updateSQL() string {
	set := make([]string, len(s.t.Columns))
	for i, c := range s.t.Columns {
		set[i] = c + " = ?"
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", s.t.Name(), strings.Join(set, ", "))
}

// findSQL renders the data query for q. It shares its WHERE clause with
// countSQL so a page and its total always agree.
func (s *SQLStore[T]) findSQL(q *criteria.Query[T]) (string, []any) {
	cond, args := q.Criteria.Where()
	query := "SELECT " + s.selectList() + " FROM " + s.t.Name() + " WHERE " + cond + " ORDER BY " + q.OrderBy()
	if q.Page.Paged {
		query += " LIMIT ? OFFSET ?"
		args = append(args, q.Page.Size, q.Page.Offset())
	}
	return query, args
}

func (s *SQLStore[T]) countSQL(c criteria.Criteria[T]) (string, []any) {
	cond, args := c.Where()
	return "SELECT COUNT(*) FROM " + s.t.Name() + " WHERE " + cond, args
}

func (s *SQLStore[T]) Insert(ctx context.Context, e *T) error {
	res, err := s.db.ExecContext(ctx, s.insertSQL(), s.t.Args(e)...)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.t.SetID(e, id)
	return nil
}

// Update relies on clientFoundRows=true in the DSN: RowsAffected counts
// matched rows, so zero means the id does not exist.
func (s *SQLStore[T]) Update(ctx context.Context, e *T) error {
	id := s.t.ID(e)
	if id == nil {
		return ErrNotFound
	}
	args := append(s.t.Args(e), *id)
	res, err := s.db.ExecContext(ctx, s.updateSQL(), args...)
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+s.selectList()+" FROM "+s.t.Name()+" WHERE id = ?", id)
	e, err := s.t.Scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *SQLStore[T]) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM "+s.t.Name()+" WHERE id = ? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLStore[T]) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+s.t.Name()+" WHERE id = ?", id)
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore[T]) Find(ctx context.Context, q *criteria.Query[T]) ([]*T, error) {
	query, args := s.findSQL(q)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*T{}
	for rows.Next() {
		e, err := s.t.Scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLStore[T]) Count(ctx context.Context, c criteria.Criteria[T]) (int64, error) {
	query, args := s.countSQL(c)
	var total int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
