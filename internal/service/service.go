// Package service holds the CRUD and criteria operations shared by every
// route entity. One generic Service is instantiated per entity with that
// entity's table, store and required relations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"

	"github.com/ridehub/ms-route/internal/criteria"
	"github.com/ridehub/ms-route/internal/metrics"
	"github.com/ridehub/ms-route/internal/queue"
	"github.com/ridehub/ms-route/internal/repository"
)

// Publisher receives an event after every successful write.
type Publisher interface {
	Publish(ctx context.Context, ev queue.EntityEvent) error
}

// Relation is a many-to-one link that must resolve whenever it is set.
type Relation[T any] struct {
	Field  string
	ID     func(*T) *int64
	Exists func(ctx context.Context, id int64) (bool, error)
}

// Page is one page of a criteria query plus the total match count.
type Page[T any] struct {
	Items []*T
	Total int64
}

type Service[T any] struct {
	table     *repository.Table[T]
	store     repository.Store[T]
	relations []Relation[T]
	events    Publisher
	log       *slog.Logger
}

func New[T any](table *repository.Table[T], store repository.Store[T], events Publisher, log *slog.Logger, relations ...Relation[T]) *Service[T] {
	if events == nil {
		events = queue.NopPublisher{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service[T]{table: table, store: store, relations: relations, events: events, log: log}
}

// Entity is the entity name used in errors, events and metrics.
func (s *Service[T]) Entity() string { return s.table.Entity }

// ID reads the primary key of e.
func (s *Service[T]) ID(e *T) *int64 { return s.table.ID(e) }

// Schema is the entity's criteria field table.
func (s *Service[T]) Schema() *criteria.Schema[T] { return s.table.Schema }

// Exists reports whether a row with id exists.
func (s *Service[T]) Exists(ctx context.Context, id int64) (bool, error) {
	return s.store.Exists(ctx, id)
}

// check runs tag validation and then relation existence. It is the last
// step before any write, so a failure leaves storage untouched.
func (s *Service[T]) check(ctx context.Context, e *T) error {
	if err := validate.StructCtx(ctx, e); err != nil {
		return validationError(s.table.Entity, err)
	}
	for _, r := range s.relations {
		id := r.ID(e)
		if id == nil {
			continue
		}
		ok, err := r.Exists(ctx, *id)
		if err != nil {
			return fmt.Errorf("check %s relation %s: %w", s.table.Entity, r.Field, err)
		}
		if !ok {
			return &ValidationError{Entity: s.table.Entity, Field: r.Field, Reason: KeyRelationNotFound}
		}
	}
	return nil
}

// checkID enforces that the payload names the same row as the path.
func (s *Service[T]) checkID(id int64, e *T) error {
	bodyID := s.table.ID(e)
	if bodyID == nil {
		return &ConflictError{Entity: s.table.Entity, Key: KeyIDNull}
	}
	if *bodyID != id {
		return &ConflictError{Entity: s.table.Entity, Key: KeyIDInvalid}
	}
	return nil
}

func (s *Service[T]) notFound(id int64, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Entity: s.table.Entity, ID: id}
	}
	return err
}

// Create inserts e and returns it with its new id.
func (s *Service[T]) Create(ctx context.Context, e *T) (*T, error) {
	s.log.DebugContext(ctx, "request to create", "entity", s.table.Entity)
	if s.table.ID(e) != nil {
		return nil, &ConflictError{Entity: s.table.Entity, Key: KeyIDExists}
	}
	if err := s.check(ctx, e); err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("insert %s: %w", s.table.Entity, err)
	}
	s.publish(ctx, queue.ActionCreated, *s.table.ID(e))
	return e, nil
}

// Update replaces every field of row id with e, including setting omitted
// fields to null.
func (s *Service[T]) Update(ctx context.Context, id int64, e *T) (*T, error) {
	s.log.DebugContext(ctx, "request to update", "entity", s.table.Entity, "id", id)
	if err := s.checkID(id, e); err != nil {
		return nil, err
	}
	ok, err := s.store.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Entity: s.table.Entity, ID: id}
	}
	if err := s.check(ctx, e); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, e); err != nil {
		return nil, s.notFound(id, err)
	}
	s.publish(ctx, queue.ActionUpdated, id)
	return e, nil
}

// PartialUpdate merges the non-null fields of patch onto row id. Fields the
// patch leaves null keep their stored values.
func (s *Service[T]) PartialUpdate(ctx context.Context, id int64, patch *T) (*T, error) {
	s.log.DebugContext(ctx, "request to partially update", "entity", s.table.Entity, "id", id)
	if err := s.checkID(id, patch); err != nil {
		return nil, err
	}
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.notFound(id, err)
	}
	if err := copier.CopyWithOption(existing, patch, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, fmt.Errorf("merge %s patch: %w", s.table.Entity, err)
	}
	if err := s.check(ctx, existing); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, existing); err != nil {
		return nil, s.notFound(id, err)
	}
	s.publish(ctx, queue.ActionUpdated, id)
	return existing, nil
}

func (s *Service[T]) FindOne(ctx context.Context, id int64) (*T, error) {
	s.log.DebugContext(ctx, "request to get", "entity", s.table.Entity, "id", id)
	e, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.notFound(id, err)
	}
	return e, nil
}

// Delete removes the row physically; isDeleted is an ordinary column and
// plays no part here.
func (s *Service[T]) Delete(ctx context.Context, id int64) error {
	s.log.DebugContext(ctx, "request to delete", "entity", s.table.Entity, "id", id)
	if err := s.store.Delete(ctx, id); err != nil {
		return s.notFound(id, err)
	}
	s.publish(ctx, queue.ActionDeleted, id)
	return nil
}

// FindPage runs the list and, for paged queries, the count concurrently.
// An unpaged list is its own count.
func (s *Service[T]) FindPage(ctx context.Context, q *criteria.Query[T]) (*Page[T], error) {
	s.log.DebugContext(ctx, "find by criteria", "entity", s.table.Entity, "criteria", q.Criteria.Len())
	metrics.CriteriaQueries.WithLabelValues(s.table.Entity, "list").Inc()

	if !q.Page.Paged {
		items, err := s.store.Find(ctx, q)
		if err != nil {
			return nil, err
		}
		return &Page[T]{Items: items, Total: int64(len(items))}, nil
	}

	var page Page[T]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.store.Find(gctx, q)
		page.Items = items
		return err
	})
	g.Go(func() error {
		n, err := s.store.Count(gctx, q.Criteria)
		page.Total = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Service[T]) Count(ctx context.Context, c criteria.Criteria[T]) (int64, error) {
	s.log.DebugContext(ctx, "count by criteria", "entity", s.table.Entity, "criteria", c.Len())
	metrics.CriteriaQueries.WithLabelValues(s.table.Entity, "count").Inc()
	return s.store.Count(ctx, c)
}

// publish never fails the write; the broker is best effort.
func (s *Service[T]) publish(ctx context.Context, action queue.Action, id int64) {
	metrics.EntityWrites.WithLabelValues(s.table.Entity, string(action)).Inc()
	ev := queue.EntityEvent{Entity: s.table.Entity, Action: action, ID: id, OccurredAt: time.Now().UTC()}
	if err := s.events.Publish(ctx, ev); err != nil {
		metrics.EventPublishFailures.Inc()
		s.log.WarnContext(ctx, "publish entity event failed", "entity", s.table.Entity, "action", action, "id", id, "err", err)
	}
}
