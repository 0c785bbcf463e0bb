// Package session is the surface a presentation layer talks to: it reads the
// collection, the search query and the current projection, and turns user
// intents into task store operations.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"task-list/internal/metrics"
	"task-list/internal/models"
	"task-list/internal/projector"
	"task-list/internal/store"
	"task-list/pkg/logger"
)

// ErrUnknownIntent is returned by Dispatch for intent types it does not handle.
var ErrUnknownIntent = errors.New("unknown intent")

// Result describes what an intent did.
type Result struct {
	// Task is the created or updated task.
	Task models.Task
	// Applied is false when an update or delete referenced a missing task.
	Applied bool
}

// Session couples a task store with the current search query.
type Session struct {
	store   *store.Store
	metrics *metrics.Metrics

	mu    sync.RWMutex
	query string
}

func New(s *store.Store, m *metrics.Metrics) *Session {
	return &Session{store: s, metrics: m}
}

// Tasks returns the full collection.
func (s *Session) Tasks() []models.Task {
	return s.store.Tasks()
}

// Query returns the current search query.
func (s *Session) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Projection is the filtered, sorted view for the current query.
func (s *Session) Projection() []models.Task {
	return s.ProjectionFor(s.Query())
}

// ProjectionFor computes the view for query without changing the session query.
func (s *Session) ProjectionFor(query string) []models.Task {
	return projector.Project(s.store.Tasks(), query)
}

func (s *Session) RequestCreate(ctx context.Context, fields models.TaskFields) models.Task {
	return s.store.Create(ctx, fields)
}

func (s *Session) RequestUpdate(ctx context.Context, task models.Task) (models.Task, bool) {
	return s.store.Update(ctx, task)
}

func (s *Session) RequestDelete(ctx context.Context, id int64) bool {
	return s.store.Delete(ctx, id)
}

func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
}

// Dispatch routes an intent to its operation. source labels the caller in
// metrics and logs (for example "http" or "kafka").
func (s *Session) Dispatch(ctx context.Context, source string, in models.Intent) (Result, error) {
	switch v := in.(type) {
	case models.CreateIntent:
		s.metrics.Intent(source, models.ActionCreate)
		return Result{Task: s.RequestCreate(ctx, v.Fields), Applied: true}, nil
	case models.EditIntent:
		s.metrics.Intent(source, models.ActionUpdate)
		t, ok := s.RequestUpdate(ctx, v.Task)
		return Result{Task: t, Applied: ok}, nil
	case models.DeleteIntent:
		s.metrics.Intent(source, models.ActionDelete)
		return Result{Applied: s.RequestDelete(ctx, v.ID)}, nil
	case models.QueryIntent:
		s.metrics.Intent(source, models.ActionQuery)
		s.SetQuery(v.Query)
		return Result{Applied: true}, nil
	default:
		logger.Warn(ctx, "Dropping unknown intent", "source", source, "type", fmt.Sprintf("%T", in))
		return Result{}, fmt.Errorf("%w: %T", ErrUnknownIntent, in)
	}
}
