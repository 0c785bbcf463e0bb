package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"task-list/internal/metrics"
	"task-list/internal/models"
	"task-list/internal/repository"
	"task-list/pkg/logger"
)

// Persister loads and saves the full task collection.
type Persister interface {
	Load(ctx context.Context) ([]models.Task, error)
	Save(ctx context.Context, tasks []models.Task) error
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now as the source of ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithMetrics records mutations and persistence failures.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// Store owns the authoritative task collection. Every mutation runs under one
// lock for its whole duration, including the save, so callers never observe
// interleaved mutations. A failed save leaves memory authoritative; the next
// successful save (or Close) brings the slot back in line.
type Store struct {
	persister Persister
	metrics   *metrics.Metrics
	now       func() time.Time

	mu     sync.RWMutex
	tasks  []models.Task
	lastID int64
	dirty  bool
}

// New hydrates a store from p. A stored blob that cannot be decoded is logged
// and the store starts empty. Any other load error is returned and no store is built.
func New(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := &Store{persister: p, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	tasks, err := p.Load(ctx)
	if err != nil {
		s.metrics.PersistFailure("load")
		if !errors.Is(err, repository.ErrCorruptBlob) {
			return nil, fmt.Errorf("hydrate task store: %w", err)
		}
		logger.Error(ctx, "Stored tasks are unreadable; starting with an empty list", "error", err)
		tasks = nil
	}
	s.tasks = tasks
	if s.tasks == nil {
		s.tasks = []models.Task{}
	}
	for _, t := range s.tasks {
		s.lastID = max(s.lastID, t.ID)
	}
	s.metrics.Loaded(len(s.tasks))
	logger.Info(ctx, "Task store ready", "tasks", len(s.tasks))
	return s, nil
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Create appends a new task built from fields and persists the collection.
func (s *Store) Create(ctx context.Context, fields models.TaskFields) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	f := fields.Normalize()
	t := models.Task{
		ID:          s.nextIDLocked(now),
		Title:       f.Title,
		Description: f.Description,
		Priority:    f.Priority,
		DueDate:     f.DueDate,
		Completed:   f.Completed,
		CreatedAt:   models.At(now),
		UpdatedAt:   models.At(now),
	}
	s.tasks = append(s.tasks, t)
	s.persistLocked(ctx, "create")
	logger.Debug(ctx, "Task created", "id", t.ID)
	return t
}

// Update overwrites every field of the stored task with task.ID except the id and
// createdAt, and refreshes updatedAt. It reports false, changing nothing, when no
// such task exists.
func (s *Store) Update(ctx context.Context, task models.Task) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(task.ID)
	if i < 0 {
		logger.Debug(ctx, "Update of unknown task ignored", "id", task.ID)
		return models.Task{}, false
	}
	prev := s.tasks[i]
	now := s.timestamp()
	if now.Before(prev.UpdatedAt.Time) {
		now = prev.UpdatedAt.Time
	}
	f := task.Fields().Normalize()
	next := models.Task{
		ID:          prev.ID,
		Title:       f.Title,
		Description: f.Description,
		Priority:    f.Priority,
		DueDate:     f.DueDate,
		Completed:   f.Completed,
		CreatedAt:   prev.CreatedAt,
		UpdatedAt:   models.At(now),
	}
	s.tasks[i] = next
	s.persistLocked(ctx, "update")
	logger.Debug(ctx, "Task updated", "id", next.ID)
	return next, true
}

// Delete removes the task with id. It reports false when no such task exists.
func (s *Store) Delete(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		logger.Debug(ctx, "Delete of unknown task ignored", "id", id)
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.persistLocked(ctx, "delete")
	logger.Debug(ctx, "Task deleted", "id", id)
	return true
}

// Close writes the collection once more if the last save failed.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := s.persister.Save(ctx, s.tasks); err != nil {
		s.metrics.PersistFailure("save")
		return err
	}
	s.dirty = false
	logger.Info(ctx, "Task store flushed", "tasks", len(s.tasks))
	return nil
}

func (s *Store) persistLocked(ctx context.Context, op string) {
	s.metrics.Mutation(op, len(s.tasks))
	if err := s.persister.Save(ctx, s.tasks); err != nil {
		s.dirty = true
		s.metrics.PersistFailure("save")
		logger.Error(ctx, "Saving tasks failed; keeping in-memory state", "op", op, "error", err)
		return
	}
	s.dirty = false
}

func (s *Store) indexLocked(id int64) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}

// nextIDLocked returns the creation time in milliseconds, bumped past the last
// issued id so that creates within the same millisecond stay unique.
func (s *Store) nextIDLocked(now time.Time) int64 {
	id := max(now.UnixMilli(), s.lastID+1)
	s.lastID = id
	return id
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}
