package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"task-list/internal/models"
	"task-list/internal/slot"
	"task-list/pkg/logger"
)

// ErrCorruptBlob is returned by Load when the slot holds something that is not a task array.
var ErrCorruptBlob = errors.New("stored tasks are not a valid task array")

// Adapter reads and writes the whole task collection as one JSON array in a slot.
type Adapter struct {
	slot slot.Slot
}

func New(s slot.Slot) *Adapter {
	return &Adapter{slot: s}
}

// Load returns the stored collection. An empty slot yields an empty collection
// and no error. A blob that does not decode yields an empty collection and an
// error wrapping ErrCorruptBlob. Read failures are returned as is.
func (a *Adapter) Load(ctx context.Context) ([]models.Task, error) {
	b, err := a.slot.Get(ctx)
	if errors.Is(err, slot.ErrNotFound) {
		return []models.Task{}, nil
	}
	if err != nil {
		return []models.Task{}, fmt.Errorf("load %s: %w", a.slot.Name(), err)
	}
	var tasks []models.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return []models.Task{}, fmt.Errorf("load %s: %w: %v", a.slot.Name(), ErrCorruptBlob, err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	logger.Debug(ctx, "Tasks loaded", "slot", a.slot.Name(), "count", len(tasks))
	return tasks, nil
}

// Save overwrites the slot with the full collection.
func (a *Adapter) Save(ctx context.Context, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := a.slot.Put(ctx, b); err != nil {
		return fmt.Errorf("save %s: %w", a.slot.Name(), err)
	}
	return nil
}
