package repository

import (
	"context"
	"testing"
	"time"

	"task-list/internal/models"
	"task-list/internal/slot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSlot struct {
	slot.Slot
	getErr error
	putErr error
}

func (f failingSlot) Get(ctx context.Context) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Slot.Get(ctx)
}

func (f failingSlot) Put(ctx context.Context, b []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.Slot.Put(ctx, b)
}

func TestLoadEmptySlot(t *testing.T) {
	tasks, err := New(slot.NewMemory("tasks")).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := New(slot.NewMemory("tasks"))
	created := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	in := []models.Task{
		{ID: 1, Title: "A", Priority: models.PriorityHigh, CreatedAt: models.At(created), UpdatedAt: models.At(created)},
		{ID: 2, Title: "B", Description: "bread", DueDate: "2024-06-01", Completed: true, CreatedAt: models.At(created), UpdatedAt: models.At(created.Add(time.Hour))},
		{ID: 3},
	}

	require.NoError(t, a.Save(ctx, in))
	out, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	s := slot.NewMemory("tasks")
	require.NoError(t, New(s).Save(ctx, nil))

	b, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestLoadCorruptBlob(t *testing.T) {
	for _, blob := range []string{`{not json`, `{"id":1}`, `[{"id":"x"}]`} {
		ctx := context.Background()
		s := slot.NewMemory("tasks")
		require.NoError(t, s.Put(ctx, []byte(blob)))

		tasks, err := New(s).Load(ctx)
		assert.ErrorIs(t, err, ErrCorruptBlob, blob)
		assert.Empty(t, tasks)
	}
}

func TestLoadNullBlob(t *testing.T) {
	ctx := context.Background()
	s := slot.NewMemory("tasks")
	require.NoError(t, s.Put(ctx, []byte(`null`)))

	tasks, err := New(s).Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestLoadReadFailure(t *testing.T) {
	a := New(failingSlot{Slot: slot.NewMemory("tasks"), getErr: assert.AnError})
	tasks, err := a.Load(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, tasks)
}

func TestSaveFailure(t *testing.T) {
	a := New(failingSlot{Slot: slot.NewMemory("tasks"), putErr: assert.AnError})
	err := a.Save(context.Background(), []models.Task{{ID: 1}})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLoadBlobWithMixedTimestampForms(t *testing.T) {
	ctx := context.Background()
	s := slot.NewMemory("tasks")
	blob := `[
		{"id":1,"title":"zoned","createdAt":"2024-05-01T10:00:00.000Z","updatedAt":"2024-05-01T10:00:00.000Z"},
		{"id":2,"title":"local","createdAt":"2024-05-01T11:00:00","updatedAt":"2024-05-02"}
	]`
	require.NoError(t, s.Put(ctx, []byte(blob)))

	tasks, err := New(s).Load(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC), tasks[1].CreatedAt.Time)
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), tasks[1].UpdatedAt.Time)

	require.NoError(t, New(s).Save(ctx, tasks))
	b, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"createdAt":"2024-05-01T11:00:00Z"`)
}
