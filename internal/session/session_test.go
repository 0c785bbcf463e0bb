package session

import (
	"context"
	"testing"

	"task-list/internal/metrics"
	"task-list/internal/models"
	"task-list/internal/repository"
	"task-list/internal/slot"
	"task-list/internal/store"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bogusIntent struct{ models.QueryIntent }

func newSession(t *testing.T) (*Session, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	st, err := store.New(context.Background(), repository.New(slot.NewMemory("tasks")), store.WithMetrics(m))
	require.NoError(t, err)
	return New(st, m), m
}

func TestDispatchRoutesEachIntent(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)

	res, err := s.Dispatch(ctx, "test", models.CreateIntent{Fields: models.TaskFields{Title: "Buy milk", Priority: models.PriorityLow}})
	require.NoError(t, err)
	require.True(t, res.Applied)
	created := res.Task
	assert.Equal(t, []models.Task{created}, s.Tasks())

	edit := created
	edit.Title = "Buy oat milk"
	res, err = s.Dispatch(ctx, "test", models.EditIntent{Task: edit})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "Buy oat milk", res.Task.Title)

	res, err = s.Dispatch(ctx, "test", models.QueryIntent{Query: "OAT"})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "OAT", s.Query())
	assert.Len(t, s.Projection(), 1)

	res, err = s.Dispatch(ctx, "test", models.DeleteIntent{ID: created.ID})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Empty(t, s.Tasks())
	assert.Empty(t, s.Projection())
}

func TestDispatchMissingTaskIsNotApplied(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)

	res, err := s.Dispatch(ctx, "test", models.EditIntent{Task: models.Task{ID: 99}})
	require.NoError(t, err)
	assert.False(t, res.Applied)

	res, err = s.Dispatch(ctx, "test", models.DeleteIntent{ID: 99})
	require.NoError(t, err)
	assert.False(t, res.Applied)
}

func TestDispatchUnknownIntent(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.Dispatch(context.Background(), "test", bogusIntent{})
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

func TestProjectionForLeavesQueryAlone(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)
	s.RequestCreate(ctx, models.TaskFields{Title: "A", Priority: models.PriorityHigh})
	s.RequestCreate(ctx, models.TaskFields{Title: "B", Priority: models.PriorityLow})
	s.SetQuery("a")

	assert.Len(t, s.ProjectionFor(""), 2)
	assert.Equal(t, "a", s.Query())
	require.Len(t, s.Projection(), 1)
	assert.Equal(t, "A", s.Projection()[0].Title)
}

func TestDispatchCountsIntents(t *testing.T) {
	s, m := newSession(t)
	_, err := s.Dispatch(context.Background(), "kafka", models.QueryIntent{Query: "x"})
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(m.Registry(), "tasklist_intents_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
