package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 0, PriorityHigh.Rank())
	assert.Equal(t, 1, PriorityMedium.Rank())
	assert.Equal(t, 2, PriorityLow.Rank())
	assert.Equal(t, 2, Priority("").Rank())
	assert.Equal(t, 2, Priority("urgent").Rank())

	assert.True(t, PriorityLow.Valid())
	assert.False(t, Priority("").Valid())
}

func TestTaskFieldsNormalize(t *testing.T) {
	assert.Equal(t, PriorityMedium, TaskFields{}.Normalize().Priority)
	assert.Equal(t, PriorityHigh, TaskFields{Priority: PriorityHigh}.Normalize().Priority)
}

func TestTaskJSONOmitsAbsentFields(t *testing.T) {
	b, err := json.Marshal(Task{ID: 7})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7}`, string(b))

	created := time.Date(2024, 5, 1, 9, 30, 0, 123000000, time.UTC)
	b, err = json.Marshal(Task{ID: 8, Title: "A", Priority: PriorityHigh, CreatedAt: At(created), Completed: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":8,"title":"A","priority":"high","createdAt":"2024-05-01T09:30:00.123Z","completed":true}`, string(b))
}

func TestTaskJSONReadsBrowserBlob(t *testing.T) {
	blob := `{"id":1714555800123,"title":"Buy milk","priority":"low","dueDate":"2024-05-02","createdAt":"2024-05-01T09:30:00.123Z","updatedAt":"2024-05-01T09:30:00.123Z","completed":false}`
	var task Task
	require.NoError(t, json.Unmarshal([]byte(blob), &task))
	assert.Equal(t, int64(1714555800123), task.ID)
	assert.Equal(t, PriorityLow, task.Priority)
	assert.Equal(t, "2024-05-02", task.DueDate)
	assert.True(t, task.CreatedAt.Equal(task.UpdatedAt.Time))
}

func TestTaskJSONReadsISOTimestampVariants(t *testing.T) {
	blob := `[
		{"id":1,"createdAt":"2024-05-01T10:00:00.000Z"},
		{"id":2,"createdAt":"2024-05-01T10:00:00"},
		{"id":3,"createdAt":"2024-05-01T10:00:00.250"},
		{"id":4,"createdAt":"2024-05-01T12:00:00+02:00"},
		{"id":5,"createdAt":"2024-05-01T10:00"},
		{"id":6,"createdAt":"2024-05-01"},
		{"id":7,"createdAt":null,"updatedAt":""}
	]`
	var tasks []Task
	require.NoError(t, json.Unmarshal([]byte(blob), &tasks))
	require.Len(t, tasks, 7)

	ten := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, At(ten), tasks[0].CreatedAt)
	assert.Equal(t, At(ten), tasks[1].CreatedAt)
	assert.Equal(t, At(ten.Add(250*time.Millisecond)), tasks[2].CreatedAt)
	assert.Equal(t, At(ten), tasks[3].CreatedAt)
	assert.Equal(t, At(ten), tasks[4].CreatedAt)
	assert.Equal(t, At(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)), tasks[5].CreatedAt)
	assert.True(t, tasks[6].CreatedAt.IsZero())
	assert.True(t, tasks[6].UpdatedAt.IsZero())
}

func TestTimestampWritesRFC3339(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"createdAt":"2024-05-01T10:00:00"}`), &task))

	b, err := json.Marshal(task)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"createdAt":"2024-05-01T10:00:00Z"}`, string(b))
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var task Task
	assert.Error(t, json.Unmarshal([]byte(`{"id":1,"createdAt":"yesterday"}`), &task))
	assert.Error(t, json.Unmarshal([]byte(`{"id":1,"createdAt":12}`), &task))
}

func TestIntentWireRoundTrip(t *testing.T) {
	intents := []Intent{
		CreateIntent{Fields: TaskFields{Title: "A", Priority: PriorityHigh}},
		EditIntent{Task: Task{ID: 3, Title: "B", Completed: true}},
		DeleteIntent{ID: 4},
		QueryIntent{Query: "milk"},
	}
	for _, in := range intents {
		msg, err := EncodeIntent(in)
		require.NoError(t, err)
		payload, err := json.Marshal(msg)
		require.NoError(t, err)

		got, err := DecodeIntent(payload)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}

func TestDecodeIntentErrors(t *testing.T) {
	_, err := DecodeIntent([]byte(`{"action":"archive"}`))
	assert.Error(t, err)

	_, err = DecodeIntent([]byte(`{"action":"update","id":3}`))
	assert.Error(t, err)

	_, err = DecodeIntent([]byte(`not json`))
	assert.Error(t, err)
}

func TestDecodeUpdateTakesEnvelopeID(t *testing.T) {
	got, err := DecodeIntent([]byte(`{"action":"update","id":9,"task":{"title":"x"}}`))
	require.NoError(t, err)
	assert.Equal(t, EditIntent{Task: Task{ID: 9, Title: "x"}}, got)
}
