package models

import (
	"encoding/json"
	"fmt"
)

// Intent is a user request coming from a presentation collaborator.
// It is one of CreateIntent, EditIntent, DeleteIntent or QueryIntent.
type Intent interface {
	intent()
}

// CreateIntent asks for a new task built from Fields.
type CreateIntent struct {
	Fields TaskFields
}

// EditIntent replaces the editable fields of the task with Task.ID.
type EditIntent struct {
	Task Task
}

// DeleteIntent removes the task with ID.
type DeleteIntent struct {
	ID int64
}

// QueryIntent sets the free-text search query.
type QueryIntent struct {
	Query string
}

func (CreateIntent) intent() {}
func (EditIntent) intent()   {}
func (DeleteIntent) intent() {}
func (QueryIntent) intent()  {}

// Intent actions on the wire.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionQuery  = "query"
)

// IntentMessage is the message payload for Kafka (create/update/delete/query).
type IntentMessage struct {
	Action string `json:"action"`
	Task   *Task  `json:"task,omitempty"`
	ID     int64  `json:"id,omitempty"`
	Query  string `json:"query,omitempty"`
}

// EncodeIntent converts an intent into its wire message.
func EncodeIntent(in Intent) (IntentMessage, error) {
	switch v := in.(type) {
	case CreateIntent:
		f := v.Fields
		return IntentMessage{Action: ActionCreate, Task: &Task{
			Title:       f.Title,
			Description: f.Description,
			Priority:    f.Priority,
			DueDate:     f.DueDate,
			Completed:   f.Completed,
		}}, nil
	case EditIntent:
		t := v.Task
		return IntentMessage{Action: ActionUpdate, Task: &t, ID: t.ID}, nil
	case DeleteIntent:
		return IntentMessage{Action: ActionDelete, ID: v.ID}, nil
	case QueryIntent:
		return IntentMessage{Action: ActionQuery, Query: v.Query}, nil
	default:
		return IntentMessage{}, fmt.Errorf("unsupported intent %T", in)
	}
}

// DecodeIntent parses a wire payload into an intent.
func DecodeIntent(payload []byte) (Intent, error) {
	var msg IntentMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("decode intent: %w", err)
	}
	return msg.Intent()
}

// Intent returns the typed intent carried by m.
func (m IntentMessage) Intent() (Intent, error) {
	switch m.Action {
	case ActionCreate:
		if m.Task == nil {
			return CreateIntent{}, nil
		}
		return CreateIntent{Fields: m.Task.Fields()}, nil
	case ActionUpdate:
		if m.Task == nil {
			return nil, fmt.Errorf("update intent without task")
		}
		t := *m.Task
		if t.ID == 0 {
			t.ID = m.ID
		}
		return EditIntent{Task: t}, nil
	case ActionDelete:
		return DeleteIntent{ID: m.ID}, nil
	case ActionQuery:
		return QueryIntent{Query: m.Query}, nil
	default:
		return nil, fmt.Errorf("unknown intent action %q", m.Action)
	}
}
