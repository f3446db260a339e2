package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// EventType names a committed mutation of the record store.
type EventType string

const (
	EventExpenseCreated EventType = "expense.created"
	EventExpenseDeleted EventType = "expense.deleted"
)

// ExpenseEvent is published after a mutation has been committed. It carries
// only the id; consumers reread the store for the current state.
type ExpenseEvent struct {
	Type      EventType `json:"type"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseEvent(t EventType, id int64) ExpenseEvent {
	return ExpenseEvent{
		Type:      t,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseEventFromJSON decodes and checks an event body.
func ExpenseEventFromJSON(data []byte) (ExpenseEvent, error) {
	var e ExpenseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return ExpenseEvent{}, err
	}
	switch e.Type {
	case EventExpenseCreated, EventExpenseDeleted:
	case "":
		return ExpenseEvent{}, errors.New("missing event type")
	default:
		return ExpenseEvent{}, fmt.Errorf("unknown event type %q", e.Type)
	}
	return e, nil
}
