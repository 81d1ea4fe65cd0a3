package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	QueryAnswered         = "QUERY_ANSWERED"
	ResourcesReloaded     = "RESOURCES_RELOADED"
	ResourcesReloadFailed = "RESOURCES_RELOAD_FAILED"
	UserNameChanged       = "USER_NAME_CHANGED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventID is unique per occurrence.
	EventID() string

	// EventType returns the unique code for this event (e.g., "QUERY_ANSWERED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher is anything events can be handed to.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string {
	return e.ID
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Marshal encodes any event as a BaseEvent envelope.
func Marshal(e Event) ([]byte, error) {
	return json.Marshal(BaseEvent{
		ID:         e.EventID(),
		Type:       e.EventType(),
		Data:       e.Payload(),
		OccurredAt: e.Timestamp(),
	})
}

func Unmarshal(data []byte) (BaseEvent, error) {
	var e BaseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return BaseEvent{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if e.Type == "" {
		return BaseEvent{}, fmt.Errorf("event without type")
	}
	return e, nil
}
