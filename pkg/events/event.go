package events

import (
	"time"

	"cet-mentor-be/internal/entity"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "FEEDBACK_RECORDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent embeds common event plumbing.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
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

const TypeFeedbackRecorded = "FEEDBACK_RECORDED"

// NewFeedbackRecorded builds the event emitted after a feedback entry has
// been durably written.
func NewFeedbackRecorded(fb entity.Feedback) Event {
	return BaseEvent{
		Type: TypeFeedbackRecorded,
		Data: map[string]interface{}{
			"id":         fb.Id.String(),
			"type":       fb.Type,
			"message":    fb.Message,
			"response":   fb.Response,
			"correction": fb.Correction,
			"created_at": fb.CreatedAt.Format(time.RFC3339),
		},
		OccurredAt: fb.CreatedAt,
	}
}
