package models

import (
	"encoding/json"
	"strings"
	"time"
)

// EventType categorizes events in the system.
type EventType string

const (
	// Template events
	EventTypeTemplateCreated    EventType = "template.created"
	EventTypeTemplateUpdated    EventType = "template.updated"
	EventTypeTemplateDeleted    EventType = "template.deleted"
	EventTypeTemplateGenerated  EventType = "template.generated"
	EventTypeTemplateCopyFailed EventType = "template.copy_failed"
)

// EntityType identifies the type of entity an event relates to.
type EntityType string

const (
	EntityTypeTemplate EntityType = "template"
)

// Event represents an append-only log entry.
type Event struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type EventType `json:"type"`

	// EntityType identifies what kind of entity this event relates to.
	EntityType EntityType `json:"entity_type"`

	// EntityID is the ID of the related entity.
	EntityID string `json:"entity_id"`

	// Payload contains event-specific data.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Metadata contains additional context.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate checks if the event is valid.
func (e *Event) Validate() error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(string(e.Type)) == "" {
		validation.AddMessage("type", "event type is required")
	}
	if strings.TrimSpace(string(e.EntityType)) == "" {
		validation.AddMessage("entity_type", "entity_type is required")
	}
	if strings.TrimSpace(e.EntityID) == "" {
		validation.AddMessage("entity_id", "entity_id is required")
	}
	return validation.Err()
}

// TemplateChangedPayload is the payload for template.created and template.updated events.
type TemplateChangedPayload struct {
	Title     string   `json:"title"`
	Variables []string `json:"variables"`
}

// TemplateGeneratedPayload is the payload for template.generated events.
type TemplateGeneratedPayload struct {
	Variables    []string `json:"variables"`
	Missing      []string `json:"missing,omitempty"`
	OutputLength int      `json:"output_length"`
}

// CopyFailedPayload is the payload for template.copy_failed events.
type CopyFailedPayload struct {
	Error string `json:"error"`
}
