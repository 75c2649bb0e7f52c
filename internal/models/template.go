package models

import (
	"strings"
	"time"
)

// Template is a stored title and body pair. The body may contain
// {{name}} placeholders.
type Template struct {
	// ID is the unique identifier for the template. It never changes.
	ID string `json:"id"`

	// Title is the display name.
	Title string `json:"title"`

	// Body is the text with placeholders.
	Body string `json:"body"`

	// CreatedAt is when the template was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the title or body last changed.
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks if the template is valid.
func (t *Template) Validate() error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(t.Title) == "" {
		validation.AddMessage("title", "title is required")
	}
	if strings.TrimSpace(t.Body) == "" {
		validation.AddMessage("body", "body is required")
	}
	if !t.CreatedAt.IsZero() && !t.UpdatedAt.IsZero() && t.UpdatedAt.Before(t.CreatedAt) {
		validation.AddMessage("updated_at", "updated_at must not be before created_at")
	}
	return validation.Err()
}

// Touch sets UpdatedAt to now, never moving it backwards.
func (t *Template) Touch(now time.Time) {
	now = now.UTC()
	if now.Before(t.UpdatedAt) {
		return
	}
	t.UpdatedAt = now
}

// TemplateOrder selects the listing order for templates.
type TemplateOrder string

const (
	TemplateOrderOldestFirst TemplateOrder = "oldest"
	TemplateOrderNewestFirst TemplateOrder = "newest"
)
