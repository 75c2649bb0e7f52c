// Package events provides helper functions for logging template events.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/opencode-ai/talk/internal/models"
)

// Repository is the minimal interface needed to write events.
type Repository interface {
	Create(ctx context.Context, event *models.Event) error
}

// LogTemplateChanged records a created or updated template.
func LogTemplateChanged(ctx context.Context, repo Repository, eventType models.EventType, tmpl *models.Template, variables []string) error {
	if tmpl == nil {
		return fmt.Errorf("template is required")
	}
	if eventType != models.EventTypeTemplateCreated && eventType != models.EventTypeTemplateUpdated {
		return fmt.Errorf("unexpected event type %q", eventType)
	}
	return logTemplateEvent(ctx, repo, eventType, tmpl.ID, models.TemplateChangedPayload{
		Title:     tmpl.Title,
		Variables: variables,
	})
}

// LogTemplateDeleted records a deleted template.
func LogTemplateDeleted(ctx context.Context, repo Repository, templateID string) error {
	return logTemplateEvent(ctx, repo, models.EventTypeTemplateDeleted, templateID, nil)
}

// LogTemplateGenerated records text generated from a template.
func LogTemplateGenerated(ctx context.Context, repo Repository, templateID string, variables, missing []string, outputLength int) error {
	return logTemplateEvent(ctx, repo, models.EventTypeTemplateGenerated, templateID, models.TemplateGeneratedPayload{
		Variables:    variables,
		Missing:      missing,
		OutputLength: outputLength,
	})
}

// LogCopyFailed records a clipboard write failure.
func LogCopyFailed(ctx context.Context, repo Repository, templateID string, copyErr error) error {
	if copyErr == nil {
		return fmt.Errorf("copy error is required")
	}
	return logTemplateEvent(ctx, repo, models.EventTypeTemplateCopyFailed, templateID, models.CopyFailedPayload{
		Error: copyErr.Error(),
	})
}

func logTemplateEvent(ctx context.Context, repo Repository, eventType models.EventType, templateID string, payload any) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if templateID == "" {
		return fmt.Errorf("template id is required")
	}

	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
		}
		raw = data
	}

	return repo.Create(ctx, &models.Event{
		Type:       eventType,
		EntityType: models.EntityTypeTemplate,
		EntityID:   templateID,
		Payload:    raw,
	})
}
