package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/opencode-ai/talk/internal/models"
)

type fakeRepo struct {
	last *models.Event
}

func (r *fakeRepo) Create(ctx context.Context, event *models.Event) error {
	r.last = event
	return nil
}

func TestLogTemplateGenerated(t *testing.T) {
	repo := &fakeRepo{}

	if err := LogTemplateGenerated(context.Background(), repo, "tmpl-1", []string{"name", "time"}, []string{"time"}, 12); err != nil {
		t.Fatalf("LogTemplateGenerated failed: %v", err)
	}

	if repo.last == nil {
		t.Fatal("expected event to be created")
	}
	if repo.last.Type != models.EventTypeTemplateGenerated {
		t.Fatalf("unexpected event type: %q", repo.last.Type)
	}
	if repo.last.EntityID != "tmpl-1" {
		t.Fatalf("unexpected entity id: %q", repo.last.EntityID)
	}

	var payload models.TemplateGeneratedPayload
	if err := json.Unmarshal(repo.last.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.OutputLength != 12 || len(payload.Missing) != 1 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestLogTemplateChanged(t *testing.T) {
	repo := &fakeRepo{}
	tmpl := &models.Template{ID: "tmpl-2", Title: "Invite"}

	if err := LogTemplateChanged(context.Background(), repo, models.EventTypeTemplateUpdated, tmpl, []string{"name"}); err != nil {
		t.Fatalf("LogTemplateChanged failed: %v", err)
	}
	if repo.last.Type != models.EventTypeTemplateUpdated {
		t.Fatalf("unexpected event type: %q", repo.last.Type)
	}

	if err := LogTemplateChanged(context.Background(), repo, models.EventTypeTemplateDeleted, tmpl, nil); err == nil {
		t.Fatal("expected error for unrelated event type")
	}
}

func TestLogTemplateDeletedHasNoPayload(t *testing.T) {
	repo := &fakeRepo{}

	if err := LogTemplateDeleted(context.Background(), repo, "tmpl-3"); err != nil {
		t.Fatalf("LogTemplateDeleted failed: %v", err)
	}
	if len(repo.last.Payload) != 0 {
		t.Fatalf("expected empty payload, got %s", repo.last.Payload)
	}
}

func TestLogRequiresRepositoryAndID(t *testing.T) {
	if err := LogTemplateDeleted(context.Background(), nil, "tmpl-1"); err == nil {
		t.Fatal("expected error for nil repository")
	}
	if err := LogCopyFailed(context.Background(), &fakeRepo{}, "", errors.New("denied")); err == nil {
		t.Fatal("expected error for empty template id")
	}
}
