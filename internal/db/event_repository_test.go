package db

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/talk/internal/models"
)

func TestEventRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(openTestDB(t))

	payload, err := json.Marshal(models.TemplateGeneratedPayload{Variables: []string{"name"}, OutputLength: 8})
	require.NoError(t, err)

	event := &models.Event{
		Type:       models.EventTypeTemplateGenerated,
		EntityType: models.EntityTypeTemplate,
		EntityID:   "tmpl-1",
		Payload:    payload,
		Metadata:   map[string]string{"source": "test"},
	}
	require.NoError(t, repo.Create(ctx, event))
	require.NotEmpty(t, event.ID)

	got, err := repo.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EventTypeTemplateGenerated, got.Type)
	assert.Equal(t, "tmpl-1", got.EntityID)
	assert.Equal(t, "test", got.Metadata["source"])
	assert.JSONEq(t, string(payload), string(got.Payload))

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventRepositoryAppendRejectsInvalid(t *testing.T) {
	repo := NewEventRepository(openTestDB(t))

	err := repo.Append(context.Background(), &models.Event{Type: models.EventTypeTemplateCreated})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestEventRepositoryQueryPagination(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(openTestDB(t))

	base := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &models.Event{
			Type:       models.EventTypeTemplateUpdated,
			EntityType: models.EntityTypeTemplate,
			EntityID:   "tmpl-1",
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, &models.Event{
		Type:       models.EventTypeTemplateDeleted,
		EntityType: models.EntityTypeTemplate,
		EntityID:   "tmpl-2",
		Timestamp:  base,
	}))

	entityID := "tmpl-1"
	page, err := repo.Query(ctx, EventQuery{EntityID: &entityID, Limit: 3})
	require.NoError(t, err)
	require.Len(t, page.Events, 3)
	require.NotEmpty(t, page.NextCursor)

	next, err := repo.Query(ctx, EventQuery{EntityID: &entityID, Limit: 3, Cursor: page.NextCursor})
	require.NoError(t, err)
	assert.Len(t, next.Events, 2)
	assert.Empty(t, next.NextCursor)

	eventType := models.EventTypeTemplateDeleted
	deleted, err := repo.Query(ctx, EventQuery{Type: &eventType})
	require.NoError(t, err)
	require.Len(t, deleted.Events, 1)
	assert.Equal(t, "tmpl-2", deleted.Events[0].EntityID)

	since := base.Add(3 * time.Minute)
	recent, err := repo.Query(ctx, EventQuery{EntityID: &entityID, Since: &since})
	require.NoError(t, err)
	assert.Len(t, recent.Events, 2)
}

func TestEventRepositoryListByEntity(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(openTestDB(t))

	for _, eventType := range []models.EventType{models.EventTypeTemplateCreated, models.EventTypeTemplateGenerated} {
		require.NoError(t, repo.Create(ctx, &models.Event{
			Type:       eventType,
			EntityType: models.EntityTypeTemplate,
			EntityID:   "tmpl-9",
		}))
	}

	events, err := repo.ListByEntity(ctx, models.EntityTypeTemplate, "tmpl-9", 0)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
