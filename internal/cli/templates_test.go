package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opencode-ai/talk/internal/models"
)

func TestTemplateChangedIgnoresTimestamps(t *testing.T) {
	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	before := &models.Template{ID: "1", Title: "Invite", Body: "Hi {{name}}", UpdatedAt: stamp}

	// Same timestamp, new body: the edit was saved.
	edited := &models.Template{ID: "1", Title: "Invite", Body: "Hello {{name}}", UpdatedAt: stamp}
	assert.True(t, templateChanged(before, edited))

	retitled := &models.Template{ID: "1", Title: "Invitation", Body: "Hi {{name}}", UpdatedAt: stamp}
	assert.True(t, templateChanged(before, retitled))

	same := &models.Template{ID: "1", Title: "Invite", Body: "Hi {{name}}", UpdatedAt: stamp.Add(time.Hour)}
	assert.False(t, templateChanged(before, same))
}
