package library

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/talk/internal/clipboard"
	"github.com/opencode-ai/talk/internal/db"
	"github.com/opencode-ai/talk/internal/models"
)

type fixture struct {
	service *Service
	events  *db.EventRepository
	sink    *clipboard.Memory
	clock   *fakeClock
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFixture(t *testing.T) *fixture {
	t.Helper()

	database, err := db.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.MigrateUp(context.Background())
	require.NoError(t, err)

	f := &fixture{
		events: db.NewEventRepository(database),
		sink:   &clipboard.Memory{},
		clock:  &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
	}
	f.service = NewService(
		db.NewTemplateRepository(database),
		WithEventRepository(f.events),
		WithClipboard(f.sink),
		WithClock(f.clock.Now),
	)
	return f
}

func TestCreateTrimsAndValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tmpl, err := f.service.Create(ctx, CreateInput{Title: "  Invite ", Body: "\nHello {{name}}\n"})
	require.NoError(t, err)
	assert.Equal(t, "Invite", tmpl.Title)
	assert.Equal(t, "Hello {{name}}", tmpl.Body)
	assert.NotEmpty(t, tmpl.ID)
	assert.Equal(t, f.clock.now, tmpl.CreatedAt)
	assert.Equal(t, tmpl.CreatedAt, tmpl.UpdatedAt)

	_, err = f.service.Create(ctx, CreateInput{Title: " ", Body: "x"})
	assert.ErrorIs(t, err, ErrInvalidTemplate)
	_, err = f.service.Create(ctx, CreateInput{Title: "x", Body: " "})
	assert.ErrorIs(t, err, ErrInvalidTemplate)

	history, err := f.events.ListByEntity(ctx, models.EntityTypeTemplate, tmpl.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.EventTypeTemplateCreated, history[0].Type)
}

func TestUpdateKeepsIdentityAndIsMonotonic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tmpl, err := f.service.Create(ctx, CreateInput{Title: "Invite", Body: "Hi {{name}}"})
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	updated, err := f.service.Update(ctx, tmpl.ID, UpdateInput{Title: "Invite v2", Body: "Hello {{name}}"})
	require.NoError(t, err)
	assert.Equal(t, tmpl.ID, updated.ID)
	assert.Equal(t, tmpl.CreatedAt, updated.CreatedAt)
	assert.Equal(t, f.clock.now, updated.UpdatedAt)

	// A clock that went backwards must not move UpdatedAt back.
	f.clock.Advance(-time.Hour)
	again, err := f.service.Update(ctx, tmpl.ID, UpdateInput{Title: "Invite v3", Body: "Hello {{name}}"})
	require.NoError(t, err)
	assert.Equal(t, updated.UpdatedAt, again.UpdatedAt)

	stored, err := f.service.Get(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Invite v3", stored.Title)

	_, err = f.service.Update(ctx, "missing", UpdateInput{Title: "a", Body: "b"})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestUpdateWithoutChangesKeepsTimestamp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tmpl, err := f.service.Create(ctx, CreateInput{Title: "Same", Body: "Body"})
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	unchanged, err := f.service.Update(ctx, tmpl.ID, UpdateInput{Title: "Same", Body: "Body "})
	require.NoError(t, err)
	assert.Equal(t, tmpl.UpdatedAt, unchanged.UpdatedAt)
}

func TestDuplicateCreatesNewID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	source, err := f.service.Create(ctx, CreateInput{Title: "Invite", Body: "Hi {{name}}"})
	require.NoError(t, err)

	copyTmpl, err := f.service.Duplicate(ctx, source.ID)
	require.NoError(t, err)
	assert.NotEqual(t, source.ID, copyTmpl.ID)
	assert.Equal(t, source.Title, copyTmpl.Title)
	assert.Equal(t, source.Body, copyTmpl.Body)

	count, err := f.service.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tmpl, err := f.service.Create(ctx, CreateInput{Title: "Bye", Body: "Bye {{name}}"})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, tmpl.ID))
	assert.ErrorIs(t, f.service.Delete(ctx, tmpl.ID), ErrTemplateNotFound)

	_, err = f.service.Get(ctx, tmpl.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestListNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.service.Create(ctx, CreateInput{Title: fmt.Sprintf("t%d", i), Body: "b"})
		require.NoError(t, err)
		f.clock.Advance(time.Second)
	}

	items, err := f.service.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "t2", items[0].Title)
	assert.Equal(t, "t0", items[2].Title)
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	added, err := f.service.Seed(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, added, 5)

	again, err := f.service.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again)

	count, err := f.service.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, added, count)
}

func TestFind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.service.newID = sequentialIDs("aaa-1", "aab-2", "ccc-3")
	invite, err := f.service.Create(ctx, CreateInput{Title: "Meeting invite", Body: "x"})
	require.NoError(t, err)
	followUp, err := f.service.Create(ctx, CreateInput{Title: "Follow-up email", Body: "x"})
	require.NoError(t, err)
	reminder, err := f.service.Create(ctx, CreateInput{Title: "Reminder", Body: "x"})
	require.NoError(t, err)

	got, err := f.service.Find(ctx, "ccc-3")
	require.NoError(t, err)
	assert.Equal(t, reminder.ID, got.ID)

	got, err = f.service.Find(ctx, "aab")
	require.NoError(t, err)
	assert.Equal(t, followUp.ID, got.ID)

	_, err = f.service.Find(ctx, "aa")
	assert.ErrorIs(t, err, ErrAmbiguousReference)

	got, err = f.service.Find(ctx, "reminder")
	require.NoError(t, err)
	assert.Equal(t, reminder.ID, got.ID)

	got, err = f.service.Find(ctx, "mtginv")
	require.NoError(t, err)
	assert.Equal(t, invite.ID, got.ID)

	_, err = f.service.Find(ctx, "zzzz")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestFindPrefersTitleOverIDPrefix(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.service.newID = sequentialIDs("beef0001-aaaa", "c0ffee02-bbbb")
	_, err := f.service.Create(ctx, CreateInput{Title: "Invoice", Body: "x"})
	require.NoError(t, err)
	beef, err := f.service.Create(ctx, CreateInput{Title: "beef", Body: "y"})
	require.NoError(t, err)

	got, err := f.service.Find(ctx, "beef")
	require.NoError(t, err)
	assert.Equal(t, beef.ID, got.ID)
	assert.Equal(t, "beef", got.Title)

	got, err = f.service.Find(ctx, "BEEF")
	require.NoError(t, err)
	assert.Equal(t, beef.ID, got.ID)

	// A longer prefix no title matches still resolves by ID.
	got, err = f.service.Find(ctx, "beef0001")
	require.NoError(t, err)
	assert.Equal(t, "Invoice", got.Title)
}

func TestGenerate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tmpl, err := f.service.Create(ctx, CreateInput{Title: "Invite", Body: "Hi {{name}}, {{missing}} at {{time}}"})
	require.NoError(t, err)

	result, err := f.service.Generate(ctx, tmpl.ID, map[string]string{"name": "Sam", "time": "", "unused": "x"})
	require.NoError(t, err)
	assert.Equal(t, "Hi Sam,  at ", result.Text)
	assert.Equal(t, []string{"name", "missing", "time"}, result.Variables)
	assert.Equal(t, []string{"missing", "time"}, result.Missing)

	generated := models.EventTypeTemplateGenerated
	page, err := f.events.Query(ctx, db.EventQuery{Type: &generated})
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	assert.Equal(t, tmpl.ID, page.Events[0].EntityID)

	_, err = f.service.Generate(ctx, "missing", nil)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestCopyToClipboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.CopyToClipboard(ctx, "tmpl-1", "Hi Sam"))
	assert.Equal(t, "Hi Sam", f.sink.Text)

	f.sink.Err = errors.New("permission denied")
	err := f.service.CopyToClipboard(ctx, "tmpl-1", "again")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")

	failed := models.EventTypeTemplateCopyFailed
	page, err := f.events.Query(ctx, db.EventQuery{Type: &failed})
	require.NoError(t, err)
	assert.Len(t, page.Events, 1)

	noSink := NewService(nil)
	assert.ErrorIs(t, noSink.CopyToClipboard(ctx, "tmpl-1", "x"), ErrNoClipboard)
}

func sequentialIDs(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i]
		i++
		return id
	}
}
