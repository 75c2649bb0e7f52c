// Package library implements template management and text generation on top
// of the template store.
package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sahilm/fuzzy"

	"github.com/opencode-ai/talk/internal/clipboard"
	"github.com/opencode-ai/talk/internal/db"
	"github.com/opencode-ai/talk/internal/events"
	"github.com/opencode-ai/talk/internal/models"
	"github.com/opencode-ai/talk/internal/templates"
)

// Service errors.
var (
	ErrTemplateNotFound   = errors.New("template not found")
	ErrInvalidTemplate    = errors.New("invalid template")
	ErrAmbiguousReference = errors.New("template reference is ambiguous")
	ErrNoClipboard        = errors.New("no clipboard configured")
)

// Store is the record store the service depends on.
type Store interface {
	List(ctx context.Context, opts db.ListOptions) ([]*models.Template, error)
	Get(ctx context.Context, id string) (*models.Template, error)
	FindByIDPrefix(ctx context.Context, prefix string) ([]*models.Template, error)
	Put(ctx context.Context, tmpl *models.Template) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Service manages templates.
type Service struct {
	store     Store
	events    events.Repository
	clipboard clipboard.Sink
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// Option configures a Service.
type Option func(*Service)

// WithEventRepository records template events.
func WithEventRepository(repo events.Repository) Option {
	return func(s *Service) { s.events = repo }
}

// WithClipboard sets the sink used by CopyToClipboard.
func WithClipboard(sink clipboard.Sink) Option {
	return func(s *Service) { s.clipboard = sink }
}

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service over store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: zerolog.Nop(),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput holds fields for a new template.
type CreateInput struct {
	Title string
	Body  string
}

// UpdateInput holds replacement fields for a template.
type UpdateInput struct {
	Title string
	Body  string
}

// Create stores a new template.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Template, error) {
	now := s.now().UTC()
	tmpl := &models.Template{
		ID:        s.newID(),
		Title:     strings.TrimSpace(input.Title),
		Body:      strings.TrimSpace(input.Body),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tmpl.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	if err := s.store.Put(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	s.logger.Info().Str("template_id", tmpl.ID).Str("title", tmpl.Title).Msg("template created")
	s.recordEvent(func() error {
		return events.LogTemplateChanged(ctx, s.events, models.EventTypeTemplateCreated, tmpl, templates.ExtractVariables(tmpl.Body))
	})
	return tmpl, nil
}

// Update replaces the title and body of a template. The ID and creation
// time are kept and UpdatedAt never moves backwards.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*models.Template, error) {
	tmpl, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	if title == tmpl.Title && body == tmpl.Body {
		return tmpl, nil
	}

	tmpl.Title = title
	tmpl.Body = body
	tmpl.Touch(s.now())
	if err := tmpl.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	if err := s.store.Put(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	s.logger.Info().Str("template_id", tmpl.ID).Msg("template updated")
	s.recordEvent(func() error {
		return events.LogTemplateChanged(ctx, s.events, models.EventTypeTemplateUpdated, tmpl, templates.ExtractVariables(tmpl.Body))
	})
	return tmpl, nil
}

// Duplicate creates a new template with the same title and body as id.
func (s *Service) Duplicate(ctx context.Context, id string) (*models.Template, error) {
	source, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, CreateInput{Title: source.Title, Body: source.Body})
}

// Delete removes a template.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, db.ErrTemplateNotFound) {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
		}
		return fmt.Errorf("failed to delete template: %w", err)
	}

	s.logger.Info().Str("template_id", id).Msg("template deleted")
	s.recordEvent(func() error {
		return events.LogTemplateDeleted(ctx, s.events, id)
	})
	return nil
}

// Get returns a template by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Template, error) {
	tmpl, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrTemplateNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
		}
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return tmpl, nil
}

// List returns all templates, newest first.
func (s *Service) List(ctx context.Context) ([]*models.Template, error) {
	items, err := s.store.List(ctx, db.ListOptions{Order: models.TemplateOrderNewestFirst})
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return items, nil
}

// Count returns the number of stored templates.
func (s *Service) Count(ctx context.Context) (int, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count templates: %w", err)
	}
	return count, nil
}

// Find resolves a reference: an exact ID, a case-insensitive exact title, a
// unique ID prefix, then the best fuzzy title match. Titles win over ID
// prefixes so a title such as "beef" never resolves to another template.
func (s *Service) Find(ctx context.Context, ref string) (*models.Template, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrTemplateNotFound)
	}

	if tmpl, err := s.store.Get(ctx, ref); err == nil {
		return tmpl, nil
	} else if !errors.Is(err, db.ErrTemplateNotFound) {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	tmpl, err := matchExactTitle(all, ref)
	if tmpl != nil || err != nil {
		return tmpl, err
	}

	byPrefix, err := s.store.FindByIDPrefix(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve template: %w", err)
	}
	if len(byPrefix) == 1 {
		return byPrefix[0], nil
	}
	if len(byPrefix) > 1 {
		return nil, fmt.Errorf("%w: %q matches %d ids", ErrAmbiguousReference, ref, len(byPrefix))
	}

	return matchFuzzyTitle(all, ref)
}

// matchExactTitle returns nil, nil when no title matches.
func matchExactTitle(items []*models.Template, ref string) (*models.Template, error) {
	var exact []*models.Template
	for _, item := range items {
		if strings.EqualFold(item.Title, ref) {
			exact = append(exact, item)
		}
	}
	switch len(exact) {
	case 0:
		return nil, nil
	case 1:
		return exact[0], nil
	default:
		return nil, fmt.Errorf("%w: %d templates titled %q", ErrAmbiguousReference, len(exact), ref)
	}
}

func matchFuzzyTitle(items []*models.Template, ref string) (*models.Template, error) {
	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}
	matches := fuzzy.Find(ref, titles)
	switch {
	case len(matches) == 0:
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, ref)
	case len(matches) == 1 || matches[0].Score > matches[1].Score:
		return items[matches[0].Index], nil
	default:
		return nil, fmt.Errorf("%w: %q matches %q and %q", ErrAmbiguousReference, ref, matches[0].Str, matches[1].Str)
	}
}

// Seed stores the builtin starter templates when the store is empty and
// returns how many were added.
func (s *Service) Seed(ctx context.Context) (int, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	builtins, err := templates.LoadBuiltinTemplates()
	if err != nil {
		return 0, err
	}
	added, err := s.Import(ctx, builtins)
	if err != nil {
		return added, err
	}
	s.logger.Debug().Int("count", added).Msg("seeded starter templates")
	return added, nil
}

// Import stores starter templates as new records.
func (s *Service) Import(ctx context.Context, starters []*templates.Template) (int, error) {
	added := 0
	for _, starter := range starters {
		if _, err := s.Create(ctx, CreateInput{Title: starter.Title, Body: starter.Body}); err != nil {
			return added, fmt.Errorf("import %s: %w", starter.Name, err)
		}
		added++
	}
	return added, nil
}

// GenerateResult is the outcome of Generate.
type GenerateResult struct {
	Template  *models.Template `json:"template"`
	Variables []string         `json:"variables"`
	Missing   []string         `json:"missing"`
	Text      string           `json:"text"`
}

// Generate substitutes values into the template body. Variables without a
// value become empty strings and are reported in Missing.
func (s *Service) Generate(ctx context.Context, id string, values map[string]string) (*GenerateResult, error) {
	tmpl, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		Template:  tmpl,
		Variables: templates.ExtractVariables(tmpl.Body),
		Missing:   templates.MissingVariables(tmpl.Body, values),
		Text:      templates.ReplaceVariables(tmpl.Body, values),
	}

	s.logger.Debug().
		Str("template_id", tmpl.ID).
		Int("variables", len(result.Variables)).
		Int("missing", len(result.Missing)).
		Msg("generated text")
	s.recordEvent(func() error {
		return events.LogTemplateGenerated(ctx, s.events, tmpl.ID, result.Variables, result.Missing, len(result.Text))
	})
	return result, nil
}

// CopyToClipboard writes generated text to the configured sink. Failures are
// recorded and returned without retrying.
func (s *Service) CopyToClipboard(ctx context.Context, templateID, text string) error {
	if s.clipboard == nil {
		return ErrNoClipboard
	}
	if err := s.clipboard.Write(ctx, text); err != nil {
		s.logger.Warn().Err(err).Str("template_id", templateID).Msg("clipboard write failed")
		s.recordEvent(func() error {
			return events.LogCopyFailed(ctx, s.events, templateID, err)
		})
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

func (s *Service) recordEvent(write func() error) {
	if s.events == nil {
		return
	}
	if err := write(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record event")
	}
}
