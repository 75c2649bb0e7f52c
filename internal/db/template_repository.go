package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opencode-ai/talk/internal/models"
)

// Template repository errors.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidTemplate  = errors.New("invalid template")
)

// TemplateRepository persists templates keyed by ID.
type TemplateRepository struct {
	db *DB
}

// NewTemplateRepository creates a new TemplateRepository.
func NewTemplateRepository(db *DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// ListOptions controls template listing.
type ListOptions struct {
	Order models.TemplateOrder // defaults to oldest first
	Limit int                  // 0 means no limit
}

// Put inserts or replaces a template. A missing ID is generated and zero
// timestamps are set to now.
func (r *TemplateRepository) Put(ctx context.Context, tmpl *models.Template) error {
	if tmpl == nil {
		return ErrInvalidTemplate
	}
	if err := tmpl.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	if tmpl.ID == "" {
		tmpl.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if tmpl.CreatedAt.IsZero() {
		tmpl.CreatedAt = now
	}
	if tmpl.UpdatedAt.IsZero() {
		tmpl.UpdatedAt = tmpl.CreatedAt
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO templates (id, title, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			body = excluded.body,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`,
		tmpl.ID,
		tmpl.Title,
		tmpl.Body,
		formatTime(tmpl.CreatedAt),
		formatTime(tmpl.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to put template: %w", err)
	}

	return nil
}

// Get retrieves a template by ID.
func (r *TemplateRepository) Get(ctx context.Context, id string) (*models.Template, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, body, created_at, updated_at
		FROM templates WHERE id = ?
	`, id)

	tmpl, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return tmpl, nil
}

// List returns all templates ordered by creation time.
func (r *TemplateRepository) List(ctx context.Context, opts ListOptions) ([]*models.Template, error) {
	query := `SELECT id, title, body, created_at, updated_at FROM templates`
	if opts.Order == models.TemplateOrderNewestFirst {
		query += ` ORDER BY created_at DESC, id DESC`
	} else {
		query += ` ORDER BY created_at, id`
	}

	args := []any{}
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	templates := make([]*models.Template, 0)
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}

	return templates, nil
}

// FindByIDPrefix returns templates whose ID starts with prefix.
func (r *TemplateRepository) FindByIDPrefix(ctx context.Context, prefix string) ([]*models.Template, error) {
	if prefix == "" {
		return []*models.Template{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, body, created_at, updated_at
		FROM templates
		WHERE substr(id, 1, ?) = ?
		ORDER BY created_at, id
	`, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	templates := make([]*models.Template, 0)
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}
	return templates, nil
}

// Delete removes a template by ID.
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// Count returns the number of stored templates.
func (r *TemplateRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM templates`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count templates: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*models.Template, error) {
	var tmpl models.Template
	var createdAt, updatedAt string

	if err := row.Scan(&tmpl.ID, &tmpl.Title, &tmpl.Body, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan template: %w", err)
	}

	var err error
	if tmpl.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at for template %s: %w", tmpl.ID, err)
	}
	if tmpl.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("invalid updated_at for template %s: %w", tmpl.ID, err)
	}

	return &tmpl, nil
}
