package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pagecraft/pagecraft/internal/domain/template"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
)

// TemplateRepository implements template.Repository
type TemplateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(db *sql.DB) template.Repository {
	return &TemplateRepository{db: db}
}

// Create creates a new template
func (r *TemplateRepository) Create(ctx context.Context, t *template.Template) error {
	now := time.Now()
	t.CreatedAt = now

	query := `
		INSERT INTO templates (name, category, description, preview_url, html, css, is_premium, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.Category, t.Description, t.PreviewURL, t.HTML, t.CSS, t.IsPremium, now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create template", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get template ID", err)
	}

	t.ID = id
	return nil
}

const templateColumns = `id, name, category, description, preview_url, html, css, is_premium, created_at`

// GetByID retrieves a template by ID
func (r *TemplateRepository) GetByID(ctx context.Context, id int64) (*template.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE id = ?`

	var t template.Template
	var createdAt int64

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Category, &t.Description, &t.PreviewURL, &t.HTML, &t.CSS, &t.IsPremium, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Template")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get template", err)
	}

	t.CreatedAt = time.Unix(createdAt, 0)
	return &t, nil
}

// List retrieves templates, optionally filtered by category
func (r *TemplateRepository) List(ctx context.Context, category string, limit, offset int) ([]*template.Template, int64, error) {
	countQuery := `SELECT COUNT(*) FROM templates`
	listQuery := `SELECT ` + templateColumns + ` FROM templates`
	args := []interface{}{}

	if category != "" {
		countQuery += ` WHERE category = ?`
		listQuery += ` WHERE category = ?`
		args = append(args, category)
	}
	listQuery += ` ORDER BY id LIMIT ? OFFSET ?`

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count templates", err)
	}

	rows, err := r.db.QueryContext(ctx, listQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list templates", err)
	}
	defer rows.Close()

	var templates []*template.Template
	for rows.Next() {
		var t template.Template
		var createdAt int64

		err := rows.Scan(
			&t.ID, &t.Name, &t.Category, &t.Description, &t.PreviewURL, &t.HTML, &t.CSS, &t.IsPremium, &createdAt,
		)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan template", err)
		}

		t.CreatedAt = time.Unix(createdAt, 0)
		templates = append(templates, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate templates", err)
	}

	return templates, total, nil
}
