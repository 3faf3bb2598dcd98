package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pagecraft/pagecraft/internal/domain/project"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
)

// ProjectRepository implements project.Repository
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) project.Repository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO projects (user_id, name, description, template_id, html, css, published, subdomain, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		p.UserID, p.Name, p.Description, p.TemplateID, p.HTML, p.CSS, p.Published, p.Subdomain,
		now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create project", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get project ID", err)
	}

	p.ID = id
	return nil
}

const projectColumns = `id, user_id, name, description, template_id, html, css, published, subdomain, created_at, updated_at`

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	var p project.Project
	var templateID sql.NullInt64
	var subdomain sql.NullString
	var createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &templateID, &p.HTML, &p.CSS,
		&p.Published, &subdomain, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Project")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get project", err)
	}

	if templateID.Valid {
		p.TemplateID = &templateID.Int64
	}
	if subdomain.Valid {
		p.Subdomain = &subdomain.String
	}
	p.CreatedAt = time.Unix(createdAt, 0)
	p.UpdatedAt = time.Unix(updatedAt, 0)

	return &p, nil
}

// Update updates a project
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	p.UpdatedAt = time.Now()

	query := `
		UPDATE projects
		SET name = ?, description = ?, template_id = ?, html = ?, css = ?, published = ?, subdomain = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.TemplateID, p.HTML, p.CSS, p.Published, p.Subdomain,
		p.UpdatedAt.Unix(), p.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update project", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Project")
	}

	return nil
}

// Delete deletes a project
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete project", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Project")
	}

	return nil
}

// ListByUser retrieves a user's projects with pagination
func (r *ProjectRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*project.Project, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count projects", err)
	}

	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = ? ORDER BY updated_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list projects", err)
	}
	defer rows.Close()

	var projects []*project.Project
	for rows.Next() {
		var p project.Project
		var templateID sql.NullInt64
		var subdomain sql.NullString
		var createdAt, updatedAt int64

		err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.Description, &templateID, &p.HTML, &p.CSS,
			&p.Published, &subdomain, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan project", err)
		}

		if templateID.Valid {
			p.TemplateID = &templateID.Int64
		}
		if subdomain.Valid {
			p.Subdomain = &subdomain.String
		}
		p.CreatedAt = time.Unix(createdAt, 0)
		p.UpdatedAt = time.Unix(updatedAt, 0)
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate projects", err)
	}

	return projects, total, nil
}
