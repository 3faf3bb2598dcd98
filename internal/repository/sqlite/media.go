package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pagecraft/pagecraft/internal/domain/media"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
)

// MediaRepository implements media.Repository
type MediaRepository struct {
	db *sql.DB
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *sql.DB) media.Repository {
	return &MediaRepository{db: db}
}

// Create creates a new media record
func (r *MediaRepository) Create(ctx context.Context, m *media.Media) error {
	now := time.Now()
	m.CreatedAt = now

	query := `
		INSERT INTO media (user_id, file_name, object_key, content_type, size_bytes, url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		m.UserID, m.FileName, m.ObjectKey, m.ContentType, m.SizeBytes, m.URL, now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create media", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get media ID", err)
	}

	m.ID = id
	return nil
}

const mediaColumns = `id, user_id, file_name, object_key, content_type, size_bytes, url, created_at`

// GetByID retrieves a media record by ID
func (r *MediaRepository) GetByID(ctx context.Context, id int64) (*media.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media WHERE id = ?`

	var m media.Media
	var createdAt int64

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.UserID, &m.FileName, &m.ObjectKey, &m.ContentType, &m.SizeBytes, &m.URL, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Media")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get media", err)
	}

	m.CreatedAt = time.Unix(createdAt, 0)
	return &m, nil
}

// Delete deletes a media record
func (r *MediaRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete media", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Media")
	}

	return nil
}

// ListByUser retrieves a user's media records with pagination
func (r *MediaRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*media.Media, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM media WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count media", err)
	}

	query := `SELECT ` + mediaColumns + ` FROM media WHERE user_id = ? ORDER BY id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list media", err)
	}
	defer rows.Close()

	var items []*media.Media
	for rows.Next() {
		var m media.Media
		var createdAt int64

		err := rows.Scan(
			&m.ID, &m.UserID, &m.FileName, &m.ObjectKey, &m.ContentType, &m.SizeBytes, &m.URL, &createdAt,
		)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan media", err)
		}

		m.CreatedAt = time.Unix(createdAt, 0)
		items = append(items, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate media", err)
	}

	return items, total, nil
}
