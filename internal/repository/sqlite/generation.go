package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pagecraft/pagecraft/internal/domain/generation"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
)

// GenerationRepository implements generation.Repository
type GenerationRepository struct {
	db *sql.DB
}

// NewGenerationRepository creates a new generation repository
func NewGenerationRepository(db *sql.DB) generation.Repository {
	return &GenerationRepository{db: db}
}

// Append writes a new generation record
func (r *GenerationRepository) Append(ctx context.Context, rec *generation.Record) error {
	now := time.Now()
	rec.CreatedAt = now

	query := `
		INSERT INTO generations (user_id, prompt, result, tokens_used, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		rec.UserID, rec.Prompt, rec.Result, rec.TokensUsed, now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to record generation", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get generation ID", err)
	}

	rec.ID = id
	return nil
}

// ListByUser retrieves a user's generation records, newest first
func (r *GenerationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*generation.Record, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM generations WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count generations", err)
	}

	query := `
		SELECT id, user_id, prompt, result, tokens_used, created_at
		FROM generations WHERE user_id = ? ORDER BY id DESC LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list generations", err)
	}
	defer rows.Close()

	var records []*generation.Record
	for rows.Next() {
		var rec generation.Record
		var createdAt int64

		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Prompt, &rec.Result, &rec.TokensUsed, &createdAt); err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan generation", err)
		}

		rec.CreatedAt = time.Unix(createdAt, 0)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate generations", err)
	}

	return records, total, nil
}

// Count returns the total number of generation records
func (r *GenerationRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM generations`).Scan(&total); err != nil {
		return 0, errors.DatabaseError("Failed to count generations", err)
	}
	return total, nil
}
