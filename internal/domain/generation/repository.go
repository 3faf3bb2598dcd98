package generation

import "context"

// Repository defines the interface for the append-only generation log
type Repository interface {
	// Append writes a new record. Records are never updated.
	Append(ctx context.Context, rec *Record) error

	// ListByUser retrieves a user's records, newest first
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*Record, int64, error)

	// Count returns the total number of records in the store
	Count(ctx context.Context) (int64, error)
}
