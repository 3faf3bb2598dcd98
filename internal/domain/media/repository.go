package media

import "context"

// Repository defines the interface for media metadata access
type Repository interface {
	Create(ctx context.Context, m *Media) error
	GetByID(ctx context.Context, id int64) (*Media, error)
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*Media, int64, error)
}
