package project

import "context"

// Repository defines the interface for project data access
type Repository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id int64) (*Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id int64) error

	// ListByUser retrieves a user's projects with pagination
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*Project, int64, error)
}
