package template

import "context"

// Repository defines the interface for template data access
type Repository interface {
	Create(ctx context.Context, t *Template) error
	GetByID(ctx context.Context, id int64) (*Template, error)

	// List retrieves templates, optionally filtered by category
	List(ctx context.Context, category string, limit, offset int) ([]*Template, int64, error)
}
