package project

import "context"

// CreateInput carries the fields accepted when creating a project
type CreateInput struct {
	Name        string
	Description string
	TemplateID  *int64
	HTML        string
	CSS         string
}

// UpdateInput carries the mutable project fields; nil means unchanged
type UpdateInput struct {
	Name        *string
	Description *string
	HTML        *string
	CSS         *string
	Subdomain   *string
}

// Service defines the interface for project business logic. All
// operations enforce owner-or-admin access for the acting user.
type Service interface {
	Create(ctx context.Context, userID int64, in CreateInput) (*Project, error)
	Get(ctx context.Context, actorID int64, actorRole string, id int64) (*Project, error)
	Update(ctx context.Context, actorID int64, actorRole string, id int64, in UpdateInput) (*Project, error)
	Delete(ctx context.Context, actorID int64, actorRole string, id int64) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*Project, int64, error)
	SetPublished(ctx context.Context, actorID int64, actorRole string, id int64, published bool) (*Project, error)
}
