package user

import "context"

// Service defines the interface for account business logic
type Service interface {
	// Register creates a new account with free-plan defaults
	Register(ctx context.Context, email, name, password string) (*User, error)

	// Authenticate verifies credentials and returns the account
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// List retrieves all users with pagination
	List(ctx context.Context, limit, offset int) ([]*User, int64, error)

	// UpdateRole changes a user's role (admin operation)
	UpdateRole(ctx context.Context, id int64, role string) (*User, error)

	// Delete removes a user. Actors cannot delete themselves.
	Delete(ctx context.Context, actorID, id int64) error
}
