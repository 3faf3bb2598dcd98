package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pagecraft/pagecraft/internal/domain/user"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) user.Repository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now()
	u.CreatedAt = now

	query := `
		INSERT INTO users (email, name, password_hash, role, plan_type, subscription_status,
			ai_generations_used, ai_generations_limit, stripe_customer_id, stripe_subscription_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		u.Email, u.Name, u.PasswordHash, u.Role, u.PlanType, u.SubscriptionStatus,
		u.AIGenerationsUsed, u.AIGenerationsLimit, u.StripeCustomerID, u.StripeSubscriptionID, now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get user ID", err)
	}

	u.ID = id
	return nil
}

const userColumns = `id, email, name, password_hash, role, plan_type, subscription_status,
	ai_generations_used, ai_generations_limit, stripe_customer_id, stripe_subscription_id, created_at`

func scanUser(row *sql.Row) (*user.User, error) {
	var u user.User
	var stripeCustomer, stripeSubscription sql.NullString
	var createdAt int64

	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.PlanType, &u.SubscriptionStatus,
		&u.AIGenerationsUsed, &u.AIGenerationsLimit, &stripeCustomer, &stripeSubscription, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	if stripeCustomer.Valid {
		u.StripeCustomerID = &stripeCustomer.String
	}
	if stripeSubscription.Valid {
		u.StripeSubscriptionID = &stripeSubscription.String
	}
	u.CreatedAt = time.Unix(createdAt, 0)

	return &u, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET email = ?, name = ?, password_hash = ?, role = ?, plan_type = ?, subscription_status = ?,
			ai_generations_used = ?, ai_generations_limit = ?, stripe_customer_id = ?, stripe_subscription_id = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		u.Email, u.Name, u.PasswordHash, u.Role, u.PlanType, u.SubscriptionStatus,
		u.AIGenerationsUsed, u.AIGenerationsLimit, u.StripeCustomerID, u.StripeSubscriptionID, u.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// List retrieves all users with pagination
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count users", err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list users", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		var u user.User
		var stripeCustomer, stripeSubscription sql.NullString
		var createdAt int64

		err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.PlanType, &u.SubscriptionStatus,
			&u.AIGenerationsUsed, &u.AIGenerationsLimit, &stripeCustomer, &stripeSubscription, &createdAt,
		)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan user", err)
		}

		if stripeCustomer.Valid {
			u.StripeCustomerID = &stripeCustomer.String
		}
		if stripeSubscription.Valid {
			u.StripeSubscriptionID = &stripeSubscription.String
		}
		u.CreatedAt = time.Unix(createdAt, 0)
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate users", err)
	}

	return users, total, nil
}

// ConsumeGeneration atomically increments the generation counter while it
// is still below the limit. The conditional UPDATE is the concurrency
// guard: two racing requests cannot both take the last credit.
func (r *UserRepository) ConsumeGeneration(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE users
		SET ai_generations_used = ai_generations_used + 1
		WHERE id = ? AND ai_generations_used < ai_generations_limit
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, errors.DatabaseError("Failed to consume generation", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, errors.DatabaseError("Failed to get affected rows", err)
	}

	return rows > 0, nil
}

// CountByPlan returns the number of users per plan type
func (r *UserRepository) CountByPlan(ctx context.Context) ([]user.PlanCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT plan_type, COUNT(*) FROM users GROUP BY plan_type`)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count users by plan", err)
	}
	defer rows.Close()

	var counts []user.PlanCount
	for rows.Next() {
		var pc user.PlanCount
		if err := rows.Scan(&pc.PlanType, &pc.Count); err != nil {
			return nil, errors.DatabaseError("Failed to scan plan count", err)
		}
		counts = append(counts, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate plan counts", err)
	}

	return counts, nil
}
