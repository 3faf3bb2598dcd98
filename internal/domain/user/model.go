package user

import "time"

// User represents an account in the system
type User struct {
	ID                   int64     `json:"id"`
	Email                string    `json:"email"`
	Name                 string    `json:"name"`
	PasswordHash         string    `json:"-"` // Not exposed in JSON
	Role                 string    `json:"role"`
	PlanType             string    `json:"planType"`
	SubscriptionStatus   string    `json:"subscriptionStatus"`
	AIGenerationsUsed    int       `json:"aiGenerationsUsed"`
	AIGenerationsLimit   int       `json:"aiGenerationsLimit"`
	StripeCustomerID     *string   `json:"stripeCustomerId,omitempty"`
	StripeSubscriptionID *string   `json:"stripeSubscriptionId,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

// User roles
const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
)

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanAccess is the single ownership predicate used by every resource
// handler: admins reach everything, clients only their own rows.
func CanAccess(role string, userID, resourceOwnerID int64) bool {
	return role == RoleAdmin || userID == resourceOwnerID
}

// PlanCount is one row of the per-plan account census
type PlanCount struct {
	PlanType string
	Count    int64
}
