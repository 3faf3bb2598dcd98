package dto

import (
	"time"

	"github.com/pagecraft/pagecraft/internal/domain/user"
)

// UserDTO is the public shape of an account
type UserDTO struct {
	ID                 int64     `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Role               string    `json:"role"`
	PlanType           string    `json:"planType"`
	SubscriptionStatus string    `json:"subscriptionStatus"`
	AIGenerationsUsed  int       `json:"aiGenerationsUsed"`
	AIGenerationsLimit int       `json:"aiGenerationsLimit"`
	CreatedAt          time.Time `json:"createdAt"`
}

// FromUser maps a domain user to its public shape
func FromUser(u *user.User) *UserDTO {
	return &UserDTO{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		Role:               u.Role,
		PlanType:           u.PlanType,
		SubscriptionStatus: u.SubscriptionStatus,
		AIGenerationsUsed:  u.AIGenerationsUsed,
		AIGenerationsLimit: u.AIGenerationsLimit,
		CreatedAt:          u.CreatedAt,
	}
}

// FromUsers maps a slice of domain users
func FromUsers(users []*user.User) []*UserDTO {
	out := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}

// UpdateRoleRequest is the admin payload for changing an account role
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN CLIENT"`
}
