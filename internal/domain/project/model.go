package project

import "time"

// Project represents one website built by an account
type Project struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TemplateID  *int64    `json:"templateId,omitempty"`
	HTML        string    `json:"html,omitempty"`
	CSS         string    `json:"css,omitempty"`
	Published   bool      `json:"published"`
	Subdomain   *string   `json:"subdomain,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
