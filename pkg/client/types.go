package client

import (
	"strconv"
	"time"
)

// User represents an account
type User struct {
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

// Subscription is the billing snapshot attached to usage and error responses
type Subscription struct {
	PlanType           string `json:"planType"`
	SubscriptionStatus string `json:"subscriptionStatus"`
	AIGenerationsUsed  int    `json:"aiGenerationsUsed"`
	AIGenerationsLimit int    `json:"aiGenerationsLimit"`
}

// Project represents a website project
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

// Template represents a catalog template
type Template struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	PreviewURL  string    `json:"previewUrl,omitempty"`
	IsPremium   bool      `json:"isPremium"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Media represents an uploaded asset
type Media struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Page is the generic paginated collection shape
type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// ListOptions carries pagination parameters
type ListOptions struct {
	Limit  int
	Offset int
}

func (o ListOptions) query() string {
	if o.Limit == 0 && o.Offset == 0 {
		return ""
	}
	return "?limit=" + strconv.Itoa(o.Limit) + "&offset=" + strconv.Itoa(o.Offset)
}
