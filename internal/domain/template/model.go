package template

import "time"

// Template represents a prebuilt site design offered to accounts
type Template struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	PreviewURL  string    `json:"previewUrl,omitempty"`
	HTML        string    `json:"-"`
	CSS         string    `json:"-"`
	IsPremium   bool      `json:"isPremium"`
	CreatedAt   time.Time `json:"createdAt"`
}
