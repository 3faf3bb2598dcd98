package generation

import "time"

// Record is one immutable log entry of an AI content-generation call
type Record struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Prompt     string    `json:"prompt"`
	Result     string    `json:"result"`
	TokensUsed int       `json:"tokensUsed"`
	CreatedAt  time.Time `json:"createdAt"`
}
