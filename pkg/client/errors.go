package client

import (
	"encoding/json"
	"fmt"
)

// APIError represents an error returned by the API
type APIError struct {
	StatusCode int                    `json:"-"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`

	// Populated on AI endpoint failures
	RequiresPayment bool          `json:"-"`
	RequiresUpgrade bool          `json:"-"`
	Subscription    *Subscription `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("API error: %s (status: %d)", e.Message, e.StatusCode)
}

// IsNotFound returns true for 404 responses
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized returns true for 401 responses
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsPaymentRequired returns true when the subscription is blocked
func (e *APIError) IsPaymentRequired() bool {
	return e.StatusCode == 402 || e.RequiresPayment
}

// IsQuotaExceeded returns true when AI generation credits are exhausted
func (e *APIError) IsQuotaExceeded() bool {
	return e.RequiresUpgrade
}

// IsServerError returns true for 5xx responses
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// parseAPIError builds an APIError from an error envelope. The error
// field is an object on most endpoints but a bare string on the AI
// billing failures.
func parseAPIError(status int, env *envelope) *APIError {
	apiErr := &APIError{
		StatusCode:      status,
		RequiresPayment: env.RequiresPayment,
		RequiresUpgrade: env.RequiresUpgrade,
		Subscription:    env.Subscription,
	}

	if len(env.Error) > 0 {
		if err := json.Unmarshal(env.Error, apiErr); err != nil {
			var msg string
			if json.Unmarshal(env.Error, &msg) == nil {
				apiErr.Message = msg
			} else {
				apiErr.Message = string(env.Error)
			}
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = env.Message
	}

	return apiErr
}
