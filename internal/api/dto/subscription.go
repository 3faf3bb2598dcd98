package dto

// UpdateSubscriptionRequest is the payload for plan/status changes.
// In production this arrives from the billing webhook; the endpoint
// also serves manual admin adjustments.
type UpdateSubscriptionRequest struct {
	PlanType           string `json:"planType" validate:"required,oneof=free pro enterprise"`
	SubscriptionStatus string `json:"subscriptionStatus" validate:"required,oneof=free active past_due cancelled"`
}
