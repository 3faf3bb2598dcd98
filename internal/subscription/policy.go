// Package subscription holds the pure plan/quota policy. It decides,
// from an account snapshot, whether AI use is permitted and whether the
// account is payment-blocked. It has no side effects and no storage
// dependencies; callers persist whatever it returns.
package subscription

// Plan tiers
const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// Billing lifecycle states, independent of plan tier
const (
	StatusFree      = "free"
	StatusActive    = "active"
	StatusPastDue   = "past_due"
	StatusCancelled = "cancelled"
)

// UnlimitedGenerations is the limit assigned to paid plans. Paid-plan
// gating never consults the counter, so the value only matters for
// accounts that hold a paid plan without an active status.
const UnlimitedGenerations = 999999

// DefaultFreeGenerations is the free-tier quota used when no
// configuration is injected.
const DefaultFreeGenerations = 3

// Snapshot is the plan/usage state of one account at a point in time
type Snapshot struct {
	PlanType           string `json:"planType"`
	SubscriptionStatus string `json:"subscriptionStatus"`
	AIGenerationsUsed  int    `json:"aiGenerationsUsed"`
	AIGenerationsLimit int    `json:"aiGenerationsLimit"`
}

// Decision is the derived gating verdict for a snapshot
type Decision struct {
	IsBlocked bool `json:"isBlocked"`
	CanUseAI  bool `json:"canUseAi"`
}

// Default is the snapshot substituted when no account exists: a fresh,
// unblocked free account with the full free quota.
func Default(freeLimit int) Snapshot {
	return Snapshot{
		PlanType:           PlanFree,
		SubscriptionStatus: StatusFree,
		AIGenerationsUsed:  0,
		AIGenerationsLimit: freeLimit,
	}
}

// HasPaidPlan reports whether the plan tier is a paid one
func HasPaidPlan(plan string) bool {
	return plan == PlanPro || plan == PlanEnterprise
}

// IsBlocked reports whether the billing state forbids all AI use
func IsBlocked(status string) bool {
	return status == StatusPastDue || status == StatusCancelled
}

// Evaluate computes the gating decision for a snapshot
func Evaluate(s Snapshot) Decision {
	blocked := IsBlocked(s.SubscriptionStatus)
	hasCredits := s.AIGenerationsUsed < s.AIGenerationsLimit
	return Decision{
		IsBlocked: blocked,
		CanUseAI:  !blocked && (hasCredits || HasPaidPlan(s.PlanType)),
	}
}

// LimitFor returns the generation limit assigned to a plan tier
func LimitFor(plan string, freeLimit int) int {
	if HasPaidPlan(plan) {
		return UnlimitedGenerations
	}
	return freeLimit
}

// Apply returns the snapshot after a plan/status change. The limit
// always follows the new plan's quota table. The usage counter resets
// only on a downgrade to free; upgrades keep the historical count.
func Apply(s Snapshot, newPlan, newStatus string, freeLimit int) Snapshot {
	s.PlanType = newPlan
	s.SubscriptionStatus = newStatus
	s.AIGenerationsLimit = LimitFor(newPlan, freeLimit)
	if newPlan == PlanFree {
		s.AIGenerationsUsed = 0
	}
	return s
}

// ValidPlan reports whether the plan value is a known tier
func ValidPlan(plan string) bool {
	return plan == PlanFree || plan == PlanPro || plan == PlanEnterprise
}

// ValidStatus reports whether the status value is a known billing state
func ValidStatus(status string) bool {
	switch status {
	case StatusFree, StatusActive, StatusPastDue, StatusCancelled:
		return true
	}
	return false
}
