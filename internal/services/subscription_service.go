package services

import (
	"context"

	"github.com/pagecraft/pagecraft/internal/domain/user"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
	"github.com/pagecraft/pagecraft/internal/pkg/logger"
	"github.com/pagecraft/pagecraft/internal/subscription"
)

// SubscriptionService exposes the plan policy over stored accounts
type SubscriptionService struct {
	repo      user.Repository
	freeLimit int
	logger    *logger.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(repo user.Repository, freeLimit int, log *logger.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:      repo,
		freeLimit: freeLimit,
		logger:    log,
	}
}

// Snapshot returns the account's plan/usage state. A missing account
// yields the default free snapshot rather than an error.
func (s *SubscriptionService) Snapshot(ctx context.Context, userID int64) (subscription.Snapshot, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return subscription.Default(s.freeLimit), nil
		}
		return subscription.Snapshot{}, err
	}
	return snapshotOf(u), nil
}

// Decide evaluates the gating policy for an account
func (s *SubscriptionService) Decide(ctx context.Context, userID int64) (subscription.Snapshot, subscription.Decision, error) {
	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return subscription.Snapshot{}, subscription.Decision{}, err
	}
	return snap, subscription.Evaluate(snap), nil
}

// UpdateSubscription applies a plan/status change to an account. The
// generation limit follows the plan quota table; the usage counter
// resets only on downgrade to free.
func (s *SubscriptionService) UpdateSubscription(ctx context.Context, userID int64, newPlan, newStatus string) (subscription.Snapshot, error) {
	if !subscription.ValidPlan(newPlan) {
		return subscription.Snapshot{}, errors.BadRequest("Plan must be free, pro or enterprise")
	}
	if !subscription.ValidStatus(newStatus) {
		return subscription.Snapshot{}, errors.BadRequest("Status must be free, active, past_due or cancelled")
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return subscription.Snapshot{}, err
	}

	next := subscription.Apply(snapshotOf(u), newPlan, newStatus, s.freeLimit)
	u.PlanType = next.PlanType
	u.SubscriptionStatus = next.SubscriptionStatus
	u.AIGenerationsUsed = next.AIGenerationsUsed
	u.AIGenerationsLimit = next.AIGenerationsLimit

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update subscription")
		return subscription.Snapshot{}, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"plan":    newPlan,
		"status":  newStatus,
	}).Info("Subscription updated")

	return next, nil
}

// snapshotOf extracts the policy snapshot from a stored account
func snapshotOf(u *user.User) subscription.Snapshot {
	return subscription.Snapshot{
		PlanType:           u.PlanType,
		SubscriptionStatus: u.SubscriptionStatus,
		AIGenerationsUsed:  u.AIGenerationsUsed,
		AIGenerationsLimit: u.AIGenerationsLimit,
	}
}
