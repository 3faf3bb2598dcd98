package services

import (
	"context"

	"github.com/pagecraft/pagecraft/internal/domain/user"
	"github.com/pagecraft/pagecraft/internal/pkg/logger"
	"github.com/pagecraft/pagecraft/internal/subscription"
)

// UsageService is the usage ledger: it grants or refuses one
// generation credit per call.
type UsageService struct {
	repo   user.Repository
	logger *logger.Logger
}

// NewUsageService creates a new usage service
func NewUsageService(repo user.Repository, log *logger.Logger) *UsageService {
	return &UsageService{repo: repo, logger: log}
}

// TryConsume reserves one generation for the account. It fails closed
// when the account is missing.
//
// Paid plans consume for free only while the status is exactly
// "active". This is narrower than the policy's blocked check: a pro
// account whose subscription was never activated falls through to the
// credit-limited branch instead.
func (s *UsageService) TryConsume(ctx context.Context, userID int64) (bool, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	if subscription.HasPaidPlan(u.PlanType) && u.SubscriptionStatus == subscription.StatusActive {
		return true, nil
	}

	// Conditional increment at the storage layer so concurrent
	// requests cannot race past the limit.
	consumed, err := s.repo.ConsumeGeneration(ctx, userID)
	if err != nil {
		return false, err
	}
	if !consumed {
		s.logger.WithFields(map[string]interface{}{
			"user_id": userID,
			"used":    u.AIGenerationsUsed,
			"limit":   u.AIGenerationsLimit,
		}).Info("Generation quota exhausted")
	}
	return consumed, nil
}
