package services

import (
	"context"
	"testing"

	"github.com/pagecraft/pagecraft/internal/subscription"
	"github.com/pagecraft/pagecraft/internal/testutil"
)

func TestSubscriptionService_Snapshot_MissingAccountDefaults(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	service := NewSubscriptionService(repo, 3, testLogger())

	snap, err := service.Snapshot(context.Background(), 404)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	want := subscription.Default(3)
	if snap != want {
		t.Errorf("Snapshot() = %+v, want default %+v", snap, want)
	}
}

func TestSubscriptionService_UpdateSubscription(t *testing.T) {
	tests := []struct {
		name      string
		startPlan string
		startUsed int
		newPlan   string
		newStatus string
		wantUsed  int
		wantLimit int
	}{
		{
			name:      "upgrade to pro keeps usage and lifts limit",
			startPlan: subscription.PlanFree,
			startUsed: 2,
			newPlan:   subscription.PlanPro,
			newStatus: subscription.StatusActive,
			wantUsed:  2,
			wantLimit: subscription.UnlimitedGenerations,
		},
		{
			name:      "downgrade to free resets usage",
			startPlan: subscription.PlanPro,
			startUsed: 57,
			newPlan:   subscription.PlanFree,
			newStatus: subscription.StatusCancelled,
			wantUsed:  0,
			wantLimit: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockUserRepository()
			u := seedUser(repo, tt.startPlan, subscription.StatusActive, tt.startUsed, subscription.LimitFor(tt.startPlan, 3))
			service := NewSubscriptionService(repo, 3, testLogger())

			snap, err := service.UpdateSubscription(context.Background(), u.ID, tt.newPlan, tt.newStatus)
			if err != nil {
				t.Fatalf("UpdateSubscription() error = %v", err)
			}
			if snap.AIGenerationsUsed != tt.wantUsed {
				t.Errorf("snapshot used = %d, want %d", snap.AIGenerationsUsed, tt.wantUsed)
			}
			if snap.AIGenerationsLimit != tt.wantLimit {
				t.Errorf("snapshot limit = %d, want %d", snap.AIGenerationsLimit, tt.wantLimit)
			}

			stored := repo.Users[u.ID]
			if stored.PlanType != tt.newPlan || stored.SubscriptionStatus != tt.newStatus {
				t.Errorf("stored plan/status = %s/%s, want %s/%s",
					stored.PlanType, stored.SubscriptionStatus, tt.newPlan, tt.newStatus)
			}
			if stored.AIGenerationsUsed != tt.wantUsed || stored.AIGenerationsLimit != tt.wantLimit {
				t.Errorf("stored usage = %d/%d, want %d/%d",
					stored.AIGenerationsUsed, stored.AIGenerationsLimit, tt.wantUsed, tt.wantLimit)
			}
		})
	}
}

func TestSubscriptionService_UpdateSubscription_Invalid(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	u := seedUser(repo, subscription.PlanFree, subscription.StatusFree, 0, 3)
	service := NewSubscriptionService(repo, 3, testLogger())
	ctx := context.Background()

	if _, err := service.UpdateSubscription(ctx, u.ID, "platinum", subscription.StatusActive); err == nil {
		t.Error("UpdateSubscription() error = nil for unknown plan")
	}
	if _, err := service.UpdateSubscription(ctx, u.ID, subscription.PlanPro, "paused"); err == nil {
		t.Error("UpdateSubscription() error = nil for unknown status")
	}
	if _, err := service.UpdateSubscription(ctx, 999, subscription.PlanPro, subscription.StatusActive); err == nil {
		t.Error("UpdateSubscription() error = nil for missing account")
	}
}
