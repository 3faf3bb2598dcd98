package subscription

import "testing"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name        string
		snapshot    Snapshot
		wantBlocked bool
		wantCanUse  bool
	}{
		{
			name:        "fresh free account",
			snapshot:    Snapshot{PlanType: PlanFree, SubscriptionStatus: StatusFree, AIGenerationsUsed: 0, AIGenerationsLimit: 3},
			wantBlocked: false,
			wantCanUse:  true,
		},
		{
			name:        "free account with exhausted quota",
			snapshot:    Snapshot{PlanType: PlanFree, SubscriptionStatus: StatusFree, AIGenerationsUsed: 3, AIGenerationsLimit: 3},
			wantBlocked: false,
			wantCanUse:  false,
		},
		{
			name:        "free account one below the limit",
			snapshot:    Snapshot{PlanType: PlanFree, SubscriptionStatus: StatusFree, AIGenerationsUsed: 2, AIGenerationsLimit: 3},
			wantBlocked: false,
			wantCanUse:  true,
		},
		{
			name:        "past_due blocks even with remaining credits",
			snapshot:    Snapshot{PlanType: PlanFree, SubscriptionStatus: StatusPastDue, AIGenerationsUsed: 0, AIGenerationsLimit: 3},
			wantBlocked: true,
			wantCanUse:  false,
		},
		{
			name:        "cancelled blocks a paid plan",
			snapshot:    Snapshot{PlanType: PlanPro, SubscriptionStatus: StatusCancelled, AIGenerationsUsed: 0, AIGenerationsLimit: UnlimitedGenerations},
			wantBlocked: true,
			wantCanUse:  false,
		},
		{
			name:        "active pro plan",
			snapshot:    Snapshot{PlanType: PlanPro, SubscriptionStatus: StatusActive, AIGenerationsUsed: 500, AIGenerationsLimit: UnlimitedGenerations},
			wantBlocked: false,
			wantCanUse:  true,
		},
		{
			name:        "enterprise plan with zero credits still allowed",
			snapshot:    Snapshot{PlanType: PlanEnterprise, SubscriptionStatus: StatusActive, AIGenerationsUsed: 10, AIGenerationsLimit: 10},
			wantBlocked: false,
			wantCanUse:  true,
		},
		{
			name:        "pro plan never activated is not blocked",
			snapshot:    Snapshot{PlanType: PlanPro, SubscriptionStatus: StatusFree, AIGenerationsUsed: 0, AIGenerationsLimit: UnlimitedGenerations},
			wantBlocked: false,
			wantCanUse:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.snapshot)
			if d.IsBlocked != tt.wantBlocked {
				t.Errorf("Evaluate() IsBlocked = %v, want %v", d.IsBlocked, tt.wantBlocked)
			}
			if d.CanUseAI != tt.wantCanUse {
				t.Errorf("Evaluate() CanUseAI = %v, want %v", d.CanUseAI, tt.wantCanUse)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		start     Snapshot
		newPlan   string
		newStatus string
		wantUsed  int
		wantLimit int
	}{
		{
			name:      "downgrade to free resets usage",
			start:     Snapshot{PlanType: PlanPro, SubscriptionStatus: StatusActive, AIGenerationsUsed: 42, AIGenerationsLimit: UnlimitedGenerations},
			newPlan:   PlanFree,
			newStatus: StatusCancelled,
			wantUsed:  0,
			wantLimit: 3,
		},
		{
			name:      "downgrade to free resets usage regardless of status",
			start:     Snapshot{PlanType: PlanEnterprise, SubscriptionStatus: StatusActive, AIGenerationsUsed: 7, AIGenerationsLimit: UnlimitedGenerations},
			newPlan:   PlanFree,
			newStatus: StatusFree,
			wantUsed:  0,
			wantLimit: 3,
		},
		{
			name:      "upgrade to pro keeps historical usage",
			start:     Snapshot{PlanType: PlanFree, SubscriptionStatus: StatusFree, AIGenerationsUsed: 2, AIGenerationsLimit: 3},
			newPlan:   PlanPro,
			newStatus: StatusActive,
			wantUsed:  2,
			wantLimit: UnlimitedGenerations,
		},
		{
			name:      "upgrade to enterprise keeps historical usage",
			start:     Snapshot{PlanType: PlanFree, SubscriptionStatus: StatusFree, AIGenerationsUsed: 3, AIGenerationsLimit: 3},
			newPlan:   PlanEnterprise,
			newStatus: StatusActive,
			wantUsed:  3,
			wantLimit: UnlimitedGenerations,
		},
		{
			name:      "free to free keeps the reset semantics",
			start:     Snapshot{PlanType: PlanFree, SubscriptionStatus: StatusFree, AIGenerationsUsed: 3, AIGenerationsLimit: 3},
			newPlan:   PlanFree,
			newStatus: StatusActive,
			wantUsed:  0,
			wantLimit: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.start, tt.newPlan, tt.newStatus, 3)
			if got.PlanType != tt.newPlan {
				t.Errorf("Apply() PlanType = %v, want %v", got.PlanType, tt.newPlan)
			}
			if got.SubscriptionStatus != tt.newStatus {
				t.Errorf("Apply() SubscriptionStatus = %v, want %v", got.SubscriptionStatus, tt.newStatus)
			}
			if got.AIGenerationsUsed != tt.wantUsed {
				t.Errorf("Apply() AIGenerationsUsed = %v, want %v", got.AIGenerationsUsed, tt.wantUsed)
			}
			if got.AIGenerationsLimit != tt.wantLimit {
				t.Errorf("Apply() AIGenerationsLimit = %v, want %v", got.AIGenerationsLimit, tt.wantLimit)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	s := Default(3)
	if s.PlanType != PlanFree || s.SubscriptionStatus != StatusFree {
		t.Errorf("Default() = %+v, want free/free", s)
	}
	if s.AIGenerationsUsed != 0 || s.AIGenerationsLimit != 3 {
		t.Errorf("Default() usage = %d/%d, want 0/3", s.AIGenerationsUsed, s.AIGenerationsLimit)
	}
	if d := Evaluate(s); d.IsBlocked || !d.CanUseAI {
		t.Errorf("Evaluate(Default()) = %+v, want unblocked and usable", d)
	}
}

func TestValidators(t *testing.T) {
	for _, plan := range []string{PlanFree, PlanPro, PlanEnterprise} {
		if !ValidPlan(plan) {
			t.Errorf("ValidPlan(%q) = false, want true", plan)
		}
	}
	if ValidPlan("premium") {
		t.Error("ValidPlan(premium) = true, want false")
	}
	for _, status := range []string{StatusFree, StatusActive, StatusPastDue, StatusCancelled} {
		if !ValidStatus(status) {
			t.Errorf("ValidStatus(%q) = false, want true", status)
		}
	}
	if ValidStatus("paused") {
		t.Error("ValidStatus(paused) = true, want false")
	}
}
