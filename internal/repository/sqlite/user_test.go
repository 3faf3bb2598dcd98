package sqlite

import (
	"context"
	"testing"

	"github.com/pagecraft/pagecraft/internal/domain/user"
	"github.com/pagecraft/pagecraft/internal/testutil"
)

func createTestUser(t *testing.T, repo user.Repository, email string, used, limit int) *user.User {
	t.Helper()
	u := &user.User{
		Email:              email,
		Name:               "Test",
		PasswordHash:       "hash",
		Role:               user.RoleClient,
		PlanType:           "free",
		SubscriptionStatus: "free",
		AIGenerationsUsed:  used,
		AIGenerationsLimit: limit,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return u
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	u := createTestUser(t, repo, "test@example.com", 0, 3)
	if u.ID == 0 {
		t.Fatal("Create() did not set user ID")
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != u.Email || got.AIGenerationsLimit != 3 {
		t.Errorf("GetByID() = %+v, want email %q and limit 3", got, u.Email)
	}
	if got.StripeCustomerID != nil {
		t.Errorf("GetByID() StripeCustomerID = %v, want nil", *got.StripeCustomerID)
	}

	byEmail, err := repo.GetByEmail(ctx, "test@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if byEmail.ID != u.ID {
		t.Errorf("GetByEmail() ID = %d, want %d", byEmail.ID, u.ID)
	}

	if _, err := repo.GetByID(ctx, 999); err == nil {
		t.Error("GetByID() error = nil for missing user")
	}
}

func TestUserRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	u := createTestUser(t, repo, "update@example.com", 1, 3)
	u.PlanType = "pro"
	u.SubscriptionStatus = "active"
	customer := "cus_123"
	u.StripeCustomerID = &customer

	if err := repo.Update(ctx, u); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.PlanType != "pro" || got.SubscriptionStatus != "active" {
		t.Errorf("Update() persisted plan/status = %s/%s", got.PlanType, got.SubscriptionStatus)
	}
	if got.StripeCustomerID == nil || *got.StripeCustomerID != "cus_123" {
		t.Errorf("Update() StripeCustomerID = %v, want cus_123", got.StripeCustomerID)
	}

	missing := &user.User{ID: 999, Email: "x@example.com"}
	if err := repo.Update(ctx, missing); err == nil {
		t.Error("Update() error = nil for missing user")
	}
}

func TestUserRepository_ConsumeGeneration(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	u := createTestUser(t, repo, "quota@example.com", 0, 3)

	// The conditional UPDATE must grant exactly limit increments
	granted := 0
	for i := 0; i < 5; i++ {
		ok, err := repo.ConsumeGeneration(ctx, u.ID)
		if err != nil {
			t.Fatalf("ConsumeGeneration() error = %v", err)
		}
		if ok {
			granted++
		}
	}
	if granted != 3 {
		t.Errorf("granted = %d, want 3", granted)
	}

	got, _ := repo.GetByID(ctx, u.ID)
	if got.AIGenerationsUsed != 3 {
		t.Errorf("AIGenerationsUsed = %d, want 3", got.AIGenerationsUsed)
	}

	// Missing user never consumes
	ok, err := repo.ConsumeGeneration(ctx, 999)
	if err != nil {
		t.Fatalf("ConsumeGeneration() error = %v", err)
	}
	if ok {
		t.Error("ConsumeGeneration() = true for missing user")
	}
}

func TestUserRepository_ListAndCountByPlan(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, repo, "a@example.com", 0, 3)
	createTestUser(t, repo, "b@example.com", 0, 3)
	pro := createTestUser(t, repo, "c@example.com", 0, 999999)
	pro.PlanType = "pro"
	if err := repo.Update(ctx, pro); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	users, total, err := repo.List(ctx, 2, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 {
		t.Errorf("List() total = %d, want 3", total)
	}
	if len(users) != 2 {
		t.Errorf("List() page size = %d, want 2", len(users))
	}

	counts, err := repo.CountByPlan(ctx)
	if err != nil {
		t.Fatalf("CountByPlan() error = %v", err)
	}
	byPlan := make(map[string]int64)
	for _, pc := range counts {
		byPlan[pc.PlanType] = pc.Count
	}
	if byPlan["free"] != 2 || byPlan["pro"] != 1 {
		t.Errorf("CountByPlan() = %v, want free:2 pro:1", byPlan)
	}
}

func TestUserRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	u := createTestUser(t, repo, "gone@example.com", 0, 3)
	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, u.ID); err == nil {
		t.Error("GetByID() error = nil after delete")
	}
	if err := repo.Delete(ctx, u.ID); err == nil {
		t.Error("Delete() error = nil for missing user")
	}
}
