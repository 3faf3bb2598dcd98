package services

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/pagecraft/pagecraft/internal/auth"
	"github.com/pagecraft/pagecraft/internal/domain/user"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
	"github.com/pagecraft/pagecraft/internal/subscription"
	"github.com/pagecraft/pagecraft/internal/testutil"
)

func newUserService(repo *testutil.MockUserRepository) user.Service {
	return NewUserService(repo, auth.NewHasher(4), 3, testLogger())
}

func TestUserService_Register(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	service := newUserService(repo)
	ctx := context.Background()

	u, err := service.Register(ctx, "new@example.com", "New User", "s3cret-pass")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if u.Role != user.RoleClient {
		t.Errorf("Register() role = %v, want %v", u.Role, user.RoleClient)
	}
	if u.PlanType != subscription.PlanFree {
		t.Errorf("Register() plan = %v, want %v", u.PlanType, subscription.PlanFree)
	}
	if u.SubscriptionStatus != subscription.StatusFree {
		t.Errorf("Register() status = %v, want %v", u.SubscriptionStatus, subscription.StatusFree)
	}
	if u.AIGenerationsUsed != 0 || u.AIGenerationsLimit != 3 {
		t.Errorf("Register() usage = %d/%d, want 0/3", u.AIGenerationsUsed, u.AIGenerationsLimit)
	}
	if u.PasswordHash == "" || u.PasswordHash == "s3cret-pass" {
		t.Error("Register() stored a missing or plaintext password")
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	service := newUserService(repo)
	ctx := context.Background()

	if _, err := service.Register(ctx, "dup@example.com", "First", "password1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := service.Register(ctx, "dup@example.com", "Second", "password2")
	if err == nil {
		t.Fatal("Register() error = nil for duplicate email, want Conflict")
	}
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrCodeConflict {
		t.Errorf("Register() error = %v, want Conflict", err)
	}
}

func TestUserService_Authenticate(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	service := newUserService(repo)
	ctx := context.Background()

	if _, err := service.Register(ctx, "auth@example.com", "Auth", "correct-horse"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid credentials", "auth@example.com", "correct-horse", false},
		{"wrong password", "auth@example.com", "battery-staple", true},
		{"unknown email", "nobody@example.com", "correct-horse", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := service.Authenticate(ctx, tt.email, tt.password)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && u.Email != tt.email {
				t.Errorf("Authenticate() email = %v, want %v", u.Email, tt.email)
			}
			if tt.wantErr {
				var appErr *errors.AppError
				if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrCodeUnauthorized {
					t.Errorf("Authenticate() error = %v, want Unauthorized", err)
				}
			}
		})
	}
}

func TestUserService_UpdateRole(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	service := newUserService(repo)
	ctx := context.Background()

	u, _ := service.Register(ctx, "role@example.com", "Role", "password1")

	updated, err := service.UpdateRole(ctx, u.ID, user.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateRole() error = %v", err)
	}
	if updated.Role != user.RoleAdmin {
		t.Errorf("UpdateRole() role = %v, want ADMIN", updated.Role)
	}

	if _, err := service.UpdateRole(ctx, u.ID, "SUPERUSER"); err == nil {
		t.Error("UpdateRole() error = nil for invalid role, want BadRequest")
	}

	if _, err := service.UpdateRole(ctx, 999, user.RoleClient); err == nil {
		t.Error("UpdateRole() error = nil for missing user, want NotFound")
	}
}

func TestUserService_Delete_SelfDeletionRejected(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	service := newUserService(repo)
	ctx := context.Background()

	admin, _ := service.Register(ctx, "admin@example.com", "Admin", "password1")
	other, _ := service.Register(ctx, "other@example.com", "Other", "password2")

	err := service.Delete(ctx, admin.ID, admin.ID)
	if err == nil {
		t.Fatal("Delete() error = nil for self-deletion, want BadRequest")
	}
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrCodeBadRequest {
		t.Errorf("Delete() error = %v, want BadRequest", err)
	}
	if appErr.Message != "Cannot delete yourself" {
		t.Errorf("Delete() message = %q, want %q", appErr.Message, "Cannot delete yourself")
	}
	if _, ok := repo.Users[admin.ID]; !ok {
		t.Error("Delete() removed the account despite self-deletion guard")
	}

	if err := service.Delete(ctx, admin.ID, other.ID); err != nil {
		t.Fatalf("Delete() error = %v for another account", err)
	}
	if _, ok := repo.Users[other.ID]; ok {
		t.Error("Delete() left the target account in place")
	}
}
