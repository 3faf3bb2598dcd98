package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/pagecraft/pagecraft/internal/api/middleware"
	"github.com/pagecraft/pagecraft/internal/auth"
	"github.com/pagecraft/pagecraft/internal/domain/user"
	"github.com/pagecraft/pagecraft/internal/pkg/validator"
	"github.com/pagecraft/pagecraft/internal/services"
	"github.com/pagecraft/pagecraft/internal/testutil"
)

func newAdminFixture(t *testing.T) (*AdminHandler, *testutil.MockUserRepository, *user.User, *user.User) {
	t.Helper()

	repo := testutil.NewMockUserRepository()
	svc := services.NewUserService(repo, auth.NewHasher(4), 3, testLogger())

	admin, err := svc.Register(context.Background(), "admin@example.com", "Admin", "password1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	admin.Role = user.RoleAdmin
	other, err := svc.Register(context.Background(), "client@example.com", "Client", "password2")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	return NewAdminHandler(svc, testLogger(), validator.New()), repo, admin, other
}

func adminRequest(method, target string, actorID int64, targetID int64, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))

	ctx := context.WithValue(req.Context(), middleware.UserIDKey, actorID)
	ctx = context.WithValue(ctx, middleware.UserRoleKey, user.RoleAdmin)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", strconv.FormatInt(targetID, 10))
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

	return req.WithContext(ctx)
}

func TestAdminHandler_DeleteUser_SelfReturns400(t *testing.T) {
	h, repo, admin, _ := newAdminFixture(t)

	rec := httptest.NewRecorder()
	h.DeleteUser(rec, adminRequest(http.MethodDelete, "/api/admin/users/1", admin.ID, admin.ID, nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
	if _, ok := repo.Users[admin.ID]; !ok {
		t.Error("admin account was deleted despite the guard")
	}
}

func TestAdminHandler_DeleteUser_OtherSucceeds(t *testing.T) {
	h, repo, admin, other := newAdminFixture(t)

	rec := httptest.NewRecorder()
	h.DeleteUser(rec, adminRequest(http.MethodDelete, "/api/admin/users/2", admin.ID, other.ID, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if _, ok := repo.Users[other.ID]; ok {
		t.Error("target account still present after delete")
	}
}

func TestAdminHandler_UpdateUserRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		wantCode int
	}{
		{"promote to admin", "ADMIN", http.StatusOK},
		{"demote to client", "CLIENT", http.StatusOK},
		{"unknown role rejected", "SUPERUSER", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, repo, admin, other := newAdminFixture(t)

			body, _ := json.Marshal(map[string]string{"role": tt.role})
			rec := httptest.NewRecorder()
			h.UpdateUserRole(rec, adminRequest(http.MethodPatch, "/api/admin/users/2/role", admin.ID, other.ID, body))

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode == http.StatusOK && repo.Users[other.ID].Role != tt.role {
				t.Errorf("stored role = %s, want %s", repo.Users[other.ID].Role, tt.role)
			}
		})
	}
}

func TestAdminHandler_ListUsers(t *testing.T) {
	h, _, admin, _ := newAdminFixture(t)

	rec := httptest.NewRecorder()
	req := adminRequest(http.MethodGet, "/api/admin/users", admin.ID, 0, nil)
	h.ListUsers(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	if data["total"] != float64(2) {
		t.Errorf("total = %v, want 2", data["total"])
	}
	items := data["items"].([]interface{})
	first := items[0].(map[string]interface{})
	if _, exposed := first["passwordHash"]; exposed {
		t.Error("password hash exposed in admin listing")
	}
}
