package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pagecraft/pagecraft/internal/api/middleware"
	"github.com/pagecraft/pagecraft/internal/domain/user"
	"github.com/pagecraft/pagecraft/internal/pkg/logger"
	"github.com/pagecraft/pagecraft/internal/pkg/validator"
	"github.com/pagecraft/pagecraft/internal/services"
	"github.com/pagecraft/pagecraft/internal/subscription"
	"github.com/pagecraft/pagecraft/internal/testutil"
)

const testDoc = `<!DOCTYPE html><html><body>ok</body></html>`

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func newAIFixture(t *testing.T, provider *testutil.MockProvider, plan, status string, used, limit int) (*AIHandler, *testutil.MockUserRepository, int64) {
	t.Helper()

	userRepo := testutil.NewMockUserRepository()
	u := &user.User{
		Email:              "ai@example.com",
		Name:               "AI",
		Role:               user.RoleClient,
		PlanType:           plan,
		SubscriptionStatus: status,
		AIGenerationsUsed:  used,
		AIGenerationsLimit: limit,
	}
	if err := userRepo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	log := testLogger()
	subs := services.NewSubscriptionService(userRepo, 3, log)
	usage := services.NewUsageService(userRepo, log)
	gen := services.NewGenerationService(subs, usage, testutil.NewMockGenerationRepository(),
		provider, 30*time.Second, 4000, 2000, log)

	return NewAIHandler(gen, subs, log, validator.New()), userRepo, u.ID
}

func authedRequest(t *testing.T, userID int64, body interface{}) *http.Request {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/ai/generate", bytes.NewReader(raw))
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.UserRoleKey, user.RoleClient)
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestAIHandler_Generate_Success(t *testing.T) {
	provider := &testutil.MockProvider{
		Response: `{"html":"` + testDoc + `","css":"body{}"}`,
	}
	h, _, userID := newAIFixture(t, provider, subscription.PlanFree, subscription.StatusFree, 0, 3)

	rec := httptest.NewRecorder()
	h.Generate(rec, authedRequest(t, userID, map[string]string{"businessName": "Acme"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing data envelope: %v", body)
	}
	result, ok := data["result"].(map[string]interface{})
	if !ok || result["html"] != testDoc {
		t.Errorf("result.html = %v, want generated document", data["result"])
	}
	usage, ok := data["usage"].(map[string]interface{})
	if !ok || usage["aiGenerationsUsed"] != float64(1) {
		t.Errorf("usage = %v, want aiGenerationsUsed 1", data["usage"])
	}
}

func TestAIHandler_Generate_BlockedReturns402(t *testing.T) {
	provider := &testutil.MockProvider{Response: testDoc}
	h, _, userID := newAIFixture(t, provider, subscription.PlanPro, subscription.StatusPastDue, 0, subscription.UnlimitedGenerations)

	rec := httptest.NewRecorder()
	h.Generate(rec, authedRequest(t, userID, map[string]string{"businessName": "Acme"}))

	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402; body %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["requiresPayment"] != true {
		t.Errorf("requiresPayment = %v, want true", body["requiresPayment"])
	}
	sub, ok := body["subscription"].(map[string]interface{})
	if !ok || sub["subscriptionStatus"] != subscription.StatusPastDue {
		t.Errorf("subscription = %v, want past_due snapshot", body["subscription"])
	}
	if provider.Calls != 0 {
		t.Errorf("provider calls = %d, want 0", provider.Calls)
	}
}

func TestAIHandler_Generate_QuotaReturns403(t *testing.T) {
	provider := &testutil.MockProvider{Response: testDoc}
	h, _, userID := newAIFixture(t, provider, subscription.PlanFree, subscription.StatusFree, 3, 3)

	rec := httptest.NewRecorder()
	h.Generate(rec, authedRequest(t, userID, map[string]string{"businessName": "Acme"}))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403; body %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["requiresUpgrade"] != true {
		t.Errorf("requiresUpgrade = %v, want true", body["requiresUpgrade"])
	}
	if _, ok := body["subscription"].(map[string]interface{}); !ok {
		t.Errorf("subscription missing from body: %v", body)
	}
}

func TestAIHandler_Generate_ProviderDownReturns503(t *testing.T) {
	provider := &testutil.MockProvider{Err: stderrors.New("dial tcp: connection refused")}
	h, userRepo, userID := newAIFixture(t, provider, subscription.PlanFree, subscription.StatusFree, 0, 3)

	rec := httptest.NewRecorder()
	h.Generate(rec, authedRequest(t, userID, map[string]string{"businessName": "Acme"}))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503; body %s", rec.Code, rec.Body.String())
	}
	if got := userRepo.Users[userID].AIGenerationsUsed; got != 0 {
		t.Errorf("AIGenerationsUsed = %d after provider failure, want 0", got)
	}
}

func TestAIHandler_Generate_MissingNameReturns400(t *testing.T) {
	provider := &testutil.MockProvider{Response: testDoc}
	h, _, userID := newAIFixture(t, provider, subscription.PlanFree, subscription.StatusFree, 0, 3)

	rec := httptest.NewRecorder()
	h.Generate(rec, authedRequest(t, userID, map[string]string{"description": "no name"}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
	if provider.Calls != 0 {
		t.Errorf("provider calls = %d, want 0", provider.Calls)
	}
}

func TestAIHandler_Usage(t *testing.T) {
	provider := &testutil.MockProvider{Response: testDoc}
	h, _, userID := newAIFixture(t, provider, subscription.PlanFree, subscription.StatusFree, 2, 3)

	req := httptest.NewRequest(http.MethodGet, "/api/ai/usage", nil)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	rec := httptest.NewRecorder()
	h.Usage(rec, req.WithContext(ctx))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	if data["canUseAi"] != true {
		t.Errorf("canUseAi = %v, want true", data["canUseAi"])
	}
	sub := data["subscription"].(map[string]interface{})
	if sub["aiGenerationsUsed"] != float64(2) {
		t.Errorf("aiGenerationsUsed = %v, want 2", sub["aiGenerationsUsed"])
	}
}
