package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/pagecraft/pagecraft/internal/ai"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
	"github.com/pagecraft/pagecraft/internal/subscription"
	"github.com/pagecraft/pagecraft/internal/testutil"
)

const generatedDoc = `<!DOCTYPE html><html><body><h1>Acme</h1></body></html>`

func newGenerationFixture(provider ai.Provider) (*GenerationService, *testutil.MockUserRepository, *testutil.MockGenerationRepository) {
	userRepo := testutil.NewMockUserRepository()
	genRepo := testutil.NewMockGenerationRepository()
	log := testLogger()

	subs := NewSubscriptionService(userRepo, 3, log)
	usage := NewUsageService(userRepo, log)
	svc := NewGenerationService(subs, usage, genRepo, provider, 30*time.Second, 4000, 2000, log)

	return svc, userRepo, genRepo
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("error %v is not an AppError", err)
	}
	return appErr.Code
}

func TestGenerationService_GenerateSite_Success(t *testing.T) {
	provider := &testutil.MockProvider{
		Response: `{"html":"` + generatedDoc + `","css":"body{margin:0}"}`,
	}
	svc, userRepo, genRepo := newGenerationFixture(provider)
	u := seedUser(userRepo, subscription.PlanFree, subscription.StatusFree, 0, 3)

	res, err := svc.GenerateSite(context.Background(), u.ID, ai.SiteRequest{
		BusinessName: "Acme",
		BusinessType: "bakery",
	})
	if err != nil {
		t.Fatalf("GenerateSite() error = %v", err)
	}

	if res.Content.HTML != generatedDoc {
		t.Errorf("Content.HTML = %q, want %q", res.Content.HTML, generatedDoc)
	}
	if res.Content.CSS != "body{margin:0}" {
		t.Errorf("Content.CSS = %q", res.Content.CSS)
	}
	if res.Usage.AIGenerationsUsed != 1 {
		t.Errorf("Usage.AIGenerationsUsed = %d, want 1", res.Usage.AIGenerationsUsed)
	}
	if wantTokens := ai.EstimateTokens(ai.BuildSitePrompt(ai.SiteRequest{BusinessName: "Acme", BusinessType: "bakery"})); res.TokensUsed != wantTokens {
		t.Errorf("TokensUsed = %d, want %d", res.TokensUsed, wantTokens)
	}
	if len(genRepo.Records) != 1 {
		t.Fatalf("generation records = %d, want 1", len(genRepo.Records))
	}
	if genRepo.Records[0].UserID != u.ID {
		t.Errorf("record UserID = %d, want %d", genRepo.Records[0].UserID, u.ID)
	}
}

func TestGenerationService_GenerateSite_BlockedSubscription(t *testing.T) {
	tests := []struct {
		name   string
		plan   string
		status string
	}{
		{"past_due free plan", subscription.PlanFree, subscription.StatusPastDue},
		{"past_due pro plan", subscription.PlanPro, subscription.StatusPastDue},
		{"cancelled enterprise plan", subscription.PlanEnterprise, subscription.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &testutil.MockProvider{Response: generatedDoc}
			svc, userRepo, _ := newGenerationFixture(provider)
			u := seedUser(userRepo, tt.plan, tt.status, 0, subscription.UnlimitedGenerations)

			_, err := svc.GenerateSite(context.Background(), u.ID, ai.SiteRequest{BusinessName: "Acme"})
			if err == nil {
				t.Fatal("GenerateSite() error = nil, want PaymentRequired")
			}
			if code := appErrCode(t, err); code != errors.ErrCodePaymentRequired {
				t.Errorf("error code = %s, want %s", code, errors.ErrCodePaymentRequired)
			}
			if provider.Calls != 0 {
				t.Errorf("provider called %d times for blocked account, want 0", provider.Calls)
			}
		})
	}
}

func TestGenerationService_GenerateSite_QuotaExhaustedBeforeCall(t *testing.T) {
	provider := &testutil.MockProvider{Response: generatedDoc}
	svc, userRepo, _ := newGenerationFixture(provider)
	u := seedUser(userRepo, subscription.PlanFree, subscription.StatusFree, 3, 3)

	_, err := svc.GenerateSite(context.Background(), u.ID, ai.SiteRequest{BusinessName: "Acme"})
	if err == nil {
		t.Fatal("GenerateSite() error = nil, want QuotaExceeded")
	}
	if code := appErrCode(t, err); code != errors.ErrCodeQuotaExceeded {
		t.Errorf("error code = %s, want %s", code, errors.ErrCodeQuotaExceeded)
	}
	if provider.Calls != 0 {
		t.Errorf("provider called %d times for exhausted quota, want 0", provider.Calls)
	}
}

func TestGenerationService_GenerateSite_ProviderFailureLeavesQuotaUntouched(t *testing.T) {
	provider := &testutil.MockProvider{Err: stderrors.New("connection refused")}
	svc, userRepo, genRepo := newGenerationFixture(provider)
	u := seedUser(userRepo, subscription.PlanFree, subscription.StatusActive, 0, 3)

	_, err := svc.GenerateSite(context.Background(), u.ID, ai.SiteRequest{BusinessName: "Acme"})
	if err == nil {
		t.Fatal("GenerateSite() error = nil, want ProviderUnavailable")
	}
	if code := appErrCode(t, err); code != errors.ErrCodeProviderUnavailable {
		t.Errorf("error code = %s, want %s", code, errors.ErrCodeProviderUnavailable)
	}
	if got := userRepo.Users[u.ID].AIGenerationsUsed; got != 0 {
		t.Errorf("AIGenerationsUsed = %d after provider failure, want 0", got)
	}
	if len(genRepo.Records) != 0 {
		t.Errorf("generation records = %d after provider failure, want 0", len(genRepo.Records))
	}
}

func TestGenerationService_GenerateSite_UnparsableReply(t *testing.T) {
	provider := &testutil.MockProvider{Response: "I cannot build websites."}
	svc, userRepo, genRepo := newGenerationFixture(provider)
	u := seedUser(userRepo, subscription.PlanFree, subscription.StatusFree, 0, 3)

	_, err := svc.GenerateSite(context.Background(), u.ID, ai.SiteRequest{BusinessName: "Acme"})
	if err == nil {
		t.Fatal("GenerateSite() error = nil, want GenerationParseError")
	}
	if code := appErrCode(t, err); code != errors.ErrCodeGenerationParse {
		t.Errorf("error code = %s, want %s", code, errors.ErrCodeGenerationParse)
	}
	if got := userRepo.Users[u.ID].AIGenerationsUsed; got != 0 {
		t.Errorf("AIGenerationsUsed = %d after parse failure, want 0", got)
	}
	if len(genRepo.Records) != 0 {
		t.Errorf("generation records = %d after parse failure, want 0", len(genRepo.Records))
	}
}

func TestGenerationService_GenerateSite_ConsumeRaceDiscardsResult(t *testing.T) {
	// Quota looks fine at the gate but is gone by charge time. The
	// result must be discarded, not persisted.
	provider := &testutil.MockProvider{
		Response: `{"html":"` + generatedDoc + `","css":""}`,
	}
	svc, userRepo, genRepo := newGenerationFixture(provider)
	u := seedUser(userRepo, subscription.PlanFree, subscription.StatusFree, 2, 3)

	// Exhaust the remaining credit behind the orchestrator's back once
	// the provider call has happened.
	raceRepo := &consumeRaceRepo{MockUserRepository: userRepo, drainAt: u.ID}
	subs := NewSubscriptionService(raceRepo, 3, testLogger())
	usage := NewUsageService(raceRepo, testLogger())
	svc = NewGenerationService(subs, usage, genRepo, provider, 30*time.Second, 4000, 2000, testLogger())

	_, err := svc.GenerateSite(context.Background(), u.ID, ai.SiteRequest{BusinessName: "Acme"})
	if err == nil {
		t.Fatal("GenerateSite() error = nil, want QuotaExceeded")
	}
	if code := appErrCode(t, err); code != errors.ErrCodeQuotaExceeded {
		t.Errorf("error code = %s, want %s", code, errors.ErrCodeQuotaExceeded)
	}
	if provider.Calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.Calls)
	}
	if len(genRepo.Records) != 0 {
		t.Errorf("generation records = %d after lost race, want 0", len(genRepo.Records))
	}
}

// consumeRaceRepo refuses the conditional increment, simulating a
// concurrent request that took the last credit.
type consumeRaceRepo struct {
	*testutil.MockUserRepository
	drainAt int64
}

func (r *consumeRaceRepo) ConsumeGeneration(ctx context.Context, id int64) (bool, error) {
	if id == r.drainAt {
		return false, nil
	}
	return r.MockUserRepository.ConsumeGeneration(ctx, id)
}

func TestGenerationService_RegenerateSection_FallbackKeepsPreviousCSS(t *testing.T) {
	provider := &testutil.MockProvider{
		Response: "Here you go:\n" + generatedDoc,
	}
	svc, userRepo, _ := newGenerationFixture(provider)
	u := seedUser(userRepo, subscription.PlanPro, subscription.StatusActive, 0, subscription.UnlimitedGenerations)

	res, err := svc.RegenerateSection(context.Background(), u.ID, ai.SectionRequest{
		Section:     "hero",
		CurrentHTML: "<!DOCTYPE html><html><body>old</body></html>",
		CurrentCSS:  "body{color:blue}",
	})
	if err != nil {
		t.Fatalf("RegenerateSection() error = %v", err)
	}
	if res.Content.HTML != generatedDoc {
		t.Errorf("Content.HTML = %q, want extracted document", res.Content.HTML)
	}
	if res.Content.CSS != "body{color:blue}" {
		t.Errorf("Content.CSS = %q, want previous CSS", res.Content.CSS)
	}
	if got := userRepo.Users[u.ID].AIGenerationsUsed; got != 0 {
		t.Errorf("AIGenerationsUsed = %d for active pro account, want 0", got)
	}
}

func TestGenerationService_RegenerateSection_UsesEditParameters(t *testing.T) {
	provider := &testutil.MockProvider{
		Response: `{"html":"` + generatedDoc + `","css":""}`,
	}
	svc, userRepo, _ := newGenerationFixture(provider)
	u := seedUser(userRepo, subscription.PlanFree, subscription.StatusFree, 0, 3)

	_, err := svc.RegenerateSection(context.Background(), u.ID, ai.SectionRequest{
		Section:     "hero",
		CurrentHTML: generatedDoc,
	})
	if err != nil {
		t.Fatalf("RegenerateSection() error = %v", err)
	}

	if provider.LastReq.Temperature != sectionTemperature {
		t.Errorf("Temperature = %v, want %v", provider.LastReq.Temperature, sectionTemperature)
	}
	if provider.LastReq.MaxTokens != 2000 {
		t.Errorf("MaxTokens = %d, want 2000", provider.LastReq.MaxTokens)
	}
}

func TestGenerationService_GenerateSite_UsesCreateParameters(t *testing.T) {
	provider := &testutil.MockProvider{
		Response: `{"html":"` + generatedDoc + `","css":""}`,
	}
	svc, userRepo, _ := newGenerationFixture(provider)
	u := seedUser(userRepo, subscription.PlanFree, subscription.StatusFree, 0, 3)

	_, err := svc.GenerateSite(context.Background(), u.ID, ai.SiteRequest{BusinessName: "Acme"})
	if err != nil {
		t.Fatalf("GenerateSite() error = %v", err)
	}

	if provider.LastReq.Temperature != createTemperature {
		t.Errorf("Temperature = %v, want %v", provider.LastReq.Temperature, createTemperature)
	}
	if provider.LastReq.MaxTokens != 4000 {
		t.Errorf("MaxTokens = %d, want 4000", provider.LastReq.MaxTokens)
	}
}
