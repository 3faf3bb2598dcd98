package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pagecraft/pagecraft/internal/ai"
	"github.com/pagecraft/pagecraft/internal/domain/generation"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
	"github.com/pagecraft/pagecraft/internal/pkg/logger"
	"github.com/pagecraft/pagecraft/internal/pkg/metrics"
	"github.com/pagecraft/pagecraft/internal/subscription"
)

// Provider call parameters per call type: site creation wants more
// creative output than a targeted section edit.
const (
	createTemperature  = 0.8
	sectionTemperature = 0.4
)

// GenerationResult is the orchestrator's success payload
type GenerationResult struct {
	Content    ai.SiteContent        `json:"result"`
	TokensUsed int                   `json:"tokensUsed"`
	Usage      subscription.Snapshot `json:"usage"`
}

// GenerationService orchestrates one AI generation: gate, call the
// provider, parse, charge, log.
type GenerationService struct {
	subs            *SubscriptionService
	usage           *UsageService
	genRepo         generation.Repository
	provider        ai.Provider
	requestTimeout  time.Duration
	createMaxTokens int
	editMaxTokens   int
	logger          *logger.Logger
}

// NewGenerationService creates a new generation orchestrator
func NewGenerationService(
	subs *SubscriptionService,
	usage *UsageService,
	genRepo generation.Repository,
	provider ai.Provider,
	requestTimeout time.Duration,
	createMaxTokens, editMaxTokens int,
	log *logger.Logger,
) *GenerationService {
	return &GenerationService{
		subs:            subs,
		usage:           usage,
		genRepo:         genRepo,
		provider:        provider,
		requestTimeout:  requestTimeout,
		createMaxTokens: createMaxTokens,
		editMaxTokens:   editMaxTokens,
		logger:          log,
	}
}

// GenerateSite produces a complete site for the given request
func (s *GenerationService) GenerateSite(ctx context.Context, userID int64, req ai.SiteRequest) (*GenerationResult, error) {
	prompt := ai.BuildSitePrompt(req)

	raw, err := s.generate(ctx, "create", userID, ai.CompletionRequest{
		System:      ai.SiteSystemPrompt(),
		User:        prompt,
		MaxTokens:   s.createMaxTokens,
		Temperature: createTemperature,
	})
	if err != nil {
		return nil, err
	}

	content, ok := ai.ParseSiteContent(raw)
	if !ok {
		metrics.ObserveGeneration("create", "parse_error")
		return nil, errors.GenerationParseError(fmt.Errorf("no structured content in provider reply"))
	}

	return s.commit(ctx, "create", userID, prompt, raw, content)
}

// RegenerateSection rewrites one section of an existing site. When the
// provider reply is only partially parsable the caller's previous
// HTML/CSS fills the gaps.
func (s *GenerationService) RegenerateSection(ctx context.Context, userID int64, req ai.SectionRequest) (*GenerationResult, error) {
	prompt := ai.BuildSectionPrompt(req)

	raw, err := s.generate(ctx, "section", userID, ai.CompletionRequest{
		System:      ai.SectionSystemPrompt(),
		User:        prompt,
		MaxTokens:   s.editMaxTokens,
		Temperature: sectionTemperature,
	})
	if err != nil {
		return nil, err
	}

	content, ok := ai.ParseSectionContent(raw, req.CurrentHTML, req.CurrentCSS)
	if !ok {
		metrics.ObserveGeneration("section", "parse_error")
		return nil, errors.GenerationParseError(fmt.Errorf("no structured content in provider reply"))
	}

	return s.commit(ctx, "section", userID, prompt, raw, content)
}

// generate runs the gating checks and the provider call. Quota is not
// touched here: provider failures must leave the counter unchanged.
func (s *GenerationService) generate(ctx context.Context, kind string, userID int64, req ai.CompletionRequest) (string, error) {
	snap, decision, err := s.subs.Decide(ctx, userID)
	if err != nil {
		return "", err
	}
	if decision.IsBlocked {
		metrics.ObserveGeneration(kind, "blocked")
		return "", errors.PaymentRequired(
			"Your subscription requires attention before you can use AI generation.", snap)
	}
	if !decision.CanUseAI {
		metrics.ObserveGeneration(kind, "quota")
		return "", errors.QuotaExceeded(
			"You have used all of your free AI generations. Upgrade to continue.", snap)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	raw, err := s.provider.Complete(callCtx, req)
	if err != nil {
		metrics.ObserveGeneration(kind, "provider_error")
		s.logger.ErrorWithErr(err, "AI provider call failed")
		return "", errors.ProviderUnavailable(err)
	}

	return raw, nil
}

// commit charges the quota, appends the generation record and returns
// the result with a refreshed usage snapshot. A consume refusal here
// means the quota ran out between the gate and the charge; the result
// is discarded.
func (s *GenerationService) commit(ctx context.Context, kind string, userID int64, prompt, raw string, content ai.SiteContent) (*GenerationResult, error) {
	consumed, err := s.usage.TryConsume(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to record AI usage", err)
	}
	if !consumed {
		snap, _ := s.subs.Snapshot(ctx, userID)
		metrics.ObserveGeneration(kind, "quota")
		return nil, errors.QuotaExceeded(
			"You have used all of your free AI generations. Upgrade to continue.", snap)
	}

	tokens := ai.EstimateTokens(prompt)
	rec := &generation.Record{
		UserID:     userID,
		Prompt:     prompt,
		Result:     raw,
		TokensUsed: tokens,
	}
	if err := s.genRepo.Append(ctx, rec); err != nil {
		// The user was charged and the content is valid; losing the
		// log entry is not worth failing the request over.
		s.logger.ErrorWithErr(err, "Failed to append generation record")
	}

	snap, err := s.subs.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	metrics.ObserveGeneration(kind, "success")
	metrics.AddGenerationTokens(tokens)

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"kind":    kind,
		"tokens":  tokens,
	}).Info("AI generation completed")

	return &GenerationResult{
		Content:    content,
		TokensUsed: tokens,
		Usage:      snap,
	}, nil
}
