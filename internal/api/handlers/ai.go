package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/pagecraft/pagecraft/internal/ai"
	"github.com/pagecraft/pagecraft/internal/api/dto"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
	"github.com/pagecraft/pagecraft/internal/pkg/logger"
	"github.com/pagecraft/pagecraft/internal/pkg/utils"
	"github.com/pagecraft/pagecraft/internal/pkg/validator"
	"github.com/pagecraft/pagecraft/internal/services"
)

// AIHandler handles AI content-generation requests
type AIHandler struct {
	generations *services.GenerationService
	subs        *services.SubscriptionService
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAIHandler creates a new AI handler
func NewAIHandler(
	generations *services.GenerationService,
	subs *services.SubscriptionService,
	log *logger.Logger,
	val *validator.Validator,
) *AIHandler {
	return &AIHandler{
		generations: generations,
		subs:        subs,
		logger:      log,
		validator:   val,
	}
}

// Generate creates a full site from a business description
// @Summary Generate a website
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateSiteRequest true "Site description"
// @Success 200 {object} services.GenerationResult
// @Failure 402 {object} utils.ErrorResponse "Subscription blocked"
// @Failure 403 {object} utils.ErrorResponse "Generation quota exhausted"
// @Failure 503 {object} utils.ErrorResponse "AI provider unavailable"
// @Router /ai/generate [post]
func (h *AIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	userID, _ := actor(r)
	result, err := h.generations.GenerateSite(r.Context(), userID, ai.SiteRequest{
		BusinessName: req.BusinessName,
		BusinessType: req.BusinessType,
		Description:  req.Description,
		PrimaryColor: req.PrimaryColor,
		Sections:     req.Sections,
	})
	if err != nil {
		h.writeGenerationError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, result)
}

// RegenerateSection rewrites one section of an existing site
// @Summary Regenerate a site section
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegenerateSectionRequest true "Section edit"
// @Success 200 {object} services.GenerationResult
// @Failure 402 {object} utils.ErrorResponse "Subscription blocked"
// @Failure 403 {object} utils.ErrorResponse "Generation quota exhausted"
// @Failure 503 {object} utils.ErrorResponse "AI provider unavailable"
// @Router /ai/regenerate-section [post]
func (h *AIHandler) RegenerateSection(w http.ResponseWriter, r *http.Request) {
	var req dto.RegenerateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	userID, _ := actor(r)
	result, err := h.generations.RegenerateSection(r.Context(), userID, ai.SectionRequest{
		Section:      req.Section,
		Instructions: req.Instructions,
		CurrentHTML:  req.CurrentHTML,
		CurrentCSS:   req.CurrentCSS,
	})
	if err != nil {
		h.writeGenerationError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, result)
}

// Usage returns the caller's subscription snapshot and what it permits
// @Summary AI usage and entitlement
// @Tags AI
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /ai/usage [get]
func (h *AIHandler) Usage(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)

	snap, decision, err := h.subs.Decide(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"subscription": snap,
		"isBlocked":    decision.IsBlocked,
		"canUseAi":     decision.CanUseAI,
	})
}

// writeGenerationError maps orchestrator failures onto the billing-aware
// response shapes the frontend keys on: 402 carries requiresPayment,
// 403 carries requiresUpgrade, both with the current snapshot.
func (h *AIHandler) writeGenerationError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		utils.WriteAppError(w, err)
		return
	}

	switch appErr.Code {
	case errors.ErrCodePaymentRequired:
		utils.WriteJSON(w, appErr.StatusCode, map[string]interface{}{
			"success":         false,
			"error":           appErr.Message,
			"requiresPayment": true,
			"subscription":    appErr.Details,
		})
	case errors.ErrCodeQuotaExceeded:
		utils.WriteJSON(w, appErr.StatusCode, map[string]interface{}{
			"success":         false,
			"error":           appErr.Message,
			"requiresUpgrade": true,
			"subscription":    appErr.Details,
		})
	default:
		utils.WriteError(w, appErr)
	}
}
