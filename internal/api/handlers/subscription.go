package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pagecraft/pagecraft/internal/api/dto"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
	"github.com/pagecraft/pagecraft/internal/pkg/logger"
	"github.com/pagecraft/pagecraft/internal/pkg/utils"
	"github.com/pagecraft/pagecraft/internal/pkg/validator"
	"github.com/pagecraft/pagecraft/internal/services"
)

// SubscriptionHandler handles subscription requests
type SubscriptionHandler struct {
	subs      *services.SubscriptionService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subs *services.SubscriptionService, log *logger.Logger, val *validator.Validator) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs, logger: log, validator: val}
}

// Get returns the caller's subscription snapshot
// @Summary Current subscription
// @Tags Subscription
// @Produce json
// @Security BearerAuth
// @Success 200 {object} subscription.Snapshot
// @Router /subscription [get]
func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)

	snap, err := h.subs.Snapshot(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, snap)
}

// Update applies a plan/status transition to the caller's subscription
// @Summary Update subscription
// @Tags Subscription
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateSubscriptionRequest true "New plan and status"
// @Success 200 {object} subscription.Snapshot
// @Router /subscription [put]
func (h *SubscriptionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	userID, _ := actor(r)
	snap, err := h.subs.UpdateSubscription(r.Context(), userID, req.PlanType, req.SubscriptionStatus)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"plan":    req.PlanType,
		"status":  req.SubscriptionStatus,
	}).Info("Subscription updated")

	utils.WriteSuccess(w, http.StatusOK, snap)
}
