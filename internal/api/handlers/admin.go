package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pagecraft/pagecraft/internal/api/dto"
	"github.com/pagecraft/pagecraft/internal/domain/user"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
	"github.com/pagecraft/pagecraft/internal/pkg/logger"
	"github.com/pagecraft/pagecraft/internal/pkg/utils"
	"github.com/pagecraft/pagecraft/internal/pkg/validator"
)

// AdminHandler handles admin-only account operations
type AdminHandler struct {
	users     user.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(users user.Service, log *logger.Logger, val *validator.Validator) *AdminHandler {
	return &AdminHandler{users: users, logger: log, validator: val}
}

// ListUsers returns all accounts
// @Summary List accounts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.ListResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p := utils.ParsePagination(r)

	users, total, err := h.users.List(r.Context(), p.Limit, p.Offset)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.ListResponse{
		Items:  dto.FromUsers(users),
		Total:  total,
		Limit:  p.Limit,
		Offset: p.Offset,
	})
}

// UpdateUserRole changes an account's role
// @Summary Change an account role
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} dto.UserDTO
// @Router /admin/users/{id}/role [patch]
func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	var req dto.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	updated, err := h.users.UpdateRole(r.Context(), id, req.Role)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id": id,
		"role":    req.Role,
	}).Info("User role updated")

	utils.WriteSuccess(w, http.StatusOK, dto.FromUser(updated))
}

// DeleteUser removes an account. Admins cannot delete themselves.
// @Summary Delete an account
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse "Self-deletion"
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	actorID, _ := actor(r)
	if err := h.users.Delete(r.Context(), actorID, id); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "User deleted", nil)
}
