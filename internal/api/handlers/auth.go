package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pagecraft/pagecraft/internal/api/dto"
	"github.com/pagecraft/pagecraft/internal/api/middleware"
	"github.com/pagecraft/pagecraft/internal/auth"
	"github.com/pagecraft/pagecraft/internal/config"
	"github.com/pagecraft/pagecraft/internal/domain/user"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
	"github.com/pagecraft/pagecraft/internal/pkg/logger"
	"github.com/pagecraft/pagecraft/internal/pkg/utils"
	"github.com/pagecraft/pagecraft/internal/pkg/validator"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService user.Service
	config      *config.Config
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	userService user.Service,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

// Register handles account registration
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	created, err := h.userService.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	token, err := auth.MintToken(created.ID, created.Email, created.Role,
		h.config.Auth.JWTSecret, h.config.Auth.TokenExpiry)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to generate token")
		utils.WriteError(w, errors.Internal("Failed to generate token", err))
		return
	}

	h.setAuthCookie(w, token)
	utils.WriteSuccess(w, http.StatusCreated, dto.AuthResponse{
		Token: token,
		User:  dto.FromUser(created),
	})
}

// Login handles user login
// @Summary User login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	authenticated, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
		}).Warn("Authentication failed")
		utils.WriteAppError(w, err)
		return
	}

	token, err := auth.MintToken(authenticated.ID, authenticated.Email, authenticated.Role,
		h.config.Auth.JWTSecret, h.config.Auth.TokenExpiry)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to generate token")
		utils.WriteError(w, errors.Internal("Failed to generate token", err))
		return
	}

	h.setAuthCookie(w, token)
	utils.WriteSuccess(w, http.StatusOK, dto.AuthResponse{
		Token: token,
		User:  dto.FromUser(authenticated),
	})
}

// Me returns the authenticated account
// @Summary Current account
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication"))
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromUser(u))
}

// Logout clears the auth cookie
// @Summary Logout
// @Tags Auth
// @Success 200 {object} utils.SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    "",
		HttpOnly: true,
		Secure:   h.config.Server.Environment == "production",
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    token,
		HttpOnly: true,
		Secure:   h.config.Server.Environment == "production",
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.Auth.TokenExpiry.Seconds()),
	})
}
