package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pagecraft/pagecraft/internal/api/dto"
	"github.com/pagecraft/pagecraft/internal/domain/project"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
	"github.com/pagecraft/pagecraft/internal/pkg/logger"
	"github.com/pagecraft/pagecraft/internal/pkg/utils"
	"github.com/pagecraft/pagecraft/internal/pkg/validator"
)

// ProjectHandler handles project CRUD requests
type ProjectHandler struct {
	projects  project.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects project.Service, log *logger.Logger, val *validator.Validator) *ProjectHandler {
	return &ProjectHandler{
		projects:  projects,
		logger:    log,
		validator: val,
	}
}

// Create creates a new project
// @Summary Create a project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} project.Project
// @Failure 403 {object} utils.ErrorResponse "Premium template on a free plan"
// @Router /projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	userID, _ := actor(r)
	created, err := h.projects.Create(r.Context(), userID, project.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		TemplateID:  req.TemplateID,
		HTML:        req.HTML,
		CSS:         req.CSS,
	})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, created)
}

// List returns the caller's projects
// @Summary List projects
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.ListResponse
// @Router /projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	p := utils.ParsePagination(r)

	projects, total, err := h.projects.ListByUser(r.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.ListResponse{
		Items:  projects,
		Total:  total,
		Limit:  p.Limit,
		Offset: p.Offset,
	})
}

// Get returns one project
// @Summary Get a project
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} project.Project
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	actorID, actorRole := actor(r)
	p, err := h.projects.Get(r.Context(), actorID, actorRole, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, p)
}

// Update applies a partial update to a project
// @Summary Update a project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} project.Project
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	var req dto.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	actorID, actorRole := actor(r)
	updated, err := h.projects.Update(r.Context(), actorID, actorRole, id, project.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		HTML:        req.HTML,
		CSS:         req.CSS,
		Subdomain:   req.Subdomain,
	})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, updated)
}

// Delete removes a project
// @Summary Delete a project
// @Tags Projects
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} utils.SuccessResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	actorID, actorRole := actor(r)
	if err := h.projects.Delete(r.Context(), actorID, actorRole, id); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Project deleted", nil)
}

// Publish toggles a project's published flag
// @Summary Publish or unpublish a project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.PublishProjectRequest true "Published flag"
// @Success 200 {object} project.Project
// @Router /projects/{id}/publish [post]
func (h *ProjectHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	var req dto.PublishProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	actorID, actorRole := actor(r)
	updated, err := h.projects.SetPublished(r.Context(), actorID, actorRole, id, req.Published)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, updated)
}
