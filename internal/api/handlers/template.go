package handlers

import (
	"net/http"

	"github.com/pagecraft/pagecraft/internal/pkg/utils"
	"github.com/pagecraft/pagecraft/internal/services"
)

// TemplateHandler handles template listing requests
type TemplateHandler struct {
	templates *services.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templates *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// List returns the template catalog, optionally filtered by category
// @Summary List templates
// @Tags Templates
// @Produce json
// @Param category query string false "Filter by category"
// @Success 200 {object} utils.ListResponse
// @Router /templates [get]
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	p := utils.ParsePagination(r)
	category := r.URL.Query().Get("category")

	templates, total, err := h.templates.List(r.Context(), category, p.Limit, p.Offset)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.ListResponse{
		Items:  templates,
		Total:  total,
		Limit:  p.Limit,
		Offset: p.Offset,
	})
}

// Get returns one template
// @Summary Get a template
// @Tags Templates
// @Produce json
// @Param id path int true "Template ID"
// @Success 200 {object} template.Template
// @Failure 404 {object} utils.ErrorResponse
// @Router /templates/{id} [get]
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	t, err := h.templates.Get(r.Context(), id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, t)
}
