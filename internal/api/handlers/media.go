package handlers

import (
	"net/http"

	"github.com/pagecraft/pagecraft/internal/pkg/errors"
	"github.com/pagecraft/pagecraft/internal/pkg/logger"
	"github.com/pagecraft/pagecraft/internal/pkg/utils"
	"github.com/pagecraft/pagecraft/internal/services"
)

// MediaHandler handles media upload requests
type MediaHandler struct {
	media  *services.MediaService
	logger *logger.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(media *services.MediaService, log *logger.Logger) *MediaHandler {
	return &MediaHandler{media: media, logger: log}
}

// Upload accepts a multipart file upload
// @Summary Upload a media file
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Success 201 {object} media.Media
// @Failure 400 {object} utils.ErrorResponse "Unsupported type or too large"
// @Router /media [post]
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadBytes)

	if err := r.ParseMultipartForm(services.MaxUploadBytes); err != nil {
		utils.WriteError(w, errors.BadRequest("Upload exceeds the 10 MB limit"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Missing file field"))
		return
	}
	defer file.Close()

	userID, _ := actor(r)
	item, err := h.media.Upload(r.Context(), userID,
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, item)
}

// List returns the caller's uploaded media
// @Summary List media
// @Tags Media
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.ListResponse
// @Router /media [get]
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	p := utils.ParsePagination(r)

	items, total, err := h.media.ListByUser(r.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.ListResponse{
		Items:  items,
		Total:  total,
		Limit:  p.Limit,
		Offset: p.Offset,
	})
}

// Delete removes a media item and its stored blob
// @Summary Delete a media item
// @Tags Media
// @Security BearerAuth
// @Param id path int true "Media ID"
// @Success 200 {object} utils.SuccessResponse
// @Router /media/{id} [delete]
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	actorID, actorRole := actor(r)
	if err := h.media.Delete(r.Context(), actorID, actorRole, id); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Media deleted", nil)
}
