package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pagecraft/pagecraft/internal/api/middleware"
	"github.com/pagecraft/pagecraft/internal/pkg/errors"
)

// parseIDParam reads a positive int64 URL parameter
func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.BadRequest("Invalid " + name)
	}
	return id, nil
}

// actor reads the authenticated caller's identity from the request
// context. The auth middleware guarantees both values are present on
// protected routes.
func actor(r *http.Request) (int64, string) {
	id, _ := middleware.GetUserID(r)
	role, _ := middleware.GetUserRole(r)
	return id, role
}
