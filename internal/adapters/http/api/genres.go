// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// GenresDependencies defines the interface for the filter option list.
type GenresDependencies interface {
	Genres(ctx context.Context) ([]string, error)
}

// GenresHandler handles genre option requests.
type GenresHandler struct {
	deps GenresDependencies
}

// NewGenresHandler creates a new genres handler.
func NewGenresHandler(deps GenresDependencies) *GenresHandler {
	return &GenresHandler{deps: deps}
}

// HandleGetGenres handles GET /genres requests. The first option is always
// the Overall sentinel.
func (h *GenresHandler) HandleGetGenres(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_genres"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	genres, err := h.deps.Genres(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, genres)
}
