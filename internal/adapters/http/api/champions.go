// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/reelo/internal/domain/board"
)

// ChampionsDependencies defines the interface for champion extraction.
type ChampionsDependencies interface {
	Champions(ctx context.Context) ([]board.Champion, error)
}

// ChampionsHandler handles per-genre champion requests.
type ChampionsHandler struct {
	deps ChampionsDependencies
}

// NewChampionsHandler creates a new champions handler.
func NewChampionsHandler(deps ChampionsDependencies) *ChampionsHandler {
	return &ChampionsHandler{deps: deps}
}

// HandleGetChampions handles GET /champions requests.
func (h *ChampionsHandler) HandleGetChampions(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_champions"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	champions, err := h.deps.Champions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if champions == nil {
		champions = []board.Champion{}
	}
	writeJSON(w, http.StatusOK, champions)
}
