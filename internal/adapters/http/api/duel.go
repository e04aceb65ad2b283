// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/reelo/internal/app"
	"github.com/okian/reelo/internal/domain/model"
	"github.com/okian/reelo/internal/domain/sampler"
)

// DuelDependencies defines the interface for duel sampling.
type DuelDependencies interface {
	Duel(ctx context.Context) (app.Duel, error)
}

// DuelHandler handles duel requests.
type DuelHandler struct {
	deps DuelDependencies
}

// NewDuelHandler creates a new duel handler.
func NewDuelHandler(deps DuelDependencies) *DuelHandler {
	return &DuelHandler{deps: deps}
}

// HandleGetDuel handles GET /duel requests.
func (h *DuelHandler) HandleGetDuel(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_duel"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	duel, err := h.deps.Duel(r.Context())
	if err != nil {
		if errors.Is(err, sampler.ErrInsufficientRecords) {
			writeError(w, http.StatusUnprocessableEntity, "insufficient_records", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	shared := duel.Pair.SharedGenres
	if shared == nil {
		shared = []string{}
	}
	writeJSON(w, http.StatusOK, duelResponse{
		DuelID:       duel.ID,
		A:            toDuelSide(duel.Pair.A),
		B:            toDuelSide(duel.Pair.B),
		SharedGenres: shared,
		Fallback:     duel.Pair.Fallback,
	})
}

func toDuelSide(rec model.Record) duelSide {
	return duelSide{
		Title:     rec.Title,
		Director:  rec.Director,
		Genres:    rec.Genres,
		PosterURL: rec.PosterURL,
		Rating:    rec.Rating,
	}
}
