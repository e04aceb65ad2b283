// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/reelo/internal/adapters/store"
	"github.com/okian/reelo/internal/app"
)

// VoteDependencies defines the interface for vote processing.
type VoteDependencies interface {
	Vote(ctx context.Context, duelID, winnerTitle, loserTitle string) (app.VoteResult, error)
}

// VoteHandler handles vote requests.
type VoteHandler struct {
	deps VoteDependencies
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(deps VoteDependencies) *VoteHandler {
	return &VoteHandler{deps: deps}
}

// HandlePostVote handles POST /vote requests.
func (h *VoteHandler) HandlePostVote(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_vote"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}

	result, err := h.deps.Vote(r.Context(), req.DuelID, req.WinnerTitle, req.LoserTitle)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, voteResponse{
			Status:       "applied",
			WinnerTitle:  result.WinnerTitle,
			WinnerRating: result.WinnerRating,
			LoserTitle:   result.LoserTitle,
			LoserRating:  result.LoserRating,
			RowsUpdated:  result.RowsUpdated,
		})
	case errors.Is(err, app.ErrDuplicateVote):
		writeJSON(w, http.StatusOK, voteResponse{Status: "duplicate", Duplicate: true})
	case errors.Is(err, app.ErrUnknownTitle), errors.Is(err, app.ErrSameEntity):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	case errors.Is(err, store.ErrPersist):
		// The rating already changed in memory; the store write did not
		// land. The caller should treat the new ratings as unsaved.
		writeError(w, http.StatusBadGateway, "persist_failed", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
