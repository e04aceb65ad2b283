// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/reelo/internal/app"
	"github.com/okian/reelo/internal/domain/board"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Duel(ctx context.Context) (app.Duel, error)
	Vote(ctx context.Context, duelID, winnerTitle, loserTitle string) (app.VoteResult, error)
	Leaderboard(ctx context.Context, genreFilter string) ([]board.Row, error)
	Champions(ctx context.Context) ([]board.Champion, error)
	Genres(ctx context.Context) ([]string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	duelHandler        *DuelHandler
	voteHandler        *VoteHandler
	leaderboardHandler *LeaderboardHandler
	championsHandler   *ChampionsHandler
	genresHandler      *GenresHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		duelHandler:        NewDuelHandler(deps),
		voteHandler:        NewVoteHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLeaderboardLimit),
		championsHandler:   NewChampionsHandler(deps),
		genresHandler:      NewGenresHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/duel", MetricsMiddleware(s.duelHandler.HandleGetDuel, "duel"))
	mux.HandleFunc("/vote", MetricsMiddleware(s.voteHandler.HandlePostVote, "vote"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/champions", MetricsMiddleware(s.championsHandler.HandleGetChampions, "champions"))
	mux.HandleFunc("/genres", MetricsMiddleware(s.genresHandler.HandleGetGenres, "genres"))
}

// voteRequest is the body of POST /vote.
type voteRequest struct {
	DuelID      string `json:"duel_id"`
	WinnerTitle string `json:"winner_title"`
	LoserTitle  string `json:"loser_title"`
}

func (v voteRequest) validate() error {
	switch {
	case strings.TrimSpace(v.DuelID) == "":
		return fmt.Errorf("%w: missing duel_id", ErrBadRequest)
	case strings.TrimSpace(v.WinnerTitle) == "":
		return fmt.Errorf("%w: missing winner_title", ErrBadRequest)
	case strings.TrimSpace(v.LoserTitle) == "":
		return fmt.Errorf("%w: missing loser_title", ErrBadRequest)
	}
	return nil
}

// voteResponse acknowledges an applied (or duplicate) vote.
type voteResponse struct {
	Status       string `json:"status"`
	Duplicate    bool   `json:"duplicate"`
	WinnerTitle  string `json:"winner_title,omitempty"`
	WinnerRating int    `json:"winner_rating,omitempty"`
	LoserTitle   string `json:"loser_title,omitempty"`
	LoserRating  int    `json:"loser_rating,omitempty"`
	RowsUpdated  int    `json:"rows_updated"`
}

// duelSide is one movie of a served pair.
type duelSide struct {
	Title     string `json:"title"`
	Director  string `json:"director"`
	Genres    string `json:"genres"`
	PosterURL string `json:"poster_url,omitempty"`
	Rating    int    `json:"rating"`
}

// duelResponse is the body of GET /duel.
type duelResponse struct {
	DuelID       string   `json:"duel_id"`
	A            duelSide `json:"a"`
	B            duelSide `json:"b"`
	SharedGenres []string `json:"shared_genres"`
	Fallback     bool     `json:"fallback"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewKind annotates a sentinel kind with the operation that raised it.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// Wrap annotates an arbitrary error with the operation.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
