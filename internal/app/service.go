// Package app provides the core business service that implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/reelo/internal/adapters/store"
	"github.com/okian/reelo/internal/domain/board"
	"github.com/okian/reelo/internal/domain/dedupe"
	"github.com/okian/reelo/internal/domain/elo"
	"github.com/okian/reelo/internal/domain/genre"
	"github.com/okian/reelo/internal/domain/model"
	"github.com/okian/reelo/internal/domain/sampler"
	"github.com/okian/reelo/pkg/logger"
	"github.com/okian/reelo/pkg/metrics"
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrUnknownTitle  = errors.New("title not in collection")
	ErrSameEntity    = errors.New("winner and loser are the same entity")
	ErrDuplicateVote = errors.New("duel already voted")
)

// Duel is a served comparison, identified so its vote cannot be replayed.
type Duel struct {
	ID   string
	Pair model.Pair
}

// VoteResult reports the outcome of applying one vote.
type VoteResult struct {
	WinnerTitle  string
	WinnerRating int
	LoserTitle   string
	LoserRating  int

	// RowsUpdated counts store rows written; duplicates of an entity each
	// count once.
	RowsUpdated int
}

// Service owns the in-memory record collection for one session and applies
// votes through a single update path, keeping every duplicate row of an
// entity at the same rating.
type Service struct {
	mu sync.RWMutex

	records []model.Record
	store   store.Store
	sampler *sampler.Sampler
	deduper dedupe.Deduper

	// Configuration
	k               int
	samplerAttempts int
	samplerSeed     *int64
	dedupeSize      int

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the backing record store.
func WithStore(st store.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithK sets the Elo K-factor.
func WithK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.k = k
		}
	}
}

// WithSamplerAttempts sets the pair sampler's attempt budget.
func WithSamplerAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.samplerAttempts = n
		}
	}
}

// WithSamplerSeed makes pair sampling deterministic for tests.
func WithSamplerSeed(seed int64) Option {
	return func(s *Service) {
		s.samplerSeed = &seed
	}
}

// WithDedupeSize bounds the consumed-duel-id cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		k:               elo.DefaultK,
		samplerAttempts: sampler.DefaultMaxAttempts,
		dedupeSize:      10_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the record collection from the store. Records are loaded once
// per session; Reload refreshes them explicitly.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.store == nil {
		return errors.New("no store configured")
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	samplerOpts := []sampler.Option{sampler.WithMaxAttempts(s.samplerAttempts)}
	if s.samplerSeed != nil {
		samplerOpts = append(samplerOpts, sampler.WithSeed(*s.samplerSeed))
	}
	s.sampler = sampler.New(samplerOpts...)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))

	if err := s.loadLocked(ctx); err != nil {
		return err
	}

	s.started = true
	s.logger.Info(ctx, "rating service started",
		logger.Int("records", len(s.records)),
		logger.Int("k", s.k),
	)
	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "rating service stopped")
}

// Reload replaces the in-memory collection with the store's current rows.
// This is also how memory and store reconcile after a partial persist
// failure.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ErrNotStarted
	}
	return s.loadLocked(ctx)
}

// loadLocked fetches all rows and refreshes collection gauges. Must hold s.mu.
func (s *Service) loadLocked(ctx context.Context) error {
	start := time.Now()
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	metrics.RecordStoreLoadLatency(float64(time.Since(start).Milliseconds()))

	s.records = records
	s.updateCollectionGaugesLocked()
	return nil
}

// Duel samples a fresh pair for comparison. The returned duel id must
// accompany the vote; a consumed id cannot vote again.
func (s *Service) Duel(ctx context.Context) (Duel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return Duel{}, ErrNotStarted
	}

	pair, err := s.sampler.Pair(s.records)
	if err != nil {
		return Duel{}, fmt.Errorf("sample pair: %w", err)
	}

	metrics.RecordDuelServed()
	if pair.Fallback {
		metrics.RecordSamplerFallback()
		s.logger.Debug(ctx, "served fallback pair without genre overlap",
			logger.String("a", pair.A.Title),
			logger.String("b", pair.B.Title),
		)
	}
	return Duel{ID: uuid.NewString(), Pair: pair}, nil
}

// Vote applies a comparison outcome: the winner's and loser's new ratings
// are computed once and written to every in-memory row sharing each title,
// then persisted per title through the store.
//
// A persist failure is returned wrapped in store.ErrPersist. The in-memory
// mutation has already happened and is not rolled back; memory and store
// stay inconsistent until the next Reload. The duel id stays consumed either
// way, because the rating change itself succeeded.
func (s *Service) Vote(ctx context.Context, duelID, winnerTitle, loserTitle string) (VoteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return VoteResult{}, ErrNotStarted
	}

	winnerKey := model.NormalizeTitle(winnerTitle)
	loserKey := model.NormalizeTitle(loserTitle)
	if winnerKey == loserKey {
		return VoteResult{}, ErrSameEntity
	}

	winnerRating, ok := s.ratingLocked(winnerKey)
	if !ok {
		return VoteResult{}, fmt.Errorf("%w: %q", ErrUnknownTitle, winnerTitle)
	}
	loserRating, ok := s.ratingLocked(loserKey)
	if !ok {
		return VoteResult{}, fmt.Errorf("%w: %q", ErrUnknownTitle, loserTitle)
	}

	if s.deduper.SeenAndRecord(ctx, duelID) {
		metrics.RecordVoteDuplicate()
		return VoteResult{}, fmt.Errorf("%w: %s", ErrDuplicateVote, duelID)
	}

	newWinner, newLoser := elo.Update(winnerRating, loserRating, s.k)
	s.applyRatingLocked(winnerKey, newWinner)
	s.applyRatingLocked(loserKey, newLoser)
	metrics.RecordVoteApplied()

	result := VoteResult{
		WinnerTitle:  winnerTitle,
		WinnerRating: newWinner,
		LoserTitle:   loserTitle,
		LoserRating:  newLoser,
	}

	rows, err := s.persist(ctx, winnerTitle, newWinner)
	result.RowsUpdated += rows
	if err == nil {
		rows, err = s.persist(ctx, loserTitle, newLoser)
		result.RowsUpdated += rows
	}
	if err != nil {
		metrics.RecordPersistError()
		s.logger.Error(ctx, "rating changed locally but persist failed",
			logger.String("winner", winnerTitle),
			logger.String("loser", loserTitle),
			logger.Error(err),
		)
		return result, err
	}

	metrics.RecordRowsPersisted(result.RowsUpdated)
	s.logger.Info(ctx, "vote applied",
		logger.String("winner", winnerTitle),
		logger.Int("winner_rating", newWinner),
		logger.String("loser", loserTitle),
		logger.Int("loser_rating", newLoser),
		logger.Int("rows_updated", result.RowsUpdated),
	)
	return result, nil
}

// persist writes one title's rating through the store and tracks latency.
func (s *Service) persist(ctx context.Context, title string, rating int) (int, error) {
	start := time.Now()
	rows, err := s.store.SaveRating(ctx, title, rating)
	metrics.RecordStoreSaveLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return rows, fmt.Errorf("persist %q: %w", title, err)
	}
	return rows, nil
}

// Leaderboard returns entities sorted by rating, optionally genre-filtered.
func (s *Service) Leaderboard(_ context.Context, genreFilter string) ([]board.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return board.Leaderboard(s.records, genreFilter), nil
}

// Champions returns the top entity of every genre.
func (s *Service) Champions(_ context.Context) ([]board.Champion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return board.Champions(s.records), nil
}

// Genres returns the leaderboard filter options: the Overall sentinel
// followed by every distinct genre token in lexicographic order.
func (s *Service) Genres(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return append([]string{board.OverallFilter}, s.genreTokensLocked()...), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"k":       s.k,
	}
	if s.started {
		stats["records"] = len(s.records)
		stats["entities"] = s.entityCountLocked()
		stats["genres"] = len(s.genreTokensLocked())
		stats["consumedDuels"] = s.deduper.Size()
		s.updateCollectionGaugesLocked()
	}
	return stats
}

// ratingLocked returns the current rating of the entity with the given
// normalized title key. Must hold s.mu.
func (s *Service) ratingLocked(key string) (int, bool) {
	for i := range s.records {
		if s.records[i].Key() == key {
			return s.records[i].Rating, true
		}
	}
	return 0, false
}

// applyRatingLocked writes rating to every row sharing the key, keeping the
// entity-level rating invariant. Must hold s.mu.
func (s *Service) applyRatingLocked(key string, rating int) {
	for i := range s.records {
		if s.records[i].Key() == key {
			s.records[i].Rating = rating
		}
	}
}

func (s *Service) entityCountLocked() int {
	seen := make(map[string]struct{}, len(s.records))
	for i := range s.records {
		seen[s.records[i].Key()] = struct{}{}
	}
	return len(seen)
}

func (s *Service) genreTokensLocked() []string {
	genreStrings := make([]string, 0, len(s.records))
	for i := range s.records {
		genreStrings = append(genreStrings, s.records[i].Genres)
	}
	return genre.All(genreStrings)
}

func (s *Service) updateCollectionGaugesLocked() {
	metrics.UpdateRecordsTotal(len(s.records))
	metrics.UpdateEntitiesTotal(s.entityCountLocked())
	metrics.UpdateGenresTotal(len(s.genreTokensLocked()))
}
