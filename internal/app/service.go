// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	repository "github.com/okian/afcon/internal/adapters/repository"
	"github.com/okian/afcon/internal/domain/bracket"
	"github.com/okian/afcon/internal/domain/feature"
	"github.com/okian/afcon/internal/domain/model"
	"github.com/okian/afcon/internal/domain/oracle"
	"github.com/okian/afcon/internal/domain/predcache"
	"github.com/okian/afcon/internal/domain/teamref"
	"github.com/okian/afcon/internal/domain/types"
	"github.com/okian/afcon/pkg/logger"
	"github.com/okian/afcon/pkg/metrics"
)

// Service implements prediction and simulation on top of the repository
// snapshot, the feature pipeline and the prediction oracle.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	refs      *teamref.Table
	deriver   *feature.Deriver
	assembler *feature.Assembler
	scorer    oracle.Scorer
	cache     predcache.Cache
	simulator *bracket.Simulator

	// Configuration
	matchesCSV     string
	matchesDB      string
	modelDir       string
	policy         feature.Policy
	tournamentYear int
	simParallelism int
	cacheSize      int
	defaultBracket []bracket.Fixture

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithMatchesCSV sets the CSV snapshot path.
func WithMatchesCSV(path string) Option {
	return func(s *Service) {
		s.matchesCSV = path
	}
}

// WithMatchesDB sets the SQLite snapshot path; takes precedence over CSV.
func WithMatchesDB(path string) Option {
	return func(s *Service) {
		s.matchesDB = path
	}
}

// WithModelDir sets the trained-artifact directory.
func WithModelDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.modelDir = dir
		}
	}
}

// WithPolicy sets the feature default policy.
func WithPolicy(p feature.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithTournamentYear sets the edition used for host flags.
func WithTournamentYear(year int) Option {
	return func(s *Service) {
		if year > 0 {
			s.tournamentYear = year
		}
	}
}

// WithSimParallelism bounds concurrent fixture evaluations per round.
func WithSimParallelism(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.simParallelism = n
		}
	}
}

// WithCacheSize bounds the prediction cache.
func WithCacheSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.cacheSize = n
		}
	}
}

// WithDefaultBracket sets the bracket used when a simulation request
// names no fixtures.
func WithDefaultBracket(fixtures []bracket.Fixture) Option {
	return func(s *Service) {
		if len(fixtures) > 0 {
			s.defaultBracket = fixtures
		}
	}
}

// WithReferenceTable injects a prebuilt static reference table.
func WithReferenceTable(t *teamref.Table) Option {
	return func(s *Service) {
		if t != nil {
			s.refs = t
		}
	}
}

// WithStore injects a prebuilt match store, skipping snapshot loading.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithScorer injects a scorer, skipping model-bundle loading.
func WithScorer(scorer oracle.Scorer) Option {
	return func(s *Service) {
		if scorer != nil {
			s.scorer = scorer
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

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		modelDir:       "models",
		policy:         feature.LivePolicy(),
		tournamentYear: 2025,
		simParallelism: 4,
		cacheSize:      4096,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the snapshot and model artifacts and wires the components.
// Everything loaded here is read-only for the service lifetime.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting prediction service...")

	if s.refs == nil {
		s.refs = teamref.New()
	}

	if s.store == nil {
		var (
			matches []model.Match
			err     error
		)
		switch {
		case s.matchesDB != "":
			matches, err = repository.LoadSQLite(s.matchesDB)
		case s.matchesCSV != "":
			matches, err = repository.LoadCSV(s.matchesCSV)
		default:
			return fmt.Errorf("no match snapshot configured")
		}
		if err != nil {
			return fmt.Errorf("loading match snapshot: %w", err)
		}
		s.store = repository.NewIndexStore(matches)
	}

	s.deriver = feature.NewDeriver(s.store, s.refs, s.policy)
	s.assembler = feature.NewAssembler(s.deriver)

	if s.scorer == nil {
		bundle, err := oracle.LoadBundle(s.modelDir)
		if err != nil {
			return fmt.Errorf("loading model bundle: %w", err)
		}
		s.scorer = oracle.NewAdapter(bundle)
	}

	s.cache = predcache.New(predcache.WithMaxSize(s.cacheSize))
	s.simulator = bracket.New(s, s.refs,
		bracket.WithParallelism(s.simParallelism),
		bracket.WithLogger(s.logger.Named("bracket")),
	)

	s.started = true
	s.logger.Info(ctx, "prediction service started",
		logger.Int("matches", s.store.Count(ctx)),
		logger.Int("teams", len(s.store.Teams(ctx))),
		logger.Int("tournamentYear", s.tournamentYear),
	)
	return nil
}

// PredictFixture computes the outcome distribution for a pairing. It
// implements bracket.Predictor. Team names are display-locale; unknown
// names are warned about and served on documented defaults.
func (s *Service) PredictFixture(ctx context.Context, team1, team2 string) (oracle.Distribution, error) {
	if dist, ok := s.cache.Get(ctx, team1, team2); ok {
		return dist, nil
	}

	for _, team := range []string{team1, team2} {
		if !s.refs.Known(team) {
			metrics.RecordUnknownTeam()
			s.logger.Warn(ctx, "team absent from static tables; using default context",
				logger.String("team", team),
			)
		}
	}

	vec := s.assembler.Assemble(ctx, feature.Fixture{
		Team1: team1,
		Team2: team2,
		AsOf:  time.Now(),
		Year:  s.tournamentYear,
	})
	dist, err := s.scorer.Predict(ctx, vec)
	if err != nil {
		return oracle.Distribution{}, err
	}
	s.cache.Put(ctx, team1, team2, dist)
	return dist, nil
}

// PredictMatch serves a single-match prediction in the serving-boundary
// shape: percentages in [0,100] and the winner's name, or "draw".
func (s *Service) PredictMatch(ctx context.Context, team1, team2 string) (types.Prediction, error) {
	start := time.Now()
	dist, err := s.PredictFixture(ctx, team1, team2)
	if err != nil {
		metrics.RecordPredictionError()
		return types.Prediction{}, err
	}

	p := types.Prediction{
		Team1WinProb: round1(dist.Win * 100),
		DrawProb:     round1(dist.Draw * 100),
		Team2WinProb: round1(dist.Loss * 100),
	}
	p.Confidence = math.Max(p.Team1WinProb, math.Max(p.DrawProb, p.Team2WinProb))
	switch winner := dist.WinnerName(team1, team2); winner {
	case oracle.DrawSentinel:
		p.Winner = "draw"
	default:
		p.Winner = winner
	}

	metrics.RecordPredictionServed()
	metrics.RecordPredictionLatency(float64(time.Since(start).Nanoseconds()) / 1e6)
	return p, nil
}

// SimulateTournament runs a knockout bracket; an empty fixture list runs
// the configured default bracket.
func (s *Service) SimulateTournament(ctx context.Context, fixtures []bracket.Fixture) (types.SimulationResult, error) {
	if len(fixtures) == 0 {
		fixtures = s.defaultBracket
	}
	return s.simulator.Run(ctx, fixtures)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":        s.started,
		"tournamentYear": s.tournamentYear,
		"bracketSize":    len(s.defaultBracket) * 2,
	}
	if s.started {
		stats["matches"] = s.store.Count(ctx)
		stats["teams"] = len(s.store.Teams(ctx))
		stats["cachedPredictions"] = s.cache.Size()
	}
	return stats
}

// round1 rounds to one decimal, matching the served contract.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
