// Package bracket drives a single-elimination tournament over the match
// predictor: evaluate every fixture of a round, force knockout draws to a
// winner by static ranking, fold winners into the next round until a
// champion remains.
package bracket

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/afcon/internal/domain/oracle"
	"github.com/okian/afcon/internal/domain/types"
	"github.com/okian/afcon/pkg/logger"
	"github.com/okian/afcon/pkg/metrics"
)

// defaultParallelism bounds concurrent fixture evaluations in one round.
// Fixtures share no mutable state, so evaluation order is free; slot order
// of the results is preserved regardless.
const defaultParallelism = 4

// Fixture is one scheduled pairing, team names in the display locale.
type Fixture struct {
	TeamA string `json:"team_a"`
	TeamB string `json:"team_b"`
}

// Predictor resolves a pairing into an outcome distribution. The app
// service implements this on top of the feature assembler and the oracle.
type Predictor interface {
	PredictFixture(ctx context.Context, team1, team2 string) (oracle.Distribution, error)
}

// PredictorFunc adapts a function to the Predictor interface.
type PredictorFunc func(ctx context.Context, team1, team2 string) (oracle.Distribution, error)

// PredictFixture implements Predictor.
func (f PredictorFunc) PredictFixture(ctx context.Context, team1, team2 string) (oracle.Distribution, error) {
	return f(ctx, team1, team2)
}

// Ranker exposes the static ranking used for knockout tie-breaks; lower
// is stronger.
type Ranker interface {
	Rank(team string) int
}

// Simulator runs brackets. Stateless between runs; all per-run state
// lives on the stack of Run.
type Simulator struct {
	predictor   Predictor
	ranker      Ranker
	parallelism int
	logger      logger.Logger
}

// Option applies a configuration option to the Simulator.
type Option func(*Simulator)

// WithParallelism bounds concurrent fixture evaluations per round.
func WithParallelism(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Simulator.
func New(predictor Predictor, ranker Ranker, opts ...Option) *Simulator {
	s := &Simulator{
		predictor:   predictor,
		ranker:      ranker,
		parallelism: defaultParallelism,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("bracket")
	}
	return s
}

// Run simulates the bracket to a single champion. The entrant count must
// be a power of two. Given the same fixtures, predictor and ranking table,
// the result is deterministic.
func (s *Simulator) Run(ctx context.Context, fixtures []Fixture) (types.SimulationResult, error) {
	entrants := len(fixtures) * 2
	if len(fixtures) == 0 || !isPowerOfTwo(entrants) {
		return types.SimulationResult{}, fmt.Errorf("%w: %d entrants", ErrInvalidBracketSize, entrants)
	}

	result := types.SimulationResult{RunID: uuid.NewString()}
	current := fixtures

	for round := 0; len(current) > 0; round++ {
		evaluated, err := s.evaluateRound(ctx, round, current)
		if err != nil {
			return types.SimulationResult{}, err
		}
		result.Rounds = append(result.Rounds, types.Round{Index: round, Fixtures: evaluated})

		winners := make([]string, len(evaluated))
		for i, fr := range evaluated {
			winners[i] = fr.Winner
		}
		if len(winners) == 1 {
			result.Champion = winners[0]
			break
		}
		// Winners i and i+1 feed fixture i/2 of the next round.
		next := make([]Fixture, len(winners)/2)
		for i := 0; i < len(winners); i += 2 {
			next[i/2] = Fixture{TeamA: winners[i], TeamB: winners[i+1]}
		}
		current = next
	}

	metrics.RecordSimulationRun()
	s.logger.Info(ctx, "simulation complete",
		logger.String("runID", result.RunID),
		logger.Int("rounds", len(result.Rounds)),
		logger.String("champion", result.Champion),
	)
	return result, nil
}

// evaluateRound resolves every fixture of one round, concurrently up to
// the configured parallelism, keeping results in slot order.
func (s *Simulator) evaluateRound(ctx context.Context, round int, fixtures []Fixture) ([]types.FixtureResult, error) {
	results := make([]types.FixtureResult, len(fixtures))
	errs := make([]error, len(fixtures))
	sem := make(chan struct{}, s.parallelism)

	var wg sync.WaitGroup
	for i, fx := range fixtures {
		wg.Add(1)
		go func(slot int, fx Fixture) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[slot], errs[slot] = s.evaluateFixture(ctx, fx)
		}(i, fx)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("round %d fixture %d (%s vs %s): %w",
				round, i, fixtures[i].TeamA, fixtures[i].TeamB, err)
		}
	}
	return results, nil
}

func (s *Simulator) evaluateFixture(ctx context.Context, fx Fixture) (types.FixtureResult, error) {
	dist, err := s.predictor.PredictFixture(ctx, fx.TeamA, fx.TeamB)
	if err != nil {
		return types.FixtureResult{}, err
	}
	metrics.RecordFixtureEvaluated()

	fr := types.FixtureResult{TeamA: fx.TeamA, TeamB: fx.TeamB}
	switch winner := dist.WinnerName(fx.TeamA, fx.TeamB); winner {
	case oracle.DrawSentinel:
		// A draw is not a valid knockout outcome: the better-ranked side
		// advances. Equal ranks cannot be decided and must surface.
		rankA, rankB := s.ranker.Rank(fx.TeamA), s.ranker.Rank(fx.TeamB)
		switch {
		case rankA < rankB:
			fr.Winner = fx.TeamA
		case rankB < rankA:
			fr.Winner = fx.TeamB
		default:
			metrics.RecordUndecidableTie()
			return types.FixtureResult{}, fmt.Errorf("%w: %s and %s both ranked %d",
				ErrUndecidableTie, fx.TeamA, fx.TeamB, rankA)
		}
		fr.TieBroken = true
		fr.WinnerProb = dist.Draw * 100
		metrics.RecordDrawTieBreak()
	case fx.TeamA:
		fr.Winner = winner
		fr.WinnerProb = dist.Win * 100
	default:
		fr.Winner = winner
		fr.WinnerProb = dist.Loss * 100
	}
	return fr, nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
