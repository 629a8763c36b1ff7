// Command simulate runs the configured knockout bracket in-process and
// prints the round-by-round results.
package main

import (
	"context"
	"fmt"
	"os"

	app "github.com/okian/afcon/internal/app"
	"github.com/okian/afcon/internal/config"
	"github.com/okian/afcon/internal/domain/bracket"
	"github.com/okian/afcon/internal/domain/feature"
	"github.com/okian/afcon/pkg/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	_ = logger.SetLevelString("warn")

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	policy := feature.LivePolicy()
	if cfg.FeaturePolicy == config.PolicyTraining {
		policy = feature.TrainingPolicy()
	}
	fixtures := make([]bracket.Fixture, 0, len(cfg.Bracket))
	for _, pair := range cfg.Bracket {
		fixtures = append(fixtures, bracket.Fixture{TeamA: pair[0], TeamB: pair[1]})
	}

	svc := app.New(
		app.WithMatchesCSV(cfg.MatchesCSV),
		app.WithMatchesDB(cfg.MatchesDB),
		app.WithModelDir(cfg.ModelDir),
		app.WithPolicy(policy),
		app.WithTournamentYear(cfg.TournamentYear),
		app.WithSimParallelism(cfg.SimParallelism),
		app.WithDefaultBracket(fixtures),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		os.Exit(1)
	}

	result, err := svc.SimulateTournament(ctx, nil)
	if err != nil {
		os.Stderr.WriteString("simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	for _, round := range result.Rounds {
		fmt.Printf("--- Round %d ---\n", round.Index+1)
		for _, fx := range round.Fixtures {
			note := ""
			if fx.TieBroken {
				note = " (by ranking)"
			}
			fmt.Printf("%s vs %s -> %s (%.1f%%)%s\n", fx.TeamA, fx.TeamB, fx.Winner, fx.WinnerProb, note)
		}
	}
	fmt.Printf("Champion: %s\n", result.Champion)
}
