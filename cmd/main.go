package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/afcon/internal/adapters/http/api"
	app "github.com/okian/afcon/internal/app"
	"github.com/okian/afcon/internal/config"
	"github.com/okian/afcon/internal/domain/bracket"
	"github.com/okian/afcon/internal/domain/feature"
	"github.com/okian/afcon/internal/domain/teamref"
	"github.com/okian/afcon/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(serviceOptions(cfg, log)...)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// serviceOptions maps loaded configuration onto service options.
func serviceOptions(cfg *config.Config, log logger.Logger) []app.Option {
	policy := feature.LivePolicy()
	if cfg.FeaturePolicy == config.PolicyTraining {
		policy = feature.TrainingPolicy()
	}

	fixtures := make([]bracket.Fixture, 0, len(cfg.Bracket))
	for _, pair := range cfg.Bracket {
		fixtures = append(fixtures, bracket.Fixture{TeamA: pair[0], TeamB: pair[1]})
	}

	var refOpts []teamref.Option
	if len(cfg.FifaRanks) > 0 {
		refOpts = append(refOpts, teamref.WithRanks(cfg.FifaRanks))
	}
	if len(cfg.CANTitles) > 0 {
		refOpts = append(refOpts, teamref.WithTitles(cfg.CANTitles))
	}
	if len(cfg.CANWinRates) > 0 {
		refOpts = append(refOpts, teamref.WithWinRates(cfg.CANWinRates))
	}
	if len(cfg.NameMapping) > 0 {
		refOpts = append(refOpts, teamref.WithNameMapping(cfg.NameMapping))
	}

	return []app.Option{
		app.WithLogger(log),
		app.WithMatchesCSV(cfg.MatchesCSV),
		app.WithMatchesDB(cfg.MatchesDB),
		app.WithModelDir(cfg.ModelDir),
		app.WithPolicy(policy),
		app.WithTournamentYear(cfg.TournamentYear),
		app.WithSimParallelism(cfg.SimParallelism),
		app.WithCacheSize(cfg.PredictionCacheSize),
		app.WithDefaultBracket(fixtures),
		app.WithReferenceTable(teamref.New(refOpts...)),
	}
}
