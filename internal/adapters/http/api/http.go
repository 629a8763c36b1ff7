// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/afcon/internal/domain/bracket"
	"github.com/okian/afcon/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// PredictMatch serves a single-match prediction.
	PredictMatch(ctx context.Context, team1, team2 string) (types.Prediction, error)

	// SimulateTournament runs a knockout bracket; empty fixtures run the
	// configured default bracket.
	SimulateTournament(ctx context.Context, fixtures []bracket.Fixture) (types.SimulationResult, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	predictHandler  *PredictHandler
	simulateHandler *SimulateHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, stats StatsDependencies) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(stats),
		predictHandler:  NewPredictHandler(deps),
		simulateHandler: NewSimulateHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", Middleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", Middleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/predict", Middleware(s.predictHandler.HandlePredict, "predict"))
	mux.HandleFunc("/simulate", Middleware(s.simulateHandler.HandleSimulate, "simulate"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError reports a failure with the underlying reason as a diagnostic
// message. Hard failures are never papered over with a default prediction.
func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
