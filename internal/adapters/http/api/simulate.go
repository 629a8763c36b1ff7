// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/afcon/internal/domain/bracket"
	"github.com/okian/afcon/internal/domain/types"
)

// SimulateDependencies defines the interface for simulation operations.
type SimulateDependencies interface {
	SimulateTournament(ctx context.Context, fixtures []bracket.Fixture) (types.SimulationResult, error)
}

// SimulateHandler handles tournament simulation requests.
type SimulateHandler struct {
	deps SimulateDependencies
}

// NewSimulateHandler creates a new simulate handler.
func NewSimulateHandler(deps SimulateDependencies) *SimulateHandler {
	return &SimulateHandler{deps: deps}
}

// simulateRequest mirrors the serving contract for POST /simulate. An
// absent or empty bracket runs the configured default.
type simulateRequest struct {
	Bracket [][]string `json:"bracket"`
}

func (s simulateRequest) fixtures() ([]bracket.Fixture, error) {
	fixtures := make([]bracket.Fixture, 0, len(s.Bracket))
	for i, pair := range s.Bracket {
		if len(pair) != 2 || pair[0] == "" || pair[1] == "" {
			return nil, fmt.Errorf("bracket entry %d must name exactly two teams", i)
		}
		fixtures = append(fixtures, bracket.Fixture{TeamA: pair[0], TeamB: pair[1]})
	}
	return fixtures, nil
}

// HandleSimulate handles POST /simulate requests.
func (h *SimulateHandler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	fixtures, err := req.fixtures()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	result, err := h.deps.SimulateTournament(r.Context(), fixtures)
	if err != nil {
		switch {
		case errors.Is(err, bracket.ErrInvalidBracketSize):
			writeError(w, http.StatusBadRequest, "invalid_bracket_size", err)
		case errors.Is(err, bracket.ErrUndecidableTie):
			writeError(w, http.StatusUnprocessableEntity, "undecidable_tie", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}
