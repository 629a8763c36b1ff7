// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/afcon/internal/domain/feature"
	"github.com/okian/afcon/internal/domain/types"
)

// PredictDependencies defines the interface for prediction operations.
type PredictDependencies interface {
	PredictMatch(ctx context.Context, team1, team2 string) (types.Prediction, error)
}

// PredictHandler handles single-match prediction requests.
type PredictHandler struct {
	deps PredictDependencies
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps PredictDependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// predictRequest mirrors the serving contract for POST /predict.
// Team names are expected in the display locale, e.g. "Égypte".
type predictRequest struct {
	Team1 string `json:"team1"`
	Team2 string `json:"team2"`
}

func (p predictRequest) validate() error {
	switch {
	case strings.TrimSpace(p.Team1) == "":
		return errors.New("missing team1")
	case strings.TrimSpace(p.Team2) == "":
		return errors.New("missing team2")
	case p.Team1 == p.Team2:
		return errors.New("team1 and team2 must differ")
	}
	return nil
}

// HandlePredict handles POST /predict requests.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	prediction, err := h.deps.PredictMatch(r.Context(), req.Team1, req.Team2)
	if err != nil {
		if errors.Is(err, feature.ErrSchemaMismatch) {
			writeError(w, http.StatusInternalServerError, "schema_mismatch", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, prediction)
}
