package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/afcon/internal/adapters/http/api"
	"github.com/okian/afcon/internal/domain/bracket"
	"github.com/okian/afcon/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// stubDeps serves canned responses to the handlers.
type stubDeps struct {
	prediction types.Prediction
	simulation types.SimulationResult
	err        error
}

func (s *stubDeps) PredictMatch(ctx context.Context, team1, team2 string) (types.Prediction, error) {
	if s.err != nil {
		return types.Prediction{}, s.err
	}
	return s.prediction, nil
}

func (s *stubDeps) SimulateTournament(ctx context.Context, fixtures []bracket.Fixture) (types.SimulationResult, error) {
	if s.err != nil {
		return types.SimulationResult{}, s.err
	}
	return s.simulation, nil
}

func (s *stubDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newMux(deps *stubDeps) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, deps).Register(context.Background(), mux)
	return mux
}

func TestPredictEndpoint(t *testing.T) {
	Convey("Given the predict endpoint", t, func() {
		deps := &stubDeps{prediction: types.Prediction{
			Winner: "Égypte", Team1WinProb: 60.0, DrawProb: 25.0, Team2WinProb: 15.0, Confidence: 60.0,
		}}
		mux := newMux(deps)

		post := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			return rec
		}

		Convey("When a valid pairing is posted", func() {
			rec := post(`{"team1":"Égypte","team2":"Algérie"}`)

			Convey("Then the prediction serves as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var p types.Prediction
				So(json.Unmarshal(rec.Body.Bytes(), &p), ShouldBeNil)
				So(p.Winner, ShouldEqual, "Égypte")
				So(p.Team1WinProb, ShouldEqual, 60.0)
			})

			Convey("Then a request ID is attached", func() {
				So(rec.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
			})
		})

		Convey("When the body is malformed", func() {
			So(post(`{"team1":`).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a team is missing", func() {
			So(post(`{"team1":"Égypte"}`).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When both teams are the same", func() {
			So(post(`{"team1":"Égypte","team2":"Égypte"}`).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the method is not POST", func() {
			req := httptest.NewRequest(http.MethodGet, "/predict", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When a preflight request arrives", func() {
			req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusNoContent)
			So(rec.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
		})
	})
}

func TestSimulateEndpoint(t *testing.T) {
	Convey("Given the simulate endpoint", t, func() {
		deps := &stubDeps{simulation: types.SimulationResult{
			RunID:    "run-1",
			Champion: "Maroc",
			Rounds: []types.Round{{Index: 0, Fixtures: []types.FixtureResult{
				{TeamA: "Maroc", TeamB: "Tanzanie", Winner: "Maroc", WinnerProb: 70.0},
			}}},
		}}
		mux := newMux(deps)

		post := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/simulate", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			return rec
		}

		Convey("When a bracket is posted", func() {
			rec := post(`{"bracket":[["Maroc","Tanzanie"]]}`)

			Convey("Then the simulation result serves as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var result types.SimulationResult
				So(json.Unmarshal(rec.Body.Bytes(), &result), ShouldBeNil)
				So(result.Champion, ShouldEqual, "Maroc")
				So(len(result.Rounds), ShouldEqual, 1)
			})
		})

		Convey("When the body is empty", func() {
			Convey("Then the default bracket runs", func() {
				So(post("").Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When a bracket entry is malformed", func() {
			So(post(`{"bracket":[["Maroc"]]}`).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the bracket size is invalid", func() {
			deps.err = bracket.ErrInvalidBracketSize
			So(post(`{"bracket":[["A","B"],["C","D"],["E","F"]]}`).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a tie cannot be decided", func() {
			deps.err = bracket.ErrUndecidableTie
			So(post(`{"bracket":[["A","B"]]}`).Code, ShouldEqual, http.StatusUnprocessableEntity)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given the stats endpoint", t, func() {
		mux := newMux(&stubDeps{})

		Convey("When requested", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the provider's stats serve as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var stats map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["started"], ShouldEqual, true)
			})
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given the health endpoint", t, func() {
		mux := newMux(&stubDeps{})

		Convey("When scraped", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it serves the metrics registry", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "afcon")
			})
		})
	})
}
