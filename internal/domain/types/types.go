// Package types contains common types used across the application
package types

// Prediction is the serving-boundary shape for a single-match prediction.
// Probabilities are percentages in [0,100] summing to ~100; Confidence is
// the maximum of the three.
type Prediction struct {
	Winner       string  `json:"winner"` // team name, or "draw"
	Team1WinProb float64 `json:"team1WinProb"`
	DrawProb     float64 `json:"drawProb"`
	Team2WinProb float64 `json:"team2WinProb"`
	Confidence   float64 `json:"confidence"`
}

// FixtureResult records the resolution of one bracket fixture.
type FixtureResult struct {
	TeamA      string  `json:"team_a"`
	TeamB      string  `json:"team_b"`
	Winner     string  `json:"winner"`
	WinnerProb float64 `json:"winner_prob"` // percentage
	TieBroken  bool    `json:"tie_broken"`  // winner forced by static rank after a predicted draw
}

// Round is one completed bracket round, in slot order.
type Round struct {
	Index    int             `json:"index"`
	Fixtures []FixtureResult `json:"fixtures"`
}

// SimulationResult is the serving-boundary shape for a tournament run.
type SimulationResult struct {
	RunID    string  `json:"run_id"`
	Rounds   []Round `json:"rounds"`
	Champion string  `json:"champion"`
}
