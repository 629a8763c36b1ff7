package loadtest

import "time"

// Config holds configuration for the prediction load test
type Config struct {
	BaseURL     string        // Base URL of the service
	NumFixtures int           // Number of fixtures to generate
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	Simulate    bool          // Also run a full bracket simulation
	OutputFile  string        // Output file for fixtures
	LogFile     string        // Log file for test output
	Verbose     bool          // Enable verbose logging
}

// Fixture represents a pairing to be submitted
type Fixture struct {
	Team1 string `json:"team1"`
	Team2 string `json:"team2"`
}

// Prediction represents the response from a prediction request
type Prediction struct {
	Winner       string  `json:"winner"`
	Team1WinProb float64 `json:"team1_win_prob"`
	DrawProb     float64 `json:"draw_prob"`
	Team2WinProb float64 `json:"team2_win_prob"`
	Confidence   float64 `json:"confidence"`
}

// FixtureResult represents one resolved pairing of a simulated round
type FixtureResult struct {
	TeamA      string  `json:"team_a"`
	TeamB      string  `json:"team_b"`
	Winner     string  `json:"winner"`
	WinnerProb float64 `json:"winner_prob"`
	TieBroken  bool    `json:"tie_broken"`
}

// Round represents one simulated knockout round
type Round struct {
	Index    int             `json:"index"`
	Fixtures []FixtureResult `json:"fixtures"`
}

// SimulationResult represents the response from a simulation request
type SimulationResult struct {
	RunID    string  `json:"run_id"`
	Rounds   []Round `json:"rounds"`
	Champion string  `json:"champion"`
}

// Stats holds test statistics
type Stats struct {
	FixturesGenerated     int
	PredictionsSubmitted  int
	PredictionsSuccessful int
	PredictionsFailed     int
	PredictionsInvalid    int
	SimulationsRun        int
	StartTime             time.Time
	EndTime               time.Time
	Duration              time.Duration
}
