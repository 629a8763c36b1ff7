// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, optional YAML file, then environment.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// MatchesCSV points to the finalized match table from the cleaning
	// pipeline. Ignored when MatchesDB is set.
	MatchesCSV string `koanf:"matches_csv"`

	// MatchesDB points to a SQLite snapshot carrying the same matches
	// table. Takes precedence over MatchesCSV when both are set.
	MatchesDB string `koanf:"matches_db"`

	// ModelDir holds the trained artifacts: feature_names.json,
	// scaler.json, model.json, label_encoder.json.
	ModelDir string `koanf:"model_dir"`

	// FeaturePolicy selects the inference-time feature defaults:
	// "live" (the shipped approximations) or "training" (exact
	// historical formulas).
	FeaturePolicy string `koanf:"feature_policy"`

	// TournamentYear is the edition used for host flags.
	TournamentYear int `koanf:"tournament_year"`

	// SimParallelism bounds concurrent fixture evaluations per bracket round.
	SimParallelism int `koanf:"sim_parallelism"`

	// PredictionCacheSize bounds the fixture prediction cache.
	PredictionCacheSize int `koanf:"prediction_cache_size"`

	// Bracket is the default knockout bracket: pairs of display-locale
	// team names in slot order.
	Bracket [][]string `koanf:"bracket"`

	// Static-table overrides, display-locale keys. Empty maps keep the
	// embedded defaults.
	FifaRanks   map[string]int     `koanf:"fifa_ranks"`
	CANTitles   map[string]int     `koanf:"can_titles"`
	CANWinRates map[string]float64 `koanf:"can_win_rates"`
	NameMapping map[string]string  `koanf:"name_mapping"`
}

// Feature policy values.
const (
	PolicyLive     = "live"
	PolicyTraining = "training"
)

// New creates a Config with defaults. The default bracket is the 2025
// round of 16.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":8000",
		MatchesCSV:          "data/matches.csv",
		ModelDir:            "models",
		FeaturePolicy:       PolicyLive,
		TournamentYear:      2025,
		SimParallelism:      4,
		PredictionCacheSize: 4096,
		Bracket: [][]string{
			{"Sénégal", "Soudan"},
			{"Mali", "Tunisie"},
			{"Maroc", "Tanzanie"},
			{"Afrique du Sud", "Cameroun"},
			{"Égypte", "Bénin"},
			{"Nigeria", "Mozambique"},
			{"Algérie", "RD Congo"},
			{"Côte d'Ivoire", "Burkina Faso"},
		},
	}
}
