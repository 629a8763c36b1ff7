package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if AFCON_CONFIG is set
//  3. env (prefix AFCON_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("AFCON_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: AFCON_ADDR, AFCON_MODEL_DIR, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("AFCON_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "afcon_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.MatchesCSV == "" && c.MatchesDB == "" {
		return fmt.Errorf("%w: one of matches_csv or matches_db is required", ErrInvalidConfig)
	}
	if c.ModelDir == "" {
		return fmt.Errorf("%w: model_dir must not be empty", ErrInvalidConfig)
	}
	switch c.FeaturePolicy {
	case PolicyLive, PolicyTraining:
	default:
		return fmt.Errorf("%w: feature_policy must be %q or %q", ErrInvalidConfig, PolicyLive, PolicyTraining)
	}
	for i, pair := range c.Bracket {
		if len(pair) != 2 || pair[0] == "" || pair[1] == "" {
			return fmt.Errorf("%w: bracket entry %d must name exactly two teams", ErrInvalidConfig, i)
		}
	}
	return nil
}
