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
//  2. file (YAML) if SUMMITREC_CONFIG is set
//  3. env (prefix SUMMITREC_)
func Load(_ context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SUMMITREC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SUMMITREC_ADDR, SUMMITREC_MAX_FEATURES, ...
	// Map env keys like SUMMITREC_MAX_FEATURES -> max_features (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SUMMITREC_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "summitrec_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the engine cannot serve. Vectorizer knobs
// are checked here so a bad deployment fails at startup, not at fit time.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxFeatures < 1:
		return fmt.Errorf("%w: max_features must be positive", ErrInvalidConfig)
	case c.MinDF < 1:
		return fmt.Errorf("%w: min_df must be at least 1", ErrInvalidConfig)
	case c.MaxDF <= 0 || c.MaxDF > 1:
		return fmt.Errorf("%w: max_df must be in (0, 1]", ErrInvalidConfig)
	case c.TopTerms < 1:
		return fmt.Errorf("%w: top_terms must be positive", ErrInvalidConfig)
	case c.DefaultTopK < 1 || c.MaxTopK < c.DefaultTopK:
		return fmt.Errorf("%w: default_top_k must be in [1, max_top_k]", ErrInvalidConfig)
	case c.DefaultSearchLimit < 1:
		return fmt.Errorf("%w: default_search_limit must be positive", ErrInvalidConfig)
	}
	return nil
}
