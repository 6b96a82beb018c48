// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Default vectorizer parameters. They mirror the knobs of the fitted
// vocabulary: terms below MinDF or above MaxDF are dropped, and the
// vocabulary is capped at MaxFeatures.
const (
	defaultMaxFeatures = 5000
	defaultMinDF       = 1
	defaultMaxDF       = 0.95
	defaultTopTerms    = 3
	defaultTopK        = 5
	defaultMaxTopK     = 50
	defaultSearchLimit = 10
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// EventsFile points at a CSV event corpus. Empty means the bundled
	// sample corpus is loaded instead.
	EventsFile string `koanf:"events_file"`

	// MaxFeatures caps the fitted vocabulary size.
	MaxFeatures int `koanf:"max_features"`

	// MinDF drops terms that occur in fewer than this many documents.
	MinDF int `koanf:"min_df"`

	// MaxDF drops terms whose document-frequency fraction exceeds this value.
	MaxDF float64 `koanf:"max_df"`

	// TopTerms bounds the number of matched topics in an explanation.
	TopTerms int `koanf:"top_terms"`

	// DefaultTopK is the recommendation count when the request omits top_k.
	DefaultTopK int `koanf:"default_top_k"`

	// MaxTopK caps top_k on /api/recommend.
	MaxTopK int `koanf:"max_top_k"`

	// DefaultSearchLimit is the result count when /api/search omits limit.
	DefaultSearchLimit int `koanf:"default_search_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		EventsFile:         "",
		MaxFeatures:        defaultMaxFeatures,
		MinDF:              defaultMinDF,
		MaxDF:              defaultMaxDF,
		TopTerms:           defaultTopTerms,
		DefaultTopK:        defaultTopK,
		MaxTopK:            defaultMaxTopK,
		DefaultSearchLimit: defaultSearchLimit,
	}
}
