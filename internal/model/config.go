package model

import "time"

// Config is the full runtime configuration. Defaults are overridden
// by the config file, COLUMELLA_* environment variables and CLI flags,
// in that order.
type Config struct {
	Knowledge    KnowledgeConfig    `json:"knowledge" yaml:"knowledge"`
	Cache        CacheConfig        `json:"cache" yaml:"cache"`
	Concurrency  ConcurrencyConfig  `json:"concurrency" yaml:"concurrency"`
	RateLimiting RateLimitingConfig `json:"rate_limiting" yaml:"rate_limiting"`
	Output       OutputConfig       `json:"output" yaml:"output"`
	LLM          LLMConfig          `json:"llm" yaml:"llm"`
}

// KnowledgeConfig controls where dictionaries and rules are loaded from.
// An empty Path means the embedded defaults.
type KnowledgeConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// CacheConfig controls memoization of per-column inference results.
type CacheConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled"`
	TTL     time.Duration `json:"ttl" yaml:"ttl"`
}

// ConcurrencyConfig controls batch processing parallelism.
type ConcurrencyConfig struct {
	Workers int `json:"workers" yaml:"workers"`
}

// RateLimitingConfig throttles outbound LLM summary requests.
type RateLimitingConfig struct {
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
	BurstSize         int     `json:"burst_size" yaml:"burst_size"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `json:"verbose" yaml:"verbose"`
	IncludeFooter bool `json:"include_footer" yaml:"include_footer"`
}

// LLMConfig configures the optional narrative summarizer.
// Provider "" disables it entirely.
type LLMConfig struct {
	Provider  string `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model     string `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey    string `json:"-" yaml:"-"`
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Timeout   int    `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 1,
			BurstSize:         2,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}
