package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests. Document
	// fetches default to a browser-like value because several blog hosts
	// serve empty pages to obvious bots.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search and document-fetch stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// ClientID is the search API application ID.
	ClientID string `json:"client_id,omitempty" yaml:"client_id,omitempty"`

	// ClientSecret is the search API application secret.
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`

	// Display is the number of results requested per search query (default 10).
	Display int `json:"display" yaml:"display"`

	// PerQueryFetch is how many results from each query get a full-body
	// fetch (default 5). Total fetch volume is bounded by
	// len(templates) * PerQueryFetch.
	PerQueryFetch int `json:"per_query_fetch" yaml:"per_query_fetch"`

	// MinBodyChars discards fetched bodies at or under this length after
	// markup stripping (default 300). Shorter pages carry too little
	// review text to extract from.
	MinBodyChars int `json:"min_body_chars" yaml:"min_body_chars"`

	// FetchDelay is the pause between consecutive document fetches (default 1s).
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay"`

	// QueryDelay is the pause between consecutive search queries (default 2s).
	QueryDelay time.Duration `json:"query_delay" yaml:"query_delay"`
}

// ExtractionConfig holds settings for the LLM extraction stage.
type ExtractionConfig struct {
	// Model is the chat-completion model identifier (default "gpt-3.5-turbo").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the completion API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Timeout bounds a single completion call (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// CacheConfig holds settings for the findings cache store.
type CacheConfig struct {
	// DatabaseURL is a Postgres connection string. When set, the Postgres
	// backend is used; otherwise the store falls back to SQLitePath.
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"`

	// SQLitePath is the path of the local SQLite cache database
	// (default "insight.db").
	SQLitePath string `json:"sqlite_path" yaml:"sqlite_path"`

	// Timeout bounds a single store operation (default 5s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Search     SearchConfig     `json:"search" yaml:"search"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Cache      CacheConfig      `json:"cache" yaml:"cache"`
}
