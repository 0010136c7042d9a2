// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds settings for fetching subject pages.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on throttled responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// RequestsPerSecond limits the fetch rate across all workers.
	// Zero disables the limit.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// ScrapeConfig holds settings for the scrape stage.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Workers is the number of subjects processed concurrently (default 4).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// OutputPath is the delimited file the scraped records are written to.
	OutputPath string `json:"output_path" yaml:"output_path" mapstructure:"output_path"`

	// Reconcile also merges each record into the store in refresh mode.
	Reconcile bool `json:"reconcile" yaml:"reconcile" mapstructure:"reconcile"`
}

// StoreConfig holds settings for the SQLite player store.
type StoreConfig struct {
	// Path is the SQLite database file (e.g. "db/database.sqlite").
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// BusyTimeout is how long a writer waits on a locked database.
	BusyTimeout time.Duration `json:"busy_timeout" yaml:"busy_timeout" mapstructure:"busy_timeout"`
}
