// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds settings for fetching a materials page over HTTP.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with requests (e.g. "mec-library/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on 429 and 503 responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// ExtractionConfig holds settings for the extraction run.
type ExtractionConfig struct {
	HTTP HTTPConfig `json:"http" yaml:"http" mapstructure:"http"`

	// Source is a local path or http(s) URL of the materials page.
	Source string `json:"source" yaml:"source" mapstructure:"source"`

	// ContentID is the id attribute of the element holding the tutorial listing.
	ContentID string `json:"content_id" yaml:"content_id" mapstructure:"content_id"`

	// Output is the path of the JSON document to write.
	Output string `json:"output" yaml:"output" mapstructure:"output"`
}

// IndexConfig holds settings for the tutorial search index.
type IndexConfig struct {
	// IndexDir is the directory holding library.db.
	IndexDir string `json:"index_dir" yaml:"index_dir" mapstructure:"index_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}
