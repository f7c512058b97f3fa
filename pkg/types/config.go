// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractConfig holds settings for the extraction engine.
type ExtractConfig struct {
	// DisabledTypes lists citation families the extractor should skip.
	// Empty means all families are active.
	DisabledTypes []CitationType `json:"disabled_types" yaml:"disabled_types"`
}

// Disabled reports whether the given citation family is switched off.
func (c ExtractConfig) Disabled(t CitationType) bool {
	for _, d := range c.DisabledTypes {
		if d == t {
			return true
		}
	}
	return false
}

// IndexConfig holds settings for the citation index.
type IndexConfig struct {
	// IndexDir is the directory holding the SQLite database (default "index").
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
