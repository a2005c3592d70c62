// Package config resolves, parses, validates, and defaults yomitori
// configuration.
package config

// Config is the fully materialized runtime configuration.
type Config struct {
	Playback  PlaybackConfig  `yaml:"playback"`
	Segmenter SegmenterConfig `yaml:"segmenter"`
}

// PlaybackConfig controls cadence and the recognized presentation scale.
type PlaybackConfig struct {
	// IntervalMS is the phrase advance period, clamped to 100–1000.
	IntervalMS int `yaml:"interval_ms"`
	// DisplayScale is the recognized presentation scale range (16–48).
	// Core playback does not consume it; it is validated and surfaced for
	// whatever renders the phrases.
	DisplayScale int `yaml:"display_scale"`
}

// SegmenterConfig selects the precise segmentation backend.
type SegmenterConfig struct {
	// Backend is "kagome" (dictionary analyzer) or "none" (heuristic only).
	Backend string `yaml:"backend"`
}

// Warning is a non-fatal load/validation message.
type Warning struct {
	Message string
}
