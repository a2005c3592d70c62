package config

// Display scale bounds recognized by the presentation layer.
const (
	MinDisplayScale = 16
	MaxDisplayScale = 48
)

// BackendKagome and BackendNone are the valid segmenter.backend values.
const (
	BackendKagome = "kagome"
	BackendNone   = "none"
)

// Default returns the canonical runtime configuration used when no file is
// present.
func Default() Config {
	return Config{
		Playback: PlaybackConfig{
			IntervalMS:   400,
			DisplayScale: 24,
		},
		Segmenter: SegmenterConfig{
			Backend: BackendKagome,
		},
	}
}
