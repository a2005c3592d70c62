package config

import (
	"fmt"
	"strings"

	"github.com/yomitori/yomitori/internal/playback"
)

// Validate enforces config invariants in place and returns non-fatal
// warnings. Out-of-range playback values are clamped rather than rejected.
func Validate(cfg *Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if clamped, ok := clamp(cfg.Playback.IntervalMS, playback.MinIntervalMS, playback.MaxIntervalMS); !ok {
		warnings = append(warnings, Warning{Message: fmt.Sprintf(
			"playback.interval_ms %d outside [%d, %d]; clamped to %d",
			cfg.Playback.IntervalMS, playback.MinIntervalMS, playback.MaxIntervalMS, clamped,
		)})
		cfg.Playback.IntervalMS = clamped
	}

	if clamped, ok := clamp(cfg.Playback.DisplayScale, MinDisplayScale, MaxDisplayScale); !ok {
		warnings = append(warnings, Warning{Message: fmt.Sprintf(
			"playback.display_scale %d outside [%d, %d]; clamped to %d",
			cfg.Playback.DisplayScale, MinDisplayScale, MaxDisplayScale, clamped,
		)})
		cfg.Playback.DisplayScale = clamped
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Segmenter.Backend))
	if backend == "" {
		backend = BackendKagome
	}
	if backend != BackendKagome && backend != BackendNone {
		return nil, fmt.Errorf("segmenter.backend must be one of: %s, %s", BackendKagome, BackendNone)
	}
	cfg.Segmenter.Backend = backend

	return warnings, nil
}

func clamp(v, min, max int) (int, bool) {
	if v < min {
		return min, false
	}
	if v > max {
		return max, false
	}
	return v, true
}
