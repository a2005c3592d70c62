// Package doctor runs runtime readiness diagnostics for config, the
// analyzer dictionary, and the transport socket.
package doctor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yomitori/yomitori/internal/config"
	"github.com/yomitori/yomitori/internal/ipc"
	"github.com/yomitori/yomitori/internal/morph"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes environment/config/runtime checks for a loaded config.
func Run(ctx context.Context, cfg config.Loaded) Report {
	checks := []Check{
		{
			Name:    "config",
			Pass:    true,
			Message: fmt.Sprintf("loaded %q", cfg.Path),
		},
		{
			Name: "playback",
			Pass: true,
			Message: fmt.Sprintf("interval=%dms display_scale=%d",
				cfg.Config.Playback.IntervalMS, cfg.Config.Playback.DisplayScale),
		},
	}

	checks = append(checks, checkAnalyzer(cfg.Config))
	checks = append(checks, checkSocket(ctx))

	return Report{Checks: checks}
}

// checkAnalyzer bootstraps the dictionary when the kagome backend is
// configured.
func checkAnalyzer(cfg config.Config) Check {
	if cfg.Segmenter.Backend == config.BackendNone {
		return Check{
			Name:    "analyzer",
			Pass:    true,
			Message: "disabled by config; heuristic segmentation only",
		}
	}

	if _, err := morph.New(nil); err != nil {
		return Check{
			Name:    "analyzer",
			Pass:    false,
			Message: fmt.Sprintf("dictionary bootstrap failed: %v (reader degrades to heuristic)", err),
		}
	}
	return Check{Name: "analyzer", Pass: true, Message: "kagome dictionary loads"}
}

// checkSocket reports whether a reader is currently serving transport
// commands. Both a live reader and no reader pass; an unanswerable socket
// fails.
func checkSocket(ctx context.Context) Check {
	path, err := ipc.RuntimeSocketPath()
	if err != nil {
		return Check{Name: "socket", Pass: false, Message: err.Error()}
	}

	alive, err := ipc.Probe(ctx, path, 200*time.Millisecond)
	if err != nil {
		return Check{Name: "socket", Pass: false, Message: fmt.Sprintf("probe %s: %v", path, err)}
	}
	if alive {
		return Check{Name: "socket", Pass: true, Message: fmt.Sprintf("reader running on %s", path)}
	}
	return Check{Name: "socket", Pass: true, Message: fmt.Sprintf("no reader running (%s free)", path)}
}
