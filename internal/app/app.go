package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/yomitori/yomitori/internal/cli"
	"github.com/yomitori/yomitori/internal/clipboard"
	"github.com/yomitori/yomitori/internal/config"
	"github.com/yomitori/yomitori/internal/doctor"
	"github.com/yomitori/yomitori/internal/fsm"
	"github.com/yomitori/yomitori/internal/ipc"
	"github.com/yomitori/yomitori/internal/logging"
	"github.com/yomitori/yomitori/internal/morph"
	"github.com/yomitori/yomitori/internal/playback"
	"github.com/yomitori/yomitori/internal/segment"
	"github.com/yomitori/yomitori/internal/session"
	"github.com/yomitori/yomitori/internal/version"
)

const forwardTimeout = 220 * time.Millisecond

type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	r := Runner{Stdin: stdin, Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("yomitori"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("yomitori"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load config failed", "error", err.Error())
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		fmt.Fprintf(r.Stderr, "warning: %s\n", w.Message)
		logger.Warn("config warning", "message", w.Message)
	}

	logger.Info("command start",
		"command", parsed.Command,
		"config", cfgLoaded.Path,
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandDoctor:
		report := doctor.Run(ctx, cfgLoaded)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandStatus:
		return r.commandStatus(ctx)
	case cli.CommandStart:
		return r.forwardOrFail(ctx, ipc.Request{Command: "start"})
	case cli.CommandStop:
		return r.forwardOrFail(ctx, ipc.Request{Command: "stop"})
	case cli.CommandForward:
		return r.forwardOrFail(ctx, ipc.Request{Command: "forward"})
	case cli.CommandBack:
		return r.forwardOrFail(ctx, ipc.Request{Command: "back"})
	case cli.CommandSpeed:
		return r.forwardOrFail(ctx, ipc.Request{Command: "speed", Value: parsed.SpeedMS})
	case cli.CommandLoad:
		return r.commandLoad(ctx, parsed)
	case cli.CommandAnalyze:
		return r.commandAnalyze(ctx, parsed, logger)
	case cli.CommandStats:
		return r.commandStats(ctx, parsed, logger)
	case cli.CommandRead:
		return r.commandRead(ctx, parsed, cfgLoaded.Config, logger)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

// commandRead loads text, becomes the owning reader process, and serves
// transport commands until the context ends.
func (r Runner) commandRead(ctx context.Context, parsed cli.Parsed, cfg config.Config, logger *slog.Logger) int {
	text, err := r.resolveText(parsed)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	listener, err := ipc.Acquire(ctx, socketPath, 180*time.Millisecond, 8)
	if err != nil {
		if errors.Is(err, ipc.ErrAlreadyRunning) {
			fmt.Fprintln(r.Stderr, "error: a reader is already running; use `yomitori load` to replace its text")
			return 1
		}
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() {
		_ = listener.Close()
		_ = os.Remove(socketPath)
	}()

	intervalMS := cfg.Playback.IntervalMS
	if parsed.SpeedMS > 0 {
		intervalMS = parsed.SpeedMS
	}
	controller := playback.NewController(logger, intervalMS)
	controller.OnAdvance(func(snap playback.Snapshot) {
		r.printSnapshot(snap)
	})

	splitter := segment.NewSplitter(logger, r.buildBackend(cfg, logger))
	sess := session.New(logger, splitter, controller)
	defer sess.Close()

	outcome, err := sess.SetText(ctx, text)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if outcome.Degraded {
		fmt.Fprintf(r.Stderr, "warning: precise segmentation unavailable (%s); using heuristic phrases\n", outcome.Notice)
	}
	fmt.Fprintf(r.Stdout, "loaded %d phrases (interval %dms); `yomitori start` begins playback\n",
		len(outcome.Sequence), controller.Snapshot().Interval)
	r.printSnapshot(controller.Snapshot())

	serverCtx, serverCancel := context.WithCancel(ctx)
	defer serverCancel()

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- ipc.Serve(serverCtx, listener, sess)
	}()

	<-ctx.Done()
	sess.Close()
	serverCancel()
	if serverErr := <-serverErrCh; serverErr != nil {
		fmt.Fprintf(r.Stderr, "error: ipc server failed: %v\n", serverErr)
		return 1
	}

	logger.Info("reader stopped", "phrases", len(outcome.Sequence))
	return 0
}

// printSnapshot renders one playback position for the terminal.
func (r Runner) printSnapshot(snap playback.Snapshot) {
	if snap.Total == 0 {
		fmt.Fprintln(r.Stdout, "(no text loaded)")
		return
	}
	fmt.Fprintf(r.Stdout, "%s  [%d/%d %.0f%%]\n", snap.Phrase, snap.Index+1, snap.Total, snap.Progress*100)
	if snap.State == fsm.StateIdle && snap.Index == 0 {
		// A completed read-through rewinds to the top.
		fmt.Fprintln(r.Stdout, "read-through complete")
	}
}

func (r Runner) commandLoad(ctx context.Context, parsed cli.Parsed) int {
	text, err := r.resolveText(parsed)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	return r.forwardOrFail(ctx, ipc.Request{Command: "load", Text: text})
}

func (r Runner) commandStatus(ctx context.Context) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintln(r.Stdout, "no active reader")
		return 0
	}

	resp, handled, err := tryForward(ctx, socketPath, ipc.Request{Command: "status"})
	if !handled {
		fmt.Fprintln(r.Stdout, "no active reader")
		return 0
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	if resp.Total == 0 {
		fmt.Fprintf(r.Stdout, "%s (no text loaded)\n", resp.State)
	} else {
		fmt.Fprintf(r.Stdout, "%s %q [%d/%d %.0f%%]\n",
			resp.State, resp.Phrase, resp.Index+1, resp.Total, resp.Progress*100)
	}
	if resp.Notice != "" {
		fmt.Fprintf(r.Stderr, "warning: segmentation degraded: %s\n", resp.Notice)
	}
	return 0
}

func (r Runner) commandAnalyze(ctx context.Context, parsed cli.Parsed, logger *slog.Logger) int {
	text, err := r.resolveText(parsed)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	analyzer, err := morph.New(logger)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	words, err := analyzer.Analyze(ctx, text)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	for _, w := range words {
		detail := w.Detail
		if detail == "" {
			detail = "*"
		}
		reading := w.Reading
		if reading == "" {
			reading = "*"
		}
		fmt.Fprintf(r.Stdout, "%s\t%s\t%s\t%s\n", w.Surface, w.POS, detail, reading)
	}
	return 0
}

func (r Runner) commandStats(ctx context.Context, parsed cli.Parsed, logger *slog.Logger) int {
	text, err := r.resolveText(parsed)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	analyzer, err := morph.New(logger)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	stats, err := analyzer.TextStats(ctx, text)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	fmt.Fprintf(r.Stdout, "runes: %d\n", stats.Runes)
	fmt.Fprintf(r.Stdout, "tokens: %d\n", stats.Tokens)
	fmt.Fprintf(r.Stdout, "phrases: %d\n", stats.Phrases)

	names := make([]string, 0, len(stats.POSCounts))
	for name := range stats.POSCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(r.Stdout, "pos %s: %d\n", name, stats.POSCounts[name])
	}
	return 0
}

// resolveText picks the input source: clipboard, file, or stdin.
func (r Runner) resolveText(parsed cli.Parsed) (string, error) {
	if parsed.FromClipboard {
		return clipboard.ReadText()
	}
	if parsed.FilePath != "" {
		content, err := os.ReadFile(parsed.FilePath)
		if err != nil {
			return "", fmt.Errorf("read %q: %w", parsed.FilePath, err)
		}
		return string(content), nil
	}

	stdin := r.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	content, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(content), nil
}

// buildBackend wires the configured precise segmenter; bootstrap failure
// degrades to the heuristic rather than refusing to read.
func (r Runner) buildBackend(cfg config.Config, logger *slog.Logger) segment.Segmenter {
	if cfg.Segmenter.Backend == config.BackendNone {
		return nil
	}

	analyzer, err := morph.New(logger)
	if err != nil {
		logger.Warn("analyzer bootstrap failed; heuristic segmentation only", "error", err.Error())
		fmt.Fprintf(r.Stderr, "warning: %v\n", err)
		return nil
	}
	return analyzer
}

func (r Runner) forwardOrFail(ctx context.Context, req ipc.Request) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	resp, handled, err := tryForward(ctx, socketPath, req)
	if !handled {
		fmt.Fprintln(r.Stderr, "error: no active yomitori reader")
		return 1
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if resp.Message != "" {
		fmt.Fprintln(r.Stdout, resp.Message)
	}
	return 0
}

func tryForward(ctx context.Context, socketPath string, req ipc.Request) (ipc.Response, bool, error) {
	resp, err := ipc.Send(ctx, socketPath, req, forwardTimeout)
	if err == nil {
		if resp.OK {
			return resp, true, nil
		}
		return resp, true, errors.New(resp.Error)
	}

	if ipc.IsSocketMissing(err) || ipc.IsConnectionRefused(err) {
		return ipc.Response{}, false, nil
	}

	return ipc.Response{}, true, fmt.Errorf("forward command %q: %w", req.Command, err)
}
