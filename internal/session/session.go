// Package session couples text changes to re-segmentation and playback
// resets, and serves the reader's transport commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/yomitori/yomitori/internal/ipc"
	"github.com/yomitori/yomitori/internal/playback"
	"github.com/yomitori/yomitori/internal/segment"
)

// ErrStaleText indicates a newer text replaced this one before its
// segmentation finished; the result was discarded without touching
// playback.
var ErrStaleText = errors.New("text superseded before segmentation finished")

// Session is the single owner of one reading lifecycle: it is the only
// place where a text change and a playback reset are coupled.
type Session struct {
	logger     *slog.Logger
	splitter   *segment.Splitter
	controller *playback.Controller

	mu     sync.Mutex
	gen    uint64
	notice string
}

// New composes a session over a splitter and a playback controller.
func New(logger *slog.Logger, splitter *segment.Splitter, controller *playback.Controller) *Session {
	return &Session{logger: logger, splitter: splitter, controller: controller}
}

// SetText re-segments text and resets playback to the new sequence. If a
// newer SetText supersedes this one while segmentation is in flight, the
// result is dropped and ErrStaleText returned; the controller is never
// mutated with a stale sequence.
func (s *Session) SetText(ctx context.Context, text string) (segment.Outcome, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	outcome := s.splitter.Segment(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return outcome, ErrStaleText
	}

	s.notice = outcome.Notice
	s.controller.Reset(outcome.Sequence)

	if s.logger != nil {
		s.logger.Info("text loaded",
			"runes", len([]rune(text)),
			"phrases", len(outcome.Sequence),
			"degraded", outcome.Degraded,
		)
	}
	return outcome, nil
}

// Notice returns the degradation notice of the current sequence, empty
// when the precise backend produced it.
func (s *Session) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// Close stops playback timers; the session keeps no other resources.
func (s *Session) Close() {
	s.controller.Close()
}

// Handle serves transport commands for the owning reader process.
func (s *Session) Handle(ctx context.Context, req ipc.Request) ipc.Response {
	switch req.Command {
	case "status":
		return s.respond(true, "")
	case "start":
		if !s.controller.Start() {
			return s.refuse("cannot start: nothing to read or already running")
		}
		return s.respond(true, "playback started")
	case "stop":
		if !s.controller.Stop() {
			return s.refuse("not running")
		}
		return s.respond(true, "playback stopped")
	case "forward":
		if !s.controller.StepForward() {
			return s.refuse("cannot step forward")
		}
		return s.respond(true, "stepped forward")
	case "back":
		if !s.controller.StepBack() {
			return s.refuse("cannot step back")
		}
		return s.respond(true, "stepped back")
	case "speed":
		applied := s.controller.SetInterval(req.Value)
		return s.respond(true, fmt.Sprintf("interval set to %dms", applied))
	case "load":
		if strings.TrimSpace(req.Text) == "" {
			return s.refuse("load requires text")
		}
		outcome, err := s.SetText(ctx, req.Text)
		if err != nil {
			return s.refuse(err.Error())
		}
		msg := fmt.Sprintf("loaded %d phrases", len(outcome.Sequence))
		return s.respond(true, msg)
	default:
		return ipc.Response{OK: false, State: string(s.controller.Snapshot().State), Error: fmt.Sprintf("unknown command: %s", req.Command)}
	}
}

// respond builds a success response around the current snapshot.
func (s *Session) respond(ok bool, message string) ipc.Response {
	snap := s.controller.Snapshot()
	return ipc.Response{
		OK:       ok,
		State:    string(snap.State),
		Phrase:   snap.Phrase,
		Index:    snap.Index,
		Total:    snap.Total,
		Progress: snap.Progress,
		Notice:   s.Notice(),
		Message:  message,
	}
}

// refuse reports a silently-refused transport operation; state is still
// included so callers can see why nothing changed.
func (s *Session) refuse(reason string) ipc.Response {
	snap := s.controller.Snapshot()
	return ipc.Response{
		OK:    false,
		State: string(snap.State),
		Index: snap.Index,
		Total: snap.Total,
		Error: reason,
	}
}
