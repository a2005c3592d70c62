// Package segment selects between the precise segmentation backend and
// the heuristic fallback.
package segment

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/yomitori/yomitori/internal/phrase"
)

// ErrBackendUnavailable indicates no precise segmentation backend is wired.
var ErrBackendUnavailable = errors.New("segmentation backend not available")

// Segmenter abstracts the precise segmentation capability. Implementations
// must return phrases whose ordered concatenation equals the input; the
// splitter relies on that obligation without re-validating it.
type Segmenter interface {
	Segment(ctx context.Context, text string) (phrase.Sequence, error)
}

// SegmenterFunc adapts a function to the Segmenter interface.
type SegmenterFunc func(ctx context.Context, text string) (phrase.Sequence, error)

func (f SegmenterFunc) Segment(ctx context.Context, text string) (phrase.Sequence, error) {
	return f(ctx, text)
}

// Placeholder is the no-backend segmenter used when the analyzer could not
// be bootstrapped; it fails every call so the splitter degrades.
type Placeholder struct{}

func (Placeholder) Segment(context.Context, string) (phrase.Sequence, error) {
	return nil, ErrBackendUnavailable
}

// Outcome is one segmentation result. Degraded marks a sequence produced
// by the fallback heuristic; Notice carries the captured backend failure.
type Outcome struct {
	Sequence phrase.Sequence
	Degraded bool
	Notice   string
}

// Splitter produces one authoritative phrase sequence per input text.
// Segment never fails: a backend error is converted into a degraded
// outcome built on the fallback heuristic.
type Splitter struct {
	logger  *slog.Logger
	backend Segmenter
}

// NewSplitter wires the precise backend; nil falls back to Placeholder.
func NewSplitter(logger *slog.Logger, backend Segmenter) *Splitter {
	if backend == nil {
		backend = Placeholder{}
	}
	return &Splitter{logger: logger, backend: backend}
}

// Segment splits text, preferring the backend and degrading to the
// heuristic on any backend failure. Blank text yields an empty precise
// outcome without invoking either path.
func (s *Splitter) Segment(ctx context.Context, text string) Outcome {
	if strings.TrimSpace(text) == "" {
		return Outcome{Sequence: phrase.Sequence{}}
	}

	seq, err := s.backend.Segment(ctx, text)
	if err == nil {
		return Outcome{Sequence: seq}
	}

	if s.logger != nil {
		s.logger.Warn("precise segmentation failed; using fallback", "error", err.Error())
	}
	return Outcome{
		Sequence: phrase.Split(text),
		Degraded: true,
		Notice:   err.Error(),
	}
}
