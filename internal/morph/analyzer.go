// Package morph segments Japanese text into bunsetsu with a dictionary
// backed morphological analyzer.
package morph

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/yomitori/yomitori/internal/phrase"
)

// Analyzer wraps a kagome tokenizer loaded with the IPA dictionary.
type Analyzer struct {
	tok    *tokenizer.Tokenizer
	logger *slog.Logger
}

// New bootstraps the tokenizer. Dictionary load can fail, in which case
// callers are expected to fall back to the heuristic segmenter.
func New(logger *slog.Logger) (*Analyzer, error) {
	tok, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("initialize tokenizer: %w", err)
	}
	return &Analyzer{tok: tok, logger: logger}, nil
}

// Segment splits text into bunsetsu phrases. The concatenation of the
// returned phrase texts equals the input: the analyzer only decides where
// to cut, never what to keep.
func (a *Analyzer) Segment(ctx context.Context, text string) (phrase.Sequence, error) {
	infos, err := a.tokenize(ctx, text)
	if err != nil {
		return nil, err
	}

	chunks := make([]string, 0, len(infos))
	var current strings.Builder
	for i, info := range infos {
		current.WriteString(info.surface)

		if i < len(infos)-1 && isBoundary(info, infos[i+1]) {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return phrase.FromTexts(chunks), nil
}

// WordInfo is the per-token analysis row surfaced by the analyze command.
type WordInfo struct {
	Surface string
	POS     string
	Detail  string
	Reading string
}

// Analyze returns per-token morphological details for text.
func (a *Analyzer) Analyze(ctx context.Context, text string) ([]WordInfo, error) {
	infos, err := a.tokenize(ctx, text)
	if err != nil {
		return nil, err
	}

	words := make([]WordInfo, 0, len(infos))
	for _, info := range infos {
		words = append(words, WordInfo{
			Surface: info.surface,
			POS:     info.pos(),
			Detail:  info.posDetail1(),
			Reading: info.reading(),
		})
	}
	return words, nil
}

// Stats summarizes text at the rune, token, and phrase level.
type Stats struct {
	Runes     int
	Tokens    int
	Phrases   int
	POSCounts map[string]int
}

// TextStats computes reading statistics for text.
func (a *Analyzer) TextStats(ctx context.Context, text string) (Stats, error) {
	infos, err := a.tokenize(ctx, text)
	if err != nil {
		return Stats{}, err
	}
	seq, err := a.Segment(ctx, text)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Runes:     len([]rune(text)),
		Tokens:    len(infos),
		Phrases:   len(seq),
		POSCounts: make(map[string]int),
	}
	for _, info := range infos {
		stats.POSCounts[info.pos()]++
	}
	return stats, nil
}

// tokenize runs the analyzer and converts tokens into feature rows,
// checking for cancellation between tokens.
func (a *Analyzer) tokenize(ctx context.Context, text string) ([]tokenInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens := a.tok.Tokenize(text)
	infos := make([]tokenInfo, 0, len(tokens))
	for _, tok := range tokens {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		infos = append(infos, tokenInfo{
			surface:  tok.Surface,
			features: tok.Features(),
		})
	}
	return infos, nil
}
