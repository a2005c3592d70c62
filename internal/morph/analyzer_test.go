package morph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	analyzer, err := New(nil)
	require.NoError(t, err)
	return analyzer
}

func TestSegmentReconstructsInput(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	tests := []string{
		"私は学校に行く。",
		"人間は文章を読む時、滑らかに文字を読んでいる訳ではなく、高速に視線を移動しています。",
		"東京タワーが見える。",
	}
	for _, text := range tests {
		seq, err := analyzer.Segment(context.Background(), text)
		require.NoError(t, err)
		require.NotEmpty(t, seq)
		require.Equal(t, text, seq.Reconstruct())
	}
}

func TestSegmentEmptyText(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	seq, err := analyzer.Segment(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, seq)
}

func TestSegmentHonorsCancelledContext(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := analyzer.Segment(ctx, "私は学校に行く。")
	require.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeReturnsTokenRows(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	words, err := analyzer.Analyze(context.Background(), "私は走る。")
	require.NoError(t, err)
	require.NotEmpty(t, words)

	var rebuilt string
	for _, w := range words {
		require.NotEmpty(t, w.Surface)
		require.NotEmpty(t, w.POS)
		rebuilt += w.Surface
	}
	require.Equal(t, "私は走る。", rebuilt)
}

func TestTextStats(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	text := "犬が走る。"
	stats, err := analyzer.TextStats(context.Background(), text)
	require.NoError(t, err)
	require.Equal(t, len([]rune(text)), stats.Runes)
	require.Greater(t, stats.Tokens, 0)
	require.Greater(t, stats.Phrases, 0)
	require.NotEmpty(t, stats.POSCounts)
}
