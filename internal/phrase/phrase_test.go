package phrase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromTextsAssignsRuneOffsets(t *testing.T) {
	seq := FromTexts([]string{"私は", "学校に", "行く"})
	require.Len(t, seq, 3)
	require.Equal(t, Phrase{Text: "私は", Start: 0, End: 2}, seq[0])
	require.Equal(t, Phrase{Text: "学校に", Start: 2, End: 5}, seq[1])
	require.Equal(t, Phrase{Text: "行く", Start: 5, End: 7}, seq[2])
	require.Equal(t, "私は学校に行く", seq.Reconstruct())
}

func TestFromTextsSkipsEmptyChunks(t *testing.T) {
	seq := FromTexts([]string{"", "犬", ""})
	require.Equal(t, []string{"犬"}, seq.Texts())
}

func TestSequenceTextsEmpty(t *testing.T) {
	require.Empty(t, Sequence{}.Texts())
	require.Equal(t, "", Sequence{}.Reconstruct())
}
