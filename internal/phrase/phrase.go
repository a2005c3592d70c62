// Package phrase defines the phrase sequence data model and the
// dictionary-free fallback segmenter.
package phrase

import "strings"

// Phrase is one contiguous chunk of the source text in reading order.
// Start and End are rune offsets into the source.
type Phrase struct {
	Text  string
	Start int
	End   int
}

// Sequence is the ordered phrase list produced for one input text.
type Sequence []Phrase

// Texts returns the phrase texts in reading order.
func (s Sequence) Texts() []string {
	texts := make([]string, 0, len(s))
	for _, p := range s {
		texts = append(texts, p.Text)
	}
	return texts
}

// Reconstruct concatenates all phrase texts in order.
func (s Sequence) Reconstruct() string {
	var b strings.Builder
	for _, p := range s {
		b.WriteString(p.Text)
	}
	return b.String()
}

// FromTexts builds a sequence from ordered chunk texts, assigning rune
// offsets cumulatively. Empty chunks are skipped.
func FromTexts(chunks []string) Sequence {
	seq := make(Sequence, 0, len(chunks))
	offset := 0
	for _, chunk := range chunks {
		runes := len([]rune(chunk))
		if runes == 0 {
			continue
		}
		seq = append(seq, Phrase{Text: chunk, Start: offset, End: offset + runes})
		offset += runes
	}
	return seq
}
