package phrase

import "strings"

// maxPhraseRunes caps phrase length when no boundary marker appears.
const maxPhraseRunes = 10

// boundaryMarkers closes the current phrase when the just-appended rune
// matches an entry. Matching is per single rune: the multi-rune entries
// (より, から, ます, ...) are inert as written. That inconsistency is kept
// on purpose to stay bit-compatible with the reference heuristic; do not
// "fix" it into substring matching.
var boundaryMarkers = []string{
	"は", "が", "を", "に", "へ", "で", "と",
	"より", "から", "まで",
	"の", "や", "など", "ので", "のに", "けど",
	"ため", "たり", "だり",
	"ます", "です", "ました", "でした", "ません",
	"ない", "たい",
	"、", "。", "！", "？", "「", "」", "（", "）",
}

// Split segments text into phrases with the marker heuristic. It is total
// and deterministic: any backend may fail, this path may not.
func Split(text string) Sequence {
	runes := []rune(text)
	if strings.TrimSpace(text) == "" {
		return Sequence{}
	}

	seq := make(Sequence, 0, len(runes)/4+1)
	var buf strings.Builder
	start := 0

	flush := func(end int) {
		if buf.Len() == 0 {
			return
		}
		chunk := buf.String()
		buf.Reset()
		if strings.TrimSpace(chunk) != "" {
			seq = append(seq, Phrase{Text: chunk, Start: start, End: end})
		}
		start = end
	}

	bufRunes := 0
	for i, r := range runes {
		buf.WriteRune(r)
		bufRunes++

		last := i == len(runes)-1
		if isBoundaryMarker(r) || bufRunes >= maxPhraseRunes || last {
			flush(i + 1)
			bufRunes = 0
		}
	}
	// The loop flushes on the last rune, so this only fires if that
	// ordering ever regresses.
	flush(len(runes))

	return seq
}

func isBoundaryMarker(r rune) bool {
	s := string(r)
	for _, marker := range boundaryMarkers {
		if marker == s {
			return true
		}
	}
	return false
}
