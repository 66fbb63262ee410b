package transcript

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrMalformedWord = errors.New("malformed transcript word")

// BuildIndex turns raw payload words and paragraph break offsets into a
// WordIndex and a ParagraphIndex. Paragraph membership is decided with
// FindWordsInRange under paragraphMode. breaks is not modified.
func BuildIndex(raw []RawWord, breaks []int64, paragraphMode Mode) (WordIndex, ParagraphIndex, error) {
	starts := make([]int64, len(raw))
	for i, r := range raw {
		if len(r) < 2 {
			return WordIndex{}, ParagraphIndex{}, fmt.Errorf("building index: word %d has %d of 2 fields: %w", i, len(r), ErrMalformedWord)
		}
		s, err := parseMs(r[0])
		if err != nil {
			return WordIndex{}, ParagraphIndex{}, fmt.Errorf("building index: word %d start %q: %w", i, r[0], ErrMalformedWord)
		}
		starts[i] = s
	}

	words := newWordIndex(len(raw))
	for i, r := range raw {
		endMs := starts[i] + LastWordSpanMs
		if i+1 < len(raw) {
			endMs = starts[i+1]
		}
		heading, text := SplitHeading(r[1])
		words.put(Word{
			Index:   i,
			StartMs: starts[i],
			EndMs:   endMs,
			Text:    text,
			Heading: heading,
		})
	}

	offsets := make([]int64, 0, len(breaks)+1)
	offsets = append(offsets, 0)
	offsets = append(offsets, breaks...)

	paragraphs := newParagraphIndex(len(offsets))
	for j, startMs := range offsets {
		endMs := startMs + LastWordSpanMs
		if j+1 < len(offsets) {
			endMs = offsets[j+1]
		}
		inRange := FindWordsInRange(startMs, endMs, words, paragraphMode)
		if len(inRange) == 0 {
			continue
		}
		paragraphs.put(Paragraph{
			StartMs: startMs,
			EndMs:   endMs,
			Words:   inRange,
			Heading: inRange[0].Heading,
		})
	}

	return words, paragraphs, nil
}

// SplitHeading separates a leading speaker or section name, as in
// "IRA GLASS: Hello" or "ACT 1: ...", from the word text. A numeric prefix
// ("12:30") is not a heading. A speaker whose name is numeric is therefore
// read as plain text.
func SplitHeading(raw string) (heading, text string) {
	before, after, found := strings.Cut(raw, ":")
	if !found || isNumeric(before) {
		return "", raw
	}
	return before, after
}

func isNumeric(s string) bool {
	_, err := decimal.NewFromString(strings.TrimSpace(s))
	return err == nil
}

// parseMs reads a millisecond offset, dropping any fractional part.
func parseMs(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return d.IntPart(), nil
}
