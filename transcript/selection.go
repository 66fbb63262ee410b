package transcript

import (
	"strconv"

	"clipper/b3"

	"github.com/shopspring/decimal"
)

var msPerSec = decimal.NewFromInt(1000)

type SelectionOptions struct {
	ShowID          string
	ShowDurationSec float64
	MaxClipSeconds  float64
	MinClipSeconds  float64
}

// NewSelection builds the Selection for a user range given in milliseconds,
// in either order. The start is clamped to zero and the end to
// ShowDurationSec, so a start past the show end stays after the end; an endMs
// of zero means the end of the show. The first selected word is a copy
// carrying the speaker in effect at the selection start.
func NewSelection(startMs, endMs int64, words WordIndex, paragraphs ParagraphIndex, opts SelectionOptions) Selection {
	selected := FindWordsInRange(min(startMs, endMs), max(startMs, endMs), words, ModeSelection)

	showDuration := decimal.NewFromFloat(opts.ShowDurationSec)
	start := decimal.NewFromInt(startMs).Div(msPerSec)
	end := showDuration
	if endMs != 0 {
		end = decimal.NewFromInt(endMs).Div(msPerSec)
	}
	if end.LessThan(start) {
		start, end = end, start
	}
	start = decimal.Max(start, decimal.Zero)
	end = decimal.Min(end, showDuration)

	duration := end.Sub(start).Abs()

	if len(selected) > 0 {
		selected[0].Heading = SpeakerAt(start.Mul(msPerSec).IntPart(), paragraphs)
	}

	startSec, _ := start.Float64()
	endSec, _ := end.Float64()
	return Selection{
		StartSec:    startSec,
		EndSec:      endSec,
		Words:       selected,
		TooLong:     duration.GreaterThan(decimal.NewFromFloat(opts.MaxClipSeconds)),
		TooShort:    duration.LessThanOrEqual(decimal.NewFromFloat(opts.MinClipSeconds)),
		Fingerprint: Fingerprint(selected, start.String()+opts.ShowID),
	}
}

// Fingerprint digests the ordered words and a salt. Equal input always gives
// an equal fingerprint.
func Fingerprint(words []Word, salt string) string {
	fields := make([]string, 0, 5*len(words)+1)
	for _, w := range words {
		fields = append(fields,
			strconv.Itoa(w.Index),
			strconv.FormatInt(w.StartMs, 10),
			strconv.FormatInt(w.EndMs, 10),
			w.Text,
			w.Heading,
		)
	}
	fields = append(fields, salt)

	return b3.Blake3HashFromFields(fields...)
}

// Problem returns the notice shown for a selection that cannot be rendered,
// or "" when it can.
func (s Selection) Problem(maxClipSeconds float64) string {
	switch {
	case s.TooLong:
		return "Clip exceeds " + strconv.FormatFloat(maxClipSeconds, 'f', -1, 64) + " second limit"
	case s.TooShort:
		return "Clip too short"
	default:
		return ""
	}
}
