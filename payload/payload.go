package payload

import (
	"encoding/json"
	"fmt"
	"io"

	"clipper/transcript"

	"github.com/shopspring/decimal"
)

type (
	transcriptPayload struct {
		Words      []transcript.RawWord `json:"words"`
		Paragraphs []decimal.Decimal    `json:"paragraphs"`
		Duration   *decimal.Decimal     `json:"duration"`
	}

	// Transcript is a decoded payload, ready for transcript.BuildIndex.
	// DurationSec is zero when the payload does not carry a duration.
	Transcript struct {
		Words       []transcript.RawWord
		Breaks      []int64
		DurationSec float64
	}
)

// Decode reads a payload of the form
//
//	{"words": [["0", "IRA GLASS: Hello"], ...], "paragraphs": [2000, ...], "duration": 3600.5}
//
// Paragraph offsets and the duration may be JSON numbers or numeric strings.
func Decode(r io.Reader) (Transcript, error) {
	var p transcriptPayload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Transcript{}, fmt.Errorf("decoding transcript payload: %w", err)
	}

	res := Transcript{
		Words:  p.Words,
		Breaks: make([]int64, len(p.Paragraphs)),
	}
	for n, b := range p.Paragraphs {
		res.Breaks[n] = b.IntPart()
	}
	if p.Duration != nil {
		res.DurationSec, _ = p.Duration.Float64()
	}

	return res, nil
}
