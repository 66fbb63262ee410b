package episodes

import (
	"errors"

	"clipper/transcript"
)

var (
	ErrEpisodeNotLoaded = errors.New("episode not loaded")
	ErrWordNotFound     = errors.New("word not found")
	ErrClipRejected     = errors.New("clip rejected")
	ErrClipNotFound     = errors.New("clip not found")
)

type (
	// Episode is the indexed transcript of one show. It is replaced as a
	// whole when the show is loaded again.
	Episode struct {
		ShowID      string                    `json:"show_id"`
		Blake3Hash  string                    `json:"blake3_hash"`
		DurationSec float64                   `json:"duration_sec"`
		Words       transcript.WordIndex      `json:"words"`
		Paragraphs  transcript.ParagraphIndex `json:"paragraphs"`
	}

	// Clip is a stored selection. Fingerprint identifies the selection
	// content; IsRendered tells whether a video for exactly that content
	// exists.
	Clip struct {
		ID          string            `json:"id"`
		ShowID      string            `json:"show_id"`
		Fingerprint string            `json:"fingerprint"`
		StartSec    float64           `json:"start_sec"`
		EndSec      float64           `json:"end_sec"`
		Words       []transcript.Word `json:"words"`
		IsRendered  bool              `json:"is_rendered"`
		VideoURL    string            `json:"video_url,omitempty"`
	}

	Settings struct {
		MaxClipSeconds           float64
		MinClipSeconds           float64
		SpeakerNamesInTranscript bool
	}
)
