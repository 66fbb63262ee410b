package transcript

type Mode int

const (
	// ModeParagraphSplit assigns each word to exactly one paragraph by its
	// start time: startMs < word.StartMs <= endMs.
	ModeParagraphSplit Mode = iota
	// ModeSelection returns every word whose span overlaps the open
	// interval (startMs, endMs).
	ModeSelection
)

func (m Mode) String() string {
	switch m {
	case ModeParagraphSplit:
		return "paragraph-split"
	case ModeSelection:
		return "selection"
	default:
		return "unknown"
	}
}

// ParagraphMode returns the mode used to split paragraphs. Transcripts that
// carry speaker names inline are split with overlap semantics.
func ParagraphMode(speakerNamesInTranscript bool) Mode {
	if speakerNamesInTranscript {
		return ModeSelection
	}
	return ModeParagraphSplit
}

// FindWordsInRange returns the words of idx that fall in [startMs, endMs]
// under mode, in key order. Words are returned by value.
func FindWordsInRange(startMs, endMs int64, idx WordIndex, mode Mode) []Word {
	if startMs == endMs {
		return []Word{}
	}

	res := make([]Word, 0)
	for _, k := range idx.Keys {
		w, ok := idx.Words[k]
		if !ok {
			continue
		}

		var in bool
		if mode == ModeParagraphSplit {
			in = startMs < w.StartMs && endMs >= w.StartMs
		} else {
			in = startMs < w.EndMs && endMs > w.StartMs
		}
		if in {
			res = append(res, w)
		}
	}

	return res
}
