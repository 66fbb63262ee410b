// Package transcript indexes timestamped transcript words into paragraphs
// and answers time-range and speaker queries against those indices.
package transcript

// LastWordSpanMs is the duration given to the last word and the last
// paragraph, which have no successor to end them.
const LastWordSpanMs = 10000

type (
	// RawWord is one payload entry: start time in milliseconds as text,
	// then the raw word text. Entries with fewer than two elements are
	// rejected by BuildIndex.
	RawWord []string

	Word struct {
		Index   int    `json:"index"`
		StartMs int64  `json:"start_ms"`
		EndMs   int64  `json:"end_ms"`
		Text    string `json:"text"`
		Heading string `json:"heading,omitempty"`
	}

	// WordIndex maps a word's start time to the word. Keys holds the start
	// times in payload order and is the only valid iteration order.
	WordIndex struct {
		Words map[int64]Word `json:"words"`
		Keys  []int64        `json:"keys"`
	}

	Paragraph struct {
		StartMs int64  `json:"start_ms"`
		EndMs   int64  `json:"end_ms"`
		Words   []Word `json:"words"`
		Heading string `json:"heading,omitempty"`
	}

	// ParagraphIndex never contains a paragraph without words.
	ParagraphIndex struct {
		Paragraphs map[int64]Paragraph `json:"paragraphs"`
		Keys       []int64             `json:"keys"`
	}

	Selection struct {
		StartSec    float64 `json:"start_sec"`
		EndSec      float64 `json:"end_sec"`
		Words       []Word  `json:"words"`
		TooLong     bool    `json:"too_long"`
		TooShort    bool    `json:"too_short"`
		Fingerprint string  `json:"fingerprint"`
	}
)

func newWordIndex(capacity int) WordIndex {
	return WordIndex{
		Words: make(map[int64]Word, capacity),
		Keys:  make([]int64, 0, capacity),
	}
}

// put stores w under its start time. A key is recorded in Keys only once;
// a later word with the same start time replaces the earlier one.
func (idx *WordIndex) put(w Word) {
	if _, ok := idx.Words[w.StartMs]; !ok {
		idx.Keys = append(idx.Keys, w.StartMs)
	}
	idx.Words[w.StartMs] = w
}

func (idx WordIndex) Len() int {
	return len(idx.Keys)
}

// At returns the word at position i of the key sequence.
func (idx WordIndex) At(i int) (Word, bool) {
	if i < 0 || i >= len(idx.Keys) {
		return Word{}, false
	}
	w, ok := idx.Words[idx.Keys[i]]
	return w, ok
}

// Span returns the time range covered by two tapped words, in either order:
// the earlier start and the later end.
func (idx WordIndex) Span(first, second int) (startMs, endMs int64, ok bool) {
	a, ok := idx.At(first)
	if !ok {
		return 0, 0, false
	}
	b, ok := idx.At(second)
	if !ok {
		return 0, 0, false
	}

	return min(a.StartMs, b.StartMs), max(a.EndMs, b.EndMs), true
}

// EndMs is the end of the last indexed word, or zero for an empty index.
func (idx WordIndex) EndMs() int64 {
	if len(idx.Keys) == 0 {
		return 0
	}
	return idx.Words[idx.Keys[len(idx.Keys)-1]].EndMs
}

func newParagraphIndex(capacity int) ParagraphIndex {
	return ParagraphIndex{
		Paragraphs: make(map[int64]Paragraph, capacity),
		Keys:       make([]int64, 0, capacity),
	}
}

func (idx *ParagraphIndex) put(p Paragraph) {
	if _, ok := idx.Paragraphs[p.StartMs]; !ok {
		idx.Keys = append(idx.Keys, p.StartMs)
	}
	idx.Paragraphs[p.StartMs] = p
}

func (idx ParagraphIndex) Len() int {
	return len(idx.Keys)
}
