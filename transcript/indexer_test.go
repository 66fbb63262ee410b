package transcript

import (
	"errors"
	"reflect"
	"testing"
)

func iraGlassWords() []RawWord {
	return []RawWord{
		{"0", "IRA GLASS: Hello"},
		{"1000", "world"},
		{"2000", "foo"},
	}
}

func TestSplitHeading(t *testing.T) {
	tests := []struct {
		raw         string
		wantHeading string
		wantText    string
	}{
		{"IRA GLASS: Hello", "IRA GLASS", " Hello"},
		{"ACT 1: Prologue", "ACT 1", " Prologue"},
		{"hello", "", "hello"},
		{"12:30", "", "12:30"},
		{"1.5: numbers", "", "1.5: numbers"},
		{"HOST: a: b", "HOST", " a: b"},
		{": lead", "", " lead"},
	}

	for _, tt := range tests {
		h, text := SplitHeading(tt.raw)
		if h != tt.wantHeading || text != tt.wantText {
			t.Errorf("SplitHeading(%q) = (%q, %q), want (%q, %q)", tt.raw, h, text, tt.wantHeading, tt.wantText)
		}
	}
}

func TestBuildIndex_Words(t *testing.T) {
	words, _, err := BuildIndex(iraGlassWords(), []int64{0, 2000}, ModeSelection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Word{
		{Index: 0, StartMs: 0, EndMs: 1000, Text: " Hello", Heading: "IRA GLASS"},
		{Index: 1, StartMs: 1000, EndMs: 2000, Text: "world"},
		{Index: 2, StartMs: 2000, EndMs: 12000, Text: "foo"},
	}
	if !reflect.DeepEqual(words.Keys, []int64{0, 1000, 2000}) {
		t.Fatalf("keys = %v", words.Keys)
	}
	for i, w := range want {
		got, ok := words.At(i)
		if !ok {
			t.Fatalf("word %d missing", i)
		}
		if got != w {
			t.Errorf("word %d = %+v, want %+v", i, got, w)
		}
	}
}

func TestBuildIndex_Paragraphs(t *testing.T) {
	_, paragraphs, err := BuildIndex(iraGlassWords(), []int64{0, 2000}, ModeSelection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the prepended 0 and the payload's own 0 collapse into one paragraph
	if !reflect.DeepEqual(paragraphs.Keys, []int64{0, 2000}) {
		t.Fatalf("keys = %v, want [0 2000]", paragraphs.Keys)
	}

	first := paragraphs.Paragraphs[0]
	if first.EndMs != 2000 || len(first.Words) != 2 || first.Heading != "IRA GLASS" {
		t.Errorf("paragraph 0 = %+v", first)
	}
	second := paragraphs.Paragraphs[2000]
	if second.EndMs != 12000 || len(second.Words) != 1 || second.Words[0].Text != "foo" || second.Heading != "" {
		t.Errorf("paragraph 2000 = %+v", second)
	}
}

func TestBuildIndex_ParagraphSplitMode(t *testing.T) {
	raw := []RawWord{
		{"0", "HOST: a"},
		{"500", "b"},
		{"1000", "c"},
		{"1500", "GUEST: d"},
	}
	_, paragraphs, err := BuildIndex(raw, []int64{1000}, ModeParagraphSplit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// left-exclusive: the word at 0 belongs to no paragraph, the word at
	// 1000 belongs to the paragraph ending at 1000.
	p0 := paragraphs.Paragraphs[0]
	if len(p0.Words) != 2 || p0.Words[0].Text != "b" || p0.Words[1].Text != "c" {
		t.Errorf("paragraph 0 words = %+v", p0.Words)
	}
	if p0.Heading != "" {
		t.Errorf("paragraph 0 heading = %q, want empty", p0.Heading)
	}
	p1 := paragraphs.Paragraphs[1000]
	if len(p1.Words) != 1 || p1.Heading != "GUEST" {
		t.Errorf("paragraph 1000 = %+v", p1)
	}
}

func TestBuildIndex_DropsEmptyParagraphs(t *testing.T) {
	raw := []RawWord{
		{"0", "a"},
		{"100", "b"},
		{"9000", "c"},
	}
	breaks := []int64{200, 5000, 6000, 8000}
	_, paragraphs, err := BuildIndex(raw, breaks, ModeParagraphSplit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, k := range paragraphs.Keys {
		p, ok := paragraphs.Paragraphs[k]
		if !ok {
			t.Fatalf("key %d has no paragraph", k)
		}
		if len(p.Words) == 0 {
			t.Errorf("paragraph %d kept with no words", k)
		}
	}
	if len(paragraphs.Paragraphs) != len(paragraphs.Keys) {
		t.Errorf("map has %d paragraphs, keys has %d", len(paragraphs.Paragraphs), len(paragraphs.Keys))
	}
	if _, ok := paragraphs.Paragraphs[5000]; ok {
		t.Error("paragraph 5000 has no words and must be dropped")
	}
	if !reflect.DeepEqual(paragraphs.Keys, []int64{0, 8000}) {
		t.Errorf("keys = %v, want [0 8000]", paragraphs.Keys)
	}
	if len(breaks) != 4 {
		t.Error("breaks must not be modified")
	}
}

func TestBuildIndex_DuplicateStart(t *testing.T) {
	raw := []RawWord{
		{"0", "a"},
		{"1000", "b"},
		{"1000", "c"},
	}
	words, _, err := BuildIndex(raw, nil, ModeSelection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(words.Keys, []int64{0, 1000}) {
		t.Fatalf("keys = %v, want [0 1000]", words.Keys)
	}
	if got := words.Words[1000]; got.Text != "c" || got.Index != 2 {
		t.Errorf("word at 1000 = %+v, want the later entry", got)
	}
}

func TestBuildIndex_Malformed(t *testing.T) {
	tests := map[string][]RawWord{
		"missing text":   {{"0", "a"}, {"1000"}},
		"missing start":  {{}},
		"non numeric ms": {{"abc", "a"}},
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := BuildIndex(raw, nil, ModeSelection)
			if !errors.Is(err, ErrMalformedWord) {
				t.Errorf("err = %v, want ErrMalformedWord", err)
			}
		})
	}
}

func TestBuildIndex_ParsesLikeParseInt(t *testing.T) {
	words, _, err := BuildIndex([]RawWord{{" 1500.9", "a"}}, nil, ModeSelection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(words.Keys, []int64{1500}) {
		t.Errorf("keys = %v, want [1500]", words.Keys)
	}
}

func TestBuildIndex_Empty(t *testing.T) {
	words, paragraphs, err := BuildIndex(nil, []int64{1000}, ModeSelection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if words.Len() != 0 || paragraphs.Len() != 0 {
		t.Errorf("expected empty indices, got %d words, %d paragraphs", words.Len(), paragraphs.Len())
	}
}

func TestBuildIndex_Idempotent(t *testing.T) {
	breaks := []int64{1000, 2000}
	w1, p1, err := BuildIndex(iraGlassWords(), breaks, ModeParagraphSplit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w2, p2, err := BuildIndex(iraGlassWords(), breaks, ModeParagraphSplit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(w1, w2) {
		t.Error("word indices differ between runs")
	}
	if !reflect.DeepEqual(p1, p2) {
		t.Error("paragraph indices differ between runs")
	}
}

func TestWordIndex_Span(t *testing.T) {
	words, _, err := BuildIndex(iraGlassWords(), nil, ModeSelection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start, end, ok := words.Span(2, 0)
	if !ok || start != 0 || end != 12000 {
		t.Errorf("Span(2, 0) = (%d, %d, %v), want (0, 12000, true)", start, end, ok)
	}
	if _, _, ok := words.Span(0, 3); ok {
		t.Error("Span with out of range position must fail")
	}
	if got := words.EndMs(); got != 12000 {
		t.Errorf("EndMs() = %d, want 12000", got)
	}
}
