package transcript

import "slices"

// SpeakerAt returns the heading of the last headed paragraph that starts
// strictly before atMs, or "" if there is none. A paragraph starting exactly
// at atMs is not yet in effect.
func SpeakerAt(atMs int64, idx ParagraphIndex) string {
	starts := make([]int64, 0, len(idx.Keys))
	for _, k := range idx.Keys {
		if p, ok := idx.Paragraphs[k]; ok && p.Heading != "" {
			starts = append(starts, k)
		}
	}
	slices.Sort(starts)

	name := ""
	for _, k := range starts {
		if k >= atMs {
			break
		}
		name = idx.Paragraphs[k].Heading
	}

	return name
}
