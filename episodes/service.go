package episodes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"clipper/b3"
	"clipper/payload"
	"clipper/transcript"
)

type (
	repo interface {
		CreateClip(ctx context.Context, showID string, sel transcript.Selection) (Clip, error)
		GetClipByFingerprint(ctx context.Context, fingerprint string) (Clip, error)
		MarkRendered(ctx context.Context, fingerprint string, videoURL string) error
	}

	svcImpl struct {
		r        repo
		s        Settings
		mu       *sync.RWMutex
		episodes map[string]Episode
	}
)

func NewService(r repo, s Settings) svcImpl {
	var mu sync.RWMutex
	return svcImpl{r: r, s: s, mu: &mu, episodes: make(map[string]Episode)}
}

// LoadEpisode indexes a transcript payload and replaces whatever was loaded
// for showID before. Nothing is replaced when the payload is invalid.
func (s svcImpl) LoadEpisode(showID string, src io.Reader) (Episode, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return Episode{}, fmt.Errorf("load episode: reading payload: %w", err)
	}

	blake3Hash, err := b3.Blake3HashFromReader(bytes.NewReader(raw))
	if err != nil {
		return Episode{}, fmt.Errorf("load episode: %w", err)
	}

	tr, err := payload.Decode(bytes.NewReader(raw))
	if err != nil {
		return Episode{}, fmt.Errorf("load episode: %w", err)
	}

	words, paragraphs, err := transcript.BuildIndex(tr.Words, tr.Breaks, transcript.ParagraphMode(s.s.SpeakerNamesInTranscript))
	if err != nil {
		return Episode{}, fmt.Errorf("load episode: %w", err)
	}

	duration := tr.DurationSec
	if duration == 0 {
		duration = float64(words.EndMs()) / 1000
	}

	ep := Episode{
		ShowID:      showID,
		Blake3Hash:  blake3Hash,
		DurationSec: duration,
		Words:       words,
		Paragraphs:  paragraphs,
	}

	s.mu.Lock()
	s.episodes[showID] = ep
	s.mu.Unlock()

	log.Printf("loaded show %s: %d words, %d paragraphs, %.1fs\n", showID, words.Len(), paragraphs.Len(), duration)
	return ep, nil
}

func (s svcImpl) Episode(showID string) (Episode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ep, ok := s.episodes[showID]
	if !ok {
		return Episode{}, fmt.Errorf("show %s: %w", showID, ErrEpisodeNotLoaded)
	}
	return ep, nil
}

func (s svcImpl) Select(showID string, startMs, endMs int64) (transcript.Selection, error) {
	ep, err := s.Episode(showID)
	if err != nil {
		return transcript.Selection{}, fmt.Errorf("select: %w", err)
	}

	return transcript.NewSelection(startMs, endMs, ep.Words, ep.Paragraphs, s.selectionOptions(ep)), nil
}

// SelectTapped selects from the start of one tapped word to the end of
// another. Positions index the episode's word key sequence.
func (s svcImpl) SelectTapped(showID string, first, second int) (transcript.Selection, error) {
	ep, err := s.Episode(showID)
	if err != nil {
		return transcript.Selection{}, fmt.Errorf("select tapped: %w", err)
	}

	startMs, endMs, ok := ep.Words.Span(first, second)
	if !ok {
		return transcript.Selection{}, fmt.Errorf("select tapped: positions %d, %d: %w", first, second, ErrWordNotFound)
	}

	return transcript.NewSelection(startMs, endMs, ep.Words, ep.Paragraphs, s.selectionOptions(ep)), nil
}

// SaveClip selects [startMs, endMs] and stores the result. A selection that
// is too long or too short is rejected.
func (s svcImpl) SaveClip(ctx context.Context, showID string, startMs, endMs int64) (Clip, error) {
	sel, err := s.Select(showID, startMs, endMs)
	if err != nil {
		return Clip{}, fmt.Errorf("save clip: %w", err)
	}
	if problem := sel.Problem(s.s.MaxClipSeconds); problem != "" {
		return Clip{}, fmt.Errorf("save clip: %w: %s", ErrClipRejected, problem)
	}

	c, err := s.r.CreateClip(ctx, showID, sel)
	if err != nil {
		return Clip{}, fmt.Errorf("save clip: %w", err)
	}
	return c, nil
}

func (s svcImpl) Clip(ctx context.Context, fingerprint string) (Clip, error) {
	return s.r.GetClipByFingerprint(ctx, fingerprint)
}

func (s svcImpl) MarkRendered(ctx context.Context, fingerprint string, videoURL string) error {
	return s.r.MarkRendered(ctx, fingerprint, videoURL)
}

func (s svcImpl) selectionOptions(ep Episode) transcript.SelectionOptions {
	return transcript.SelectionOptions{
		ShowID:          ep.ShowID,
		ShowDurationSec: ep.DurationSec,
		MaxClipSeconds:  s.s.MaxClipSeconds,
		MinClipSeconds:  s.s.MinClipSeconds,
	}
}
