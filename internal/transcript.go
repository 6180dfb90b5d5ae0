package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Segment is one timed unit of caption text
type Segment struct {
	Text     string
	Start    float64
	Duration float64
}

// TranscriptTrack describes one caption track offered for a video
type TranscriptTrack struct {
	VideoID      string
	LanguageCode string
	Language     string
	Generated    bool
	Translatable bool
	// TranslatedTo is set once the track has been translated
	TranslatedTo string
	URL          string
}

// TranscriptList is the ordered collection of tracks a source returned for one video
type TranscriptList []TranscriptTrack

// Find returns the first track in one of the given languages.
// Manually created tracks win over auto-generated ones.
func (l TranscriptList) Find(langs ...string) (TranscriptTrack, bool) {
	for _, generated := range []bool{false, true} {
		for _, lang := range langs {
			for _, t := range l {
				if t.LanguageCode == lang && t.Generated == generated {
					return t, true
				}
			}
		}
	}
	return TranscriptTrack{}, false
}

// First returns the first track in source order
func (l TranscriptList) First() (TranscriptTrack, bool) {
	if len(l) == 0 {
		return TranscriptTrack{}, false
	}
	return l[0], true
}

// TranscriptSource lists, translates and fetches caption tracks
type TranscriptSource interface {
	ListTranscripts(ctx context.Context, videoID string) (TranscriptList, error)
	Translate(ctx context.Context, track TranscriptTrack, lang string) (TranscriptTrack, error)
	Fetch(ctx context.Context, track TranscriptTrack) ([]Segment, error)
}

// JoinSegments flattens segments into one string, discarding timing
func JoinSegments(segments []Segment) string {
	texts := make([]string, 0, len(segments))
	for _, s := range segments {
		texts = append(texts, s.Text)
	}
	return strings.Join(texts, " ")
}

// TranscriptFetcher selects a track in the preferred language and flattens it
type TranscriptFetcher struct {
	source TranscriptSource
	langs  []string
	logger *slog.Logger
}

// NewTranscriptFetcher creates a fetcher preferring langs, in order.
// The first language is also the translation target.
func NewTranscriptFetcher(source TranscriptSource, langs []string, logger *slog.Logger) *TranscriptFetcher {
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TranscriptFetcher{source: source, langs: langs, logger: logger}
}

// Fetch retrieves the transcript for a video ID
func (f *TranscriptFetcher) Fetch(ctx context.Context, videoID string) (*Transcript, error) {
	list, err := f.source.ListTranscripts(ctx, videoID)
	if err != nil {
		return nil, classifyFetchError(err)
	}

	result := &Transcript{VideoID: videoID}

	track, ok := list.Find(f.langs...)
	if !ok {
		first, ok := list.First()
		if !ok {
			return nil, classifyFetchError(ErrTranscriptsDisabled)
		}

		target := f.langs[0]
		if first.Translatable {
			f.logger.Debug("translating transcript",
				slog.String("video_id", videoID),
				slog.String("from", first.LanguageCode),
				slog.String("to", target))
			track, err = f.source.Translate(ctx, first, target)
			if err != nil {
				return nil, classifyFetchError(fmt.Errorf("translating transcript to %s: %w", target, err))
			}
			result.Translated = true
		} else {
			track = first
			result.Warning = fmt.Sprintf("no %s transcript available and the %s transcript cannot be translated; notes are based on the original language",
				strings.Join(f.langs, "/"), first.LanguageCode)
			f.logger.Warn("using untranslated transcript",
				slog.String("video_id", videoID),
				slog.String("language", first.LanguageCode))
		}
	}

	segments, err := f.source.Fetch(ctx, track)
	if err != nil {
		return nil, classifyFetchError(err)
	}

	result.LanguageCode = track.LanguageCode
	if track.TranslatedTo != "" {
		result.LanguageCode = track.TranslatedTo
	}
	result.Text = JoinSegments(segments)
	return result, nil
}

func classifyFetchError(err error) error {
	if errors.Is(err, ErrTranscriptsDisabled) {
		return newError(KindTranscriptsDisabled, err, "transcript unavailable")
	}
	return newError(KindTranscriptFetchFailed, err, "fetching transcript")
}
