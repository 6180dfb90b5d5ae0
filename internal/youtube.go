package internal

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kkdai/youtube/v2"
)

// YouTube lists caption tracks through YouTube's player API
type YouTube struct {
	client     *youtube.Client
	httpClient *http.Client
}

// NewYouTube creates a transcript source backed by kkdai/youtube
func NewYouTube(httpClient *http.Client) *YouTube {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &YouTube{
		client:     &youtube.Client{HTTPClient: httpClient},
		httpClient: httpClient,
	}
}

// ListTranscripts returns the caption tracks YouTube advertises for a video
func (yt *YouTube) ListTranscripts(ctx context.Context, videoID string) (TranscriptList, error) {
	video, err := yt.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("getting video info: %w", err)
	}

	// The player response carries no caption tracks when captions are disabled
	list := tracksFromCaptions(videoID, video.CaptionTracks)
	if len(list) == 0 {
		return nil, ErrTranscriptsDisabled
	}
	return list, nil
}

// Translate returns a copy of track that fetches machine-translated captions
func (yt *YouTube) Translate(ctx context.Context, track TranscriptTrack, lang string) (TranscriptTrack, error) {
	return translateTrack(track, lang)
}

// Fetch downloads and parses the track's captions
func (yt *YouTube) Fetch(ctx context.Context, track TranscriptTrack) ([]Segment, error) {
	return fetchTimedText(ctx, yt.httpClient, track.URL)
}

// tracksFromCaptions keeps YouTube's track order
func tracksFromCaptions(videoID string, captions []youtube.CaptionTrack) TranscriptList {
	list := make(TranscriptList, 0, len(captions))
	for _, c := range captions {
		if c.BaseURL == "" {
			continue
		}
		list = append(list, TranscriptTrack{
			VideoID:      videoID,
			LanguageCode: c.LanguageCode,
			Language:     c.Name.SimpleText,
			Generated:    c.Kind == "asr",
			Translatable: c.IsTranslatable,
			URL:          c.BaseURL,
		})
	}
	return list
}

// translateTrack is shared by sources whose tracks point at timedtext URLs
func translateTrack(track TranscriptTrack, lang string) (TranscriptTrack, error) {
	if !track.Translatable {
		return TranscriptTrack{}, fmt.Errorf("%s transcript is not translatable", track.LanguageCode)
	}

	translatedURL, err := withTranslation(track.URL, lang)
	if err != nil {
		return TranscriptTrack{}, err
	}

	translated := track
	translated.URL = translatedURL
	translated.TranslatedTo = lang
	translated.Translatable = false
	return translated, nil
}
