package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/lrstanley/go-ytdlp"
)

const origSuffix = "-orig"

// YTDLP lists caption tracks by asking yt-dlp for the video's info JSON
type YTDLP struct {
	httpClient  *http.Client
	logger      *slog.Logger
	installOnce sync.Once
	installErr  error
}

// NewYTDLP creates a transcript source backed by yt-dlp
func NewYTDLP(httpClient *http.Client, logger *slog.Logger) *YTDLP {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &YTDLP{httpClient: httpClient, logger: logger}
}

// ensureInstalled downloads yt-dlp on first use if it is not on PATH
func (y *YTDLP) ensureInstalled(ctx context.Context) error {
	y.installOnce.Do(func() {
		_, y.installErr = ytdlp.Install(ctx, nil)
	})
	if y.installErr != nil {
		return fmt.Errorf("installing yt-dlp: %w", y.installErr)
	}
	return nil
}

// ListTranscripts returns manual subtitles followed by original-language automatic captions
func (y *YTDLP) ListTranscripts(ctx context.Context, videoID string) (TranscriptList, error) {
	if err := y.ensureInstalled(ctx); err != nil {
		return nil, err
	}

	dl := ytdlp.New().
		DumpSingleJSON().
		NoPlaylist().
		SkipDownload()

	result, err := dl.Run(ctx, WatchURL(videoID))
	if err != nil {
		if result != nil {
			y.logger.Debug("yt-dlp failed", slog.String("stderr", result.Stderr))
		}
		return nil, fmt.Errorf("extracting video info: %w", err)
	}

	list, err := parseYTDLPCaptions(videoID, []byte(result.Stdout))
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrTranscriptsDisabled
	}
	return list, nil
}

// Translate returns a copy of track that fetches machine-translated captions
func (y *YTDLP) Translate(ctx context.Context, track TranscriptTrack, lang string) (TranscriptTrack, error) {
	return translateTrack(track, lang)
}

// Fetch downloads and parses the track's captions
func (y *YTDLP) Fetch(ctx context.Context, track TranscriptTrack) ([]Segment, error) {
	return fetchTimedText(ctx, y.httpClient, track.URL)
}

type ytdlpCaptionFormat struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

type ytdlpInfo struct {
	Subtitles         map[string][]ytdlpCaptionFormat `json:"subtitles"`
	AutomaticCaptions map[string][]ytdlpCaptionFormat `json:"automatic_captions"`
}

// parseYTDLPCaptions maps yt-dlp's subtitle maps onto tracks.
// Automatic captions other than "-orig" are YouTube translations and are
// only used to decide whether translation is offered.
func parseYTDLPCaptions(videoID string, raw []byte) (TranscriptList, error) {
	var info ytdlpInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("parsing video info: %w", err)
	}

	translatable := false
	for lang := range info.AutomaticCaptions {
		if !strings.HasSuffix(lang, origSuffix) {
			translatable = true
			break
		}
	}

	var list TranscriptList
	for _, lang := range sortedKeys(info.Subtitles) {
		if lang == "live_chat" {
			continue
		}
		if track, ok := ytdlpTrack(videoID, lang, info.Subtitles[lang], false, translatable); ok {
			list = append(list, track)
		}
	}

	for _, lang := range sortedKeys(info.AutomaticCaptions) {
		if !strings.HasSuffix(lang, origSuffix) {
			continue
		}
		code := strings.TrimSuffix(lang, origSuffix)
		if track, ok := ytdlpTrack(videoID, code, info.AutomaticCaptions[lang], true, translatable); ok {
			list = append(list, track)
		}
	}

	return list, nil
}

func ytdlpTrack(videoID, lang string, formats []ytdlpCaptionFormat, generated, translatable bool) (TranscriptTrack, bool) {
	captionURL, name := pickCaptionFormat(formats)
	if captionURL == "" {
		return TranscriptTrack{}, false
	}
	return TranscriptTrack{
		VideoID:      videoID,
		LanguageCode: lang,
		Language:     name,
		Generated:    generated,
		Translatable: translatable,
		URL:          captionURL,
	}, true
}

// pickCaptionFormat prefers srv1 (plain timedtext XML); any other format is
// converted back to it by dropping the fmt parameter.
func pickCaptionFormat(formats []ytdlpCaptionFormat) (string, string) {
	for _, f := range formats {
		if f.Ext == "srv1" && f.URL != "" {
			return f.URL, f.Name
		}
	}
	for _, f := range formats {
		if f.URL == "" {
			continue
		}
		u, err := url.Parse(f.URL)
		if err != nil {
			continue
		}
		q := u.Query()
		q.Del("fmt")
		u.RawQuery = q.Encode()
		return u.String(), f.Name
	}
	return "", ""
}

func sortedKeys(m map[string][]ytdlpCaptionFormat) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
