package internal

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const maxTimedTextSize = 4 << 20

// timedText covers both the legacy <transcript><text> format and srv3 <timedtext><body><p>
type timedText struct {
	Lines []timedTextLine `xml:"text"`
	Body  struct {
		Paragraphs []timedTextParagraph `xml:"p"`
	} `xml:"body"`
}

type timedTextLine struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Text  string  `xml:",chardata"`
}

type timedTextParagraph struct {
	T     int64  `xml:"t,attr"`
	D     int64  `xml:"d,attr"`
	Text  string `xml:",chardata"`
	Spans []struct {
		Text string `xml:",chardata"`
	} `xml:"s"`
}

// withTranslation returns the caption URL with YouTube's tlang parameter set
func withTranslation(captionURL, lang string) (string, error) {
	u, err := url.Parse(captionURL)
	if err != nil {
		return "", fmt.Errorf("parsing caption URL: %w", err)
	}
	q := u.Query()
	q.Set("tlang", lang)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// fetchTimedText downloads a caption track and parses it into segments
func fetchTimedText(ctx context.Context, client *http.Client, captionURL string) ([]Segment, error) {
	if captionURL == "" {
		return nil, fmt.Errorf("caption track has no URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, captionURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating caption request: %w", err)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching captions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching captions: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTimedTextSize))
	if err != nil {
		return nil, fmt.Errorf("reading captions: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty caption response")
	}

	return parseTimedText(body)
}

// parseTimedText converts timedtext XML into segments, dropping empty cues
func parseTimedText(data []byte) ([]Segment, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("parsing timedtext XML: %w", err)
	}

	var segments []Segment
	for _, line := range tt.Lines {
		if text := cleanCaption(line.Text); text != "" {
			segments = append(segments, Segment{Text: text, Start: line.Start, Duration: line.Dur})
		}
	}

	for _, p := range tt.Body.Paragraphs {
		raw := p.Text
		for _, s := range p.Spans {
			raw += s.Text
		}
		if text := cleanCaption(raw); text != "" {
			segments = append(segments, Segment{
				Text:     text,
				Start:    float64(p.T) / 1000,
				Duration: float64(p.D) / 1000,
			})
		}
	}

	return segments, nil
}

// cleanCaption unescapes entities left in caption text and collapses whitespace
func cleanCaption(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}
