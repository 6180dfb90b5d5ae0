package internal

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ytdlpInfoJSON = `{
  "id": "dQw4w9WgXcQ",
  "subtitles": {
    "live_chat": [{"ext": "json", "url": "https://www.youtube.com/live_chat?v=dQw4w9WgXcQ"}],
    "fr": [
      {"ext": "json3", "url": "https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=fr&fmt=json3", "name": "French"},
      {"ext": "srv1", "url": "https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=fr&fmt=srv1", "name": "French"}
    ],
    "de": [
      {"ext": "vtt", "url": "https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=de&fmt=vtt", "name": "German"}
    ]
  },
  "automatic_captions": {
    "es-orig": [{"ext": "srv1", "url": "https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=es&kind=asr&fmt=srv1", "name": "Spanish (Original)"}],
    "en": [{"ext": "srv1", "url": "https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=es&tlang=en&fmt=srv1", "name": "English"}]
  }
}`

func TestParseYTDLPCaptions(t *testing.T) {
	list, err := parseYTDLPCaptions("dQw4w9WgXcQ", []byte(ytdlpInfoJSON))
	require.NoError(t, err)

	require.Len(t, list, 3)

	// manual subtitles first, sorted by language, live chat skipped
	assert.Equal(t, "de", list[0].LanguageCode)
	assert.False(t, list[0].Generated)
	assert.Equal(t, "fr", list[1].LanguageCode)
	assert.Equal(t, "French", list[1].Language)
	assert.Contains(t, list[1].URL, "fmt=srv1")

	assert.Equal(t, "es", list[2].LanguageCode)
	assert.True(t, list[2].Generated)

	for _, track := range list {
		assert.True(t, track.Translatable)
		assert.Equal(t, "dQw4w9WgXcQ", track.VideoID)
	}

	// non-srv1 formats fall back to the default timedtext format
	u, err := url.Parse(list[0].URL)
	require.NoError(t, err)
	assert.Empty(t, u.Query().Get("fmt"))
	assert.Equal(t, "de", u.Query().Get("lang"))

	_, ok := list.Find("en")
	assert.False(t, ok, "translated automatic captions are not listed as tracks")
}

func TestParseYTDLPCaptionsUntranslatable(t *testing.T) {
	raw := `{"subtitles": {}, "automatic_captions": {
		"ja-orig": [{"ext": "srv1", "url": "https://www.youtube.com/api/timedtext?lang=ja&fmt=srv1"}]
	}}`

	list, err := parseYTDLPCaptions("dQw4w9WgXcQ", []byte(raw))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ja", list[0].LanguageCode)
	assert.False(t, list[0].Translatable)
}

func TestParseYTDLPCaptionsEmpty(t *testing.T) {
	list, err := parseYTDLPCaptions("dQw4w9WgXcQ", []byte(`{"id": "dQw4w9WgXcQ"}`))
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = parseYTDLPCaptions("dQw4w9WgXcQ", []byte(`not json`))
	assert.Error(t, err)
}
