package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleTranscript = &Transcript{
	VideoID:      "dQw4w9WgXcQ",
	Text:         "we talk about <tags> & {{braces}}",
	LanguageCode: "en",
}

func TestCreatePromptDefault(t *testing.T) {
	pm := NewPromptManager(t.TempDir(), "")

	prompt, err := pm.CreatePrompt(sampleTranscript)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, "Given the transcript of a YouTube video"))
	assert.Contains(t, prompt, "Transcript:\nwe talk about <tags> & {{braces}}\n")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(prompt), "Notes:"))
}

func TestCreatePromptFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prompt.txt"), []byte("Summarize {{.VideoID}} ({{.Language}}): {{.Transcript}}"), 0644))

	prompt, err := NewPromptManager(dir, "").CreatePrompt(sampleTranscript)
	require.NoError(t, err)
	assert.Equal(t, "Summarize dQw4w9WgXcQ (en): we talk about <tags> & {{braces}}", prompt)
}

func TestCreatePromptCustomString(t *testing.T) {
	pm := NewPromptManager(t.TempDir(), "Bullet points please: {{.Transcript}}")

	prompt, err := pm.CreatePrompt(sampleTranscript)
	require.NoError(t, err)
	assert.Equal(t, "Bullet points please: we talk about <tags> & {{braces}}", prompt)
}

func TestCreatePromptCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.txt")
	require.NoError(t, os.WriteFile(path, []byte("From file: {{.Transcript}}"), 0644))

	prompt, err := NewPromptManager(t.TempDir(), path).CreatePrompt(sampleTranscript)
	require.NoError(t, err)
	assert.Equal(t, "From file: we talk about <tags> & {{braces}}", prompt)
}

func TestCreatePromptInvalidTemplate(t *testing.T) {
	_, err := NewPromptManager(t.TempDir(), "broken {{.Transcript").CreatePrompt(sampleTranscript)
	assert.ErrorContains(t, err, "parsing prompt template")
}

func TestIsLikelyFilePath(t *testing.T) {
	assert.True(t, IsLikelyFilePath("./prompt.txt"))
	assert.True(t, IsLikelyFilePath("notes.tmpl"))
	assert.True(t, IsLikelyFilePath("C:\\prompts\\a"))
	assert.False(t, IsLikelyFilePath("Summarize this: {{.Transcript}}"))
}
