package internal

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "notes"}
	AddTranscriptFlags(cmd)
	AddGenerationFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--source", "ytdlp", "-m", "gemini-2.5-pro", "--pdf", "/tmp/x.pdf"}))

	config := &Config{Model: DefaultModel, TranscriptSource: "youtube", PDFPath: "notes.pdf"}
	require.NoError(t, ApplyTranscriptFlags(cmd, config))
	require.NoError(t, ApplyGenerationFlags(cmd, config))

	assert.Equal(t, "ytdlp", config.TranscriptSource)
	assert.Equal(t, "gemini-2.5-pro", config.Model)
	assert.Equal(t, "/tmp/x.pdf", config.PDFPath)
}

func TestApplyFlagsUnset(t *testing.T) {
	cmd := &cobra.Command{Use: "notes"}
	AddTranscriptFlags(cmd)
	AddGenerationFlags(cmd)
	require.NoError(t, cmd.ParseFlags(nil))

	config := &Config{Model: DefaultModel, TranscriptSource: "youtube", PDFPath: "notes.pdf"}
	require.NoError(t, ApplyTranscriptFlags(cmd, config))
	require.NoError(t, ApplyGenerationFlags(cmd, config))

	assert.Equal(t, &Config{Model: DefaultModel, TranscriptSource: "youtube", PDFPath: "notes.pdf"}, config)
}

func TestApplyTranscriptFlagsRejectsUnknownSource(t *testing.T) {
	cmd := &cobra.Command{Use: "transcript"}
	AddTranscriptFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--source", "whisper"}))

	err := ApplyTranscriptFlags(cmd, &Config{})
	assert.ErrorContains(t, err, "unsupported transcript source")
}

func TestHandlePromptFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "notes"}
	AddGenerationFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--prompt", "Short notes: {{.Transcript}}"}))

	app := newTestApp(t, englishSource(), &fakeGenerator{})
	require.NoError(t, HandlePromptFlag(cmd, app))

	prompt, err := app.promptManager.CreatePrompt(&Transcript{Text: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "Short notes: abc", prompt)
}
