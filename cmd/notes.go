package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rtzll/ytnotes/internal"
)

// notesCmd represents the notes command
var notesCmd = &cobra.Command{
	Use:   "notes [YouTube URL]",
	Short: "Generate notes and a PDF from a YouTube video",
	Example: `  # Generate notes from a YouTube video
  ytnotes notes "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

  # Write the PDF somewhere else
  ytnotes notes dQw4w9WgXcQ --pdf /tmp/notes.pdf

  # Use a custom prompt
  ytnotes notes dQw4w9WgXcQ --prompt "Summarize as bullet points: {{.Transcript}}"`,
	Args: cobra.ExactArgs(1),
	RunE: runNotes,
}

func init() {
	internal.AddTranscriptFlags(notesCmd)
	internal.AddGenerationFlags(notesCmd)
	rootCmd.AddCommand(notesCmd)
}
