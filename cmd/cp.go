package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/rtzll/ytnotes/internal"
)

// cpCmd copies the transcript to the system clipboard instead of printing to stdout.
var cpCmd = &cobra.Command{
	Use:   "cp [YouTube URL]",
	Short: "Copy the transcript of a YouTube video to the clipboard",
	Example: `  ytnotes cp "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  ytnotes cp dQw4w9WgXcQ`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transcript, err := fetchTranscript(cmd, args[0])
		if err != nil {
			return err
		}

		if err := clipboard.WriteAll(transcript.Text); err != nil {
			return fmt.Errorf("copying transcript to clipboard: %w", err)
		}

		if !config.Quiet {
			fmt.Println("Transcript copied to clipboard")
		}

		return nil
	},
}

func init() {
	internal.AddTranscriptFlags(cpCmd)
	rootCmd.AddCommand(cpCmd)
}
