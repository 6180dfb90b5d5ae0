package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytnotes/internal"
)

// transcriptCmd represents the transcript command
var transcriptCmd = &cobra.Command{
	Use:   "transcript [YouTube URL]",
	Short: "Print the English transcript of a YouTube video",
	Example: `  # Print the transcript
  ytnotes transcript "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

  # Save transcript to file
  ytnotes transcript dQw4w9WgXcQ -o transcript.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transcript, err := fetchTranscript(cmd, args[0])
		if err != nil {
			return err
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return os.WriteFile(outputFile, []byte(transcript.Text), 0644)
		}

		fmt.Println(transcript.Text)
		return nil
	},
}

// fetchTranscript resolves the argument and fetches its transcript, reporting any language warning
func fetchTranscript(cmd *cobra.Command, arg string) (*internal.Transcript, error) {
	app, err := newApp(cmd)
	if err != nil {
		return nil, err
	}

	youtubeURL, _, err := internal.ParseArg(arg)
	if err != nil {
		return nil, err
	}

	transcript, err := app.GetTranscriptWithStatus(cmd.Context(), youtubeURL, !config.Quiet)
	if err != nil {
		return nil, err
	}

	if transcript.Warning != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", transcript.Warning)
	}
	return transcript, nil
}

func init() {
	internal.AddTranscriptFlags(transcriptCmd)
	transcriptCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(transcriptCmd)
}
