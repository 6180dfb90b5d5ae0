package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytnotes/internal"
)

var (
	config *internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytnotes [YouTube URL]",
	Short: "Turn a YouTube video into structured notes and a PDF",
	Long: `ytnotes fetches a YouTube video's transcript, asks a hosted language model
for detailed structured notes, and writes those notes to a PDF.

English captions are used when available; otherwise the first caption track
is machine-translated to English, or used as-is when it cannot be translated.

Run "ytnotes serve" for the web form.`,
	Example: `  # Generate notes in the terminal and write notes.pdf
  ytnotes "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  ytnotes dQw4w9WgXcQ

  # Use a different model
  ytnotes "https://youtu.be/dQw4w9WgXcQ" --model gemini-2.5-pro

  # Start the web form on :8501
  ytnotes serve`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return internal.HandleVerboseFlag(cmd, config)
	},
	Args: cobra.ExactArgs(1),
	RunE: runNotes,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config = internal.InitConfig()

	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}

	if err := internal.EnsureDefaultPrompt(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default prompt: %v\n", err)
	}

	rootCmd.SetContext(ctx)

	return rootCmd.Execute()
}

// newApp applies per-command flags to the config and builds the app
func newApp(cmd *cobra.Command) (*internal.App, error) {
	if err := internal.ApplyTranscriptFlags(cmd, config); err != nil {
		return nil, err
	}
	if cmd.Flags().Lookup("model") != nil {
		if err := internal.ApplyGenerationFlags(cmd, config); err != nil {
			return nil, err
		}
	}

	app := internal.NewApp(config)

	if err := internal.HandlePromptFlag(cmd, app); err != nil {
		return nil, err
	}
	return app, nil
}

func runNotes(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}

	youtubeURL, _, err := internal.ParseArg(args[0])
	if err != nil {
		return err
	}
	return app.PrintNotes(cmd.Context(), youtubeURL)
}

func init() {
	internal.AddTranscriptFlags(rootCmd)
	internal.AddGenerationFlags(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
}
