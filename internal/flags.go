package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddGenerationFlags adds flags related to notes generation
func AddGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "Model to use for notes")
	cmd.Flags().StringP("prompt", "p", "", "Custom prompt (string or file path)")
	cmd.Flags().String("pdf", "", "Path of the generated PDF (overwritten on every run)")
}

// AddTranscriptFlags adds flags related to transcript retrieval
func AddTranscriptFlags(cmd *cobra.Command) {
	cmd.Flags().String("source", "", "Transcript source: youtube or ytdlp")
}

// ApplyGenerationFlags copies explicitly set generation flags into config
func ApplyGenerationFlags(cmd *cobra.Command, config *Config) error {
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		config.Model = model
	}
	if pdf, _ := cmd.Flags().GetString("pdf"); pdf != "" {
		config.PDFPath = pdf
	}
	return nil
}

// ApplyTranscriptFlags copies explicitly set transcript flags into config
func ApplyTranscriptFlags(cmd *cobra.Command, config *Config) error {
	source, _ := cmd.Flags().GetString("source")
	switch source {
	case "":
	case "youtube", "ytdlp":
		config.TranscriptSource = source
	default:
		return fmt.Errorf("unsupported transcript source: %s (supported: youtube, ytdlp)", source)
	}
	return nil
}

// HandlePromptFlag processes the --prompt flag to set custom prompt
func HandlePromptFlag(cmd *cobra.Command, app *App) error {
	promptFlag := cmd.Flags().Lookup("prompt")
	if promptFlag == nil || !promptFlag.Changed {
		return nil
	}

	prompt, err := cmd.Flags().GetString("prompt")
	if err != nil {
		return fmt.Errorf("failed to get prompt flag: %w", err)
	}

	if prompt == "" {
		return nil
	}

	app.SetPromptManager(NewPromptManager(app.config.ConfigDir, prompt))

	if IsLikelyFilePath(prompt) && FileExists(prompt) {
		app.logger.Debug("using custom prompt file", "path", prompt)
	} else {
		app.logger.Debug("using custom prompt string")
	}

	return nil
}

// HandleVerboseFlag processes the --verbose flag to update config
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if verbose {
		config.Verbose = true
	}
	return nil
}
