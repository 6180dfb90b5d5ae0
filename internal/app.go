package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// App holds the application state and dependencies
type App struct {
	transcripts   *TranscriptFetcher
	source        TranscriptSource
	ai            Generator
	renderer      PDFRenderer
	promptManager *PromptManager
	config        *Config
	logger        *slog.Logger
	ui            UIManager
}

// NewApp initializes the application
func NewApp(config *Config, options ...AppOption) *App {
	logger := NewLogger(config.Verbose, config.Quiet)

	app := &App{
		source:        NewTranscriptSource(config.TranscriptSource, http.DefaultClient, logger),
		ai:            NewAIWithKey(config.APIKey, config.APIBaseURL, config.Model, config.Temperature),
		renderer:      NewPDF(),
		promptManager: NewPromptManager(config.ConfigDir, config.Prompt),
		config:        config,
		logger:        logger,
		ui:            NewUIManager(config.Quiet),
	}

	for _, option := range options {
		option(app)
	}

	app.transcripts = NewTranscriptFetcher(app.source, config.Languages, app.logger)

	return app
}

// NewTranscriptSource picks the caption backend named in the config
func NewTranscriptSource(name string, httpClient *http.Client, logger *slog.Logger) TranscriptSource {
	if name == "ytdlp" {
		return NewYTDLP(httpClient, logger)
	}
	return NewYouTube(httpClient)
}

// AppOption customizes App creation
type AppOption func(*App)

// WithTranscriptSource sets a custom caption backend
func WithTranscriptSource(source TranscriptSource) AppOption {
	return func(a *App) {
		a.source = source
	}
}

// WithGenerator sets a custom notes generator
func WithGenerator(g Generator) AppOption {
	return func(a *App) {
		a.ai = g
	}
}

// WithPDFRenderer sets a custom PDF renderer
func WithPDFRenderer(r PDFRenderer) AppOption {
	return func(a *App) {
		a.renderer = r
	}
}

// WithLogger sets the application logger
func WithLogger(logger *slog.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// WithUI sets the terminal UI manager
func WithUI(ui UIManager) AppOption {
	return func(a *App) {
		a.ui = ui
	}
}

// SetPromptManager sets a new prompt manager
func (app *App) SetPromptManager(pm *PromptManager) {
	app.promptManager = pm
}

// PDFPath is the single file every run overwrites
func (app *App) PDFPath() string {
	return app.config.PDFPath
}

// GetTranscript extracts the video ID from videoURL and fetches its transcript
func (app *App) GetTranscript(ctx context.Context, videoURL string) (*Transcript, error) {
	return app.GetTranscriptWithStatus(ctx, videoURL, false)
}

// GetTranscriptWithStatus fetches a transcript with an optional status spinner
func (app *App) GetTranscriptWithStatus(ctx context.Context, videoURL string, showStatus bool) (*Transcript, error) {
	videoID, err := ExtractVideoID(videoURL)
	if err != nil {
		return nil, err
	}

	var spinner ProgressBar
	if showStatus {
		spinner = app.ui.NewSpinner("Fetching transcript...")
		defer spinner.Finish()
	}

	app.logger.Debug("fetching transcript", slog.String("video_id", videoID))

	transcript, err := app.transcripts.Fetch(ctx, videoID)
	if err != nil {
		app.logger.Debug("transcript fetch failed",
			slog.String("video_id", videoID),
			slog.Any("error", err))
		return nil, err
	}

	app.logger.Debug("transcript fetched",
		slog.String("video_id", videoID),
		slog.String("language", transcript.LanguageCode),
		slog.Bool("translated", transcript.Translated),
		slog.Int("chars", len(transcript.Text)))

	return transcript, nil
}

// GenerateNotesText runs the generation call over a transcript
func (app *App) GenerateNotesText(ctx context.Context, transcript *Transcript) (string, error) {
	prompt, err := app.promptManager.CreatePrompt(transcript)
	if err != nil {
		return "", newError(KindGenerationFailed, err, "creating prompt")
	}

	notes, err := app.ai.Generate(ctx, prompt)
	if err != nil {
		return "", newError(KindGenerationFailed, err, "generating notes")
	}

	return notes, nil
}

// RenderPDF lays out notes and writes them to the configured path
func (app *App) RenderPDF(notes string) (string, error) {
	path := app.config.PDFPath
	if err := EnsureDirs(filepath.Dir(path)); err != nil {
		return "", newError(KindRenderFailed, err, "creating PDF directory")
	}
	if err := app.renderer.Render(path, BuildStory(notes)); err != nil {
		return "", newError(KindRenderFailed, err, "rendering PDF")
	}
	return path, nil
}

// GenerateNotes performs the complete workflow: URL -> ID -> transcript -> notes -> PDF
func (app *App) GenerateNotes(ctx context.Context, videoURL string) (*Notes, error) {
	return app.GenerateNotesWithStatus(ctx, videoURL, false)
}

// GenerateNotesWithStatus is GenerateNotes with optional terminal spinners
func (app *App) GenerateNotesWithStatus(ctx context.Context, videoURL string, showStatus bool) (*Notes, error) {
	transcript, err := app.GetTranscriptWithStatus(ctx, videoURL, showStatus)
	if err != nil {
		return nil, err
	}

	var spinner ProgressBar
	if showStatus {
		spinner = app.ui.NewSpinner(fmt.Sprintf("Generating notes with %s...", app.config.Model))
	}

	notes, err := app.GenerateNotesText(ctx, transcript)
	if err != nil {
		if spinner != nil {
			spinner.Finish()
		}
		return nil, err
	}

	if spinner != nil {
		spinner.Describe("Writing PDF...")
		spinner.Advance()
	}

	path, err := app.RenderPDF(notes)
	if spinner != nil {
		spinner.Finish()
	}
	if err != nil {
		return nil, err
	}

	app.logger.Info("notes generated",
		slog.String("video_id", transcript.VideoID),
		slog.String("pdf", path))

	result := &Notes{
		VideoID:    transcript.VideoID,
		Transcript: transcript,
		Text:       notes,
		PDFPath:    path,
	}
	if MissingGlyphs(notes) {
		result.PDFWarning = "the PDF font has no glyphs for some characters in these notes; they are missing from the PDF"
		app.logger.Warn("notes contain characters the PDF font cannot draw",
			slog.String("video_id", transcript.VideoID))
	}

	return result, nil
}

// PrintNotes runs the workflow and prints the notes to the terminal
func (app *App) PrintNotes(ctx context.Context, videoURL string) error {
	notes, err := app.GenerateNotesWithStatus(ctx, videoURL, !app.config.Quiet)
	if err != nil {
		return err
	}

	if warning := notes.Warning(); warning != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	rendered, err := RenderMarkdown(notes.Text)
	if err != nil {
		app.logger.Debug("markdown rendering failed, printing raw notes", slog.Any("error", err))
		rendered = notes.Text
	}

	fmt.Println(rendered)
	app.ui.Printf("PDF written to %s\n", notes.PDFPath)
	return nil
}
