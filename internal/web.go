package internal

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:embed templates/index.html
var templateFS embed.FS

// pageData is what the form template renders
type pageData struct {
	URL     string
	Error   string
	Warning string
	Notes   template.HTML
}

// WebServer is the interactive form in front of the notes workflow
type WebServer struct {
	app    *App
	tmpl   *template.Template
	logger *slog.Logger
}

// NewWebServer creates the web form for app
func NewWebServer(app *App) (*WebServer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &WebServer{app: app, tmpl: tmpl, logger: app.logger}, nil
}

// Handler returns the routes wrapped in request logging
func (s *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /{$}", s.handleGenerate)
	mux.HandleFunc("GET /download", s.handleDownload)

	return s.logRequests(mux)
}

// Start serves until ctx is cancelled
func (s *WebServer) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("web form listening", slog.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down web server: %w", err)
		}
		return nil
	}
}

func (s *WebServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, pageData{})
}

func (s *WebServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	videoURL := strings.TrimSpace(r.FormValue("url"))
	if videoURL == "" {
		s.render(w, http.StatusOK, pageData{})
		return
	}

	// Generation is not abortable from the form, so a closed tab does not cancel it
	ctx := context.WithoutCancel(r.Context())

	notes, err := s.app.GenerateNotes(ctx, videoURL)
	if err != nil {
		s.logger.Warn("notes generation failed",
			slog.String("url", videoURL),
			slog.String("kind", KindOf(err).String()),
			slog.Any("error", err))
		s.render(w, statusForError(err), pageData{URL: videoURL, Error: userMessage(err)})
		return
	}

	html, err := RenderHTML(notes.Text)
	if err != nil {
		s.logger.Warn("rendering notes as HTML", slog.Any("error", err))
		html = template.HTMLEscapeString(notes.Text)
	}

	s.render(w, http.StatusOK, pageData{
		URL:     videoURL,
		Warning: notes.Warning(),
		Notes:   template.HTML(html),
	})
}

func (s *WebServer) handleDownload(w http.ResponseWriter, r *http.Request) {
	path := s.app.PDFPath()
	if !FileExists(path) {
		http.Error(w, "No notes have been generated yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.app.config.DownloadName))
	http.ServeFile(w, r, path)
}

func (s *WebServer) render(w http.ResponseWriter, status int, data pageData) {
	var buf strings.Builder
	if err := s.tmpl.Execute(&buf, data); err != nil {
		s.logger.Error("rendering page", slog.Any("error", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

// userMessage is the text shown inline in the form
func userMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "Error: " + err.Error()
	}
	switch e.Kind {
	case KindIdentifierNotFound:
		return "Error: Could not extract video ID."
	case KindTranscriptsDisabled:
		return "Error: Transcripts are disabled for this video."
	default:
		return "Error: " + e.Error()
	}
}

func statusForError(err error) int {
	switch KindOf(err) {
	case KindIdentifierNotFound:
		return http.StatusBadRequest
	case KindTranscriptsDisabled:
		return http.StatusUnprocessableEntity
	case KindTranscriptFetchFailed, KindGenerationFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *WebServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			slog.String("id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)))
	})
}
