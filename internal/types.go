package internal

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies failures of the notes workflow
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindIdentifierNotFound
	KindTranscriptsDisabled
	KindTranscriptFetchFailed
	KindGenerationFailed
	KindRenderFailed
)

// String returns a human-readable representation of the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindIdentifierNotFound:
		return "identifier not found"
	case KindTranscriptsDisabled:
		return "transcripts disabled"
	case KindTranscriptFetchFailed:
		return "transcript fetch failed"
	case KindGenerationFailed:
		return "generation failed"
	case KindRenderFailed:
		return "render failed"
	default:
		return "unknown"
	}
}

// ErrTranscriptsDisabled is returned by transcript sources when a video has no captions
var ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")

// Error is a classified workflow failure. Msg is safe to show to end users.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the kind of a workflow error, or KindUnknown
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Transcript is the flattened text of one video's captions
type Transcript struct {
	VideoID      string
	Text         string
	LanguageCode string
	Translated   bool
	// Warning is set when the text is not in any requested language
	Warning string
}

// Notes is the outcome of one complete workflow run
type Notes struct {
	VideoID    string
	Transcript *Transcript
	Text       string
	PDFPath    string
	// PDFWarning is set when the PDF cannot show every character of Text
	PDFWarning string
}

// Warning combines the transcript and PDF warnings
func (n *Notes) Warning() string {
	var parts []string
	if n.Transcript != nil && n.Transcript.Warning != "" {
		parts = append(parts, n.Transcript.Warning)
	}
	if n.PDFWarning != "" {
		parts = append(parts, n.PDFWarning)
	}
	return strings.Join(parts, "; ")
}
