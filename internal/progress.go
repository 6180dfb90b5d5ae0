package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// UIManager handles terminal status output for interactive commands
type UIManager interface {
	NewSpinner(description string) ProgressBar

	Printf(format string, args ...any)
	Println(args ...any)
}

// ProgressBar abstracts spinner operations
type ProgressBar interface {
	Describe(description string)
	Advance()
	Finish()
}

// StandardUIManager writes status to stdout and spinners to stderr
type StandardUIManager struct {
	quiet bool
	out   io.Writer
	err   *os.File
}

// NewUIManager creates a UI manager; spinners are hidden when quiet or
// when stderr is not a terminal
func NewUIManager(quiet bool) UIManager {
	return &StandardUIManager{
		quiet: quiet,
		out:   os.Stdout,
		err:   os.Stderr,
	}
}

func (ui *StandardUIManager) interactive() bool {
	fd := ui.err.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (ui *StandardUIManager) NewSpinner(description string) ProgressBar {
	if ui.quiet || !ui.interactive() {
		return &SilentProgressBar{bar: progressbar.DefaultSilent(-1)}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(ui.err),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	_ = bar.RenderBlank()
	return &VisibleProgressBar{bar: bar}
}

func (ui *StandardUIManager) Printf(format string, args ...any) {
	if !ui.quiet {
		fmt.Fprintf(ui.out, format, args...)
	}
}

func (ui *StandardUIManager) Println(args ...any) {
	if !ui.quiet {
		fmt.Fprintln(ui.out, args...)
	}
}

// VisibleProgressBar wraps the actual progress bar
type VisibleProgressBar struct {
	bar *progressbar.ProgressBar
}

func (v *VisibleProgressBar) Describe(description string) {
	v.bar.Describe(description)
}

func (v *VisibleProgressBar) Advance() {
	_ = v.bar.Add(1)
}

func (v *VisibleProgressBar) Finish() {
	_ = v.bar.Finish()
}

// SilentProgressBar implements a silent progress bar
type SilentProgressBar struct {
	bar *progressbar.ProgressBar
}

func (s *SilentProgressBar) Describe(description string) {}

func (s *SilentProgressBar) Advance() {
	_ = s.bar.Add(1)
}

func (s *SilentProgressBar) Finish() {
	_ = s.bar.Finish()
}
