package internal

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
)

//go:embed fonts/DejaVuSansCondensed.ttf
var bodyFont []byte

const bodyFontFamily = "DejaVu"

// scripts the embedded font has no glyphs for
var uncoveredScripts = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Hangul,
	unicode.Thai,
	unicode.Devanagari,
	unicode.Bengali,
	unicode.Tamil,
}

// MissingGlyphs reports whether text uses a script the PDF font cannot draw
func MissingGlyphs(text string) bool {
	for _, r := range text {
		if unicode.In(r, uncoveredScripts...) {
			return true
		}
	}
	return false
}

// Block is one flow-layout unit placed on the page in order
type Block interface {
	isBlock()
}

// Paragraph is a run of wrapped body text
type Paragraph struct {
	Text string
}

// Spacer is vertical whitespace in points
type Spacer struct {
	Height float64
}

func (Paragraph) isBlock() {}
func (Spacer) isBlock()    {}

// ParagraphSpacing is the gap after every paragraph, in points
const ParagraphSpacing = 8

// BuildStory lays out notes as one paragraph per line, each followed by a spacer.
// Markdown is not interpreted.
func BuildStory(notes string) []Block {
	lines := strings.Split(notes, "\n")
	story := make([]Block, 0, 2*len(lines))
	for _, line := range lines {
		story = append(story, Paragraph{Text: strings.TrimRight(line, "\r")}, Spacer{Height: ParagraphSpacing})
	}
	return story
}

// PDFRenderer writes a finished document to disk
type PDFRenderer interface {
	Render(path string, blocks []Block) error
}

// PDF renders A4 documents with an embedded UTF-8 font
type PDF struct {
	Title    string
	FontSize float64
	Leading  float64
	Margin   float64
}

// NewPDF returns a renderer with 10pt DejaVu Sans Condensed on 12pt leading and 1in margins
func NewPDF() *PDF {
	return &PDF{
		Title:    "YouTube Notes",
		FontSize: 10,
		Leading:  12,
		Margin:   72,
	}
}

// Render writes blocks to path, replacing any existing file.
// Page breaks are left to fpdf's automatic pagination.
func (p *PDF) Render(path string, blocks []Block) error {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetTitle(p.Title, true)
	doc.SetCreator("ytnotes", true)
	doc.SetMargins(p.Margin, p.Margin, p.Margin)
	doc.SetAutoPageBreak(true, p.Margin)
	doc.AddUTF8FontFromBytes(bodyFontFamily, "", bodyFont)
	doc.AddPage()
	doc.SetFont(bodyFontFamily, "", p.FontSize)

	for _, b := range blocks {
		switch b := b.(type) {
		case Paragraph:
			if strings.TrimSpace(b.Text) == "" {
				continue
			}
			doc.MultiCell(0, p.Leading, b.Text, "", "L", false)
		case Spacer:
			doc.Ln(b.Height)
		default:
			return fmt.Errorf("unsupported block type %T", b)
		}
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}
