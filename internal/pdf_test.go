package internal

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readPDFText extracts the plain text of a PDF file
func readPDFText(t *testing.T, path string) (string, int) {
	t.Helper()

	f, r, err := pdf.Open(path)
	require.NoError(t, err)
	defer f.Close()

	textReader, err := r.GetPlainText()
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = io.Copy(&buf, textReader)
	require.NoError(t, err)

	return buf.String(), r.NumPage()
}

func TestBuildStory(t *testing.T) {
	story := BuildStory("# Title\r\n\n- first point")

	assert.Equal(t, []Block{
		Paragraph{Text: "# Title"},
		Spacer{Height: ParagraphSpacing},
		Paragraph{Text: ""},
		Spacer{Height: ParagraphSpacing},
		Paragraph{Text: "- first point"},
		Spacer{Height: ParagraphSpacing},
	}, story)
}

func TestBuildStoryEmpty(t *testing.T) {
	story := BuildStory("")
	assert.Len(t, story, 2)
}

func TestPDFRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")

	err := NewPDF().Render(path, BuildStory("Introduction\n\nKubernetes schedules containers\nCafé résumé"))
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	text, pages := readPDFText(t, path)
	assert.Equal(t, 1, pages)
	assert.Contains(t, text, "Introduction")
	assert.Contains(t, text, "Kubernetes")
}

func TestPDFRenderPaginates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")

	lines := make([]string, 200)
	for i := range lines {
		lines[i] = "A line of notes that goes on the page"
	}

	require.NoError(t, NewPDF().Render(path, BuildStory(strings.Join(lines, "\n"))))

	_, pages := readPDFText(t, path)
	assert.Greater(t, pages, 1)
}

func TestPDFRenderOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	renderer := NewPDF()

	require.NoError(t, renderer.Render(path, BuildStory("Firstrun")))
	require.NoError(t, renderer.Render(path, BuildStory("Secondrun")))

	text, _ := readPDFText(t, path)
	assert.Contains(t, text, "Secondrun")
	assert.NotContains(t, text, "Firstrun")
}

func TestPDFRenderUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "notes.pdf")

	err := NewPDF().Render(path, BuildStory("notes"))
	assert.Error(t, err)
}

// pageContent returns the decoded content stream of one page
func pageContent(t *testing.T, path string, page int) []byte {
	t.Helper()

	f, r, err := pdf.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rc := r.Page(page).V.Key("Contents").Reader()
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	return content
}

// utf16BE is how text drawn with an embedded UTF-8 font appears in a content stream
func utf16BE(s string) []byte {
	var b []byte
	for _, u := range utf16.Encode([]rune(s)) {
		b = append(b, byte(u>>8), byte(u))
	}
	return b
}

func TestPDFRenderKeepsUnicode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")

	require.NoError(t, NewPDF().Render(path, BuildStory("Flow → done ✓\nПривет мир\nΚαλημέρα")))

	content := pageContent(t, path, 1)
	for _, want := range []string{"Flow → done ✓", "Привет мир", "Καλημέρα"} {
		assert.True(t, bytes.Contains(content, utf16BE(want)), "page content is missing %q", want)
	}
}

func TestMissingGlyphs(t *testing.T) {
	assert.False(t, MissingGlyphs("plain ASCII notes"))
	assert.False(t, MissingGlyphs("Straße → Привет ✓"))
	assert.True(t, MissingGlyphs("要点: 日本語"))
	assert.True(t, MissingGlyphs("안녕하세요"))
}
