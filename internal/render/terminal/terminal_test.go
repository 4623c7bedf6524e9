package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopher-gateway/internal/domain"
)

func render(t *testing.T, width int, content domain.ParsedContent) string {
	t.Helper()
	r := &Renderer{Width: width}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "gopher://example.com/1", content))
	return ansi.Strip(buf.String())
}

func TestRenderMenu(t *testing.T) {
	content := domain.Menu([]domain.MenuItem{
		{Type: "i", Display: "Welcome to example", Selector: "fake", Host: "(NULL)", Port: 0},
		{Type: "1", Display: "Documents", Selector: "/docs", Host: "example.com", Port: 70},
		{Type: "0", Display: "Readme", Selector: "/readme.txt", Host: "other.example", Port: 7070},
		{Type: "9", Display: "Archive", Selector: "/a.zip", Host: "example.com", Port: 70},
		{Type: "h", Display: "Homepage", Selector: "URL:https://example.com", Host: "example.com", Port: 70},
		{Type: "T", Display: "Mainframe", Selector: "", Host: "ibm.example", Port: 23},
	})

	out := render(t, 120, content)
	lines := strings.Split(out, "\n")

	assert.Equal(t, "gopher://example.com/1", lines[0])
	assert.Contains(t, out, "Welcome to example")
	assert.NotContains(t, out, "(NULL)")
	assert.Contains(t, out, "DIR    Documents  gopher://example.com/1/docs")
	assert.Contains(t, out, "TXT    Readme  gopher://other.example:7070/0/readme.txt")
	assert.Contains(t, out, "BIN    Archive [download]")
	assert.Contains(t, out, "HTML   Homepage  https://example.com")
	assert.Contains(t, out, "TN3270 Mainframe")
	assert.Contains(t, out, "6 items, 5 links")
}

func TestRenderUnknownType(t *testing.T) {
	out := render(t, 80, domain.Menu([]domain.MenuItem{
		{Type: "X", Display: "Mystery", Selector: "/m", Host: "h", Port: 70},
	}))
	assert.Contains(t, out, "?X     Mystery")
}

func TestRenderTruncatesLongTargets(t *testing.T) {
	out := render(t, 40, domain.Menu([]domain.MenuItem{
		{Type: "1", Display: "Docs", Selector: "/a/very/long/selector/that/does/not/fit", Host: "example.com", Port: 70},
	}))

	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 40, line)
	}
	assert.Contains(t, out, "...")
}

func TestRenderText(t *testing.T) {
	out := render(t, 60, domain.PlainText("line one\nline two"))
	assert.True(t, strings.HasSuffix(out, "line one\nline two\n"))
	assert.NotContains(t, out, "items")
}

func TestRenderEmptyText(t *testing.T) {
	out := render(t, 60, domain.PlainText(""))
	assert.Contains(t, out, "(empty document)")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "a...", truncate("abcdefgh", 1))
}
