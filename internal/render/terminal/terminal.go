// Package terminal renders parsed Gopher content as ANSI-colored output.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"gopher-gateway/internal/domain"
	"gopher-gateway/internal/link"
	"gopher-gateway/internal/menu"
)

const (
	defaultWidth = 100
	labelWidth   = 6
)

var typeLabels = map[string]string{
	"0": "TXT",
	"1": "DIR",
	"2": "CSO",
	"3": "ERR",
	"4": "HQX",
	"5": "DOS",
	"6": "UUE",
	"7": "SEARCH",
	"8": "TELNET",
	"9": "BIN",
	"+": "MIRROR",
	"g": "GIF",
	"I": "IMG",
	"T": "TN3270",
	"h": "HTML",
	"s": "SOUND",
}

// Renderer prints menus as a typed link list and documents verbatim.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int
}

func New() *Renderer {
	return &Renderer{}
}

// Render writes content fetched from url to w.
func (r *Renderer) Render(w io.Writer, url string, content domain.ParsedContent) error {
	width := r.termWidth()

	fmt.Fprintln(w, styleTitle.Render(url))
	fmt.Fprintln(w, styleSeparator.Render(strings.Repeat("─", width)))

	if !content.IsMenu {
		text := content.Text
		if text == "" {
			fmt.Fprintln(w, styleMeta.Render("(empty document)"))
			return nil
		}
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		_, err := io.WriteString(w, text)
		return err
	}

	links := 0
	for _, item := range content.Items {
		if !menu.IsInfo(item) {
			links++
		}
		fmt.Fprintln(w, renderItem(item, width))
	}

	fmt.Fprintln(w, styleSeparator.Render(strings.Repeat("─", width)))
	fmt.Fprintln(w, styleMeta.Render(fmt.Sprintf("%d items, %d links", len(content.Items), links)))
	return nil
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

func renderItem(item domain.MenuItem, width int) string {
	indent := strings.Repeat(" ", labelWidth+1)
	if menu.IsInfo(item) {
		return indent + styleInfo.Render(truncate(item.Display, width-len(indent)))
	}

	line := labelStyle(item.Type).Render(fmt.Sprintf("%-*s", labelWidth, label(item.Type))) + " "
	line += styleDisplay.Render(item.Display)
	used := labelWidth + 1 + lipgloss.Width(item.Display)

	if menu.IsDownload(item) {
		line += " " + styleBadge.Render("[download]")
		used += len(" [download]")
	}

	target, ok := menu.ExternalURL(item)
	if !ok {
		target = link.FromItem(item)
	}
	if room := width - used - 2; room >= 4 {
		line += "  " + styleTarget.Render(truncate(target, room))
	}
	return line
}

func label(itemType string) string {
	if l, ok := typeLabels[itemType]; ok {
		return l
	}
	return "?" + itemType
}

func labelStyle(itemType string) lipgloss.Style {
	if s, ok := labelStyles[itemType]; ok {
		return s
	}
	return styleLabelDefault
}

// truncate shortens text to maxWidth, appending "..." if needed.
func truncate(s string, maxWidth int) string {
	if maxWidth < 4 {
		maxWidth = 4
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
