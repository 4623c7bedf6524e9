// Package menu classifies Gopher responses and converts menu lines to and
// from structured items.
package menu

import (
	"strings"
	"unicode/utf8"

	"gopher-gateway/internal/domain"
)

// ItemTypes lists the type codes that mark a line as menu-shaped.
const ItemTypes = "0123456789+gIThis"

// Terminator ends a Gopher menu.
const Terminator = "."

// menuThreshold is the share of menu-shaped lines a payload must exceed.
const menuThreshold = 0.5

// Parse classifies raw and decodes it. It never fails: empty input yields
// empty text and unparseable lines are dropped.
func Parse(raw string) domain.ParsedContent {
	if strings.TrimSpace(raw) == "" {
		return domain.PlainText("")
	}

	if IsMenu(raw) {
		return domain.Menu(ParseMenu(raw))
	}

	return domain.PlainText(raw)
}

// IsMenu reports whether more than half of the counted lines of content are
// menu-shaped. Blank lines and the terminator are not counted.
func IsMenu(content string) bool {
	menuLines, total := 0, 0

	for _, line := range lines(content) {
		if skip(line) {
			continue
		}
		total++
		if isMenuShaped(line) {
			menuLines++
		}
	}

	return total > 0 && float64(menuLines)/float64(total) > menuThreshold
}

// ParseMenu decodes every counted line of content, in order.
func ParseMenu(content string) []domain.MenuItem {
	items := make([]domain.MenuItem, 0)

	for _, line := range lines(content) {
		if skip(line) {
			continue
		}
		if item, ok := ParseMenuItem(line); ok {
			items = append(items, item)
		}
	}

	return items
}

// ParseMenuItem decodes one line: a type character followed by up to four
// tab-separated fields. Missing fields are empty; the port defaults to 70.
func ParseMenuItem(line string) (domain.MenuItem, bool) {
	if line == "" {
		return domain.MenuItem{}, false
	}

	r, size := utf8.DecodeRuneInString(line)
	fields := strings.Split(line[size:], "\t")

	return domain.MenuItem{
		Type:     string(r),
		Display:  field(fields, 0),
		Selector: field(fields, 1),
		Host:     field(fields, 2),
		Port:     parsePort(field(fields, 3)),
	}, true
}

// lines splits content on LF and drops the CR of CRLF line endings.
func lines(content string) []string {
	out := strings.Split(content, "\n")
	for i, line := range out {
		out[i] = strings.TrimSuffix(line, "\r")
	}
	return out
}

func skip(line string) bool {
	return strings.TrimSpace(line) == "" || line == Terminator
}

func isMenuShaped(line string) bool {
	if line == "" || !strings.Contains(line, "\t") {
		return false
	}
	r, _ := utf8.DecodeRuneInString(line)
	return strings.ContainsRune(ItemTypes, r)
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// parsePort reads the leading decimal digits of s. Anything that does not
// yield a usable TCP port falls back to the default.
func parsePort(s string) int {
	s = strings.TrimLeft(s, " \t")
	port := 0
	digits := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		port = port*10 + int(c-'0')
		digits++
		if port > 65535 {
			return domain.DefaultPort
		}
	}
	if digits == 0 || port == 0 {
		return domain.DefaultPort
	}
	return port
}
