package menu

import (
	"strconv"
	"strings"

	"gopher-gateway/internal/domain"
)

// SerializeMenuItem renders item as an RFC 1436 menu line.
func SerializeMenuItem(item domain.MenuItem) string {
	var b strings.Builder
	b.WriteString(item.Type)
	b.WriteString(item.Display)
	b.WriteByte('\t')
	b.WriteString(item.Selector)
	b.WriteByte('\t')
	b.WriteString(item.Host)
	b.WriteByte('\t')
	b.WriteString(strconv.Itoa(item.Port))
	return b.String()
}

// SerializeMenu joins items with newlines and appends the terminator line.
func SerializeMenu(items []domain.MenuItem) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = SerializeMenuItem(item)
	}
	return strings.Join(lines, "\n") + "\n" + Terminator
}
