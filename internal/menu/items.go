package menu

import (
	"strings"

	"gopher-gateway/internal/domain"
)

const urlPrefix = "URL:"

// Item type codes with special handling by clients.
const (
	TypeText   = "0"
	TypeMenu   = "1"
	TypeError  = "3"
	TypeSearch = "7"
	TypeBinary = "9"
	TypeGIF    = "g"
	TypeHTML   = "h"
	TypeInfo   = "i"
)

// IsInfo reports whether the item is informational and not a link.
func IsInfo(item domain.MenuItem) bool {
	return item.Type == TypeInfo
}

// IsDownload reports whether following the item yields binary data.
func IsDownload(item domain.MenuItem) bool {
	return item.Type == TypeBinary || item.Type == TypeGIF
}

// ExternalURL returns the target of an "h" item whose selector carries a
// URL: prefix.
func ExternalURL(item domain.MenuItem) (string, bool) {
	if item.Type != TypeHTML || !strings.HasPrefix(item.Selector, urlPrefix) {
		return "", false
	}
	return strings.TrimPrefix(item.Selector, urlPrefix), true
}
