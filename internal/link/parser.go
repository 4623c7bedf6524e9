package link

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopher-gateway/internal/domain"
)

const scheme = "gopher://"

// DefaultItemType is assumed when a URL has no path.
const DefaultItemType = "1"

// Parse decodes gopher://host[:port][/T[selector]].
func Parse(link string) (domain.Location, error) {
	if !strings.HasPrefix(link, scheme) {
		return domain.Location{}, fmt.Errorf("invalid gopher URL: must start with %s", scheme)
	}

	rest := strings.TrimPrefix(link, scheme)

	hostPort, path := rest, ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		hostPort, path = rest[:i], rest[i:]
	}

	host, portStr, hasPort := strings.Cut(hostPort, ":")
	if host == "" {
		return domain.Location{}, fmt.Errorf("invalid gopher URL: missing host")
	}

	port := domain.DefaultPort
	if hasPort {
		p, err := strconv.Atoi(portStr)
		if err != nil || p < 1 || p > 65535 {
			return domain.Location{}, fmt.Errorf("invalid gopher URL: invalid port %q", portStr)
		}
		port = p
	}

	loc := domain.Location{
		Host:     host,
		Port:     port,
		ItemType: DefaultItemType,
	}

	if len(path) > 1 {
		_, size := utf8.DecodeRuneInString(path[1:])
		loc.ItemType = path[1 : 1+size]
		loc.Selector = path[1+size:]
	}

	return loc, nil
}

// Build encodes loc, omitting the default port.
func Build(loc domain.Location) string {
	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString(loc.Host)
	if loc.Port != domain.DefaultPort {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(loc.Port))
	}
	b.WriteByte('/')
	b.WriteString(loc.ItemType)
	b.WriteString(loc.Selector)
	return b.String()
}

// FromItem builds the URL a menu item links to.
func FromItem(item domain.MenuItem) string {
	return Build(domain.Location{
		Host:     item.Host,
		Port:     item.Port,
		ItemType: item.Type,
		Selector: item.Selector,
	})
}

// Request turns a location into a fetch request.
func Request(loc domain.Location, search string) domain.Request {
	return domain.NewRequest(loc.Host, loc.Port, loc.Selector, search)
}
