package domain

// DefaultPort is the well-known Gopher port.
const DefaultPort = 70

// Request identifies one Gopher resource to fetch.
type Request struct {
	Host        string `json:"host" validate:"required,max=255"`
	Port        int    `json:"port" validate:"min=1,max=65535"`
	Selector    string `json:"selector"`
	SearchQuery string `json:"search,omitempty"`
}

// NewRequest builds a Request, applying the default port when port is zero.
func NewRequest(host string, port int, selector, search string) Request {
	if port == 0 {
		port = DefaultPort
	}
	return Request{
		Host:        host,
		Port:        port,
		Selector:    selector,
		SearchQuery: search,
	}
}

// HasSearch reports whether the request carries a search query.
func (r Request) HasSearch() bool {
	return r.SearchQuery != ""
}
