package domain

import "time"

// Location is a decoded gopher:// URL.
type Location struct {
	Host     string
	Port     int
	ItemType string
	Selector string
}

type Bookmark struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

type HistoryEntry struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}
