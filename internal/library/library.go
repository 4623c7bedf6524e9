package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gopher-gateway/internal/domain"
	"gopher-gateway/internal/link"
)

const (
	BookmarksKey = "gopher_bookmarks"
	HistoryKey   = "gopher_history"

	DefaultMaxHistory = 50
)

var (
	ErrDuplicateBookmark = errors.New("already bookmarked")
	ErrBookmarkNotFound  = errors.New("bookmark not found")
)

// Library manages bookmarks and history on top of a Store.
type Library struct {
	store      Store
	maxHistory int
	logger     *zap.Logger
	mu         sync.Mutex
	now        func() time.Time
	newID      func() string
}

func New(store Store, maxHistory int, logger *zap.Logger) *Library {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Library{
		store:      store,
		maxHistory: maxHistory,
		logger:     logger.With(zap.String("component", "library")),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Bookmarks returns saved bookmarks in insertion order. Unreadable data
// yields an empty list.
func (l *Library) Bookmarks(ctx context.Context) []domain.Bookmark {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadBookmarks(ctx)
}

// AddBookmark saves url under title. URLs are unique.
func (l *Library) AddBookmark(ctx context.Context, url, title string) (domain.Bookmark, error) {
	if _, err := link.Parse(url); err != nil {
		return domain.Bookmark{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	bookmarks := l.loadBookmarks(ctx)
	for _, b := range bookmarks {
		if b.URL == url {
			return domain.Bookmark{}, ErrDuplicateBookmark
		}
	}

	bookmark := domain.Bookmark{
		ID:        l.newID(),
		URL:       url,
		Title:     title,
		Timestamp: l.now(),
	}
	if err := l.save(ctx, BookmarksKey, append(bookmarks, bookmark)); err != nil {
		return domain.Bookmark{}, fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return bookmark, nil
}

func (l *Library) RemoveBookmark(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	bookmarks := l.loadBookmarks(ctx)
	kept := bookmarks[:0]
	for _, b := range bookmarks {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(bookmarks) {
		return ErrBookmarkNotFound
	}

	if err := l.save(ctx, BookmarksKey, kept); err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return nil
}

// History returns visits, newest first.
func (l *Library) History(ctx context.Context) []domain.HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadHistory(ctx)
}

// RecordVisit prepends a visit and trims history to the configured length.
func (l *Library) RecordVisit(ctx context.Context, url, title string) (domain.HistoryEntry, error) {
	if _, err := link.Parse(url); err != nil {
		return domain.HistoryEntry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := domain.HistoryEntry{
		URL:       url,
		Title:     title,
		Timestamp: l.now(),
	}

	history := append([]domain.HistoryEntry{entry}, l.loadHistory(ctx)...)
	if len(history) > l.maxHistory {
		history = history[:l.maxHistory]
	}

	if err := l.save(ctx, HistoryKey, history); err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("failed to save history: %w", err)
	}
	return entry, nil
}

func (l *Library) ClearHistory(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Clear(ctx, HistoryKey)
}

// VisitTitle names a history entry: the host for menus, host and selector
// for documents.
func VisitTitle(loc domain.Location, isMenu bool) string {
	if isMenu {
		return loc.Host
	}
	return loc.Host + loc.Selector
}

func (l *Library) loadBookmarks(ctx context.Context) []domain.Bookmark {
	var bookmarks []domain.Bookmark
	l.load(ctx, BookmarksKey, &bookmarks)
	return bookmarks
}

func (l *Library) loadHistory(ctx context.Context) []domain.HistoryEntry {
	var history []domain.HistoryEntry
	l.load(ctx, HistoryKey, &history)
	return history
}

func (l *Library) load(ctx context.Context, key string, v any) {
	data, ok, err := l.store.Load(ctx, key)
	if err != nil {
		l.logger.Error("error loading library entry", zap.String("key", key), zap.Error(err))
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		l.logger.Error("error decoding library entry", zap.String("key", key), zap.Error(err))
	}
}

func (l *Library) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return l.store.Save(ctx, key, data)
}
