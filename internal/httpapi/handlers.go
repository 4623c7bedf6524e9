package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"gopher-gateway/internal/domain"
	"gopher-gateway/internal/gopher"
	"gopher-gateway/internal/library"
	"gopher-gateway/internal/link"
	"gopher-gateway/internal/worker"
)

const (
	msgInvalidHost = "Missing or invalid host parameter"
	msgInvalidPort = "Invalid port number"
	msgInternal    = "Internal server error"
	msgNotAllowed  = "Method not allowed"
	msgBusy        = "Gateway busy: too many concurrent requests"
	msgInvalidBody = "Invalid request body"
	maxBodyBytes   = 64 * 1024
)

type errorResponse struct {
	Error string `json:"error"`
}

type menuResponse struct {
	Success bool              `json:"success"`
	IsMenu  bool              `json:"isMenu"`
	Items   []domain.MenuItem `json:"items"`
}

type textResponse struct {
	Success bool   `json:"success"`
	IsMenu  bool   `json:"isMenu"`
	Text    string `json:"text"`
}

type entryRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGopher(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, msgNotAllowed)
		return
	}

	req, msg := s.parseQuery(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	content, err := s.browser.Browse(r.Context(), req)
	if err != nil {
		s.writeBrowseError(w, req, err)
		return
	}

	if content.IsMenu {
		items := content.Items
		if items == nil {
			items = []domain.MenuItem{}
		}
		writeJSON(w, http.StatusOK, menuResponse{Success: true, IsMenu: true, Items: items})
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Success: true, Text: content.Text})
}

// parseQuery builds a request from host, port, selector and search. A
// non-empty message means the request was rejected.
func (s *Server) parseQuery(r *http.Request) (domain.Request, string) {
	q := r.URL.Query()

	host := q.Get("host")
	if host == "" {
		return domain.Request{}, msgInvalidHost
	}

	port := s.defaultPort
	if raw := q.Get("port"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Request{}, msgInvalidPort
		}
		port = p
	}

	req := domain.Request{
		Host:        host,
		Port:        port,
		Selector:    q.Get("selector"),
		SearchQuery: q.Get("search"),
	}

	if err := gopher.ValidateRequest(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Host" {
			return domain.Request{}, msgInvalidHost
		}
		return domain.Request{}, msgInvalidPort
	}

	return req, ""
}

func (s *Server) writeBrowseError(w http.ResponseWriter, req domain.Request, err error) {
	var fe *gopher.FetchError
	switch {
	case errors.As(err, &fe):
		writeError(w, http.StatusServiceUnavailable, fe.Error())
	case errors.Is(err, worker.ErrQueueFull):
		writeError(w, http.StatusServiceUnavailable, msgBusy)
	default:
		s.logger.Error("error in /api/gopher",
			zap.String("host", req.Host),
			zap.Int("port", req.Port),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	bookmarks := s.library.Bookmarks(r.Context())
	if bookmarks == nil {
		bookmarks = []domain.Bookmark{}
	}
	writeJSON(w, http.StatusOK, bookmarks)
}

func (s *Server) handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeEntry(w, r)
	if !ok {
		return
	}

	bookmark, err := s.library.AddBookmark(r.Context(), body.URL, body.Title)
	switch {
	case errors.Is(err, library.ErrDuplicateBookmark):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil && isInvalidURL(body.URL):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		s.logger.Error("failed to add bookmark", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
	default:
		writeJSON(w, http.StatusCreated, bookmark)
	}
}

func (s *Server) handleRemoveBookmark(w http.ResponseWriter, r *http.Request) {
	err := s.library.RemoveBookmark(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, library.ErrBookmarkNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		s.logger.Error("failed to remove bookmark", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	history := s.library.History(r.Context())
	if history == nil {
		history = []domain.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleRecordVisit(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeEntry(w, r)
	if !ok {
		return
	}

	entry, err := s.library.RecordVisit(r.Context(), body.URL, body.Title)
	switch {
	case err != nil && isInvalidURL(body.URL):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		s.logger.Error("failed to record visit", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
	default:
		writeJSON(w, http.StatusCreated, entry)
	}
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.library.ClearHistory(r.Context()); err != nil {
		s.logger.Error("failed to clear history", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeEntry(w http.ResponseWriter, r *http.Request) (entryRequest, bool) {
	var body entryRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return entryRequest{}, false
	}
	return body, true
}

func isInvalidURL(url string) bool {
	_, err := link.Parse(url)
	return err != nil
}
