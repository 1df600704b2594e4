package endpoints

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/storyshelf/storyshelf/internal/paging"
	"github.com/storyshelf/storyshelf/internal/reader"
	"github.com/storyshelf/storyshelf/internal/render"
	"github.com/storyshelf/storyshelf/internal/svcctx"
)

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// statusFor maps reader errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, reader.ErrNamespaceNotFound),
		errors.Is(err, reader.ErrStoryNotFound),
		errors.Is(err, reader.ErrContentNotFound),
		errors.Is(err, paging.ErrPageNotFound):
		return http.StatusNotFound
	case errors.Is(err, paging.ErrInvalidParameter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeReaderError writes err as JSON. Server errors are logged and their
// detail is not sent to the client.
func writeReaderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		svcctx.LoggerFrom(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, status, http.StatusText(status))
		return
	}
	writeError(w, status, err.Error())
}

// writeHTMLError is writeReaderError for the reading site.
func writeHTMLError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		svcctx.LoggerFrom(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
		msg = http.StatusText(status)
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.Error(w, msg, status)
}

// writeHTML renders a page into memory first so that a template failure
// never reaches the client as a truncated page.
func writeHTML(w http.ResponseWriter, r *http.Request, fn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		writeHTMLError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// themeFor returns the requested theme, or the configured default.
func themeFor(r *http.Request) string {
	if t := r.URL.Query().Get("theme"); t != "" {
		return t
	}
	if cm := svcctx.ConfigFrom(r.Context()); cm != nil {
		return cm.Get().Reader.DefaultTheme
	}
	return render.DefaultTheme
}

// readerFrom returns the reader service, writing a 503 when it is missing.
func readerFrom(w http.ResponseWriter, r *http.Request) *reader.Service {
	svc := svcctx.ReaderFrom(r.Context())
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "reader not initialized")
	}
	return svc
}
