package endpoints

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/storyshelf/storyshelf/internal/reader"
	"github.com/storyshelf/storyshelf/internal/render"
)

// OverviewPageEndpoint handles GET /r/{namespace}/stos/{route}.
// Only route "1" exists.
type OverviewPageEndpoint struct{}

func (e *OverviewPageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/r/{namespace}/stos/{route}", e.handler
}

func (e *OverviewPageEndpoint) RequiresInit() bool { return true }

func (e *OverviewPageEndpoint) Command(_ func() string) *cobra.Command {
	return nil // HTML only
}

func (e *OverviewPageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("route") != "1" {
		http.NotFound(w, r)
		return
	}
	svc := readerFrom(w, r)
	if svc == nil {
		return
	}

	ns := r.PathValue("namespace")
	view, err := svc.Overview(r.Context(), ns)
	if err != nil {
		writeHTMLError(w, r, err)
		return
	}

	writeHTML(w, r, func(out io.Writer) error {
		return render.Overview(out, render.OverviewPage{
			Namespace: ns,
			Theme:     themeFor(r),
			Stories:   view.Stories,
		})
	})
}

// CatalogPageEndpoint handles GET /r/{namespace}/cat/{story_id}.
type CatalogPageEndpoint struct{}

func (e *CatalogPageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/r/{namespace}/cat/{story_id}", e.handler
}

func (e *CatalogPageEndpoint) RequiresInit() bool { return true }

func (e *CatalogPageEndpoint) Command(_ func() string) *cobra.Command {
	return nil // HTML only
}

func (e *CatalogPageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	svc := readerFrom(w, r)
	if svc == nil {
		return
	}

	page, err := reader.ParseCatalogPage(r.URL.Query().Get("p"))
	if err != nil {
		writeHTMLError(w, r, err)
		return
	}

	ns := r.PathValue("namespace")
	view, err := svc.Catalog(r.Context(), ns, r.PathValue("story_id"), page)
	if err != nil {
		writeHTMLError(w, r, err)
		return
	}

	writeHTML(w, r, func(out io.Writer) error {
		return render.Catalog(out, render.CatalogPage{
			Namespace: ns,
			Theme:     themeFor(r),
			Story:     view.Story,
			Window:    view.Window,
		})
	})
}

// ReaderPageEndpoint handles GET /r/{namespace}/cont/{story_id}.
type ReaderPageEndpoint struct{}

func (e *ReaderPageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/r/{namespace}/cont/{story_id}", e.handler
}

func (e *ReaderPageEndpoint) RequiresInit() bool { return true }

func (e *ReaderPageEndpoint) Command(_ func() string) *cobra.Command {
	return nil // HTML only
}

func (e *ReaderPageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	svc := readerFrom(w, r)
	if svc == nil {
		return
	}

	pageNo, err := reader.ParsePageNo(r.URL.Query().Get("p"))
	if err != nil {
		writeHTMLError(w, r, err)
		return
	}

	ns := r.PathValue("namespace")
	view, err := svc.Content(r.Context(), ns, r.PathValue("story_id"), pageNo)
	if err != nil {
		writeHTMLError(w, r, fmt.Errorf("read page %d: %w", pageNo, err))
		return
	}

	writeHTML(w, r, func(out io.Writer) error {
		return render.Reader(out, render.ReaderPage{
			Namespace:  ns,
			Theme:      themeFor(r),
			Story:      view.Story,
			Navigation: view.Navigation,
		})
	})
}
