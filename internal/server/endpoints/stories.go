package endpoints

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/storyshelf/storyshelf/internal/api"
	"github.com/storyshelf/storyshelf/internal/reader"
)

// ListStoriesEndpoint handles GET /api/namespaces/{namespace}/stories.
type ListStoriesEndpoint struct{}

func (e *ListStoriesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/namespaces/{namespace}/stories", e.handler
}

func (e *ListStoriesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List stories
//	@Description	List the stories of a namespace in stored order
//	@Tags			stories
//	@Produce		json
//	@Param			namespace	path		string	true	"Namespace"
//	@Success		200			{object}	reader.OverviewView
//	@Failure		404			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/api/namespaces/{namespace}/stories [get]
func (e *ListStoriesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	svc := readerFrom(w, r)
	if svc == nil {
		return
	}

	view, err := svc.Overview(r.Context(), r.PathValue("namespace"))
	if err != nil {
		writeReaderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (e *ListStoriesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "stories <namespace>",
		Short: "List the stories of a namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var view reader.OverviewView
			if err := client.Get(cmd.Context(), storiesPath(args[0]), &view); err != nil {
				return err
			}
			return api.Output(view)
		},
	}
}

// CatalogEndpoint handles GET /api/namespaces/{namespace}/stories/{story_id}/catalog.
type CatalogEndpoint struct{}

func (e *CatalogEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/namespaces/{namespace}/stories/{story_id}/catalog", e.handler
}

func (e *CatalogEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Story catalog
//	@Description	One window of a story's table of contents, 10 entries per window
//	@Tags			stories
//	@Produce		json
//	@Param			namespace	path		string	true	"Namespace"
//	@Param			story_id	path		string	true	"Story ID"
//	@Param			p			query		int		false	"Catalog window (default 1)"
//	@Success		200			{object}	reader.CatalogView
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/api/namespaces/{namespace}/stories/{story_id}/catalog [get]
func (e *CatalogEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	svc := readerFrom(w, r)
	if svc == nil {
		return
	}

	page, err := reader.ParseCatalogPage(r.URL.Query().Get("p"))
	if err != nil {
		writeReaderError(w, r, err)
		return
	}

	view, err := svc.Catalog(r.Context(), r.PathValue("namespace"), r.PathValue("story_id"), page)
	if err != nil {
		writeReaderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (e *CatalogEndpoint) Command(getServerURL func() string) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "catalog <namespace> <story_id>",
		Short: "Show one window of a story's catalog",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := storyPath(args[0], args[1]) + "/catalog?p=" + strconv.Itoa(page)
			var view reader.CatalogView
			if err := client.Get(cmd.Context(), path, &view); err != nil {
				return err
			}
			return api.Output(view)
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "catalog window")
	return cmd
}

// GetPageEndpoint handles GET /api/namespaces/{namespace}/stories/{story_id}/pages/{page_no}.
type GetPageEndpoint struct{}

func (e *GetPageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/namespaces/{namespace}/stories/{story_id}/pages/{page_no}", e.handler
}

func (e *GetPageEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Reading page
//	@Description	One page of a story with its neighbours and containing catalog window
//	@Tags			stories
//	@Produce		json
//	@Param			namespace	path		string	true	"Namespace"
//	@Param			story_id	path		string	true	"Story ID"
//	@Param			page_no		path		int		true	"Page number"
//	@Success		200			{object}	reader.ContentView
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/api/namespaces/{namespace}/stories/{story_id}/pages/{page_no} [get]
func (e *GetPageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	svc := readerFrom(w, r)
	if svc == nil {
		return
	}

	pageNo, err := reader.ParsePageNo(r.PathValue("page_no"))
	if err != nil {
		writeReaderError(w, r, err)
		return
	}

	view, err := svc.Content(r.Context(), r.PathValue("namespace"), r.PathValue("story_id"), pageNo)
	if err != nil {
		writeReaderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (e *GetPageEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "page <namespace> <story_id> <page_no>",
		Short: "Show one reading page of a story",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := storyPath(args[0], args[1]) + "/pages/" + url.PathEscape(args[2])
			var view reader.ContentView
			if err := client.Get(cmd.Context(), path, &view); err != nil {
				return err
			}
			return api.Output(view)
		},
	}
}

func storiesPath(namespace string) string {
	return "/api/namespaces/" + url.PathEscape(namespace) + "/stories"
}

func storyPath(namespace, storyID string) string {
	return storiesPath(namespace) + "/" + url.PathEscape(storyID)
}
