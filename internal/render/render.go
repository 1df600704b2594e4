// Package render writes the reading site's HTML pages.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/storyshelf/storyshelf/internal/paging"
	"github.com/storyshelf/storyshelf/internal/story"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

// OverviewPage is the data for a namespace's story list.
type OverviewPage struct {
	Namespace string
	Theme     string
	Stories   []story.Overview
}

// CatalogPage is the data for one catalog window.
type CatalogPage struct {
	Namespace string
	Theme     string
	Story     story.Overview
	Window    paging.Window
}

// ReaderPage is the data for one reading page.
type ReaderPage struct {
	Namespace  string
	Theme      string
	Story      story.Overview
	Navigation paging.Navigation
}

// view is what every template receives. ThemePage is the p parameter the
// theme links carry so switching theme keeps the reader in place; 0 omits it.
type view struct {
	Theme     Theme
	Themes    []Theme
	ThemePage int
	Page      any
}

// Overview writes the story list page.
func Overview(w io.Writer, p OverviewPage) error {
	return execute(w, "overview.html.tmpl", p.Theme, 0, p)
}

// Catalog writes a catalog page.
func Catalog(w io.Writer, p CatalogPage) error {
	return execute(w, "catalog.html.tmpl", p.Theme, p.Window.CurrentPage, p)
}

// Reader writes a reading page.
func Reader(w io.Writer, p ReaderPage) error {
	return execute(w, "reader.html.tmpl", p.Theme, p.Navigation.Current.No, p)
}

func execute(w io.Writer, name, theme string, themePage int, page any) error {
	v := view{Theme: ThemeByName(theme), Themes: Themes, ThemePage: themePage, Page: page}
	if err := templates.ExecuteTemplate(w, name, v); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
