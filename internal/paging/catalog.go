package paging

import "github.com/storyshelf/storyshelf/internal/story"

// Window is one catalog page plus the numbers its pager links to.
type Window struct {
	CurrentPage int          `json:"current_page" yaml:"current_page"`
	TotalPages  int          `json:"total_pages" yaml:"total_pages"`
	PrevPage    int          `json:"prev_page" yaml:"prev_page"`
	NextPage    int          `json:"next_page" yaml:"next_page"`
	IsFirst     bool         `json:"is_first" yaml:"is_first"`
	IsLast      bool         `json:"is_last" yaml:"is_last"`
	Items       []story.Page `json:"items" yaml:"items"`
}

// Catalog computes the window for currentPage over pages.
//
// currentPage is used as given: a window outside 1..TotalPages has no
// items and its NextPage collapses to TotalPages. Callers decide whether
// such a request is an error.
func Catalog(pages []story.Page, currentPage int) Window {
	total := TotalPages(len(pages))
	w := Window{
		CurrentPage: currentPage,
		TotalPages:  total,
		PrevPage:    1,
		NextPage:    total,
		IsFirst:     currentPage == 1,
		IsLast:      currentPage == total,
		Items:       []story.Page{},
	}
	// Compared before any arithmetic so extreme values cannot wrap.
	if currentPage > 1 {
		w.PrevPage = currentPage - 1
	}
	if currentPage < total {
		w.NextPage = currentPage + 1
	}

	if currentPage < 1 || currentPage > total {
		return w
	}
	start := (currentPage - 1) * PageSize
	end := min(start+PageSize, len(pages))
	w.Items = append(w.Items, pages[start:end]...)
	return w
}

// HasPrev reports whether the pager should link to a previous window.
func (w Window) HasPrev() bool {
	return !w.IsFirst && w.PrevPage < w.CurrentPage
}

// HasNext reports whether the pager should link to a next window.
func (w Window) HasNext() bool {
	return !w.IsLast && w.NextPage > w.CurrentPage
}

// LastPage is the last window a pager may link to. A story with no pages
// still has window 1.
func (w Window) LastPage() int {
	return max(w.TotalPages, 1)
}

// InRange reports whether CurrentPage names an existing window.
func (w Window) InRange() bool {
	return w.CurrentPage >= 1 && w.CurrentPage <= w.LastPage()
}
