// Package paging derives the two views over a decoded page sequence: the
// fixed-size catalog windows and the prev/next reading navigation. Both
// use PageSize, so a reading page always links back to the catalog
// window that lists it.
package paging

import (
	"errors"
	"fmt"

	"github.com/storyshelf/storyshelf/internal/story"
)

// PageSize is the number of entries in one catalog window.
const PageSize = 10

var (
	// ErrInvalidParameter is returned for page numbers that cannot name
	// a page or a window.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrPageNotFound is returned when a page number is absent from the
	// sequence.
	ErrPageNotFound = errors.New("page not found")

	// ErrNotContiguous is returned by CheckContiguous.
	ErrNotContiguous = errors.New("page numbers are not contiguous")
)

// TotalPages returns the number of catalog windows for n pages.
func TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// CatalogPageOf returns the catalog window that lists pageNo.
func CatalogPageOf(pageNo int) int {
	return (pageNo-1)/PageSize + 1
}

// CheckContiguous verifies that pages are numbered 1..N in order.
func CheckContiguous(pages []story.Page) error {
	for i, p := range pages {
		if p.No != i+1 {
			return fmt.Errorf("%w: position %d holds page %d", ErrNotContiguous, i+1, p.No)
		}
	}
	return nil
}
