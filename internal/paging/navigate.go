package paging

import (
	"fmt"

	"github.com/storyshelf/storyshelf/internal/story"
)

// Navigation is a located reading page with its neighbours in sequence
// order. A zero PrevPageNo or NextPageNo means there is no such page.
type Navigation struct {
	Current     story.Page `json:"current" yaml:"current"`
	PrevPageNo  int        `json:"prev_page_no,omitempty" yaml:"prev_page_no,omitempty"`
	NextPageNo  int        `json:"next_page_no,omitempty" yaml:"next_page_no,omitempty"`
	CatalogPage int        `json:"catalog_page" yaml:"catalog_page"`
}

// HasPrev reports whether a previous page exists.
func (n Navigation) HasPrev() bool { return n.PrevPageNo > 0 }

// HasNext reports whether a next page exists.
func (n Navigation) HasNext() bool { return n.NextPageNo > 0 }

type scanState int

const (
	searching scanState = iota
	found
	done
)

// Navigate locates pageNo in pages. It scans in sequence order: records
// before the match become the previous page, the first record after it
// becomes the next page, and the scan stops there.
func Navigate(pages []story.Page, pageNo int) (Navigation, error) {
	var nav Navigation
	state := searching

	for _, p := range pages {
		switch state {
		case searching:
			if p.No == pageNo {
				nav.Current = p
				state = found
				continue
			}
			nav.PrevPageNo = p.No
		case found:
			nav.NextPageNo = p.No
			state = done
		}
		if state == done {
			break
		}
	}

	if state == searching {
		return Navigation{}, fmt.Errorf("%w: page %d of %d", ErrPageNotFound, pageNo, len(pages))
	}
	nav.CatalogPage = CatalogPageOf(nav.Current.No)
	return nav, nil
}
