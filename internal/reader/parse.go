package reader

import (
	"fmt"
	"strconv"

	"github.com/storyshelf/storyshelf/internal/paging"
)

const (
	overviewKeyPrefix = "story_overview:"
	contentKeyPrefix  = "story_content:"
)

// OverviewKey is the metadata store key holding a namespace's story list.
func OverviewKey(namespace string) string {
	return overviewKeyPrefix + namespace
}

// ContentKey is the blob store key holding a story's binary content.
func ContentKey(storyID string) string {
	return contentKeyPrefix + storyID
}

// ParseCatalogPage parses a catalog window number. Empty means 1.
func ParseCatalogPage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: catalog page %q is not a number", paging.ErrInvalidParameter, raw)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: catalog page %d is less than 1", paging.ErrInvalidParameter, n)
	}
	return n, nil
}

// ParsePageNo parses a reading page number. Empty means 1. Numbers that
// name no page are left for the navigator to reject.
func ParsePageNo(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: page %q is not a number", paging.ErrInvalidParameter, raw)
	}
	return n, nil
}
