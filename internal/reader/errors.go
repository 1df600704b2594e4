package reader

import "errors"

var (
	// ErrNamespaceNotFound is returned when the namespace has no overview.
	ErrNamespaceNotFound = errors.New("namespace not found")

	// ErrStoryNotFound is returned when the story id is not listed in the
	// namespace overview.
	ErrStoryNotFound = errors.New("story not found")

	// ErrContentNotFound is returned when the story has no content object.
	ErrContentNotFound = errors.New("content not found")

	// ErrInvalidOverview is returned when a stored overview does not match
	// the overview document schema.
	ErrInvalidOverview = errors.New("invalid overview document")
)
