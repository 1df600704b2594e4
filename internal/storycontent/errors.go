package storycontent

import (
	"errors"
	"fmt"
)

// ErrDecode matches every error returned for a buffer that does not follow
// the StoryContentArray layout.
var ErrDecode = errors.New("malformed story content")

// DecodeError describes where a buffer stopped following the layout.
type DecodeError struct {
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s: %s", ErrDecode, e.Reason)
	}
	return fmt.Sprintf("%s: %s at offset %d", ErrDecode, e.Reason, e.Offset)
}

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func decodeErrorf(offset uint64, format string, args ...any) *DecodeError {
	return &DecodeError{Offset: int(offset), Reason: fmt.Sprintf(format, args...)}
}
