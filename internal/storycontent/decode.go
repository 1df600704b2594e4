// Package storycontent decodes the binary page arrays stored for each
// story. The format is a FlatBuffers StoryContentArray (see
// story_content.fbs); page numbers are positional and assigned here.
package storycontent

import (
	"fmt"
	"iter"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/storyshelf/storyshelf/internal/story"
)

// vtable offsets of the schema's fields.
const (
	itemsSlot   flatbuffers.VOffsetT = 4 // StoryContentArray.items
	titleSlot   flatbuffers.VOffsetT = 4 // StoryContent.title
	contentSlot flatbuffers.VOffsetT = 6 // StoryContent.content
)

// Sequence is a verified page array. It keeps only the input buffer:
// every call to At or All decodes from the bytes again, so a Sequence can
// be traversed any number of times and always yields the same pages.
type Sequence struct {
	buf   []byte
	items flatbuffers.UOffsetT
	n     int
}

// Open verifies buf and returns a lazy view of its pages.
// A buffer that does not follow the layout yields a *DecodeError.
func Open(buf []byte) (seq *Sequence, err error) {
	defer func() {
		if r := recover(); r != nil {
			seq = nil
			err = &DecodeError{Offset: -1, Reason: fmt.Sprintf("unreadable buffer: %v", r)}
		}
	}()

	if err := verify(buf); err != nil {
		return nil, err
	}

	root := &flatbuffers.Table{Bytes: buf, Pos: flatbuffers.GetUOffsetT(buf)}
	s := &Sequence{buf: buf}
	if o := flatbuffers.UOffsetT(root.Offset(itemsSlot)); o != 0 {
		s.items = root.Vector(o)
		s.n = root.VectorLen(o)
	}
	return s, nil
}

// Decode verifies buf and returns all of its pages.
func Decode(buf []byte) ([]story.Page, error) {
	seq, err := Open(buf)
	if err != nil {
		return nil, err
	}
	return seq.Pages(), nil
}

// Len returns the number of pages.
func (s *Sequence) Len() int {
	return s.n
}

// At decodes the page at 0-based index i. It panics if i is out of range,
// like a slice index.
func (s *Sequence) At(i int) story.Page {
	if i < 0 || i >= s.n {
		panic(fmt.Sprintf("storycontent: index %d out of range [0:%d]", i, s.n))
	}

	t := &flatbuffers.Table{Bytes: s.buf}
	t.Pos = t.Indirect(s.items + flatbuffers.UOffsetT(i)*flatbuffers.SizeUOffsetT)

	page := story.Page{No: i + 1, Content: []string{}}
	if o := flatbuffers.UOffsetT(t.Offset(titleSlot)); o != 0 {
		// string() copies, so pages never alias the input buffer.
		page.Title = string(t.ByteVector(o + t.Pos))
	}
	if o := flatbuffers.UOffsetT(t.Offset(contentSlot)); o != 0 {
		n := t.VectorLen(o)
		start := t.Vector(o)
		page.Content = make([]string, n)
		for j := range n {
			page.Content[j] = string(t.ByteVector(start + flatbuffers.UOffsetT(j)*flatbuffers.SizeUOffsetT))
		}
	}
	return page
}

// All yields the pages in order.
func (s *Sequence) All() iter.Seq[story.Page] {
	return func(yield func(story.Page) bool) {
		for i := range s.n {
			if !yield(s.At(i)) {
				return
			}
		}
	}
}

// Pages decodes every page into a new slice.
func (s *Sequence) Pages() []story.Page {
	pages := make([]story.Page, 0, s.n)
	for p := range s.All() {
		pages = append(pages, p)
	}
	return pages
}
