package storycontent

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/storyshelf/storyshelf/internal/story"
)

// Encode writes pages as a StoryContentArray. Page numbers are not
// written; empty titles and empty content lists are left out as absent
// fields.
func Encode(pages []story.Page) []byte {
	b := flatbuffers.NewBuilder(1024)

	items := make([]flatbuffers.UOffsetT, len(pages))
	for i, p := range pages {
		var title, content flatbuffers.UOffsetT
		if p.Title != "" {
			title = b.CreateString(p.Title)
		}
		if len(p.Content) > 0 {
			content = stringVector(b, p.Content)
		}

		b.StartObject(2)
		if title != 0 {
			b.PrependUOffsetTSlot(0, title, 0)
		}
		if content != 0 {
			b.PrependUOffsetTSlot(1, content, 0)
		}
		items[i] = b.EndObject()
	}

	vec := offsetVector(b, items)
	b.StartObject(1)
	b.PrependUOffsetTSlot(0, vec, 0)
	b.Finish(b.EndObject())
	return b.FinishedBytes()
}

func stringVector(b *flatbuffers.Builder, values []string) flatbuffers.UOffsetT {
	offsets := make([]flatbuffers.UOffsetT, len(values))
	for i, v := range values {
		offsets[i] = b.CreateString(v)
	}
	return offsetVector(b, offsets)
}

// offsetVector prepends in reverse so the vector reads in input order.
func offsetVector(b *flatbuffers.Builder, offsets []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	b.StartVector(flatbuffers.SizeUOffsetT, len(offsets), flatbuffers.SizeUOffsetT)
	for i := len(offsets) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offsets[i])
	}
	return b.EndVector(len(offsets))
}
