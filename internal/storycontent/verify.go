package storycontent

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// verifier walks a buffer and checks every offset the decoder will follow.
// The flatbuffers runtime trusts its input and panics on bad offsets, so
// nothing is read through it until verify has accepted the buffer.
type verifier struct {
	buf []byte
}

func verify(buf []byte) error {
	v := verifier{buf: buf}
	if len(buf) < flatbuffers.SizeUOffsetT {
		return decodeErrorf(0, "buffer too short (%d bytes)", len(buf))
	}

	root, err := v.indirect(0)
	if err != nil {
		return err
	}
	t, err := v.table(root)
	if err != nil {
		return err
	}

	itemsField, err := v.field(t, itemsSlot)
	if err != nil || itemsField == 0 {
		return err
	}
	items, err := v.indirect(itemsField)
	if err != nil {
		return err
	}
	n, err := v.vector(items, flatbuffers.SizeUOffsetT)
	if err != nil {
		return err
	}
	for i := range n {
		item, err := v.indirect(items + flatbuffers.SizeUOffsetT + i*flatbuffers.SizeUOffsetT)
		if err != nil {
			return err
		}
		if err := v.item(item); err != nil {
			return err
		}
	}
	return nil
}

// item checks one StoryContent table.
func (v *verifier) item(pos uint64) error {
	t, err := v.table(pos)
	if err != nil {
		return err
	}

	title, err := v.field(t, titleSlot)
	if err != nil {
		return err
	}
	if title != 0 {
		if err := v.stringAt(title); err != nil {
			return err
		}
	}

	contentField, err := v.field(t, contentSlot)
	if err != nil || contentField == 0 {
		return err
	}
	content, err := v.indirect(contentField)
	if err != nil {
		return err
	}
	n, err := v.vector(content, flatbuffers.SizeUOffsetT)
	if err != nil {
		return err
	}
	for j := range n {
		if err := v.stringAt(content + flatbuffers.SizeUOffsetT + j*flatbuffers.SizeUOffsetT); err != nil {
			return err
		}
	}
	return nil
}

type tableRef struct {
	pos    uint64
	vtable uint64
	vtLen  uint64
	objLen uint64
}

func (v *verifier) inBounds(pos, size uint64) bool {
	return pos <= uint64(len(v.buf)) && size <= uint64(len(v.buf))-pos
}

// table checks the table header at pos and its vtable.
func (v *verifier) table(pos uint64) (tableRef, error) {
	if !v.inBounds(pos, flatbuffers.SizeSOffsetT) {
		return tableRef{}, decodeErrorf(pos, "table out of bounds")
	}
	vt := int64(pos) - int64(flatbuffers.GetSOffsetT(v.buf[pos:]))
	if vt < 0 || !v.inBounds(uint64(vt), 2*flatbuffers.SizeVOffsetT) {
		return tableRef{}, decodeErrorf(pos, "vtable out of bounds")
	}
	ref := tableRef{pos: pos, vtable: uint64(vt)}
	ref.vtLen = uint64(flatbuffers.GetVOffsetT(v.buf[ref.vtable:]))
	ref.objLen = uint64(flatbuffers.GetVOffsetT(v.buf[ref.vtable+flatbuffers.SizeVOffsetT:]))
	if ref.vtLen < 2*flatbuffers.SizeVOffsetT || ref.vtLen%flatbuffers.SizeVOffsetT != 0 || !v.inBounds(ref.vtable, ref.vtLen) {
		return tableRef{}, decodeErrorf(ref.vtable, "invalid vtable length %d", ref.vtLen)
	}
	if ref.objLen < flatbuffers.SizeSOffsetT || !v.inBounds(pos, ref.objLen) {
		return tableRef{}, decodeErrorf(pos, "invalid table length %d", ref.objLen)
	}
	return ref, nil
}

// field returns the absolute position of an offset-typed field, or 0 when
// the field is absent.
func (v *verifier) field(t tableRef, slot flatbuffers.VOffsetT) (uint64, error) {
	if uint64(slot)+flatbuffers.SizeVOffsetT > t.vtLen {
		return 0, nil
	}
	off := uint64(flatbuffers.GetVOffsetT(v.buf[t.vtable+uint64(slot):]))
	if off == 0 {
		return 0, nil
	}
	if off+flatbuffers.SizeUOffsetT > t.objLen {
		return 0, decodeErrorf(t.pos+off, "field %d outside its table", slot)
	}
	return t.pos + off, nil
}

// indirect follows the uoffset stored at pos.
func (v *verifier) indirect(pos uint64) (uint64, error) {
	if !v.inBounds(pos, flatbuffers.SizeUOffsetT) {
		return 0, decodeErrorf(pos, "offset out of bounds")
	}
	target := pos + uint64(flatbuffers.GetUOffsetT(v.buf[pos:]))
	if target >= uint64(len(v.buf)) {
		return 0, decodeErrorf(pos, "offset points past end of buffer")
	}
	return target, nil
}

// vector checks a vector header at pos and returns its element count.
func (v *verifier) vector(pos, elemSize uint64) (uint64, error) {
	if !v.inBounds(pos, flatbuffers.SizeUOffsetT) {
		return 0, decodeErrorf(pos, "vector length out of bounds")
	}
	n := uint64(flatbuffers.GetUOffsetT(v.buf[pos:]))
	if !v.inBounds(pos+flatbuffers.SizeUOffsetT, n*elemSize) {
		return 0, decodeErrorf(pos, "vector of %d elements overruns buffer", n)
	}
	return n, nil
}

// stringAt checks the string referenced by the uoffset stored at pos.
func (v *verifier) stringAt(pos uint64) error {
	s, err := v.indirect(pos)
	if err != nil {
		return err
	}
	_, err = v.vector(s, 1)
	return err
}
