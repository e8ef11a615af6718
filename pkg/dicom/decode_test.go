package dicom

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpfielding/dicom.go/pkg/dicom/buffer"
	"github.com/jpfielding/dicom.go/pkg/dicom/dict"
	"github.com/jpfielding/dicom.go/pkg/dicom/vr"
)

func newTestDecoder(buf []byte, implicit bool) *decoder {
	return &decoder{
		cur:      buffer.NewCursor(buf, binary.LittleEndian),
		implicit: implicit,
		dict:     dict.Standard(),
	}
}

func TestDecoder_HeaderSizes(t *testing.T) {
	// explicit 16-bit VL: 8-byte prefix
	e8 := expl(0x0010, 0x0010, "PN", []byte("DOE^JOHN"))
	d := newTestDecoder(e8, false)
	e, err := d.ReadElement(0)
	require.NoError(t, err)
	assert.Equal(t, 8+8, e.End)

	// explicit 32-bit VL: 12-byte prefix
	e12 := expl(0x7FE0, 0x0010, "OB", []byte{1, 2})
	d = newTestDecoder(e12, false)
	e, err = d.ReadElement(0)
	require.NoError(t, err)
	assert.Equal(t, 12+2, e.End)

	// implicit: 8-byte prefix
	ei := impl(0x0010, 0x0020, []byte("ID"))
	d = newTestDecoder(ei, true)
	e, err = d.ReadElement(0)
	require.NoError(t, err)
	assert.Equal(t, 8+2, e.End)
}

func TestDecoder_ExplicitLengthSequenceWithTwoItems(t *testing.T) {
	item1 := item(expl(0x0008, 0x0100, "SH", []byte("CODE1 ")))
	item2 := item(expl(0x0008, 0x0100, "SH", []byte("CODE2 ")))
	sq := expl(0x0040, 0x0275, "SQ", cat(item1, item2))

	d := newTestDecoder(sq, false)
	e, err := d.ReadElement(0)
	require.NoError(t, err)

	items, ok := e.GetItems()
	require.True(t, ok)
	require.Len(t, items, 2)

	for i, want := range []string{"CODE1", "CODE2"} {
		code, ok := items[i].GetByKey("x00080100")
		require.True(t, ok)
		s, _ := code.GetString()
		assert.Equal(t, want, s)
	}
}

func TestDecoder_EmptySequence(t *testing.T) {
	// explicit length zero: no items
	d := newTestDecoder(expl(0x0040, 0x0275, "SQ", nil), false)
	e, err := d.ReadElement(0)
	require.NoError(t, err)
	items, ok := e.GetItems()
	require.True(t, ok)
	assert.Len(t, items, 0)

	// undefined length closed immediately
	d = newTestDecoder(cat(explUndef(0x0040, 0x0275, "SQ"), seqDelim()), false)
	e, err = d.ReadElement(0)
	require.NoError(t, err)
	items, ok = e.GetItems()
	require.True(t, ok)
	assert.Len(t, items, 0)
}

func TestDecoder_DelimiterInsideExplicitItem(t *testing.T) {
	// an explicit-length item whose body is a stray delimiter
	bad := expl(0x0040, 0x0275, "SQ", item(itemDelim()))
	d := newTestDecoder(bad, false)
	_, err := d.ReadElement(0)
	var malformed *MalformedFramingError
	assert.ErrorAs(t, err, &malformed)
}

func TestDecoder_UndefinedLengthOnNonSequence(t *testing.T) {
	// undefined length is only legal for SQ and pixel data
	d := newTestDecoder(cat(explUndef(0x0008, 0x0100, "UN"), seqDelim()), false)
	_, err := d.ReadElement(0)
	var malformed *MalformedFramingError
	assert.ErrorAs(t, err, &malformed)
}

func TestDecoder_OFFollowsBitsAllocated(t *testing.T) {
	d := newTestDecoder(cat(
		expl(0x0028, 0x0100, "US", le16(16)),
		expl(0x7FE0, 0x0008, "OF", cat(le16(1), le16(2))),
	), false)

	bits, err := d.ReadElement(0)
	require.NoError(t, err)
	of, err := d.ReadElement(bits.End)
	require.NoError(t, err)
	assert.Equal(t, vr.OF, of.VR)
	assert.Equal(t, Uint16s{1, 2}, of.Value)
}

func TestDecoder_FramingTagsHaveNoVR(t *testing.T) {
	// a bare item delimiter reads as UN with a u32 length
	d := newTestDecoder(itemDelim(), false)
	e, err := d.ReadElement(0)
	require.NoError(t, err)
	assert.Equal(t, vr.UN, e.VR)
	assert.Equal(t, 8, e.End)
}
