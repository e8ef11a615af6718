package dicom

import (
	"fmt"
	"log/slog"

	"github.com/jpfielding/dicom.go/pkg/dicom/buffer"
	"github.com/jpfielding/dicom.go/pkg/dicom/dict"
	"github.com/jpfielding/dicom.go/pkg/dicom/tag"
	"github.com/jpfielding/dicom.go/pkg/dicom/vr"
)

// maxNesting bounds sequence recursion on hostile inputs
const maxNesting = 64

// decoder walks one cursor, reading a complete data element per
// ReadElement call. It tracks BitsAllocated so the ox pseudo-VR can be
// materialized into OB or OW before an element is stored.
type decoder struct {
	cur      *buffer.Cursor
	implicit bool
	dict     dict.Dictionary
	bits     int // BitsAllocated once seen; 0 until then
	depth    int
}

func (d *decoder) truncated(t tag.Tag, v vr.VR, off int, err error) error {
	return &TruncatedElementError{Tag: t, VR: v, Offset: off, Err: err}
}

// readTag reads the (group,element) pair at off
func (d *decoder) readTag(off int) (tag.Tag, error) {
	group, err := d.cur.Uint16(off)
	if err != nil {
		return tag.Tag{}, err
	}
	element, err := d.cur.Uint16(off + 2)
	if err != nil {
		return tag.Tag{}, err
	}
	return tag.New(group, element), nil
}

// readHeader decodes the tag, VR, and VL fields of one element.
// It returns the source VR (before ox materialization), the literal
// VL, and the offset of the first value byte.
func (d *decoder) readHeader(off int) (t tag.Tag, source vr.VR, vl uint32, valOff int, err error) {
	t, err = d.readTag(off)
	if err != nil {
		return t, source, vl, valOff, d.truncated(t, source, off, err)
	}
	valOff = off + 4

	// the FFFE framing tags never carry a VR; their length is a u32
	if t.IsFraming() {
		source = vr.UN
		vl, err = d.cur.Uint32(valOff)
		if err != nil {
			return t, source, vl, valOff, d.truncated(t, source, off, err)
		}
		return t, source, vl, valOff + 4, nil
	}

	if d.implicit {
		source = vr.UN
		if entry, found := d.dict.Lookup(t); found {
			source = entry.VR
		}
		vl, err = d.cur.Uint32(valOff)
		if err != nil {
			return t, source, vl, valOff, d.truncated(t, source, off, err)
		}
		return t, source, vl, valOff + 4, nil
	}

	code, err := d.cur.Bytes(valOff, 2)
	if err != nil {
		return t, source, vl, valOff, d.truncated(t, source, off, err)
	}
	valOff += 2
	if vr.IsRecognized(string(code)) {
		source = vr.VR(code)
	} else {
		// unknown VR on the wire: fall back to UN and its 32-bit length
		slog.Debug("unknown VR on the wire, decoding as UN",
			slog.String("tag", t.String()), slog.String("vr", string(code)))
		source = vr.UN
	}
	if source.Uses32BitLength() {
		// two reserved bytes precede the 32-bit length
		vl, err = d.cur.Uint32(valOff + 2)
		if err != nil {
			return t, source, vl, valOff, d.truncated(t, source, off, err)
		}
		return t, source, vl, valOff + 6, nil
	}
	vl16, err := d.cur.Uint16(valOff)
	if err != nil {
		return t, source, vl, valOff, d.truncated(t, source, off, err)
	}
	return t, source, uint32(vl16), valOff + 2, nil
}

// ReadElement decodes one complete data element starting at off,
// recursing into sequence items and pixel fragments as the header
// demands.
func (d *decoder) ReadElement(off int) (*Element, error) {
	t, source, vl, valOff, err := d.readHeader(off)
	if err != nil {
		return nil, err
	}

	e := &Element{Tag: t, VR: source, VL: vl, Start: off}

	if vl == UndefinedLength {
		switch {
		case t.Equals(tag.PixelData):
			frags, end, err := d.readPixelItems(valOff)
			if err != nil {
				return nil, err
			}
			e.Value = frags
			e.End = end
			e.VR = d.pixelVR(source)
			return e, nil
		case source == vr.SQ:
			items, end, err := d.readSequence(valOff)
			if err != nil {
				return nil, err
			}
			e.Value = items
			e.End = end
			return e, nil
		default:
			return nil, &MalformedFramingError{Tag: t, Offset: off,
				Reason: fmt.Sprintf("undefined length is not legal for VR %s", source)}
		}
	}

	n := int(vl)
	if err := d.decodeValue(e, source, valOff, n); err != nil {
		return nil, err
	}
	e.End = valOff + n

	// remember BitsAllocated for later ox width decisions
	if t.Equals(tag.BitsAllocated) {
		if v, ok := e.Value.(Uint16s); ok && len(v) > 0 {
			d.bits = int(v[0])
		}
	}
	return e, nil
}

// pixelVR materializes the internal ox marker into the concrete VR
// implied by BitsAllocated; OB/OW pass through.
func (d *decoder) pixelVR(source vr.VR) vr.VR {
	if source != vr.OX {
		return source
	}
	if d.bits == 8 {
		return vr.OB
	}
	return vr.OW
}

// decodeValue fills e.Value (and the materialized VR) for an element
// with a defined length of n bytes starting at valOff
func (d *decoder) decodeValue(e *Element, source vr.VR, valOff, n int) error {
	fail := func(err error) error {
		return d.truncated(e.Tag, source, e.Start, err)
	}

	switch source {
	case vr.OW, vr.OF, vr.OX:
		e.VR = d.pixelVR(source)
		if d.bits == 8 {
			raw, err := d.cur.Bytes(valOff, n)
			if err != nil {
				return fail(err)
			}
			e.Value = Bytes(raw)
			return nil
		}
		words, err := d.cur.Uint16s(valOff, n)
		if err != nil {
			return fail(err)
		}
		e.Value = Uint16s(words)
	case vr.OB, vr.UN:
		raw, err := d.cur.Bytes(valOff, n)
		if err != nil {
			return fail(err)
		}
		e.Value = Bytes(raw)
	case vr.US:
		v, err := d.cur.Uint16s(valOff, n)
		if err != nil {
			return fail(err)
		}
		e.Value = Uint16s(v)
	case vr.UL:
		v, err := d.cur.Uint32s(valOff, n)
		if err != nil {
			return fail(err)
		}
		e.Value = Uint32s(v)
	case vr.SS:
		v, err := d.cur.Int16s(valOff, n)
		if err != nil {
			return fail(err)
		}
		e.Value = Int16s(v)
	case vr.SL:
		v, err := d.cur.Int32s(valOff, n)
		if err != nil {
			return fail(err)
		}
		e.Value = Int32s(v)
	case vr.FL:
		v, err := d.cur.Float32s(valOff, n)
		if err != nil {
			return fail(err)
		}
		e.Value = Float32s(v)
	case vr.FD:
		v, err := d.cur.Float64s(valOff, n)
		if err != nil {
			return fail(err)
		}
		e.Value = Float64s(v)
	case vr.AT:
		words, err := d.cur.Uint16s(valOff, n)
		if err != nil {
			return fail(err)
		}
		tags := make(Tags, 0, len(words)/2)
		for i := 0; i+1 < len(words); i += 2 {
			tags = append(tags, tag.New(words[i], words[i+1]).String())
		}
		e.Value = tags
	case vr.SQ:
		items, end, err := d.readBoundedSequence(valOff, n)
		if err != nil {
			return err
		}
		if end != valOff+n {
			return &MalformedFramingError{Tag: e.Tag, Offset: e.Start,
				Reason: fmt.Sprintf("sequence items end at %d, expected %d", end, valOff+n)}
		}
		e.Value = items
	default:
		// character string VRs, split on backslash; components keep
		// their raw bytes
		if n == 0 {
			e.Value = Strings{}
			return nil
		}
		s, err := d.cur.String(valOff, n)
		if err != nil {
			return fail(err)
		}
		e.Value = splitComponents(s)
	}
	return nil
}

func splitComponents(s string) Strings {
	out := Strings{}
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

// readBoundedSequence reads items until the cumulative offset reaches
// valOff+n (explicit-length SQ framing)
func (d *decoder) readBoundedSequence(valOff, n int) (Items, int, error) {
	if d.depth++; d.depth > maxNesting {
		return nil, 0, &MalformedFramingError{Offset: valOff, Reason: "sequence nesting exceeds limit"}
	}
	defer func() { d.depth-- }()

	items := Items{}
	off := valOff
	for off < valOff+n {
		item, end, seqDelim, err := d.readItem(off)
		if err != nil {
			return nil, 0, err
		}
		if seqDelim {
			return nil, 0, &MalformedFramingError{Tag: tag.SequenceDelimitationItem, Offset: off,
				Reason: "sequence delimiter inside explicit-length sequence"}
		}
		if item != nil {
			items = append(items, item)
		}
		off = end
	}
	return items, off, nil
}

// readSequence reads items until a sequence delimiter
// (undefined-length SQ framing); the delimiter is consumed but not
// stored
func (d *decoder) readSequence(valOff int) (Items, int, error) {
	if d.depth++; d.depth > maxNesting {
		return nil, 0, &MalformedFramingError{Offset: valOff, Reason: "sequence nesting exceeds limit"}
	}
	defer func() { d.depth-- }()

	items := Items{}
	off := valOff
	for {
		item, end, seqDelim, err := d.readItem(off)
		if err != nil {
			return nil, 0, err
		}
		off = end
		if seqDelim {
			return items, off, nil
		}
		if item != nil {
			items = append(items, item)
		}
	}
}

// readItem decodes one item of a sequence. The item's own FFFE,E000
// header is stored inside the returned data set under its key,
// followed by the item's child elements. A sequence delimiter returns
// seqDelim=true with no data set.
func (d *decoder) readItem(off int) (*DataSet, int, bool, error) {
	t, err := d.readTag(off)
	if err != nil {
		return nil, 0, false, d.truncated(t, vr.UN, off, err)
	}
	if t.Group != 0xFFFE {
		return nil, 0, false, &MalformedFramingError{Tag: t, Offset: off,
			Reason: "expected item tag"}
	}
	vl, err := d.cur.Uint32(off + 4)
	if err != nil {
		return nil, 0, false, d.truncated(t, vr.UN, off, err)
	}

	switch t {
	case tag.SequenceDelimitationItem:
		return nil, off + 8, true, nil
	case tag.Item:
		// fall through below
	default:
		return nil, 0, false, &MalformedFramingError{Tag: t, Offset: off,
			Reason: "unexpected delimiter while reading items"}
	}

	item := NewDataSet()
	header := &Element{Tag: t, VR: vr.UN, VL: vl, Start: off, End: off + 8}

	if vl == UndefinedLength {
		item.Add(header)
		cur := off + 8
		for {
			child, err := d.ReadElement(cur)
			if err != nil {
				return nil, 0, false, err
			}
			cur = child.End
			if child.Tag.Equals(tag.ItemDelimitationItem) {
				// consumed, not stored
				return item, cur, false, nil
			}
			if child.Tag.IsFraming() {
				return nil, 0, false, &MalformedFramingError{Tag: child.Tag, Offset: child.Start,
					Reason: "unexpected delimiter inside item"}
			}
			item.Add(child)
		}
	}

	end := off + 8 + int(vl)
	header.End = end
	item.Add(header)
	cur := off + 8
	for cur < end {
		child, err := d.ReadElement(cur)
		if err != nil {
			return nil, 0, false, err
		}
		if child.Tag.IsFraming() {
			return nil, 0, false, &MalformedFramingError{Tag: child.Tag, Offset: cur,
				Reason: "delimiter inside explicit-length item"}
		}
		item.Add(child)
		cur = child.End
	}
	return item, end, false, nil
}

// readPixelItems decodes the encapsulated pixel-data framing: the
// Basic Offset Table item first, then one fragment per item, up to the
// sequence delimiter.
func (d *decoder) readPixelItems(valOff int) (Fragments, int, error) {
	frags := Fragments{}
	off := valOff
	for {
		t, err := d.readTag(off)
		if err != nil {
			return nil, 0, d.truncated(t, vr.PI, off, err)
		}
		vl, err := d.cur.Uint32(off + 4)
		if err != nil {
			return nil, 0, d.truncated(t, vr.PI, off, err)
		}
		switch {
		case t.Equals(tag.SequenceDelimitationItem):
			if len(frags) == 0 {
				return nil, 0, &MalformedFramingError{Tag: t, Offset: off,
					Reason: "pixel data without a basic offset table item"}
			}
			return frags, off + 8, nil
		case !t.Equals(tag.Item):
			return nil, 0, &MalformedFramingError{Tag: t, Offset: off,
				Reason: "expected pixel fragment item"}
		case vl == UndefinedLength:
			return nil, 0, &MalformedFramingError{Tag: t, Offset: off,
				Reason: "pixel fragment with undefined length"}
		}
		raw, err := d.cur.Bytes(off+8, int(vl))
		if err != nil {
			return nil, 0, d.truncated(t, vr.PI, off, err)
		}
		frags = append(frags, &Element{
			Tag:   t,
			VR:    vr.PI,
			VL:    vl,
			Value: Bytes(raw),
			Start: off,
			End:   off + 8 + int(vl),
		})
		off += 8 + int(vl)
	}
}
