package dicom

import (
	"strings"

	"github.com/jpfielding/dicom.go/pkg/dicom/tag"
	"github.com/jpfielding/dicom.go/pkg/dicom/vr"
)

// UndefinedLength is the wire sentinel for delimiter-terminated values
const UndefinedLength uint32 = 0xFFFFFFFF

// Value is the decoded payload of a data element. The concrete shape
// is determined by the element's VR: character strings split into
// components, numeric VRs into typed arrays, SQ into items, and
// encapsulated pixel data into fragments.
type Value interface {
	isValue()
	// Count returns the number of value components
	Count() int
}

// Strings holds the backslash-separated components of a character
// string VR. Components keep their raw characters; trailing padding is
// stripped at comparison and display time only.
type Strings []string

// Bytes holds OB/UN byte bulks
type Bytes []byte

// Uint16s holds US and 16-bit OW/ox bulks
type Uint16s []uint16

// Int16s holds SS values
type Int16s []int16

// Uint32s holds UL values
type Uint32s []uint32

// Int32s holds SL values
type Int32s []int32

// Float32s holds FL values
type Float32s []float32

// Float64s holds FD values
type Float64s []float64

// Tags holds AT values formatted as "(GGGG,EEEE)"
type Tags []string

// Items holds the ordered item data sets of an SQ element. Each item's
// data set includes the item's own FFFE,E000 header element under its
// key.
type Items []*DataSet

// Fragments holds the ordered items of undefined-length pixel data:
// the Basic Offset Table first, then one element per fragment.
type Fragments []*Element

func (Strings) isValue()   {}
func (Bytes) isValue()     {}
func (Uint16s) isValue()   {}
func (Int16s) isValue()    {}
func (Uint32s) isValue()   {}
func (Int32s) isValue()    {}
func (Float32s) isValue()  {}
func (Float64s) isValue()  {}
func (Tags) isValue()      {}
func (Items) isValue()     {}
func (Fragments) isValue() {}

func (v Strings) Count() int   { return len(v) }
func (v Bytes) Count() int     { return len(v) }
func (v Uint16s) Count() int   { return len(v) }
func (v Int16s) Count() int    { return len(v) }
func (v Uint32s) Count() int   { return len(v) }
func (v Int32s) Count() int    { return len(v) }
func (v Float32s) Count() int  { return len(v) }
func (v Float64s) Count() int  { return len(v) }
func (v Tags) Count() int      { return len(v) }
func (v Items) Count() int     { return len(v) }
func (v Fragments) Count() int { return len(v) }

// Element represents a single decoded data element
type Element struct {
	Tag   tag.Tag
	VR    vr.VR
	VL    uint32 // literal wire value length; UndefinedLength when u/l
	Value Value
	Start int // buffer offset of the element's first header byte
	End   int // buffer offset one past the element's last value byte
}

// Undefined returns true if the element was written with the undefined
// length sentinel
func (e *Element) Undefined() bool {
	return e.VL == UndefinedLength
}

// CleanString strips the trailing padding DICOM string values carry on
// the wire: ASCII space and the zero-width space code point.
func CleanString(s string) string {
	s = strings.TrimRight(s, " ")
	s = strings.TrimSuffix(s, "\u200b")
	return strings.TrimRight(s, " ")
}

// GetString returns the element's single string component, cleaned for
// comparison. Multi-component and non-string values return false.
func (e *Element) GetString() (string, bool) {
	if v, ok := e.Value.(Strings); ok && len(v) == 1 {
		return CleanString(v[0]), true
	}
	return "", false
}

// GetStrings returns all string components, cleaned
func (e *Element) GetStrings() ([]string, bool) {
	v, ok := e.Value.(Strings)
	if !ok {
		return nil, false
	}
	out := make([]string, len(v))
	for i, s := range v {
		out[i] = CleanString(s)
	}
	return out, true
}

// GetUint16 returns a single US value
func (e *Element) GetUint16() (uint16, bool) {
	if v, ok := e.Value.(Uint16s); ok && len(v) == 1 {
		return v[0], true
	}
	return 0, false
}

// GetUint32 returns a single UL value
func (e *Element) GetUint32() (uint32, bool) {
	if v, ok := e.Value.(Uint32s); ok && len(v) == 1 {
		return v[0], true
	}
	return 0, false
}

// GetInt returns a single integer value from any of the integer-typed
// shapes
func (e *Element) GetInt() (int, bool) {
	switch v := e.Value.(type) {
	case Uint16s:
		if len(v) == 1 {
			return int(v[0]), true
		}
	case Uint32s:
		if len(v) == 1 {
			return int(v[0]), true
		}
	case Int16s:
		if len(v) == 1 {
			return int(v[0]), true
		}
	case Int32s:
		if len(v) == 1 {
			return int(v[0]), true
		}
	}
	return 0, false
}

// GetBytes returns the raw byte bulk of an OB/UN element
func (e *Element) GetBytes() ([]byte, bool) {
	if v, ok := e.Value.(Bytes); ok {
		return v, true
	}
	return nil, false
}

// GetItems returns the item data sets of an SQ element
func (e *Element) GetItems() (Items, bool) {
	v, ok := e.Value.(Items)
	return v, ok
}

// GetFragments returns the fragment elements of undefined-length pixel
// data (Basic Offset Table first)
func (e *Element) GetFragments() (Fragments, bool) {
	v, ok := e.Value.(Fragments)
	return v, ok
}
