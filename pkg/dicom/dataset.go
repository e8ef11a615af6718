package dicom

import (
	"github.com/jpfielding/dicom.go/pkg/dicom/dict"
	"github.com/jpfielding/dicom.go/pkg/dicom/tag"
)

// DataSet is an ordered collection of elements keyed by canonical tag
// key. Iteration follows wire order; a duplicate tag overwrites the
// stored element but keeps the position of its first appearance.
type DataSet struct {
	elems map[string]*Element
	order []string
}

// NewDataSet returns an empty data set
func NewDataSet() *DataSet {
	return &DataSet{elems: make(map[string]*Element)}
}

// Add stores an element under its tag key
func (ds *DataSet) Add(e *Element) {
	key := e.Tag.Key()
	if _, seen := ds.elems[key]; !seen {
		ds.order = append(ds.order, key)
	}
	ds.elems[key] = e
}

// Len returns the number of elements
func (ds *DataSet) Len() int {
	return len(ds.elems)
}

// GetByKey returns the element stored under a canonical key
func (ds *DataSet) GetByKey(key string) (*Element, bool) {
	e, ok := ds.elems[key]
	return e, ok
}

// Get returns the element for (group,element)
func (ds *DataSet) Get(group, element uint16) (*Element, bool) {
	return ds.GetByKey(tag.New(group, element).Key())
}

// Elements returns all elements in wire order
func (ds *DataSet) Elements() []*Element {
	out := make([]*Element, 0, len(ds.order))
	for _, key := range ds.order {
		out = append(out, ds.elems[key])
	}
	return out
}

// View is a read-only accessor over a data set, resolving keywords
// through the dictionary it was built with.
type View struct {
	ds   *DataSet
	dict dict.Dictionary
}

// NewView wraps a data set with the dictionary used for keyword lookups
func NewView(ds *DataSet, d dict.Dictionary) View {
	return View{ds: ds, dict: d}
}

// unwrap reduces a single-component value to its scalar unless asArray
// is set; multi-component values always come back whole.
func unwrap(e *Element, asArray bool) interface{} {
	if asArray {
		return e.Value
	}
	switch v := e.Value.(type) {
	case Strings:
		if len(v) == 1 {
			return CleanString(v[0])
		}
	case Uint16s:
		if len(v) == 1 {
			return v[0]
		}
	case Int16s:
		if len(v) == 1 {
			return v[0]
		}
	case Uint32s:
		if len(v) == 1 {
			return v[0]
		}
	case Int32s:
		if len(v) == 1 {
			return v[0]
		}
	case Float32s:
		if len(v) == 1 {
			return v[0]
		}
	case Float64s:
		if len(v) == 1 {
			return v[0]
		}
	case Tags:
		if len(v) == 1 {
			return v[0]
		}
	}
	return e.Value
}

// ByKey returns the value stored under a canonical key ("x00100010").
// Single-component values unwrap to their scalar unless asArray is
// set. Missing keys return nil.
func (v View) ByKey(key string, asArray bool) interface{} {
	e, ok := v.ds.GetByKey(key)
	if !ok {
		return nil
	}
	return unwrap(e, asArray)
}

// ByGroupElement is ByKey via the canonical key form of (group,element)
func (v View) ByGroupElement(group, element uint16, asArray bool) interface{} {
	return v.ByKey(tag.New(group, element).Key(), asArray)
}

// ByName resolves a dictionary keyword to its tag and returns the
// value under that tag
func (v View) ByName(keyword string, asArray bool) interface{} {
	t, ok := v.dict.ByKeyword(keyword)
	if !ok {
		return nil
	}
	return v.ByKey(t.Key(), asArray)
}

// Element returns the underlying element for a canonical key
func (v View) Element(key string) (*Element, bool) {
	return v.ds.GetByKey(key)
}
