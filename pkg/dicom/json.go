package dicom

import (
	"encoding/json"
	"fmt"
)

// String returns a one-line representation of the element
func (e *Element) String() string {
	switch v := e.Value.(type) {
	case Fragments:
		return fmt.Sprintf("%s %s pixel sequence (%d items)", e.Tag, e.VR, len(v))
	case Items:
		return fmt.Sprintf("%s %s sequence (%d items)", e.Tag, e.VR, len(v))
	case Bytes:
		return fmt.Sprintf("%s %s (%d bytes)", e.Tag, e.VR, len(v))
	default:
		return fmt.Sprintf("%s %s %v", e.Tag, e.VR, e.Value)
	}
}

// MarshalJSON returns a JSON representation of the element
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Tag   string      `json:"tag"`
		Key   string      `json:"key"`
		VR    string      `json:"vr"`
		VL    string      `json:"vl"`
		Value interface{} `json:"value"`
	}{
		Tag:   e.Tag.String(),
		Key:   e.Tag.Key(),
		VR:    string(e.VR),
		VL:    vlString(e.VL),
		Value: e.Value,
	})
}

// MarshalJSON returns the elements as a JSON array in wire order
func (ds *DataSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(ds.Elements())
}

// MarshalJSON elides the pixel payload, reporting fragment sizes only
func (v Fragments) MarshalJSON() ([]byte, error) {
	sizes := make([]int, len(v))
	for i, frag := range v {
		sizes[i] = frag.Value.Count()
	}
	return json.Marshal(&struct {
		Fragments []int `json:"fragmentBytes"`
	}{Fragments: sizes})
}
