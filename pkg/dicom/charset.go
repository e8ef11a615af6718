package dicom

import (
	"log/slog"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"

	"github.com/jpfielding/dicom.go/pkg/dicom/tag"
)

// characterSets maps SpecificCharacterSet (0008,0005) defined terms to
// their encodings. Values decode through Latin-1 first (one byte per
// code unit); a declared character set outside this table keeps that
// Latin-1 reading.
var characterSets = map[string]encoding.Encoding{
	"ISO_IR 100":    charmap.ISO8859_1,
	"ISO_IR 144":    charmap.ISO8859_5,
	"ISO_IR 192":    unicode.UTF8,
	"ISO_IR 13":     japanese.ShiftJIS,
	"ISO 2022 IR 6": unicode.UTF8,
}

// latin1Bytes inverts the cursor's Latin-1 decode, recovering the
// original value bytes of a string component
func latin1Bytes(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, byte(r))
	}
	return out
}

// recodeStrings re-decodes the free-text string elements of ds through
// the character set the data set declares. Latin-1 is the default and
// needs no pass.
func recodeStrings(ds *DataSet) {
	cs, ok := ds.Get(tag.SpecificCharacterSet.Group, tag.SpecificCharacterSet.Element)
	if !ok {
		return
	}
	terms, ok := cs.GetStrings()
	if !ok || len(terms) == 0 {
		return
	}
	enc, known := characterSets[terms[0]]
	if !known {
		if terms[0] != "" {
			slog.Warn("unrecognized SpecificCharacterSet, keeping Latin-1 reading",
				slog.String("characterSet", terms[0]))
		}
		return
	}
	if enc == charmap.ISO8859_1 {
		return
	}

	decoder := enc.NewDecoder()
	for _, e := range ds.Elements() {
		if !e.VR.IsText() {
			continue
		}
		components, ok := e.Value.(Strings)
		if !ok {
			continue
		}
		recoded := make(Strings, len(components))
		for i, c := range components {
			decoded, err := decoder.Bytes(latin1Bytes(c))
			if err != nil {
				recoded[i] = c
				continue
			}
			recoded[i] = string(decoded)
		}
		e.Value = recoded
	}
}
