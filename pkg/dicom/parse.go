// Package dicom decodes the DICOM Part-10 file format from an
// in-memory buffer into a keyed collection of data elements and a
// pixel payload ready for an image decoder.
//
// The parser is a pure function of its inputs: the byte buffer and the
// data dictionary. Byte-bulk values (OB/UN, pixel fragments) are views
// into the input buffer; callers that need independent lifetimes must
// copy them before releasing the buffer.
package dicom

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jpfielding/dicom.go/pkg/dicom/buffer"
	"github.com/jpfielding/dicom.go/pkg/dicom/dict"
	"github.com/jpfielding/dicom.go/pkg/dicom/tag"
	"github.com/jpfielding/dicom.go/pkg/dicom/transfer"
)

const (
	preambleSize = 128
	magicOffset  = 128
	metaOffset   = 132
)

var dicmMagic = []byte("DICM")

// File is the result of parsing one Part-10 stream
type File struct {
	Preamble       [preambleSize]byte
	Elements       *DataSet
	TransferSyntax transfer.Syntax

	// PixelBuffer holds native pixel data (Uint16s or Bytes) taken
	// from 7FE0,0010 when its length is defined. Encapsulated pixel
	// data stays on the element as its fragment list and PixelBuffer
	// is nil, as it is when the element is absent.
	PixelBuffer Value

	dict dict.Dictionary
}

// Parse decodes a Part-10 stream using the standard data dictionary
func Parse(buf []byte) (*File, error) {
	return ParseWithDictionary(buf, dict.Standard())
}

// ParseWithDictionary decodes a Part-10 stream, resolving implicit VRs
// and keyword lookups through d
func ParseWithDictionary(buf []byte, d dict.Dictionary) (*File, error) {
	if len(buf) < metaOffset || !bytes.Equal(buf[magicOffset:metaOffset], dicmMagic) {
		return nil, &NotDicomError{Offset: magicOffset}
	}

	f := &File{Elements: NewDataSet(), dict: d}
	copy(f.Preamble[:], buf[:preambleSize])

	// the file meta group is always explicit VR little endian
	meta := &decoder{cur: buffer.NewCursor(buf, binary.LittleEndian), dict: d}

	groupLength, err := meta.ReadElement(metaOffset)
	if err != nil {
		return nil, err
	}
	metaLen, ok := groupLength.GetUint32()
	if !ok || !groupLength.Tag.Equals(tag.FileMetaInformationGroupLength) {
		return nil, &MalformedFramingError{Tag: groupLength.Tag, Offset: metaOffset,
			Reason: "expected FileMetaInformationGroupLength"}
	}
	f.Elements.Add(groupLength)

	metaEnd := groupLength.End + int(metaLen)
	for off := groupLength.End; off < metaEnd; {
		e, err := meta.ReadElement(off)
		if err != nil {
			return nil, err
		}
		f.Elements.Add(e)
		off = e.End
	}

	tsElement, found := f.Elements.Get(tag.TransferSyntaxUID.Group, tag.TransferSyntaxUID.Element)
	if !found {
		return nil, &MissingTransferSyntaxError{}
	}
	uid, _ := tsElement.GetString()
	syntax := transfer.FromUID(uid)
	if !syntax.Supported() {
		return nil, &UnsupportedTransferSyntaxError{UID: string(syntax), Name: syntax.Name()}
	}
	f.TransferSyntax = syntax
	slog.Debug("decoding data set",
		slog.String("transferSyntax", syntax.Name()),
		slog.Int("metaEnd", metaEnd),
		slog.Int("size", len(buf)))

	order := binary.ByteOrder(binary.LittleEndian)
	if !syntax.IsLittleEndian() {
		order = binary.BigEndian
	}
	data := &decoder{
		cur:      buffer.NewCursor(buf, order),
		implicit: syntax.IsImplicitVR(),
		dict:     d,
	}

	for off := metaEnd; off < len(buf); {
		e, err := data.ReadElement(off)
		if err != nil {
			return nil, err
		}
		if e.Tag.IsFraming() {
			return nil, &MalformedFramingError{Tag: e.Tag, Offset: off,
				Reason: "delimiter outside any sequence"}
		}
		f.Elements.Add(e)
		off = e.End
	}

	recodeStrings(f.Elements)

	if pixel, found := f.Elements.Get(tag.PixelData.Group, tag.PixelData.Element); found {
		if pixel.Undefined() {
			if !syntax.IsEncapsulated() {
				slog.Warn("undefined-length pixel data under a native transfer syntax; leaving fragments unassembled",
					slog.String("transferSyntax", string(syntax)))
			}
		} else {
			f.PixelBuffer = pixel.Value
		}
	}
	return f, nil
}

// View returns a read-only accessor over the parsed elements
func (f *File) View() View {
	return NewView(f.Elements, f.dict)
}

// Rows returns (0028,0010), or 0 when absent
func (f *File) Rows() int {
	return f.intOf(tag.Rows)
}

// Columns returns (0028,0011), or 0 when absent
func (f *File) Columns() int {
	return f.intOf(tag.Columns)
}

// BitsAllocated returns (0028,0100), defaulting to 16 when absent
func (f *File) BitsAllocated() int {
	if v := f.intOf(tag.BitsAllocated); v != 0 {
		return v
	}
	return 16
}

// NumberOfFrames returns (0028,0008), defaulting to 1 when absent
func (f *File) NumberOfFrames() int {
	if e, ok := f.Elements.Get(tag.NumberOfFrames.Group, tag.NumberOfFrames.Element); ok {
		// Number of Frames is an IS string
		if s, ok := e.GetString(); ok {
			var n int
			if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &n); err == nil && n > 0 {
				return n
			}
		}
	}
	return 1
}

// Modality returns (0008,0060), or "" when absent
func (f *File) Modality() string {
	return f.stringOf(tag.Modality)
}

// PatientName returns (0010,0010), or "" when absent
func (f *File) PatientName() string {
	return f.stringOf(tag.PatientName)
}

func (f *File) intOf(t tag.Tag) int {
	if e, ok := f.Elements.Get(t.Group, t.Element); ok {
		if v, ok := e.GetInt(); ok {
			return v
		}
	}
	return 0
}

func (f *File) stringOf(t tag.Tag) string {
	if e, ok := f.Elements.Get(t.Group, t.Element); ok {
		if s, ok := e.GetString(); ok {
			return s
		}
	}
	return ""
}
