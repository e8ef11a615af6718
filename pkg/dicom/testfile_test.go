package dicom

import (
	"bytes"
	"encoding/binary"

	"github.com/jpfielding/dicom.go/pkg/dicom/tag"
)

func tagOf(group, element uint16) tag.Tag {
	return tag.New(group, element)
}

// helpers for synthesizing part-10 buffers in tests

func le16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func be16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func cat(parts ...[]byte) []byte {
	var b bytes.Buffer
	for _, p := range parts {
		b.Write(p)
	}
	return b.Bytes()
}

// uses32 mirrors the wire rule for the reserved-span VRs
func uses32(vrCode string) bool {
	switch vrCode {
	case "OB", "OW", "OF", "SQ", "UN":
		return true
	}
	return false
}

// expl encodes one explicit VR little endian element
func expl(group, element uint16, vrCode string, value []byte) []byte {
	header := cat(le16(group), le16(element), []byte(vrCode))
	if uses32(vrCode) {
		return cat(header, []byte{0, 0}, le32(uint32(len(value))), value)
	}
	return cat(header, le16(uint16(len(value))), value)
}

// explUndef encodes an explicit VR element header with undefined length
func explUndef(group, element uint16, vrCode string) []byte {
	return cat(le16(group), le16(element), []byte(vrCode), []byte{0, 0}, le32(0xFFFFFFFF))
}

// impl encodes one implicit VR little endian element
func impl(group, element uint16, value []byte) []byte {
	return cat(le16(group), le16(element), le32(uint32(len(value))), value)
}

// implUndef encodes an implicit VR element header with undefined length
func implUndef(group, element uint16) []byte {
	return cat(le16(group), le16(element), le32(0xFFFFFFFF))
}

// beExpl encodes one explicit VR big endian element
func beExpl(group, element uint16, vrCode string, value []byte) []byte {
	header := cat(be16(group), be16(element), []byte(vrCode))
	if uses32(vrCode) {
		return cat(header, []byte{0, 0}, be32(uint32(len(value))), value)
	}
	return cat(header, be16(uint16(len(value))), value)
}

// item encodes an explicit-length data item
func item(value []byte) []byte {
	return cat(le16(0xFFFE), le16(0xE000), le32(uint32(len(value))), value)
}

// beItem encodes an explicit-length data item with big endian framing
func beItem(value []byte) []byte {
	return cat(be16(0xFFFE), be16(0xE000), be32(uint32(len(value))), value)
}

func itemUndef() []byte {
	return cat(le16(0xFFFE), le16(0xE000), le32(0xFFFFFFFF))
}

func itemDelim() []byte {
	return cat(le16(0xFFFE), le16(0xE00D), le32(0))
}

func seqDelim() []byte {
	return cat(le16(0xFFFE), le16(0xE0DD), le32(0))
}

// p10 builds a complete part-10 buffer: preamble, magic, a file meta
// group holding only the transfer syntax, then the data set elements.
func p10(tsuid string, dataSet ...[]byte) []byte {
	if len(tsuid)%2 != 0 {
		tsuid += "\x00"
	}
	ts := expl(0x0002, 0x0010, "UI", []byte(tsuid))

	var f bytes.Buffer
	f.Write(make([]byte, 128))
	f.WriteString("DICM")
	f.Write(expl(0x0002, 0x0000, "UL", le32(uint32(len(ts)))))
	f.Write(ts)
	for _, e := range dataSet {
		f.Write(e)
	}
	return f.Bytes()
}
