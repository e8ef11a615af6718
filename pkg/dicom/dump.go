package dicom

import (
	"fmt"
	"strings"

	"github.com/jpfielding/dicom.go/pkg/dicom/tag"
	"github.com/jpfielding/dicom.go/pkg/dicom/vr"
)

// hashColumn is where the "#" annotation column begins
const hashColumn = 55

// maxDumpValues caps how many array entries a dump line shows
const maxDumpValues = 8

// Row is one element of the tabular dump
type Row struct {
	Name    string
	Group   uint16
	Element uint16
	VR      vr.VR
	VL      string // byte count, or "u/l"
	Value   string
}

// vlString renders the literal VL field: the byte count, or "u/l" for
// the undefined-length sentinel
func vlString(vl uint32) string {
	if vl == UndefinedLength {
		return "u/l"
	}
	return fmt.Sprintf("%d", vl)
}

func (v View) keyword(t tag.Tag) string {
	if entry, found := v.dict.Lookup(t); found {
		return entry.Keyword
	}
	return "Unknown"
}

// DumpRows returns one row per top-level element, in wire order. The
// pixel-data value is elided to "...".
func (v View) DumpRows() []Row {
	rows := make([]Row, 0, v.ds.Len())
	for _, e := range v.ds.Elements() {
		value := v.describeValue(e)
		if e.Tag.Equals(tag.PixelData) {
			value = "..."
		}
		rows = append(rows, Row{
			Name:    v.keyword(e.Tag),
			Group:   e.Tag.Group,
			Element: e.Tag.Element,
			VR:      e.VR,
			VL:      vlString(e.VL),
			Value:   value,
		})
	}
	return rows
}

// Dump renders the data set as a line-oriented textual dump, one
// element per line, recursing into sequences and pixel fragments.
func (v View) Dump() string {
	var b strings.Builder
	b.WriteString("# Dicom-File-Format\n\n")
	for _, e := range v.ds.Elements() {
		v.dumpElement(&b, e, 0)
	}
	return b.String()
}

func (v View) dumpElement(b *strings.Builder, e *Element, depth int) {
	switch value := e.Value.(type) {
	case Items:
		desc := fmt.Sprintf("(Sequence with explicit length #=%d)", len(value))
		if e.Undefined() {
			desc = fmt.Sprintf("(Sequence with undefined length #=%d)", len(value))
		}
		v.line(b, depth, e.Tag, e.VR, desc, e.VL, 1, v.keyword(e.Tag))
		for _, item := range value {
			v.dumpItem(b, item, depth+1)
		}
		v.pseudo(b, depth, tag.SequenceDelimitationItem, "(SequenceDelimitationItem)")
	case Fragments:
		v.line(b, depth, e.Tag, e.VR, fmt.Sprintf("(PixelSequence #=%d)", len(value)), e.VL, 1, v.keyword(e.Tag))
		for _, frag := range value {
			desc := fmt.Sprintf("(%d bytes)", frag.Value.Count())
			v.line(b, depth+1, frag.Tag, vr.PI, desc, frag.VL, 1, "Item")
		}
		v.pseudo(b, depth, tag.SequenceDelimitationItem, "(SequenceDelimitationItem)")
	default:
		count := 0
		if e.Value != nil {
			count = e.Value.Count()
		}
		v.line(b, depth, e.Tag, e.VR, v.describeValue(e), e.VL, count, v.keyword(e.Tag))
	}
}

func (v View) dumpItem(b *strings.Builder, item *DataSet, depth int) {
	children := make([]*Element, 0, item.Len())
	var header *Element
	for _, e := range item.Elements() {
		if e.Tag.Equals(tag.Item) {
			header = e
			continue
		}
		children = append(children, e)
	}
	desc := fmt.Sprintf("(Item with explicit length #=%d)", len(children))
	headerVL := uint32(0)
	if header != nil {
		headerVL = header.VL
	}
	if headerVL == UndefinedLength {
		desc = fmt.Sprintf("(Item with undefined length #=%d)", len(children))
	}
	v.line(b, depth, tag.Item, vr.NA, desc, headerVL, 1, "Item")
	for _, child := range children {
		v.dumpElement(b, child, depth+1)
	}
	if headerVL == UndefinedLength {
		v.pseudo(b, depth, tag.ItemDelimitationItem, "(ItemDelimitationItem)")
	}
}

// pseudo writes a synthesized zero-length framing entry
func (v View) pseudo(b *strings.Builder, depth int, t tag.Tag, desc string) {
	v.line(b, depth, t, vr.NA, desc, 0, 0, v.keyword(t))
}

// line writes one dump line with the "#" annotation column aligned
func (v View) line(b *strings.Builder, depth int, t tag.Tag, code vr.VR, desc string, vl uint32, count int, keyword string) {
	left := fmt.Sprintf("%s(%04x,%04x) %s %s",
		strings.Repeat("  ", depth), t.Group, t.Element, code, desc)
	if pad := hashColumn - len(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	} else {
		left += " "
	}
	fmt.Fprintf(b, "%s# %3s, %d %s\n", left, vlString(vl), count, keyword)
}

// describeValue renders a short value summary for one dump line
func (v View) describeValue(e *Element) string {
	switch value := e.Value.(type) {
	case nil:
		return "(no value)"
	case Strings:
		if len(value) == 0 {
			return "(no value)"
		}
		cleaned := make([]string, len(value))
		for i, s := range value {
			cleaned[i] = CleanString(s)
		}
		return "[" + strings.Join(cleaned, "\\") + "]"
	case Bytes:
		return fmt.Sprintf("(%d bytes)", len(value))
	case Uint16s:
		return joinNumbers(len(value), func(i int) string { return fmt.Sprintf("%d", value[i]) })
	case Int16s:
		return joinNumbers(len(value), func(i int) string { return fmt.Sprintf("%d", value[i]) })
	case Uint32s:
		return joinNumbers(len(value), func(i int) string { return fmt.Sprintf("%d", value[i]) })
	case Int32s:
		return joinNumbers(len(value), func(i int) string { return fmt.Sprintf("%d", value[i]) })
	case Float32s:
		return joinNumbers(len(value), func(i int) string { return fmt.Sprintf("%g", value[i]) })
	case Float64s:
		return joinNumbers(len(value), func(i int) string { return fmt.Sprintf("%g", value[i]) })
	case Tags:
		return strings.Join(value, "\\")
	default:
		return fmt.Sprintf("(%d entries)", e.Value.Count())
	}
}

func joinNumbers(n int, render func(int) string) string {
	if n == 0 {
		return "(no value)"
	}
	shown := n
	if shown > maxDumpValues {
		shown = maxDumpValues
	}
	parts := make([]string, shown)
	for i := range parts {
		parts[i] = render(i)
	}
	s := strings.Join(parts, "\\")
	if shown < n {
		s += "..."
	}
	return s
}
