package cmd

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/jpfielding/dicom.go/pkg/util"
	"github.com/spf13/cobra"
)

// NewGenCmd writes a tiny synthetic part-10 file for smoke-testing the
// dump pipeline. It is not an encoder; it emits a fixed explicit VR
// little endian layout byte by byte.
func NewGenCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "write a minimal synthetic DICOM file",
		Long:  "Writes a minimal explicit VR little endian part-10 file with fresh UIDs, for smoke-testing dump.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				return fmt.Errorf("output path is required")
			}
			name, _ := cmd.Flags().GetString("patient-name")
			return os.WriteFile(out, genFile(name), 0644)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("out", "O", "", "output file path")
	pf.String("patient-name", "DOE^JOHN", "PatientName to embed")
	return cmd
}

func genFile(patientName string) []byte {
	var meta, data bytes.Buffer
	emitString(&meta, 0x0002, 0x0002, "UI", "1.2.840.10008.5.1.4.1.1.7\x00") // Secondary Capture
	emitString(&meta, 0x0002, 0x0003, "UI", evenPad(util.NewUID()))
	emitString(&meta, 0x0002, 0x0010, "UI", "1.2.840.10008.1.2.1\x00")

	emitString(&data, 0x0008, 0x0016, "UI", "1.2.840.10008.5.1.4.1.1.7\x00")
	emitString(&data, 0x0008, 0x0018, "UI", evenPad(util.NewUID()))
	if len(patientName)%2 != 0 {
		patientName += " " // PN pads with space, UI with NUL
	}
	emitString(&data, 0x0010, 0x0010, "PN", patientName)
	emitString(&data, 0x0020, 0x000D, "UI", evenPad(util.NewUID()))
	emitString(&data, 0x0020, 0x000E, "UI", evenPad(util.NewUID()))

	var f bytes.Buffer
	f.Write(make([]byte, 128))
	f.WriteString("DICM")
	// group length covers everything after its own value
	emitHeader(&f, 0x0002, 0x0000, "UL", 4)
	binary.Write(&f, binary.LittleEndian, uint32(meta.Len()))
	f.Write(meta.Bytes())
	f.Write(data.Bytes())
	return f.Bytes()
}

func evenPad(s string) string {
	if len(s)%2 != 0 {
		return s + "\x00"
	}
	return s
}

func emitHeader(b *bytes.Buffer, group, element uint16, vr string, vl uint16) {
	binary.Write(b, binary.LittleEndian, group)
	binary.Write(b, binary.LittleEndian, element)
	b.WriteString(vr)
	binary.Write(b, binary.LittleEndian, vl)
}

func emitString(b *bytes.Buffer, group, element uint16, vr, value string) {
	emitHeader(b, group, element, vr, uint16(len(value)))
	b.WriteString(value)
}
