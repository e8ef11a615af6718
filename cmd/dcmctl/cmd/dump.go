package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jpfielding/dicom.go/pkg/dicom"
	"github.com/spf13/cobra"
)

// NewDumpCmd parses a part-10 file and prints its data set
func NewDumpCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "parse a DICOM file and dump its data set",
		Long:  "Parses a DICOM part-10 file and prints every data element as text, a table, or JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath, _ := cmd.Flags().GetString("file")
			if filePath == "" && len(args) > 0 {
				filePath = args[0]
			}
			if filePath == "" {
				return fmt.Errorf("file path is required. Use --file flag or provide as argument")
			}

			var raw []byte
			var err error
			if filePath == "-" {
				raw, err = io.ReadAll(os.Stdin)
			} else {
				raw, err = os.ReadFile(filePath)
			}
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			f, err := dicom.Parse(raw)
			if err != nil {
				return fmt.Errorf("parse error: %w", err)
			}

			switch format, _ := cmd.Flags().GetString("format"); format {
			case "text":
				fmt.Print(f.View().Dump())
			case "table":
				for _, row := range f.View().DumpRows() {
					fmt.Printf("%-32s (%04X,%04X) %s %4s %s\n",
						row.Name, row.Group, row.Element, row.VR, row.VL, row.Value)
				}
			default:
				j, err := json.Marshal(f.Elements)
				if err != nil {
					return err
				}
				os.Stdout.Write(j)
				fmt.Println()
			}
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("file", "f", "", "DICOM file path, or - for stdin")
	pf.StringP("format", "o", "text", "output format (text|table|json)")
	return cmd
}
