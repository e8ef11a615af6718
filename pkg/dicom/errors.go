package dicom

import (
	"fmt"

	"github.com/jpfielding/dicom.go/pkg/dicom/buffer"
	"github.com/jpfielding/dicom.go/pkg/dicom/tag"
	"github.com/jpfielding/dicom.go/pkg/dicom/vr"
)

// TruncatedBufferError reports a primitive read past the end of the
// input buffer; element-level truncation wraps it in
// TruncatedElementError.
type TruncatedBufferError = buffer.OutOfRangeError

// NotDicomError reports a stream without the "DICM" magic at offset 128
type NotDicomError struct {
	Offset int
}

func (e *NotDicomError) Error() string {
	return fmt.Sprintf("not a DICOM part-10 stream: missing DICM magic at offset %d", e.Offset)
}

// TruncatedElementError reports an element whose declared value length
// runs past the end of the buffer
type TruncatedElementError struct {
	Tag    tag.Tag
	VR     vr.VR
	Offset int
	Err    error
}

func (e *TruncatedElementError) Error() string {
	return fmt.Sprintf("element %s [%s] at offset %d is truncated: %v", e.Tag, e.VR, e.Offset, e.Err)
}

func (e *TruncatedElementError) Unwrap() error {
	return e.Err
}

// MalformedFramingError reports an item or delimiter tag encountered
// outside its expected nesting
type MalformedFramingError struct {
	Tag    tag.Tag
	Offset int
	Reason string
}

func (e *MalformedFramingError) Error() string {
	return fmt.Sprintf("malformed framing at offset %d: %s %s", e.Offset, e.Tag, e.Reason)
}

// UnsupportedTransferSyntaxError reports a transfer syntax this parser
// rejects
type UnsupportedTransferSyntaxError struct {
	UID  string
	Name string
}

func (e *UnsupportedTransferSyntaxError) Error() string {
	return fmt.Sprintf("unsupported transfer syntax %s (%s)", e.UID, e.Name)
}

// MissingTransferSyntaxError reports a file meta group without
// (0002,0010)
type MissingTransferSyntaxError struct{}

func (e *MissingTransferSyntaxError) Error() string {
	return "file meta information carries no TransferSyntaxUID (0002,0010)"
}
