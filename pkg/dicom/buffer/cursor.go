// Package buffer provides an endian-aware primitive reader over an
// immutable in-memory byte buffer.
package buffer

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// OutOfRangeError reports a read past the end of the buffer
type OutOfRangeError struct {
	Offset int // where the read started
	Want   int // bytes requested
	Size   int // buffer size
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("read of %d bytes at offset %d exceeds buffer size %d", e.Want, e.Offset, e.Size)
}

// Cursor reads fixed-width scalars and typed arrays from a byte buffer
// at caller-supplied offsets. The buffer is never modified; byte-slice
// reads return views into it, multi-byte array reads materialize fresh
// slices so results do not alias the input across endianness.
type Cursor struct {
	buf    []byte
	order  binary.ByteOrder
	latin1 *encoding.Decoder // lazy
}

// NewCursor wraps buf with the given byte order
func NewCursor(buf []byte, order binary.ByteOrder) *Cursor {
	return &Cursor{buf: buf, order: order}
}

// Size returns the length of the underlying buffer
func (c *Cursor) Size() int {
	return len(c.buf)
}

// ByteOrder returns the cursor's byte order
func (c *Cursor) ByteOrder() binary.ByteOrder {
	return c.order
}

// native reports whether the cursor's byte order matches the host's
func (c *Cursor) native() bool {
	return c.order == binary.NativeEndian ||
		c.order.Uint16([]byte{1, 0}) == binary.NativeEndian.Uint16([]byte{1, 0})
}

func (c *Cursor) check(off, n int) error {
	if off < 0 || n < 0 || off+n > len(c.buf) {
		return &OutOfRangeError{Offset: off, Want: n, Size: len(c.buf)}
	}
	return nil
}

// Uint16 reads a 16-bit unsigned scalar at off
func (c *Cursor) Uint16(off int) (uint16, error) {
	if err := c.check(off, 2); err != nil {
		return 0, err
	}
	return c.order.Uint16(c.buf[off:]), nil
}

// Uint32 reads a 32-bit unsigned scalar at off
func (c *Cursor) Uint32(off int) (uint32, error) {
	if err := c.check(off, 4); err != nil {
		return 0, err
	}
	return c.order.Uint32(c.buf[off:]), nil
}

// Int32 reads a 32-bit signed scalar at off
func (c *Cursor) Int32(off int) (int32, error) {
	v, err := c.Uint32(off)
	return int32(v), err
}

// Hex reads a uint16 at off and formats it as "0xGGGG", uppercase and
// zero-padded to four digits
func (c *Cursor) Hex(off int) (string, error) {
	v, err := c.Uint16(off)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("0x%04X", v), nil
}

// Bytes returns n bytes at off as a view into the underlying buffer
func (c *Cursor) Bytes(off, n int) ([]byte, error) {
	if err := c.check(off, n); err != nil {
		return nil, err
	}
	return c.buf[off : off+n : off+n], nil
}

// Int8s reads n bytes at off as signed 8-bit values
func (c *Cursor) Int8s(off, n int) ([]int8, error) {
	if err := c.check(off, n); err != nil {
		return nil, err
	}
	out := make([]int8, n)
	for i := range out {
		out[i] = int8(c.buf[off+i])
	}
	return out, nil
}

// Uint16s reads byteLen bytes at off as 16-bit unsigned values.
// Aligned reads under the host byte order take the bulk path; anything
// else decodes element by element through the scalar reader.
func (c *Cursor) Uint16s(off, byteLen int) ([]uint16, error) {
	if err := c.check(off, byteLen); err != nil {
		return nil, err
	}
	out := make([]uint16, byteLen/2)
	if off%2 == 0 && c.native() {
		for i := range out {
			out[i] = binary.NativeEndian.Uint16(c.buf[off+i*2:])
		}
		return out, nil
	}
	for i := range out {
		out[i] = c.order.Uint16(c.buf[off+i*2:])
	}
	return out, nil
}

// Int16s reads byteLen bytes at off as 16-bit signed values
func (c *Cursor) Int16s(off, byteLen int) ([]int16, error) {
	u, err := c.Uint16s(off, byteLen)
	if err != nil {
		return nil, err
	}
	out := make([]int16, len(u))
	for i, v := range u {
		out[i] = int16(v)
	}
	return out, nil
}

// Uint32s reads byteLen bytes at off as 32-bit unsigned values
func (c *Cursor) Uint32s(off, byteLen int) ([]uint32, error) {
	if err := c.check(off, byteLen); err != nil {
		return nil, err
	}
	out := make([]uint32, byteLen/4)
	if off%4 == 0 && c.native() {
		for i := range out {
			out[i] = binary.NativeEndian.Uint32(c.buf[off+i*4:])
		}
		return out, nil
	}
	for i := range out {
		out[i] = c.order.Uint32(c.buf[off+i*4:])
	}
	return out, nil
}

// Int32s reads byteLen bytes at off as 32-bit signed values
func (c *Cursor) Int32s(off, byteLen int) ([]int32, error) {
	u, err := c.Uint32s(off, byteLen)
	if err != nil {
		return nil, err
	}
	out := make([]int32, len(u))
	for i, v := range u {
		out[i] = int32(v)
	}
	return out, nil
}

// Float32s reads byteLen bytes at off as 32-bit floats
func (c *Cursor) Float32s(off, byteLen int) ([]float32, error) {
	u, err := c.Uint32s(off, byteLen)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(u))
	for i, v := range u {
		out[i] = math.Float32frombits(v)
	}
	return out, nil
}

// Float64s reads byteLen bytes at off as 64-bit floats
func (c *Cursor) Float64s(off, byteLen int) ([]float64, error) {
	if err := c.check(off, byteLen); err != nil {
		return nil, err
	}
	out := make([]float64, byteLen/8)
	if off%8 == 0 && c.native() {
		for i := range out {
			out[i] = math.Float64frombits(binary.NativeEndian.Uint64(c.buf[off+i*8:]))
		}
		return out, nil
	}
	for i := range out {
		out[i] = math.Float64frombits(c.order.Uint64(c.buf[off+i*8:]))
	}
	return out, nil
}

// String decodes n bytes at off as Latin-1, one byte per code unit.
// SpecificCharacterSet handling happens above this layer.
func (c *Cursor) String(off, n int) (string, error) {
	raw, err := c.Bytes(off, n)
	if err != nil {
		return "", err
	}
	if c.latin1 == nil {
		c.latin1 = charmap.ISO8859_1.NewDecoder()
	}
	decoded, err := c.latin1.Bytes(raw)
	if err != nil {
		// ISO 8859-1 decodes every byte; this path is unreachable in
		// practice but keeps the contract explicit.
		return string(raw), nil
	}
	return string(decoded), nil
}
