package protocol

import (
	"encoding/binary"
	"fmt"
)

// RGB is a 24-bit color triple, encoded on the wire as three raw bytes.
type RGB struct {
	R, G, B byte
}

// ArgWriter builds a command's payload argument-by-argument. When Bound is
// true, writes that would exceed Size are refused.
type ArgWriter struct {
	buf   []byte
	size  int
	bound bool
}

// NewArgs returns an ArgWriter. If dataSize >= 0 the writer is bounded to
// that many bytes and refuses overflowing writes; dataSize < 0 means
// unbounded (variable-length command).
func NewArgs(dataSize int) *ArgWriter {
	if dataSize >= 0 {
		return &ArgWriter{size: dataSize, bound: true}
	}
	return &ArgWriter{bound: false}
}

func (w *ArgWriter) ensure(n int) error {
	if w.bound && len(w.buf)+n > w.size {
		return fmt.Errorf("protocol: argument of %d bytes would exceed bounded data_size %d (cur=%d)", n, w.size, len(w.buf))
	}
	return nil
}

// Byte appends a single raw byte.
func (w *ArgWriter) Byte(v byte) error {
	if err := w.ensure(1); err != nil {
		return err
	}
	w.buf = append(w.buf, v)
	return nil
}

// Uint16 appends a little-endian u16.
func (w *ArgWriter) Uint16(v uint16) error {
	if err := w.ensure(2); err != nil {
		return err
	}
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
	return nil
}

// Uint16BE appends a big-endian u16 (used by header fields and a handful of
// wireless-mouse arguments such as DPI).
func (w *ArgWriter) Uint16BE(v uint16) error {
	if err := w.ensure(2); err != nil {
		return err
	}
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
	return nil
}

// Uint32 appends a little-endian u32.
func (w *ArgWriter) Uint32(v uint32) error {
	if err := w.ensure(4); err != nil {
		return err
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
	return nil
}

// Enum appends a one-byte enum value.
func (w *ArgWriter) Enum(v byte) error {
	return w.Byte(v)
}

// Color appends an RGB triple as three raw bytes.
func (w *ArgWriter) Color(c RGB) error {
	if err := w.ensure(3); err != nil {
		return err
	}
	w.buf = append(w.buf, c.R, c.G, c.B)
	return nil
}

// Raw appends a raw byte block.
func (w *ArgWriter) Raw(b []byte) error {
	if err := w.ensure(len(b)); err != nil {
		return err
	}
	w.buf = append(w.buf, b...)
	return nil
}

// Bytes returns the accumulated argument stream, zero-padded to the bound
// data_size when one was set.
func (w *ArgWriter) Bytes() []byte {
	if !w.bound || len(w.buf) >= w.size {
		return w.buf
	}
	out := make([]byte, w.size)
	copy(out, w.buf)
	return out
}
