package loader

import (
	"encoding/binary"
	"math"
)

// byteReader is a forward-only cursor over a little-endian buffer. Every read is
// bounds-checked; the first out-of-range access latches a Truncated FormatError and
// all later reads return zero values.
type byteReader struct {
	buf []byte
	off int
	err error
}

// newByteReader wraps buf in a cursor positioned at offset 0.
func newByteReader(buf []byte) *byteReader {
	return &byteReader{buf: buf}
}

// Err returns the first error encountered, or nil.
func (r *byteReader) Err() error {
	return r.err
}

// Offset returns the current cursor position.
func (r *byteReader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes.
func (r *byteReader) Remaining() int {
	return len(r.buf) - r.off
}

// Require checks that n more bytes are available without consuming them.
//
// Parameters:
//   - n: the number of bytes needed
//
// Returns:
//   - bool: false if the buffer is too short (the reader error is set)
func (r *byteReader) Require(n uint64) bool {
	if r.err != nil {
		return false
	}
	if uint64(r.Remaining()) < n {
		r.err = &FormatError{
			Kind:   Truncated,
			Offset: r.off,
			Need:   n,
			Have:   uint64(r.Remaining()),
		}
		return false
	}
	return true
}

// take consumes n bytes and returns them, or nil on overflow.
func (r *byteReader) take(n int) []byte {
	if !r.Require(uint64(n)) {
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

// Uint8 reads one byte.
func (r *byteReader) Uint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// Uint32 reads a little-endian u32.
func (r *byteReader) Uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// Float32 reads a little-endian IEEE-754 f32, preserving its exact bit pattern.
func (r *byteReader) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}

// Vec3 reads three consecutive f32 values.
func (r *byteReader) Vec3() [3]float32 {
	return [3]float32{r.Float32(), r.Float32(), r.Float32()}
}

// Bytes copies the next n bytes into dst.
func (r *byteReader) Bytes(dst []byte) {
	b := r.take(len(dst))
	if b == nil {
		return
	}
	copy(dst, b)
}

// byteWriter appends little-endian values to a pre-sized buffer.
type byteWriter struct {
	buf []byte
}

// newByteWriter creates a writer with capacity for size bytes.
func newByteWriter(size uint64) *byteWriter {
	return &byteWriter{buf: make([]byte, 0, size)}
}

// Uint8 appends one byte.
func (w *byteWriter) Uint8(v uint8) {
	w.buf = append(w.buf, v)
}

// Uint32 appends a little-endian u32.
func (w *byteWriter) Uint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// Float32 appends a little-endian f32 using its exact bit pattern.
func (w *byteWriter) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}

// Vec3 appends three f32 values.
func (w *byteWriter) Vec3(v [3]float32) {
	w.Float32(v[0])
	w.Float32(v[1])
	w.Float32(v[2])
}

// Bytes appends raw bytes.
func (w *byteWriter) Bytes(b []byte) {
	w.buf = append(w.buf, b...)
}
