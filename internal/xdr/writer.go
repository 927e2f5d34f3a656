// Copyright (C) 2014 Jakob Borg. All rights reserved. Use of this source code
// is governed by an MIT-style license that can be found in the LICENSE file.

package xdr

import (
	"math"

	"github.com/andastra/andastra/internal/bpool"
)

// Writer accumulates little-endian encoded primitives into a growable
// buffer. Sections are appended in the order callers choose, and each
// append's starting offset is returned so the caller can record it in a
// header offset/count table (the encoder for every format in this module
// does exactly that).
type Writer struct {
	buf    []byte
	pooled bool
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// NewWriterSize returns an empty Writer whose initial backing array is
// borrowed from internal/bpool, sized for at least hint bytes. Callers
// that know their encoded size up front (the GFF encoder's per-section
// scratch buffers, one per struct/field/list-index section) avoid the
// repeated grow-and-copy append would otherwise do. Release returns the
// backing array to the pool once the caller is done with Bytes().
func NewWriterSize(hint int) *Writer {
	return &Writer{buf: bpool.Get(hint)[:0], pooled: true}
}

// Release returns w's backing array to internal/bpool. Only call this
// once every byte that matters has already been copied out (e.g. via
// WriteRaw into another Writer) — after Release, Bytes is no longer
// valid to read. A no-op on a Writer not obtained from NewWriterSize.
func (w *Writer) Release() {
	if !w.pooled {
		return
	}
	bpool.Put(w.buf)
	w.buf = nil
	w.pooled = false
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far; this doubles as "the
// offset the next write will start at".
func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) WriteRaw(bs []byte) int {
	w.buf = append(w.buf, bs...)
	return len(bs)
}

func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) WriteInt8(v int8) {
	w.WriteUint8(uint8(v))
}

func (w *Writer) WriteUint16(v uint16) {
	w.buf = append(w.buf, byte(v), byte(v>>8))
}

func (w *Writer) WriteInt16(v int16) {
	w.WriteUint16(uint16(v))
}

func (w *Writer) WriteUint32(v uint32) {
	w.buf = append(w.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

func (w *Writer) WriteUint64(v uint64) {
	w.buf = append(w.buf,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56),
	)
}

func (w *Writer) WriteInt64(v int64) {
	w.WriteUint64(uint64(v))
}

func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
}

// WriteFixed writes s into an n-byte field, truncating or zero-padding as
// needed (labels and other fixed-width NUL-padded ASCII fields).
func (w *Writer) WriteFixed(s []byte, n int) {
	b := make([]byte, n)
	copy(b, s)
	w.buf = append(w.buf, b...)
}

// WriteLengthPrefixed32 writes a u32 byte count followed by bs verbatim.
func (w *Writer) WriteLengthPrefixed32(bs []byte) {
	w.WriteUint32(uint32(len(bs)))
	w.buf = append(w.buf, bs...)
}

// WriteLengthPrefixed8 writes a u8 byte count followed by bs verbatim.
func (w *Writer) WriteLengthPrefixed8(bs []byte) {
	w.WriteUint8(uint8(len(bs)))
	w.buf = append(w.buf, bs...)
}
