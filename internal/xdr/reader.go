// Copyright (C) 2014 Jakob Borg and Contributors (see the CONTRIBUTORS file).
// All rights reserved. Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xdr

import "math"

// Reader decodes little-endian primitives from an in-memory byte buffer.
// Unlike an io.Reader-backed stream, a Reader can be repositioned with Seek
// so that callers can follow the offset/count headers BioWare's formats are
// built from (jump to the field-data section, read a payload, jump back).
type Reader struct {
	buf []byte
	pos int
	err error
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the number of bytes in the underlying buffer.
func (r *Reader) Len() int {
	return len(r.buf)
}

// Pos returns the current read cursor.
func (r *Reader) Pos() int {
	return r.pos
}

// Seek repositions the read cursor to an absolute offset. It does not by
// itself fail on an out-of-range offset; the next read will.
func (r *Reader) Seek(off int) {
	r.pos = off
}

// Error returns the first error encountered, if any.
func (r *Reader) Error() error {
	if r.err == nil {
		return nil
	}
	return Error{"read", r.err}
}

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// ReadRaw returns the next n bytes without interpretation.
func (r *Reader) ReadRaw(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.pos+n > len(r.buf) {
		r.fail(ErrUnexpectedEOF)
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

// ReadAt returns n bytes at an absolute offset without moving the cursor.
func (r *Reader) ReadAt(off, n int) []byte {
	if r.err != nil {
		return nil
	}
	if off < 0 || n < 0 || off+n > len(r.buf) {
		r.fail(ErrUnexpectedEOF)
		return nil
	}
	return r.buf[off : off+n]
}

func (r *Reader) ReadUint8() uint8 {
	b := r.ReadRaw(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) ReadInt8() int8 {
	return int8(r.ReadUint8())
}

func (r *Reader) ReadUint16() uint16 {
	b := r.ReadRaw(2)
	if b == nil {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

func (r *Reader) ReadInt16() int16 {
	return int16(r.ReadUint16())
}

func (r *Reader) ReadUint32() uint32 {
	b := r.ReadRaw(4)
	if b == nil {
		return 0
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (r *Reader) ReadInt32() int32 {
	return int32(r.ReadUint32())
}

func (r *Reader) ReadUint64() uint64 {
	b := r.ReadRaw(8)
	if b == nil {
		return 0
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func (r *Reader) ReadInt64() int64 {
	return int64(r.ReadUint64())
}

func (r *Reader) ReadFloat32() float32 {
	return math.Float32frombits(r.ReadUint32())
}

func (r *Reader) ReadFloat64() float64 {
	return math.Float64frombits(r.ReadUint64())
}

func (r *Reader) ReadBool() bool {
	return r.ReadUint8() != 0
}

// ReadUint32At reads a u32 at an absolute offset without moving the cursor.
func (r *Reader) ReadUint32At(off int) uint32 {
	b := r.ReadAt(off, 4)
	if b == nil {
		return 0
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// ReadUint64At reads a u64 at an absolute offset without moving the cursor.
func (r *Reader) ReadUint64At(off int) uint64 {
	b := r.ReadAt(off, 8)
	if b == nil {
		return 0
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// ReadFloat32At reads an f32 at an absolute offset without moving the cursor.
func (r *Reader) ReadFloat32At(off int) float32 {
	return math.Float32frombits(r.ReadUint32At(off))
}

// ReadUint8At reads a u8 at an absolute offset without moving the cursor.
func (r *Reader) ReadUint8At(off int) uint8 {
	b := r.ReadAt(off, 1)
	if b == nil {
		return 0
	}
	return b[0]
}

// ReadFixed reads an n-byte fixed-width field and returns it with trailing
// NUL bytes trimmed (used for labels and other NUL-padded ASCII fields).
func (r *Reader) ReadFixed(n int) []byte {
	b := r.ReadRaw(n)
	if b == nil {
		return nil
	}
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	out := make([]byte, end)
	copy(out, b[:end])
	return out
}

// ReadLengthPrefixed32 reads a u32 byte count followed by that many raw
// bytes (CExoString/Void layout).
func (r *Reader) ReadLengthPrefixed32(max int) []byte {
	if r.err != nil {
		return nil
	}
	n := int(r.ReadUint32())
	if r.err != nil {
		return nil
	}
	if n < 0 || (max > 0 && n > max) {
		r.fail(ErrElementSizeExceeded)
		return nil
	}
	return r.ReadRaw(n)
}

// ReadLengthPrefixed8 reads a u8 byte count followed by that many raw bytes
// (ResRef layout).
func (r *Reader) ReadLengthPrefixed8(max int) []byte {
	if r.err != nil {
		return nil
	}
	n := int(r.ReadUint8())
	if r.err != nil {
		return nil
	}
	if max > 0 && n > max {
		r.fail(ErrElementSizeExceeded)
		return nil
	}
	return r.ReadRaw(n)
}
