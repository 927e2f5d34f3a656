// Copyright (C) 2014 Jakob Borg and Contributors (see the CONTRIBUTORS file).
// All rights reserved. Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package xdr implements the little-endian, offset-addressed primitive
// codec that the BioWare binary formats (GFF, TLK, 2DA, KEY/BIF, ERF, RIM)
// are all built out of: fixed-width integers, IEEE-754 floats, and
// fixed-size or length-prefixed strings, read and written over a byte
// buffer rather than a one-shot io.Reader/io.Writer stream, since every one
// of those formats addresses its variable-size sections by absolute byte
// offset instead of reading them strictly in file order.
//
// It is adapted from github.com/calmh/xdr, which implements the same kind
// of primitive-codec surface for big-endian, 4-byte-padded XDR streams.
// BioWare's formats are little-endian and unpadded, and need random access
// (a GFF decoder jumps to field-data, field-index and list-index sections
// named by offset in the header), so the stream-oriented Reader/Writer of
// the original are replaced with a buffer-and-cursor pair that also exposes
// direct Seek/At addressing.
package xdr

import "errors"

// ErrElementSizeExceeded is returned when a length-prefixed element's
// declared size is implausible for the remaining buffer.
var ErrElementSizeExceeded = errors.New("xdr: element size exceeds remaining buffer")

// ErrUnexpectedEOF is returned when a read runs past the end of the buffer.
var ErrUnexpectedEOF = errors.New("xdr: unexpected end of buffer")

// Error wraps an underlying read/write failure with the operation that
// triggered it, the same way the teacher's XDRError does.
type Error struct {
	Op  string
	Err error
}

func (e Error) Error() string {
	return "xdr " + e.Op + ": " + e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}
