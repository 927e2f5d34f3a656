// Package resref implements ResRef (spec.md §3), a 16-byte case-insensitive
// resource identifier, and ResourceType, the bidirectional extension<->code
// table every BioWare file-reference uses. ResRef is modeled as a small
// fixed-size value type in the teacher's own style for identifiers
// (cf. protocol.DeviceID: a fixed-size byte array with custom String and
// Equals methods) rather than as a plain string, so that case-folded
// equality and the 16-byte-limit invariant are enforced at construction.
package resref

import (
	"strings"

	"github.com/andastra/andastra/aerrors"
)

// Len is the maximum significant length of a ResRef.
const Len = 16

// ResRef is a case-insensitive, NUL-padded 16-byte resource name.
type ResRef struct {
	bytes [Len]byte
	n     int // significant length, trailing NULs excluded
}

// New constructs a ResRef from s, case-folding to lowercase for storage
// (so Equals and the map key produced by Key are case-insensitive by
// construction). Fails aerrors.InvalidResRef on any byte > 0x7E, an
// embedded NUL before the end of the significant prefix, or length > 16.
func New(s string) (ResRef, error) {
	if len(s) > Len {
		return ResRef{}, aerrors.NewParseError("resref.New", aerrors.InvalidResRef, nil)
	}
	for i := 0; i < len(s); i++ {
		if s[i] == 0 || s[i] > 0x7E {
			return ResRef{}, aerrors.NewParseError("resref.New", aerrors.InvalidResRef, nil)
		}
	}
	var r ResRef
	copy(r.bytes[:], strings.ToLower(s))
	r.n = len(s)
	return r, nil
}

// MustNew is New but panics on error; for use with compile-time-known
// literals (tests, defaults).
func MustNew(s string) ResRef {
	r, err := New(s)
	if err != nil {
		panic(err)
	}
	return r
}

// FromFixed decodes a ResRef from a fixed 16-byte on-disk field, trimming
// trailing NULs. Unlike New, embedded non-ASCII bytes are not rejected —
// the GFF/archive decoders are tolerant of whatever bytes modding tools
// happened to write, and surface OversizedResRef only when a length
// byte (TLK/GFF ResRef) actually exceeds 16.
func FromFixed(b [Len]byte) ResRef {
	n := Len
	for n > 0 && b[n-1] == 0 {
		n--
	}
	var r ResRef
	copy(r.bytes[:], strings.ToLower(string(b[:n])))
	r.n = n
	return r
}

// String returns the significant, lowercase bytes as a string.
func (r ResRef) String() string {
	return string(r.bytes[:r.n])
}

// Bytes returns the 16-byte NUL-padded on-disk representation.
func (r ResRef) Bytes() [Len]byte {
	return r.bytes
}

// Len returns the significant length (<=16).
func (r ResRef) Len() int {
	return r.n
}

// IsEmpty reports whether this is the zero-length ResRef.
func (r ResRef) IsEmpty() bool {
	return r.n == 0
}

// Equals performs case-insensitive comparison (both values are already
// case-folded at construction, so this is a plain equality check).
func (r ResRef) Equals(o ResRef) bool {
	return r.n == o.n && r.bytes == o.bytes
}

// Key returns a value suitable for use as a map key alongside a
// ResourceType, already case-folded.
func (r ResRef) Key() string {
	return r.String()
}
