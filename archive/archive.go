// Package archive defines the shared archive-entry and location-reference
// types every container codec (archive/key, archive/erf, archive/rim)
// exposes (spec.md §3, §4.5): all archive codecs provide the same
// open/iterate/read contract over a LocationRef tagged union, grounded on
// files_old_reference/leveldb.go's composite-key namespacing idea for how
// a directory record maps a resource to its storage location, and on
// holo-build's rpm/lead.go+rpm/header.go for the "fixed lead struct,
// encoding/binary-style serialization, reserved-byte padding" shape KEY
// and ERF headers also need.
package archive

import "github.com/andastra/andastra/resref"

// LocationKind tags which archive-specific location variant a LocationRef
// holds.
type LocationKind int

const (
	LocationKeyBif LocationKind = iota
	LocationErf
	LocationRim
	LocationLoose
)

// LocationRef is the sum type spec.md §3 describes: a resource's storage
// location, specific to the archive kind that produced it.
type LocationRef struct {
	Kind LocationKind

	// KeyBif: BifIndex names the BIF; the resource's index inside that
	// BIF is kept in Offset. TileOffset and Size are left zero.
	BifIndex   int
	TileOffset uint32

	// Erf / Rim (Offset is also the BIF resource index for KeyBif)
	Offset     uint32
	Compressed bool

	// Erf / Rim
	Size uint32

	// Loose
	Path string
}

// Entry is one archive directory record (spec.md §3).
type Entry struct {
	ResRef   resref.ResRef
	ResType  resref.ResourceType
	Location LocationRef
}

// Archive is the common interface every container codec implements.
type Archive interface {
	// Entries returns every directory record, in the archive's own
	// iteration order.
	Entries() []Entry
	// Read returns the bytes referenced by loc.
	Read(loc LocationRef) ([]byte, error)
}
