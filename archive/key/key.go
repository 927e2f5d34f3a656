// Package key implements the BioWare KEY/BIF archive pair (spec.md §3,
// §4.5): a KEY file is a directory of (resref, restype, bif_index,
// resource_index) triples; each referenced BIF is a dumb blob holding a
// variable-resource table of (offset, size) entries. The fixed
// lead-struct-plus-reserved-bytes header shape is grounded on
// holo-build's rpm/lead.go and rpm/header.go (a fixed binary lead record
// followed by tag tables); composite addressing of a resource through a
// (container-id, offset) pair mirrors files_old_reference/leveldb.go's
// namespaced key scheme.
package key

import (
	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/archive"
	"github.com/andastra/andastra/internal/xdr"
	"github.com/andastra/andastra/resref"
)

const (
	keyHeaderSize   = 64
	keyFileEntry    = 12
	keyResEntry     = 22
	bifHeaderSize   = 20
	bifVarResEntry  = 16
	keySignature    = "KEY "
	keyVersion      = "V1  "
	bifSignature    = "BIFF"
	bifVersion      = "V1  "
)

// BifRef names one BIF file this KEY references, by its on-disk path
// relative to the installation root.
type BifRef struct {
	Filename string
	FileSize uint32
}

// Directory is a decoded KEY file: the list of BIFs it indexes into, and
// the resource directory itself.
type Directory struct {
	Bifs    []BifRef
	Entries []archive.Entry
}

// DecodeKey parses a KEY file's bytes into a Directory. It does not read
// the referenced BIFs; callers pair the Directory with loaded Bif values
// via Archive.
func DecodeKey(data []byte) (*Directory, error) {
	r := xdr.NewReader(data)
	if r.Len() < keyHeaderSize {
		return nil, aerrors.NewParseError("key.DecodeKey", aerrors.TruncatedSection, nil)
	}
	sig := string(r.ReadRaw(4))
	if sig != keySignature {
		return nil, aerrors.NewParseError("key.DecodeKey", aerrors.BadSignature, nil)
	}
	ver := string(r.ReadRaw(4))
	if ver != keyVersion {
		return nil, aerrors.NewParseError("key.DecodeKey", aerrors.UnsupportedVersion, nil)
	}
	bifCount := int(r.ReadUint32())
	keyCount := int(r.ReadUint32())
	fileTableOffset := int(r.ReadUint32())
	keyTableOffset := int(r.ReadUint32())
	_ = r.ReadUint32() // build year
	_ = r.ReadUint32() // build day
	r.ReadRaw(32)      // reserved
	if r.Error() != nil {
		return nil, aerrors.NewParseError("key.DecodeKey", aerrors.TruncatedSection, r.Error())
	}

	bifs := make([]BifRef, bifCount)
	for i := 0; i < bifCount; i++ {
		off := fileTableOffset + i*keyFileEntry
		fr := xdr.NewReader(r.ReadAt(off, keyFileEntry))
		fileSize := fr.ReadUint32()
		nameOff := int(fr.ReadUint32())
		nameSize := int(fr.ReadUint16())
		_ = fr.ReadUint16() // drives
		if fr.Error() != nil {
			return nil, aerrors.NewParseError("key.DecodeKey", aerrors.TruncatedSection, fr.Error())
		}
		name := string(r.ReadAt(nameOff, nameSize))
		bifs[i] = BifRef{Filename: name, FileSize: fileSize}
	}

	entries := make([]archive.Entry, keyCount)
	for i := 0; i < keyCount; i++ {
		off := keyTableOffset + i*keyResEntry
		kr := xdr.NewReader(r.ReadAt(off, keyResEntry))
		var fixed [16]byte
		copy(fixed[:], kr.ReadRaw(16))
		resType := kr.ReadUint16()
		resID := kr.ReadUint32()
		if kr.Error() != nil {
			return nil, aerrors.NewParseError("key.DecodeKey", aerrors.TruncatedSection, kr.Error())
		}
		bifIndex := int(resID >> 20)
		resIndex := resID & 0xFFFFF
		entries[i] = archive.Entry{
			ResRef:  resref.FromFixed(fixed),
			ResType: resref.ByCode(resType),
			Location: archive.LocationRef{
				Kind:     archive.LocationKeyBif,
				BifIndex: bifIndex,
				Offset:   resIndex,
			},
		}
	}

	return &Directory{Bifs: bifs, Entries: entries}, nil
}

// EncodeKey serializes a Directory back to KEY bytes.
func EncodeKey(d *Directory) ([]byte, error) {
	w := xdr.NewWriter()
	w.WriteRaw([]byte(keySignature))
	w.WriteRaw([]byte(keyVersion))
	w.WriteUint32(uint32(len(d.Bifs)))
	w.WriteUint32(uint32(len(d.Entries)))

	fileTableOffsetPos := w.Len()
	w.WriteUint32(0) // file table offset, patched below
	keyTableOffsetPos := w.Len()
	w.WriteUint32(0) // key table offset, patched below
	w.WriteUint32(2026)
	w.WriteUint32(1)
	w.WriteRaw(make([]byte, 32))

	fileTableOffset := w.Len()

	// Filenames are appended after both fixed-size tables; compute their
	// offsets up front.
	nameOffsets := make([]int, len(d.Bifs))
	keyTableOffset := fileTableOffset + len(d.Bifs)*keyFileEntry
	namesStart := keyTableOffset + len(d.Entries)*keyResEntry
	cursor := namesStart
	for i, b := range d.Bifs {
		nameOffsets[i] = cursor
		cursor += len(b.Filename)
	}

	for i, b := range d.Bifs {
		w.WriteUint32(b.FileSize)
		w.WriteUint32(uint32(nameOffsets[i]))
		w.WriteUint16(uint16(len(b.Filename)))
		w.WriteUint16(0)
	}

	for _, e := range d.Entries {
		w.WriteFixed(e.ResRef.Bytes(), 16)
		w.WriteUint16(e.ResType.Code)
		resID := (uint32(e.Location.BifIndex) << 20) | (e.Location.Offset & 0xFFFFF)
		w.WriteUint32(resID)
	}

	for _, b := range d.Bifs {
		w.WriteRaw([]byte(b.Filename))
	}

	buf := w.Bytes()
	patch32(buf, fileTableOffsetPos, uint32(fileTableOffset))
	patch32(buf, keyTableOffsetPos, uint32(keyTableOffset))
	return buf, nil
}

func patch32(buf []byte, pos int, v uint32) {
	buf[pos] = byte(v)
	buf[pos+1] = byte(v >> 8)
	buf[pos+2] = byte(v >> 16)
	buf[pos+3] = byte(v >> 24)
}

// Bif is a decoded BIF blob: its variable-resource table plus the raw
// payload bytes.
type Bif struct {
	data  []byte
	table []bifVarEntry
}

type bifVarEntry struct {
	id       uint32
	offset   uint32
	fileSize uint32
	resType  uint32
}

// DecodeBif parses a BIF file's bytes, reading its variable-resource
// table but keeping the payload bytes in place (resources are sliced out
// lazily on Read).
func DecodeBif(data []byte) (*Bif, error) {
	r := xdr.NewReader(data)
	if r.Len() < bifHeaderSize {
		return nil, aerrors.NewParseError("key.DecodeBif", aerrors.TruncatedSection, nil)
	}
	sig := string(r.ReadRaw(4))
	if sig != bifSignature {
		return nil, aerrors.NewParseError("key.DecodeBif", aerrors.BadSignature, nil)
	}
	ver := string(r.ReadRaw(4))
	if ver != bifVersion {
		return nil, aerrors.NewParseError("key.DecodeBif", aerrors.UnsupportedVersion, nil)
	}
	varCount := int(r.ReadUint32())
	_ = r.ReadUint32() // fixed resource count, unused by any BioWare game this module targets
	tableOffset := int(r.ReadUint32())
	if r.Error() != nil {
		return nil, aerrors.NewParseError("key.DecodeBif", aerrors.TruncatedSection, r.Error())
	}

	table := make([]bifVarEntry, varCount)
	for i := 0; i < varCount; i++ {
		off := tableOffset + i*bifVarResEntry
		er := xdr.NewReader(r.ReadAt(off, bifVarResEntry))
		id := er.ReadUint32()
		offset := er.ReadUint32()
		size := er.ReadUint32()
		resType := er.ReadUint32()
		if er.Error() != nil {
			return nil, aerrors.NewParseError("key.DecodeBif", aerrors.TruncatedSection, er.Error())
		}
		table[i] = bifVarEntry{id: id, offset: offset, fileSize: size, resType: resType}
	}

	return &Bif{data: data, table: table}, nil
}

// Read returns the payload bytes for the resource at the given index
// within this BIF's variable-resource table (the "resource_index" half of
// a KEY entry's composite address).
func (b *Bif) Read(resIndex uint32) ([]byte, error) {
	for _, e := range b.table {
		if e.id&0xFFFFF == resIndex {
			if int(e.offset+e.fileSize) > len(b.data) {
				return nil, aerrors.NewParseError("key.Bif.Read", aerrors.UnexpectedEof, nil)
			}
			return b.data[e.offset : e.offset+e.fileSize], nil
		}
	}
	return nil, aerrors.NewSemanticError("key.Bif.Read", aerrors.SelectorNoMatch, "", nil)
}

// EncodeBif serializes resources (in order) into a BIF blob, returning
// the bytes plus the resource index each ended up at (for building the
// companion KEY directory).
func EncodeBif(resources [][]byte, resTypes []uint32) ([]byte, []uint32, error) {
	if len(resources) != len(resTypes) {
		return nil, nil, aerrors.NewSemanticError("key.EncodeBif", aerrors.SelectorNoMatch, "", nil)
	}
	w := xdr.NewWriter()
	w.WriteRaw([]byte(bifSignature))
	w.WriteRaw([]byte(bifVersion))
	w.WriteUint32(uint32(len(resources)))
	w.WriteUint32(0)
	tableOffsetPos := w.Len()
	w.WriteUint32(0)

	tableOffset := w.Len()
	dataStart := tableOffset + len(resources)*bifVarResEntry
	offsets := make([]uint32, len(resources))
	cursor := dataStart
	for i, res := range resources {
		offsets[i] = uint32(cursor)
		cursor += len(res)
	}

	ids := make([]uint32, len(resources))
	for i, res := range resources {
		ids[i] = uint32(i)
		w.WriteUint32(ids[i])
		w.WriteUint32(offsets[i])
		w.WriteUint32(uint32(len(res)))
		w.WriteUint32(resTypes[i])
	}
	for _, res := range resources {
		w.WriteRaw(res)
	}

	buf := w.Bytes()
	patch32(buf, tableOffsetPos, uint32(tableOffset))
	return buf, ids, nil
}

// Archive adapts a Directory plus its loaded Bif blobs to the common
// archive.Archive interface. bifs is indexed by the Directory's BifIndex.
type Archive struct {
	dir  *Directory
	bifs []*Bif
}

// NewArchive pairs a decoded KEY Directory with its loaded BIF blobs.
func NewArchive(dir *Directory, bifs []*Bif) *Archive {
	return &Archive{dir: dir, bifs: bifs}
}

func (a *Archive) Entries() []archive.Entry {
	return a.dir.Entries
}

func (a *Archive) Read(loc archive.LocationRef) ([]byte, error) {
	if loc.Kind != archive.LocationKeyBif {
		return nil, aerrors.NewSemanticError("key.Archive.Read", aerrors.SelectorNoMatch, "", nil)
	}
	if loc.BifIndex < 0 || loc.BifIndex >= len(a.bifs) || a.bifs[loc.BifIndex] == nil {
		return nil, aerrors.NewSemanticError("key.Archive.Read", aerrors.UnknownResource, "", nil)
	}
	return a.bifs[loc.BifIndex].Read(loc.Offset)
}
