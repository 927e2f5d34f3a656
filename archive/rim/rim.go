// Package rim implements the BioWare RIM archive format (spec.md §3,
// §4.5): a simplified ERF variant used for game modules, with no
// localized-string section and no per-entry compression. Grounded on
// archive/erf's layout (RIM is ERF with the optional sections dropped)
// and on holo-build's fixed-header shape.
package rim

import (
	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/archive"
	"github.com/andastra/andastra/internal/xdr"
	"github.com/andastra/andastra/resref"
)

const (
	headerSize  = 120
	entrySize   = 32 // resref[16] + restype u32 + resID u32 + offset u32 + size u32
	signature   = "RIM "
	version     = "V1.0"
)

// Directory is a decoded RIM archive.
type Directory struct {
	Entries []archive.Entry
	data    []byte
}

// Decode parses a RIM byte buffer.
func Decode(data []byte) (*Directory, error) {
	r := xdr.NewReader(data)
	if r.Len() < headerSize {
		return nil, aerrors.NewParseError("rim.Decode", aerrors.TruncatedSection, nil)
	}
	sig := string(r.ReadRaw(4))
	if sig != signature {
		return nil, aerrors.NewParseError("rim.Decode", aerrors.BadSignature, nil)
	}
	ver := string(r.ReadRaw(4))
	if ver != version {
		return nil, aerrors.NewParseError("rim.Decode", aerrors.UnsupportedVersion, nil)
	}
	r.ReadUint32() // reserved type flag, unused by any title this module targets
	entryCount := int(r.ReadUint32())
	entryTableOffset := int(r.ReadUint32())
	r.ReadRaw(100) // reserved
	if r.Error() != nil {
		return nil, aerrors.NewParseError("rim.Decode", aerrors.TruncatedSection, r.Error())
	}

	entries := make([]archive.Entry, entryCount)
	for i := 0; i < entryCount; i++ {
		off := entryTableOffset + i*entrySize
		er := xdr.NewReader(r.ReadAt(off, entrySize))
		var fixed [16]byte
		copy(fixed[:], er.ReadRaw(16))
		resType := er.ReadUint32()
		er.ReadUint32() // resource id, positional index already gives us this
		resOffset := er.ReadUint32()
		resSize := er.ReadUint32()
		if er.Error() != nil {
			return nil, aerrors.NewParseError("rim.Decode", aerrors.TruncatedSection, er.Error())
		}
		entries[i] = archive.Entry{
			ResRef:  resref.FromFixed(fixed),
			ResType: resref.ByCode(uint16(resType)),
			Location: archive.LocationRef{
				Kind:   archive.LocationRim,
				Offset: resOffset,
				Size:   resSize,
			},
		}
	}

	return &Directory{Entries: entries, data: data}, nil
}

// Read returns the payload bytes for loc.
func (d *Directory) Read(loc archive.LocationRef) ([]byte, error) {
	if loc.Kind != archive.LocationRim {
		return nil, aerrors.NewSemanticError("rim.Directory.Read", aerrors.SelectorNoMatch, "", nil)
	}
	end := int(loc.Offset + loc.Size)
	if end > len(d.data) {
		return nil, aerrors.NewParseError("rim.Directory.Read", aerrors.UnexpectedEof, nil)
	}
	out := make([]byte, loc.Size)
	copy(out, d.data[loc.Offset:end])
	return out, nil
}

// BuildResource is the input to Encode.
type BuildResource struct {
	ResRef  resref.ResRef
	ResType resref.ResourceType
	Data    []byte
}

// Encode serializes resources into a RIM byte buffer.
func Encode(resources []BuildResource) ([]byte, error) {
	w := xdr.NewWriter()
	w.WriteRaw([]byte(signature))
	w.WriteRaw([]byte(version))
	w.WriteUint32(0)
	w.WriteUint32(uint32(len(resources)))
	entryTableOffsetPos := w.Len()
	w.WriteUint32(0)
	w.WriteRaw(make([]byte, 100))

	entryTableOffset := w.Len()
	dataStart := entryTableOffset + len(resources)*entrySize
	offsets := make([]uint32, len(resources))
	cursor := dataStart
	for i, res := range resources {
		offsets[i] = uint32(cursor)
		cursor += len(res.Data)
	}

	for i, res := range resources {
		w.WriteFixed(res.ResRef.Bytes(), 16)
		w.WriteUint32(uint32(res.ResType.Code))
		w.WriteUint32(uint32(i))
		w.WriteUint32(offsets[i])
		w.WriteUint32(uint32(len(res.Data)))
	}
	for _, res := range resources {
		w.WriteRaw(res.Data)
	}

	buf := w.Bytes()
	buf[entryTableOffsetPos] = byte(entryTableOffset)
	buf[entryTableOffsetPos+1] = byte(entryTableOffset >> 8)
	buf[entryTableOffsetPos+2] = byte(entryTableOffset >> 16)
	buf[entryTableOffsetPos+3] = byte(entryTableOffset >> 24)
	return buf, nil
}

// Archive adapts a decoded Directory to archive.Archive.
type Archive struct {
	dir *Directory
}

func NewArchive(dir *Directory) *Archive { return &Archive{dir: dir} }

func (a *Archive) Entries() []archive.Entry { return a.dir.Entries }

func (a *Archive) Read(loc archive.LocationRef) ([]byte, error) {
	return a.dir.Read(loc)
}
