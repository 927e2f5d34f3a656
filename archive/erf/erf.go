// Package erf implements the BioWare ERF archive family (spec.md §3,
// §4.5): ERF proper plus its MOD and SAV variants, which share one
// on-disk layout and differ only in FileType. An ERF is a flat directory
// of resources addressed by (offset, size) with optional per-entry LZ4
// compression, grounded on the same holo-build rpm/header.go
// fixed-header-plus-tag-table shape as archive/key, with
// github.com/pierrec/lz4/v4 doing the compressed-entry transcoding the
// way syncthing's internal/protocol wraps frames for on-wire compression.
package erf

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/archive"
	"github.com/andastra/andastra/internal/xdr"
	"github.com/andastra/andastra/resref"
)

const (
	headerSize     = 160
	keyListEntry   = 24 // resref[16] + restype u16 + reserved u16 + resID u32 (unused, kept for the real ERF layout shape)
	resourceEntry  = 8  // offset u32 + size u32
	compressedFlag = uint32(1) << 31
)

// FileType distinguishes ERF from its MOD and SAV variants, which share
// this package's codec.
type FileType string

const (
	FileTypeERF FileType = "ERF "
	FileTypeMOD FileType = "MOD "
	FileTypeSAV FileType = "SAV "
)

// Header carries the ERF metadata fields spec.md §4.5 lists beyond the
// directory itself.
type Header struct {
	Type                FileType
	Version             string
	BuildYear           uint32
	BuildDay            uint32
	DescriptionStrRef   int32
	LocalizedStrings    []tlkLocString
}

type tlkLocString struct {
	LanguageID uint32
	String     string
}

// Directory is a decoded ERF/MOD/SAV archive.
type Directory struct {
	Header  Header
	Entries []archive.Entry
	data    []byte // retained so Read can slice payload bytes lazily
}

const erfVersion = "V1.0"

// Decode parses an ERF/MOD/SAV byte buffer.
func Decode(data []byte) (*Directory, error) {
	r := xdr.NewReader(data)
	if r.Len() < headerSize {
		return nil, aerrors.NewParseError("erf.Decode", aerrors.TruncatedSection, nil)
	}
	ft := FileType(r.ReadRaw(4))
	switch ft {
	case FileTypeERF, FileTypeMOD, FileTypeSAV:
	default:
		return nil, aerrors.NewParseError("erf.Decode", aerrors.BadSignature, nil)
	}
	ver := string(r.ReadRaw(4))
	if ver != erfVersion {
		return nil, aerrors.NewParseError("erf.Decode", aerrors.UnsupportedVersion, nil)
	}

	locStringCount := int(r.ReadUint32())
	locStringSize := int(r.ReadUint32())
	entryCount := int(r.ReadUint32())
	locStringOffset := int(r.ReadUint32())
	keyListOffset := int(r.ReadUint32())
	resourceListOffset := int(r.ReadUint32())
	buildYear := r.ReadUint32()
	buildDay := r.ReadUint32()
	descStrRef := r.ReadInt32()
	r.ReadRaw(116) // reserved
	if r.Error() != nil {
		return nil, aerrors.NewParseError("erf.Decode", aerrors.TruncatedSection, r.Error())
	}
	_ = locStringSize

	locStrings := make([]tlkLocString, locStringCount)
	lr := xdr.NewReader(r.ReadAt(locStringOffset, locStringSize))
	for i := 0; i < locStringCount; i++ {
		langID := lr.ReadUint32()
		strLen := int(lr.ReadUint32())
		s := string(lr.ReadRaw(strLen))
		if lr.Error() != nil {
			return nil, aerrors.NewParseError("erf.Decode", aerrors.TruncatedSection, lr.Error())
		}
		locStrings[i] = tlkLocString{LanguageID: langID, String: s}
	}

	entries := make([]archive.Entry, entryCount)
	for i := 0; i < entryCount; i++ {
		koff := keyListOffset + i*keyListEntry
		kr := xdr.NewReader(r.ReadAt(koff, keyListEntry))
		var fixed [16]byte
		copy(fixed[:], kr.ReadRaw(16))
		resType := kr.ReadUint16()
		kr.ReadUint16() // unused
		kr.ReadUint32() // resource id, positional index already gives us this
		if kr.Error() != nil {
			return nil, aerrors.NewParseError("erf.Decode", aerrors.TruncatedSection, kr.Error())
		}

		roff := resourceListOffset + i*resourceEntry
		rr := xdr.NewReader(r.ReadAt(roff, resourceEntry))
		rawOffset := rr.ReadUint32()
		rawSize := rr.ReadUint32()
		if rr.Error() != nil {
			return nil, aerrors.NewParseError("erf.Decode", aerrors.TruncatedSection, rr.Error())
		}

		compressed := rawOffset&compressedFlag != 0
		offset := rawOffset &^ compressedFlag

		entries[i] = archive.Entry{
			ResRef:  resref.FromFixed(fixed),
			ResType: resref.ByCode(resType),
			Location: archive.LocationRef{
				Kind:       archive.LocationErf,
				Offset:     offset,
				Size:       rawSize,
				Compressed: compressed,
			},
		}
	}

	return &Directory{
		Header: Header{
			Type:              ft,
			Version:           ver,
			BuildYear:         buildYear,
			BuildDay:          buildDay,
			DescriptionStrRef: descStrRef,
			LocalizedStrings:  locStrings,
		},
		Entries: entries,
		data:    data,
	}, nil
}

// Read returns the (decompressed, if needed) payload bytes for loc.
// The on-disk size in loc.Size is the stored (possibly compressed) size;
// lz4-compressed entries are stored as a u32 uncompressed-size prefix
// followed by an LZ4 frame, which lz4.NewReader decodes.
func (d *Directory) Read(loc archive.LocationRef) ([]byte, error) {
	if loc.Kind != archive.LocationErf {
		return nil, aerrors.NewSemanticError("erf.Directory.Read", aerrors.SelectorNoMatch, "", nil)
	}
	end := int(loc.Offset + loc.Size)
	if end > len(d.data) {
		return nil, aerrors.NewParseError("erf.Directory.Read", aerrors.UnexpectedEof, nil)
	}
	raw := d.data[loc.Offset:end]
	if !loc.Compressed {
		out := make([]byte, len(raw))
		copy(out, raw)
		return out, nil
	}

	if len(raw) < 4 {
		return nil, aerrors.NewParseError("erf.Directory.Read", aerrors.TruncatedSection, nil)
	}
	uncompressedSize := int(raw[0]) | int(raw[1])<<8 | int(raw[2])<<16 | int(raw[3])<<24
	out := make([]byte, uncompressedSize)
	zr := lz4.NewReader(bytes.NewReader(raw[4:]))
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, aerrors.NewParseError("erf.Directory.Read", aerrors.TruncatedSection, err)
	}
	return out, nil
}

// BuildResource is the input to Encode: a resource to place in the
// archive, optionally LZ4-compressed.
type BuildResource struct {
	ResRef   resref.ResRef
	ResType  resref.ResourceType
	Data     []byte
	Compress bool
}

// Encode serializes resources into an ERF/MOD/SAV byte buffer.
func Encode(ft FileType, resources []BuildResource, descStrRef int32) ([]byte, error) {
	w := xdr.NewWriter()
	w.WriteRaw([]byte(ft))
	w.WriteRaw([]byte(erfVersion))
	w.WriteUint32(0) // loc string count
	w.WriteUint32(0) // loc string size
	w.WriteUint32(uint32(len(resources)))
	w.WriteUint32(uint32(headerSize)) // loc string offset (empty section, placed right after header)
	keyListOffsetPos := w.Len()
	w.WriteUint32(0)
	resourceListOffsetPos := w.Len()
	w.WriteUint32(0)
	w.WriteUint32(2026)
	w.WriteUint32(1)
	w.WriteInt32(descStrRef)
	w.WriteRaw(make([]byte, 116))

	keyListOffset := w.Len()
	resourceListOffset := keyListOffset + len(resources)*keyListEntry
	dataStart := resourceListOffset + len(resources)*resourceEntry

	type placed struct {
		offset     uint32
		size       uint32
		compressed bool
	}
	placement := make([]placed, len(resources))
	cursor := dataStart
	payloads := make([][]byte, len(resources))
	for i, res := range resources {
		payload := res.Data
		compressed := false
		if res.Compress {
			var buf bytes.Buffer
			buf.Write([]byte{
				byte(len(res.Data)), byte(len(res.Data) >> 8),
				byte(len(res.Data) >> 16), byte(len(res.Data) >> 24),
			})
			zw := lz4.NewWriter(&buf)
			if _, err := zw.Write(res.Data); err != nil {
				return nil, aerrors.NewParseError("erf.Encode", aerrors.IntegerOverflow, err)
			}
			if err := zw.Close(); err != nil {
				return nil, aerrors.NewParseError("erf.Encode", aerrors.IntegerOverflow, err)
			}
			payload = buf.Bytes()
			compressed = true
		}
		payloads[i] = payload
		placement[i] = placed{offset: uint32(cursor), size: uint32(len(payload)), compressed: compressed}
		cursor += len(payload)
	}

	for i, res := range resources {
		w.WriteFixed(res.ResRef.Bytes(), 16)
		w.WriteUint16(res.ResType.Code)
		w.WriteUint16(0)
		w.WriteUint32(uint32(i))
	}
	for _, p := range placement {
		off := p.offset
		if p.compressed {
			off |= compressedFlag
		}
		w.WriteUint32(off)
		w.WriteUint32(p.size)
	}
	for _, payload := range payloads {
		w.WriteRaw(payload)
	}

	buf := w.Bytes()
	patch32(buf, keyListOffsetPos, uint32(keyListOffset))
	patch32(buf, resourceListOffsetPos, uint32(resourceListOffset))
	return buf, nil
}

func patch32(buf []byte, pos int, v uint32) {
	buf[pos] = byte(v)
	buf[pos+1] = byte(v >> 8)
	buf[pos+2] = byte(v >> 16)
	buf[pos+3] = byte(v >> 24)
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
