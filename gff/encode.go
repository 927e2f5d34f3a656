package gff

import (
	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/internal/cp"
	"github.com/andastra/andastra/internal/intern"
	"github.com/andastra/andastra/internal/xdr"
)

// encStruct is one entry of the struct array being assembled.
type encStruct struct {
	id           int32
	fieldIndices []uint32 // indices into encFields, in field-insertion order
}

// encField is one entry of the field array being assembled.
type encField struct {
	typ          FieldType
	labelIndex   uint32
	dataOrOffset uint32
}

type encoder struct {
	labels      *intern.Map
	structs     []encStruct
	fields      []encField
	fieldData   *xdr.Writer
	fieldIdxBuf *xdr.Writer
	listIdxBuf  *xdr.Writer
}

// Encode serializes t into the GFF on-disk byte layout (spec.md §4.2.3):
// labels and struct indices are assigned by first-seen depth-first
// traversal order, then each field is serialized in a single pass, then
// the header is assembled from the final section offsets/counts.
//
// Encode guarantees the round-trip law of §8: a Tree produced by Decode,
// re-encoded with no intervening mutation, yields byte-identical output
// (struct ids are carried verbatim, field insertion order is preserved,
// and labels/struct indices are assigned in the same first-seen DFS order
// the decoder observed when it walked the same tree top-down).
func Encode(t *Tree) ([]byte, error) {
	e := &encoder{
		labels:      intern.New(),
		fieldData:   xdr.NewWriterSize(256),
		fieldIdxBuf: xdr.NewWriterSize(64),
		listIdxBuf:  xdr.NewWriterSize(64),
	}
	defer e.fieldData.Release()
	defer e.fieldIdxBuf.Release()
	defer e.listIdxBuf.Release()

	if _, err := e.assignStruct(t.Root); err != nil {
		return nil, err
	}

	labelOrder := e.labels.Names()

	w := xdr.NewWriter()
	w.WriteRaw([]byte(pad4(t.FileType)))
	w.WriteRaw([]byte(pad4(t.Version)))

	structOff := headerSize
	structBytes := xdr.NewWriterSize(len(e.structs) * 12)
	defer structBytes.Release()
	for _, s := range e.structs {
		structBytes.WriteUint32(uint32(s.id))
		switch len(s.fieldIndices) {
		case 0:
			structBytes.WriteUint32(0)
			structBytes.WriteUint32(0)
		case 1:
			structBytes.WriteUint32(s.fieldIndices[0])
			structBytes.WriteUint32(1)
		default:
			off := e.fieldIdxBuf.Len()
			for _, fi := range s.fieldIndices {
				e.fieldIdxBuf.WriteUint32(fi)
			}
			structBytes.WriteUint32(uint32(off))
			structBytes.WriteUint32(uint32(len(s.fieldIndices)))
		}
	}

	fieldOff := structOff + structBytes.Len()
	fieldBytes := xdr.NewWriterSize(len(e.fields) * 12)
	defer fieldBytes.Release()
	for _, f := range e.fields {
		fieldBytes.WriteUint32(uint32(f.typ))
		fieldBytes.WriteUint32(f.labelIndex)
		fieldBytes.WriteUint32(f.dataOrOffset)
	}

	labelOff := fieldOff + fieldBytes.Len()
	labelBytes := xdr.NewWriterSize(len(labelOrder) * 16)
	defer labelBytes.Release()
	for _, l := range labelOrder {
		labelBytes.WriteFixed([]byte(l), 16)
	}

	fieldDataOff := labelOff + labelBytes.Len()
	fieldIndicesOff := fieldDataOff + e.fieldData.Len()
	listIndicesOff := fieldIndicesOff + e.fieldIdxBuf.Len()

	w.WriteUint32(uint32(structOff))
	w.WriteUint32(uint32(len(e.structs)))
	w.WriteUint32(uint32(fieldOff))
	w.WriteUint32(uint32(len(e.fields)))
	w.WriteUint32(uint32(labelOff))
	w.WriteUint32(uint32(len(labelOrder)))
	w.WriteUint32(uint32(fieldDataOff))
	w.WriteUint32(uint32(e.fieldData.Len()))
	w.WriteUint32(uint32(fieldIndicesOff))
	w.WriteUint32(uint32(e.fieldIdxBuf.Len()))
	w.WriteUint32(uint32(listIndicesOff))
	w.WriteUint32(uint32(e.listIdxBuf.Len()))

	w.WriteRaw(structBytes.Bytes())
	w.WriteRaw(fieldBytes.Bytes())
	w.WriteRaw(labelBytes.Bytes())
	w.WriteRaw(e.fieldData.Bytes())
	w.WriteRaw(e.fieldIdxBuf.Bytes())
	w.WriteRaw(e.listIdxBuf.Bytes())

	return w.Bytes(), nil
}

func pad4(s string) string {
	for len(s) < 4 {
		s += " "
	}
	if len(s) > 4 {
		s = s[:4]
	}
	return s
}

// assignStruct assigns struct indices in depth-first traversal order
// (phase 2), recording the index this call occupies and recursing into
// struct/list fields before returning. It returns this struct's own
// index.
func (e *encoder) assignStruct(s *Struct) (uint32, error) {
	myIdx := uint32(len(e.structs))
	e.structs = append(e.structs, encStruct{id: s.ID})

	var fieldIndices []uint32
	for _, label := range s.Labels() {
		f, _ := s.Get(label)
		fieldIdx, err := e.assignField(label, f)
		if err != nil {
			return 0, err
		}
		fieldIndices = append(fieldIndices, fieldIdx)
	}
	e.structs[myIdx].fieldIndices = fieldIndices
	return myIdx, nil
}

// assignField assigns the label id (phase 1), serializes the field value
// (phase 3), and appends the field array entry, returning its index.
func (e *encoder) assignField(label string, f Field) (uint32, error) {
	labelIdx, _ := e.labels.Intern(label)

	data, err := e.encodeFieldValue(f)
	if err != nil {
		return 0, err
	}

	idx := uint32(len(e.fields))
	e.fields = append(e.fields, encField{typ: f.Type, labelIndex: uint32(labelIdx), dataOrOffset: data})
	return idx, nil
}

func (e *encoder) encodeFieldValue(f Field) (uint32, error) {
	switch f.Type {
	case TypeU8:
		return uint32(f.U8()), nil
	case TypeI8:
		return uint32(uint8(f.I8())), nil
	case TypeU16:
		return uint32(f.U16()), nil
	case TypeI16:
		return uint32(uint16(f.I16())), nil
	case TypeU32:
		return f.U32(), nil
	case TypeI32:
		return uint32(f.I32()), nil
	case TypeF32:
		return f32bits(f.F32()), nil
	case TypeU64:
		off := uint32(e.fieldData.Len())
		e.fieldData.WriteUint64(f.U64())
		return off, nil
	case TypeI64:
		off := uint32(e.fieldData.Len())
		e.fieldData.WriteUint64(uint64(f.I64()))
		return off, nil
	case TypeF64:
		off := uint32(e.fieldData.Len())
		e.fieldData.WriteUint64(f64bits(f.F64()))
		return off, nil
	case TypeVector3:
		off := uint32(e.fieldData.Len())
		x, y, z := f.Vector3()
		e.fieldData.WriteUint32(f32bits(x))
		e.fieldData.WriteUint32(f32bits(y))
		e.fieldData.WriteUint32(f32bits(z))
		return off, nil
	case TypeVector4:
		off := uint32(e.fieldData.Len())
		x, y, z, w := f.Vector4()
		e.fieldData.WriteUint32(f32bits(x))
		e.fieldData.WriteUint32(f32bits(y))
		e.fieldData.WriteUint32(f32bits(z))
		e.fieldData.WriteUint32(f32bits(w))
		return off, nil
	case TypeString:
		off := uint32(e.fieldData.Len())
		b := cp.Encode(f.Str(), cp.English)
		e.fieldData.WriteLengthPrefixed32(b)
		return off, nil
	case TypeResRef:
		off := uint32(e.fieldData.Len())
		rr := f.ResRef()
		if rr.Len() > 16 {
			return 0, aerrors.NewParseError("gff.Encode", aerrors.OversizedResRef, nil)
		}
		e.fieldData.WriteLengthPrefixed8([]byte(rr.String()))
		return off, nil
	case TypeVoid:
		off := uint32(e.fieldData.Len())
		e.fieldData.WriteLengthPrefixed32(f.Void())
		return off, nil
	case TypeLocalizedString:
		off := uint32(e.fieldData.Len())
		e.encodeLocString(f.LocString())
		return off, nil
	case TypeStruct:
		idx, err := e.assignStruct(f.Struct())
		if err != nil {
			return 0, err
		}
		return idx, nil
	case TypeList:
		return e.encodeList(f.List())
	default:
		return 0, aerrors.NewParseError("gff.Encode", aerrors.BadSignature, nil)
	}
}

func (e *encoder) encodeLocString(loc LocalizedString) {
	// total_size_excluding_self is computed after the fact by measuring
	// the bytes this call writes past its own 4-byte length prefix.
	sizeOff := e.fieldData.Len()
	e.fieldData.WriteUint32(0) // placeholder, patched below
	e.fieldData.WriteUint32(uint32(int32ToStrRef(loc.StringRef)))
	e.fieldData.WriteUint32(uint32(len(loc.Substrings)))
	for _, sub := range loc.Substrings {
		e.fieldData.WriteUint32(sub.EncodedID())
		b := []byte(sub.Text)
		e.fieldData.WriteUint32(uint32(len(b)))
		e.fieldData.WriteRaw(b)
	}
	total := e.fieldData.Len() - sizeOff - 4
	patchUint32(e.fieldData, sizeOff, uint32(total))
}

func int32ToStrRef(v int32) uint32 {
	return uint32(v)
}

// patchUint32 overwrites the 4 bytes at off in w's buffer with v
// (little-endian), used to back-patch LocalizedString's leading
// total-size field once its true length is known.
func patchUint32(w *xdr.Writer, off int, v uint32) {
	b := w.Bytes()
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
	b[off+2] = byte(v >> 16)
	b[off+3] = byte(v >> 24)
}

// encodeList assigns every element struct (and, transitively, anything
// those structs themselves contain) before writing this list's own
// length+indices run, so that a struct's nested List field can never
// splice its run into the middle of an ancestor's — decode.go reads
// a list's (length, indices...) as one contiguous span starting at
// the offset recorded for this field.
func (e *encoder) encodeList(list List) (uint32, error) {
	indices := make([]uint32, len(list))
	for i, st := range list {
		idx, err := e.assignStruct(st)
		if err != nil {
			return 0, err
		}
		indices[i] = idx
	}

	off := uint32(e.listIdxBuf.Len())
	e.listIdxBuf.WriteUint32(uint32(len(list)))
	for _, idx := range indices {
		e.listIdxBuf.WriteUint32(idx)
	}
	return off, nil
}
