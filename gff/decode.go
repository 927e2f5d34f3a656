package gff

import (
	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/internal/cp"
	"github.com/andastra/andastra/internal/xdr"
	"github.com/andastra/andastra/resref"
)

const headerSize = 56

type sectionHeader struct {
	structOff, structCount             uint32
	fieldOff, fieldCount                uint32
	labelOff, labelCount                uint32
	fieldDataOff, fieldDataCount         uint32
	fieldIndicesOff, fieldIndicesCount   uint32
	listIndicesOff, listIndicesCount     uint32
}

type structRaw struct {
	id            int32
	dataOrOffset  uint32
	fieldCount    uint32
}

type fieldRaw struct {
	typ          uint32
	labelIndex   uint32
	dataOrOffset uint32
}

type decoder struct {
	r       *xdr.Reader
	hdr     sectionHeader
	labels  []string
	structs []structRaw
	fields  []fieldRaw
}

// Small wrappers around *xdr.Reader's int-offset API so the rest of this
// file can work in the uint32 offsets the GFF header actually stores.
func (d *decoder) u32At(off uint32) uint32  { return d.r.ReadUint32At(int(off)) }
func (d *decoder) u64At(off uint32) uint64  { return d.r.ReadUint64At(int(off)) }
func (d *decoder) u8At(off uint32) uint8    { return d.r.ReadUint8At(int(off)) }
func (d *decoder) at(off uint32, n uint32) []byte { return d.r.ReadAt(int(off), int(n)) }

// Decode parses a GFF byte buffer into a Tree. When expected is
// non-empty, the file's 4-ASCII signature must match one of its entries
// unless expected contains "GFF " (the caller's wildcard for "any GFF").
func Decode(data []byte, expected ...string) (*Tree, error) {
	r := xdr.NewReader(data)
	if r.Len() < headerSize {
		return nil, aerrors.NewParseError("gff.Decode", aerrors.TruncatedSection, nil)
	}

	sig := string(r.ReadRaw(4))
	ver := string(r.ReadRaw(4))
	if len(expected) > 0 {
		ok := false
		for _, e := range expected {
			if e == sig || e == "GFF " {
				ok = true
				break
			}
		}
		if !ok {
			return nil, aerrors.NewParseError("gff.Decode", aerrors.BadSignature, nil)
		}
	}
	switch ver {
	case "V3.2", "V3.3", "V4.0", "V4.1":
	default:
		return nil, aerrors.NewParseError("gff.Decode", aerrors.UnsupportedVersion, nil)
	}

	d := &decoder{r: r}
	d.hdr = sectionHeader{
		structOff: r.ReadUint32(), structCount: r.ReadUint32(),
		fieldOff: r.ReadUint32(), fieldCount: r.ReadUint32(),
		labelOff: r.ReadUint32(), labelCount: r.ReadUint32(),
		fieldDataOff: r.ReadUint32(), fieldDataCount: r.ReadUint32(),
		fieldIndicesOff: r.ReadUint32(), fieldIndicesCount: r.ReadUint32(),
		listIndicesOff: r.ReadUint32(), listIndicesCount: r.ReadUint32(),
	}
	if err := r.Error(); err != nil {
		return nil, aerrors.NewParseError("gff.Decode", aerrors.TruncatedSection, err)
	}

	if err := d.decodeLabels(); err != nil {
		return nil, err
	}
	if err := d.decodeStructs(); err != nil {
		return nil, err
	}
	if err := d.decodeFields(); err != nil {
		return nil, err
	}

	visited := make(map[uint32]bool)
	root, err := d.materializeStruct(0, visited)
	if err != nil {
		return nil, err
	}

	return &Tree{FileType: sig, Version: ver, Root: root}, nil
}

func (d *decoder) decodeLabels() error {
	d.labels = make([]string, d.hdr.labelCount)
	for i := uint32(0); i < d.hdr.labelCount; i++ {
		raw := d.at(d.hdr.labelOff+i*16, 16)
		if d.r.Error() != nil {
			return aerrors.NewParseError("gff.decodeLabels", aerrors.TruncatedSection, d.r.Error())
		}
		n := len(raw)
		for n > 0 && raw[n-1] == 0 {
			n--
		}
		d.labels[i] = string(raw[:n])
	}
	return nil
}

func (d *decoder) decodeStructs() error {
	d.structs = make([]structRaw, d.hdr.structCount)
	for i := uint32(0); i < d.hdr.structCount; i++ {
		off := d.hdr.structOff + i*12
		id := int32(d.u32At(off))
		data := d.u32At(off + 4)
		fc := d.u32At(off + 8)
		if d.r.Error() != nil {
			return aerrors.NewParseError("gff.decodeStructs", aerrors.TruncatedSection, d.r.Error())
		}
		d.structs[i] = structRaw{id: id, dataOrOffset: data, fieldCount: fc}
	}
	return nil
}

func (d *decoder) decodeFields() error {
	d.fields = make([]fieldRaw, d.hdr.fieldCount)
	for i := uint32(0); i < d.hdr.fieldCount; i++ {
		off := d.hdr.fieldOff + i*12
		typ := d.u32At(off)
		label := d.u32At(off + 4)
		data := d.u32At(off + 8)
		if d.r.Error() != nil {
			return aerrors.NewParseError("gff.decodeFields", aerrors.TruncatedSection, d.r.Error())
		}
		d.fields[i] = fieldRaw{typ: typ, labelIndex: label, dataOrOffset: data}
	}
	return nil
}

func (d *decoder) materializeStruct(idx uint32, visited map[uint32]bool) (*Struct, error) {
	if idx >= uint32(len(d.structs)) {
		return nil, aerrors.NewParseError("gff.materializeStruct", aerrors.IndexOutOfRange, nil)
	}
	if visited[idx] {
		return nil, aerrors.NewParseError("gff.materializeStruct", aerrors.CyclicGraph, nil)
	}
	visited[idx] = true

	raw := d.structs[idx]
	st := NewStruct(raw.id)

	switch raw.fieldCount {
	case 0:
		return st, nil
	case 1:
		if err := d.materializeField(raw.dataOrOffset, st, visited); err != nil {
			return nil, err
		}
		return st, nil
	default:
		for i := uint32(0); i < raw.fieldCount; i++ {
			fieldIdx := d.u32At(d.hdr.fieldIndicesOff + raw.dataOrOffset + i*4)
			if d.r.Error() != nil {
				return nil, aerrors.NewParseError("gff.materializeStruct", aerrors.TruncatedSection, d.r.Error())
			}
			if err := d.materializeField(fieldIdx, st, visited); err != nil {
				return nil, err
			}
		}
		return st, nil
	}
}

func (d *decoder) materializeField(fieldIdx uint32, into *Struct, visited map[uint32]bool) error {
	if fieldIdx >= uint32(len(d.fields)) {
		return aerrors.NewParseError("gff.materializeField", aerrors.IndexOutOfRange, nil)
	}
	raw := d.fields[fieldIdx]
	if raw.labelIndex >= uint32(len(d.labels)) {
		return aerrors.NewParseError("gff.materializeField", aerrors.IndexOutOfRange, nil)
	}
	label := d.labels[raw.labelIndex]
	ft := FieldType(raw.typ)

	f, err := d.decodeFieldValue(ft, raw.dataOrOffset, visited)
	if err != nil {
		return err
	}
	into.Set(label, f)
	return nil
}

func (d *decoder) decodeFieldValue(ft FieldType, data uint32, visited map[uint32]bool) (Field, error) {
	switch ft {
	case TypeU8:
		return FieldU8(uint8(data)), nil
	case TypeI8:
		return FieldI8(int8(uint8(data))), nil
	case TypeU16:
		return FieldU16(uint16(data)), nil
	case TypeI16:
		return FieldI16(int16(uint16(data))), nil
	case TypeU32:
		return FieldU32(data), nil
	case TypeI32:
		return FieldI32(int32(data)), nil
	case TypeF32:
		return FieldF32(f32frombits(data)), nil
	case TypeU64:
		v := d.u64At(d.hdr.fieldDataOff + data)
		return FieldU64(v), d.r.Error()
	case TypeI64:
		v := d.u64At(d.hdr.fieldDataOff + data)
		return FieldI64(int64(v)), d.r.Error()
	case TypeF64:
		v := d.u64At(d.hdr.fieldDataOff + data)
		return FieldF64(f64frombits(v)), d.r.Error()
	case TypeVector3:
		off := d.hdr.fieldDataOff + data
		x := f32frombits(d.u32At(off))
		y := f32frombits(d.u32At(off + 4))
		z := f32frombits(d.u32At(off + 8))
		return FieldVector3(x, y, z), d.r.Error()
	case TypeVector4:
		off := d.hdr.fieldDataOff + data
		x := f32frombits(d.u32At(off))
		y := f32frombits(d.u32At(off + 4))
		z := f32frombits(d.u32At(off + 8))
		w := f32frombits(d.u32At(off + 12))
		return FieldVector4(x, y, z, w), d.r.Error()
	case TypeString:
		off := d.hdr.fieldDataOff + data
		n := d.u32At(off)
		b := d.at(off+4, n)
		if d.r.Error() != nil {
			return Field{}, aerrors.NewParseError("gff.decodeFieldValue", aerrors.TruncatedSection, d.r.Error())
		}
		return FieldString(cp.Decode(b, cp.English)), nil
	case TypeResRef:
		off := d.hdr.fieldDataOff + data
		n := d.u8At(off)
		if n > 16 {
			return Field{}, aerrors.NewParseError("gff.decodeFieldValue", aerrors.OversizedResRef, nil)
		}
		b := d.at(off+1, uint32(n))
		if d.r.Error() != nil {
			return Field{}, aerrors.NewParseError("gff.decodeFieldValue", aerrors.TruncatedSection, d.r.Error())
		}
		var fixed [16]byte
		copy(fixed[:], b)
		return FieldResRef(resref.FromFixed(fixed)), nil
	case TypeVoid:
		off := d.hdr.fieldDataOff + data
		n := d.u32At(off)
		b := d.at(off+4, n)
		if d.r.Error() != nil {
			return Field{}, aerrors.NewParseError("gff.decodeFieldValue", aerrors.TruncatedSection, d.r.Error())
		}
		cpy := make([]byte, len(b))
		copy(cpy, b)
		return FieldVoid(cpy), nil
	case TypeLocalizedString:
		return d.decodeLocString(d.hdr.fieldDataOff + data)
	case TypeStruct:
		st, err := d.materializeStruct(data, visited)
		if err != nil {
			return Field{}, err
		}
		return FieldStruct(st), nil
	case TypeList:
		return d.decodeList(data, visited)
	default:
		return Field{}, aerrors.NewParseError("gff.decodeFieldValue", aerrors.BadSignature, nil)
	}
}

func (d *decoder) decodeLocString(off uint32) (Field, error) {
	_ = d.u32At(off) // total_size_excluding_self, unused on decode
	strref := int32(d.u32At(off + 4))
	count := d.u32At(off + 8)
	loc := LocalizedString{StringRef: strref}
	pos := off + 12
	for i := uint32(0); i < count; i++ {
		id := d.u32At(pos)
		n := d.u32At(pos + 4)
		b := d.at(pos+8, n)
		if d.r.Error() != nil {
			return Field{}, aerrors.NewParseError("gff.decodeLocString", aerrors.TruncatedSection, d.r.Error())
		}
		lang := int32(id / 2)
		gender := int32(id % 2)
		loc.Substrings = append(loc.Substrings, Substring{Language: lang, Gender: gender, Text: string(b)})
		pos += 8 + n
	}
	return FieldLocString(loc), nil
}

func (d *decoder) decodeList(dataOff uint32, visited map[uint32]bool) (Field, error) {
	off := d.hdr.listIndicesOff + dataOff
	length := d.u32At(off)
	if d.r.Error() != nil {
		return Field{}, aerrors.NewParseError("gff.decodeList", aerrors.TruncatedSection, d.r.Error())
	}
	list := make(List, 0, length)
	for i := uint32(0); i < length; i++ {
		idx := d.u32At(off + 4 + i*4)
		if d.r.Error() != nil {
			return Field{}, aerrors.NewParseError("gff.decodeList", aerrors.TruncatedSection, d.r.Error())
		}
		st, err := d.materializeStruct(idx, visited)
		if err != nil {
			return Field{}, err
		}
		list = append(list, st)
	}
	return FieldList(list), nil
}
