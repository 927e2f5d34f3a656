// Package gff implements the BioWare Generic File Format codec (spec.md
// §3, §4.2): a 56-byte header over six parallel, offset/count-addressed
// arrays that together describe a tree of tagged-union Structs. No single
// teacher file covers a generic tagged-union tree over an offset/count
// header, so this package is a composite grounded on internal/xdr for
// every primitive decode, on internal/intern for first-seen label
// index assignment during encode, and on the bit-packed-header style of
// the teacher's own encodeHeader/decodeHeader pattern (kept as a style
// reference, used directly in gameobjects for bitfield flags like UTM's
// BuySellFlag rather than here, since GFF's own header is offset/count
// pairs, not a bitfield).
package gff

import "github.com/andastra/andastra/resref"

// FieldType is the on-disk GFF field type code (spec.md §3: 18
// alternatives, type codes 0-17 as used by every BioWare GFF producer).
type FieldType uint32

const (
	TypeU8 FieldType = iota
	TypeI8
	TypeU16
	TypeI16
	TypeU32
	TypeI32
	TypeU64
	TypeI64
	TypeF32
	TypeF64
	TypeString
	TypeResRef
	TypeLocalizedString
	TypeVoid
	TypeStruct
	TypeList
	TypeVector4
	TypeVector3
)

// IsInlineSimple reports whether a field of this type stores its value
// directly in the 4-byte data_or_offset slot rather than indirecting into
// the field-data section (spec.md §4.2.2 step 6).
func (t FieldType) IsInlineSimple() bool {
	switch t {
	case TypeU8, TypeI8, TypeU16, TypeI16, TypeU32, TypeI32, TypeF32:
		return true
	}
	return false
}

func (t FieldType) String() string {
	switch t {
	case TypeU8:
		return "U8"
	case TypeI8:
		return "I8"
	case TypeU16:
		return "U16"
	case TypeI16:
		return "I16"
	case TypeU32:
		return "U32"
	case TypeI32:
		return "I32"
	case TypeU64:
		return "U64"
	case TypeI64:
		return "I64"
	case TypeF32:
		return "F32"
	case TypeF64:
		return "F64"
	case TypeString:
		return "String"
	case TypeResRef:
		return "ResRef"
	case TypeLocalizedString:
		return "LocalizedString"
	case TypeVoid:
		return "Void"
	case TypeStruct:
		return "Struct"
	case TypeList:
		return "List"
	case TypeVector4:
		return "Vector4"
	case TypeVector3:
		return "Vector3"
	default:
		return "Unknown"
	}
}

// Language IDs used by LocalizedString (spec.md §3).
const (
	LangEnglish     int32 = 0
	LangFrench      int32 = 1
	LangGerman      int32 = 2
	LangItalian     int32 = 3
	LangSpanish     int32 = 4
	LangPolish      int32 = 5
	LangKorean      int32 = 128
	LangChineseTrad int32 = 129
	LangChineseSimp int32 = 130
	LangJapanese    int32 = 131
)

// Gender IDs used by LocalizedString (spec.md §3).
const (
	GenderMale   int32 = 0
	GenderFemale int32 = 1
)

// Substring is one (language, gender) -> text entry of a LocalizedString.
// Stored as a slice rather than a map so that insertion order (and thus
// encode output order) is preserved exactly.
type Substring struct {
	Language int32
	Gender   int32
	Text     string
}

// EncodedID returns language*2+gender, the id a Substring is keyed by on
// disk (spec.md §3).
func (s Substring) EncodedID() uint32 {
	return uint32(s.Language*2 + s.Gender)
}

// LocalizedString is CExoLocString: a StrRef (-1 meaning unset) plus an
// ordered list of per-(language,gender) substrings.
type LocalizedString struct {
	StringRef  int32
	Substrings []Substring
}

// Get returns the text for (language, gender), if present.
func (l LocalizedString) Get(language, gender int32) (string, bool) {
	for _, s := range l.Substrings {
		if s.Language == language && s.Gender == gender {
			return s.Text, true
		}
	}
	return "", false
}

// Set adds or replaces the substring for (language, gender), preserving
// the existing slot's position on replace and appending on first use.
func (l *LocalizedString) Set(language, gender int32, text string) {
	for i := range l.Substrings {
		if l.Substrings[i].Language == language && l.Substrings[i].Gender == gender {
			l.Substrings[i].Text = text
			return
		}
	}
	l.Substrings = append(l.Substrings, Substring{Language: language, Gender: gender, Text: text})
}

// Field is a tagged union over FieldType's 18 alternatives. Go has no
// native sum type, so — per spec.md §9's "model as a tagged sum, not
// per-type subclasses" guidance — this is one struct gated by Type, with
// typed constructors and accessors rather than an `any` grab-bag; only
// the member matching Type is meaningful.
type Field struct {
	Type FieldType

	u64 uint64 // backs U8/I8/U16/I16/U32/I32/U64/I64 and F32/F64 bit patterns
	str string // backs String
	rr  resref.ResRef
	loc LocalizedString
	vd  []byte
	st  *Struct
	ls  List
	v3  [3]float32
	v4  [4]float32
}

func FieldU8(v uint8) Field   { return Field{Type: TypeU8, u64: uint64(v)} }
func FieldI8(v int8) Field    { return Field{Type: TypeI8, u64: uint64(uint8(v))} }
func FieldU16(v uint16) Field { return Field{Type: TypeU16, u64: uint64(v)} }
func FieldI16(v int16) Field  { return Field{Type: TypeI16, u64: uint64(uint16(v))} }
func FieldU32(v uint32) Field { return Field{Type: TypeU32, u64: uint64(v)} }
func FieldI32(v int32) Field  { return Field{Type: TypeI32, u64: uint64(uint32(v))} }
func FieldU64(v uint64) Field { return Field{Type: TypeU64, u64: v} }
func FieldI64(v int64) Field  { return Field{Type: TypeI64, u64: uint64(v)} }

func FieldString(v string) Field          { return Field{Type: TypeString, str: v} }
func FieldResRef(v resref.ResRef) Field   { return Field{Type: TypeResRef, rr: v} }
func FieldLocString(v LocalizedString) Field {
	return Field{Type: TypeLocalizedString, loc: v}
}
func FieldVoid(v []byte) Field   { return Field{Type: TypeVoid, vd: v} }
func FieldStruct(v *Struct) Field { return Field{Type: TypeStruct, st: v} }
func FieldList(v List) Field     { return Field{Type: TypeList, ls: v} }
func FieldVector3(x, y, z float32) Field {
	return Field{Type: TypeVector3, v3: [3]float32{x, y, z}}
}
func FieldVector4(x, y, z, w float32) Field {
	return Field{Type: TypeVector4, v4: [4]float32{x, y, z, w}}
}

func FieldF32(v float32) Field {
	return Field{Type: TypeF32, u64: uint64(f32bits(v))}
}
func FieldF64(v float64) Field {
	return Field{Type: TypeF64, u64: f64bits(v)}
}

func (f Field) U8() uint8   { return uint8(f.u64) }
func (f Field) I8() int8    { return int8(uint8(f.u64)) }
func (f Field) U16() uint16 { return uint16(f.u64) }
func (f Field) I16() int16  { return int16(uint16(f.u64)) }
func (f Field) U32() uint32 { return uint32(f.u64) }
func (f Field) I32() int32  { return int32(uint32(f.u64)) }
func (f Field) U64() uint64 { return f.u64 }
func (f Field) I64() int64  { return int64(f.u64) }
func (f Field) F32() float32 { return f32frombits(uint32(f.u64)) }
func (f Field) F64() float64 { return f64frombits(f.u64) }
func (f Field) Str() string                 { return f.str }
func (f Field) ResRef() resref.ResRef       { return f.rr }
func (f Field) LocString() LocalizedString  { return f.loc }
func (f Field) Void() []byte                { return f.vd }
func (f Field) Struct() *Struct             { return f.st }
func (f Field) List() List                  { return f.ls }
func (f Field) Vector3() (x, y, z float32)  { return f.v3[0], f.v3[1], f.v3[2] }
func (f Field) Vector4() (x, y, z, w float32) {
	return f.v4[0], f.v4[1], f.v4[2], f.v4[3]
}

// Struct owns an insertion-ordered set of labeled Fields plus a struct_id
// (root = -1). Field insertion order is preserved for write, per
// spec.md §3.
type Struct struct {
	ID     int32
	order  []string
	fields map[string]Field
}

// NewStruct returns an empty Struct with the given struct_id.
func NewStruct(id int32) *Struct {
	return &Struct{ID: id, fields: make(map[string]Field)}
}

// Set adds or replaces the field at label, appending label to the
// insertion order on first use and leaving its position unchanged on
// replace.
func (s *Struct) Set(label string, f Field) {
	if _, ok := s.fields[label]; !ok {
		s.order = append(s.order, label)
	}
	s.fields[label] = f
}

// Get returns the field at label, if present.
func (s *Struct) Get(label string) (Field, bool) {
	f, ok := s.fields[label]
	return f, ok
}

// Delete removes the field at label.
func (s *Struct) Delete(label string) {
	if _, ok := s.fields[label]; !ok {
		return
	}
	delete(s.fields, label)
	for i, l := range s.order {
		if l == label {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Labels returns the field labels in insertion order.
func (s *Struct) Labels() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of fields.
func (s *Struct) Len() int {
	return len(s.order)
}

// List is an ordered sequence of Structs (spec.md §3).
type List []*Struct

// Tree is a decoded/in-memory GFF document: its 4-ASCII file type tag
// (e.g. "UTM "), its version tag, and the root Struct.
type Tree struct {
	FileType string
	Version  string
	Root     *Struct
}
