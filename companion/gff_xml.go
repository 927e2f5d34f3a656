package companion

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/gff"
	"github.com/andastra/andastra/resref"
)

// xmlTree is the on-disk shape of a GFF XML projection: one <gff> root
// carrying the file type/version tags and the root struct, recursively
// nesting struct/list children the way the binary tree does.
type xmlTree struct {
	XMLName  xml.Name  `xml:"gff"`
	FileType string    `xml:"type,attr"`
	Version  string    `xml:"version,attr"`
	Root     xmlStruct `xml:"struct"`
}

type xmlStruct struct {
	ID     int32      `xml:"id,attr"`
	Fields []xmlField `xml:"field"`
}

type xmlField struct {
	Label    string        `xml:"label,attr"`
	Type     string        `xml:"type,attr"`
	Value    string        `xml:",chardata"`
	Loc      *xmlLocString `xml:"locstring"`
	Struct   *xmlStruct    `xml:"struct"`
	List     *xmlList      `xml:"list"`
}

type xmlList struct {
	Structs []xmlStruct `xml:"struct"`
}

type xmlLocString struct {
	StringRef  int32          `xml:"strref,attr"`
	Substrings []xmlSubstring `xml:"substring"`
}

type xmlSubstring struct {
	Language int32  `xml:"language,attr"`
	Gender   int32  `xml:"gender,attr"`
	Text     string `xml:",chardata"`
}

// GFFToXML renders a decoded GFF tree to its XML projection (spec.md §2
// C10). The result is suitable for hand-editing and GFFFromXML.
func GFFToXML(t *gff.Tree) ([]byte, error) {
	xt := xmlTree{FileType: t.FileType, Version: t.Version, Root: structToXML(t.Root)}
	out, err := xml.MarshalIndent(xt, "", "  ")
	if err != nil {
		return nil, aerrors.NewSemanticError("companion.GFFToXML", aerrors.InvalidPath, "", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// GFFFromXML parses an XML projection back into a GFF tree, ready for
// gff.Encode.
func GFFFromXML(data []byte) (*gff.Tree, error) {
	var xt xmlTree
	if err := xml.Unmarshal(data, &xt); err != nil {
		return nil, aerrors.NewParseError("companion.GFFFromXML", aerrors.TruncatedSection, err)
	}
	root, err := structFromXML(xt.Root)
	if err != nil {
		return nil, err
	}
	return &gff.Tree{FileType: xt.FileType, Version: xt.Version, Root: root}, nil
}

func structToXML(s *gff.Struct) xmlStruct {
	xs := xmlStruct{ID: s.ID}
	for _, label := range s.Labels() {
		f, _ := s.Get(label)
		xs.Fields = append(xs.Fields, fieldToXML(label, f))
	}
	return xs
}

func fieldToXML(label string, f gff.Field) xmlField {
	xf := xmlField{Label: label, Type: strings.ToLower(f.Type.String())}
	switch f.Type {
	case gff.TypeU8:
		xf.Value = strconv.FormatUint(uint64(f.U8()), 10)
	case gff.TypeI8:
		xf.Value = strconv.FormatInt(int64(f.I8()), 10)
	case gff.TypeU16:
		xf.Value = strconv.FormatUint(uint64(f.U16()), 10)
	case gff.TypeI16:
		xf.Value = strconv.FormatInt(int64(f.I16()), 10)
	case gff.TypeU32:
		xf.Value = strconv.FormatUint(uint64(f.U32()), 10)
	case gff.TypeI32:
		xf.Value = strconv.FormatInt(int64(f.I32()), 10)
	case gff.TypeU64:
		xf.Value = strconv.FormatUint(f.U64(), 10)
	case gff.TypeI64:
		xf.Value = strconv.FormatInt(f.I64(), 10)
	case gff.TypeF32:
		xf.Value = strconv.FormatFloat(float64(f.F32()), 'g', -1, 32)
	case gff.TypeF64:
		xf.Value = strconv.FormatFloat(f.F64(), 'g', -1, 64)
	case gff.TypeString:
		xf.Value = f.Str()
	case gff.TypeResRef:
		xf.Value = f.ResRef().String()
	case gff.TypeVoid:
		xf.Value = base64.StdEncoding.EncodeToString(f.Void())
	case gff.TypeVector3:
		x, y, z := f.Vector3()
		xf.Value = fmt.Sprintf("%s %s %s", fmtFloat32(x), fmtFloat32(y), fmtFloat32(z))
	case gff.TypeVector4:
		x, y, z, w := f.Vector4()
		xf.Value = fmt.Sprintf("%s %s %s %s", fmtFloat32(x), fmtFloat32(y), fmtFloat32(z), fmtFloat32(w))
	case gff.TypeLocalizedString:
		loc := f.LocString()
		xl := &xmlLocString{StringRef: loc.StringRef}
		for _, sub := range loc.Substrings {
			xl.Substrings = append(xl.Substrings, xmlSubstring{Language: sub.Language, Gender: sub.Gender, Text: sub.Text})
		}
		xf.Loc = xl
	case gff.TypeStruct:
		xs := structToXML(f.Struct())
		xf.Struct = &xs
	case gff.TypeList:
		xlist := &xmlList{}
		for _, elem := range f.List() {
			xlist.Structs = append(xlist.Structs, structToXML(elem))
		}
		xf.List = xlist
	}
	return xf
}

func fmtFloat32(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func structFromXML(xs xmlStruct) (*gff.Struct, error) {
	s := gff.NewStruct(xs.ID)
	for _, xf := range xs.Fields {
		f, err := fieldFromXML(xf)
		if err != nil {
			return nil, err
		}
		s.Set(xf.Label, f)
	}
	return s, nil
}

func fieldFromXML(xf xmlField) (gff.Field, error) {
	val := strings.TrimSpace(xf.Value)
	switch strings.ToLower(xf.Type) {
	case "u8":
		n, err := strconv.ParseUint(val, 10, 8)
		return gff.FieldU8(uint8(n)), wrapXMLErr(err)
	case "i8":
		n, err := strconv.ParseInt(val, 10, 8)
		return gff.FieldI8(int8(n)), wrapXMLErr(err)
	case "u16":
		n, err := strconv.ParseUint(val, 10, 16)
		return gff.FieldU16(uint16(n)), wrapXMLErr(err)
	case "i16":
		n, err := strconv.ParseInt(val, 10, 16)
		return gff.FieldI16(int16(n)), wrapXMLErr(err)
	case "u32":
		n, err := strconv.ParseUint(val, 10, 32)
		return gff.FieldU32(uint32(n)), wrapXMLErr(err)
	case "i32":
		n, err := strconv.ParseInt(val, 10, 32)
		return gff.FieldI32(int32(n)), wrapXMLErr(err)
	case "u64":
		n, err := strconv.ParseUint(val, 10, 64)
		return gff.FieldU64(n), wrapXMLErr(err)
	case "i64":
		n, err := strconv.ParseInt(val, 10, 64)
		return gff.FieldI64(n), wrapXMLErr(err)
	case "f32":
		n, err := strconv.ParseFloat(val, 32)
		return gff.FieldF32(float32(n)), wrapXMLErr(err)
	case "f64":
		n, err := strconv.ParseFloat(val, 64)
		return gff.FieldF64(n), wrapXMLErr(err)
	case "string":
		return gff.FieldString(xf.Value), nil
	case "resref":
		rr, err := resref.New(val)
		return gff.FieldResRef(rr), err
	case "void":
		b, err := base64.StdEncoding.DecodeString(val)
		return gff.FieldVoid(b), wrapXMLErr(err)
	case "vector3":
		parts := strings.Fields(val)
		if len(parts) != 3 {
			return gff.Field{}, aerrors.NewParseError("companion.fieldFromXML", aerrors.TruncatedSection, nil)
		}
		x, y, z, err := parseVec3(parts)
		return gff.FieldVector3(x, y, z), err
	case "vector4":
		parts := strings.Fields(val)
		if len(parts) != 4 {
			return gff.Field{}, aerrors.NewParseError("companion.fieldFromXML", aerrors.TruncatedSection, nil)
		}
		x, y, z, err := parseVec3(parts[:3])
		if err != nil {
			return gff.Field{}, err
		}
		w, err := strconv.ParseFloat(parts[3], 32)
		if err != nil {
			return gff.Field{}, wrapXMLErr(err)
		}
		return gff.FieldVector4(x, y, z, float32(w)), nil
	case "localizedstring":
		if xf.Loc == nil {
			return gff.FieldLocString(gff.LocalizedString{StringRef: -1}), nil
		}
		loc := gff.LocalizedString{StringRef: xf.Loc.StringRef}
		for _, sub := range xf.Loc.Substrings {
			loc.Set(sub.Language, sub.Gender, sub.Text)
		}
		return gff.FieldLocString(loc), nil
	case "struct":
		if xf.Struct == nil {
			return gff.Field{}, aerrors.NewParseError("companion.fieldFromXML", aerrors.TruncatedSection, nil)
		}
		st, err := structFromXML(*xf.Struct)
		if err != nil {
			return gff.Field{}, err
		}
		return gff.FieldStruct(st), nil
	case "list":
		var list gff.List
		if xf.List != nil {
			for _, xs := range xf.List.Structs {
				st, err := structFromXML(xs)
				if err != nil {
					return gff.Field{}, err
				}
				list = append(list, st)
			}
		}
		return gff.FieldList(list), nil
	default:
		return gff.Field{}, aerrors.NewParseError("companion.fieldFromXML", aerrors.BadSignature, nil)
	}
}

func parseVec3(parts []string) (x, y, z float32, err error) {
	xv, err := strconv.ParseFloat(parts[0], 32)
	if err != nil {
		return 0, 0, 0, wrapXMLErr(err)
	}
	yv, err := strconv.ParseFloat(parts[1], 32)
	if err != nil {
		return 0, 0, 0, wrapXMLErr(err)
	}
	zv, err := strconv.ParseFloat(parts[2], 32)
	if err != nil {
		return 0, 0, 0, wrapXMLErr(err)
	}
	return float32(xv), float32(yv), float32(zv), nil
}

func wrapXMLErr(err error) error {
	if err == nil {
		return nil
	}
	return aerrors.NewParseError("companion.fieldFromXML", aerrors.TruncatedSection, err)
}
