package patch

import (
	"strconv"
	"strings"

	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/gff"
	"github.com/andastra/andastra/resref"
)

// navigate walks a "/"-separated GFF path (spec.md §4.8.3): a Struct
// field descends directly, a List field consumes the following segment
// as its element index. It returns the Struct the last segment names a
// field on.
func navigate(root *gff.Struct, segs []string) (*gff.Struct, error) {
	cur := root
	for i := 0; i < len(segs); i++ {
		seg := segs[i]
		f, ok := cur.Get(seg)
		if !ok {
			return nil, aerrors.NewSemanticError("patch.navigate", aerrors.InvalidPath, seg, nil)
		}
		switch f.Type {
		case gff.TypeStruct:
			cur = f.Struct()
		case gff.TypeList:
			i++
			if i >= len(segs) {
				return nil, aerrors.NewSemanticError("patch.navigate", aerrors.InvalidPath, seg, nil)
			}
			idx, err := strconv.Atoi(segs[i])
			if err != nil {
				return nil, aerrors.NewSemanticError("patch.navigate", aerrors.InvalidPath, segs[i], err)
			}
			list := f.List()
			if idx < 0 || idx >= len(list) {
				return nil, aerrors.NewSemanticError("patch.navigate", aerrors.InvalidPath, segs[i], nil)
			}
			cur = list[idx]
		default:
			return nil, aerrors.NewSemanticError("patch.navigate", aerrors.InvalidPath, seg, nil)
		}
	}
	return cur, nil
}

// splitPath splits a patch path into its container segments and final
// field label: "/Items/0/InventoryRes" -> (["Items","0"], "InventoryRes").
func splitPath(path string) ([]string, string) {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) == 0 {
		return nil, ""
	}
	return segs[:len(segs)-1], segs[len(segs)-1]
}

func resolveContainer(root *gff.Struct, path string) (*gff.Struct, string, error) {
	containerSegs, label := splitPath(path)
	container, err := navigate(root, containerSegs)
	if err != nil {
		return nil, "", err
	}
	return container, label, nil
}

// fieldFromTypeValue builds a Field of the named type from its textual
// value. typeName matches gff.FieldType.String() case-insensitively
// (U8, I32, String, ResRef, ...); Struct/List/Void/Vector3/Vector4 values
// aren't constructible from a plain string and are rejected.
func fieldFromTypeValue(typeName, value string) (gff.Field, error) {
	switch strings.ToLower(typeName) {
	case "u8":
		n, err := strconv.ParseUint(value, 10, 8)
		return gff.FieldU8(uint8(n)), wrapParseErr(err)
	case "i8":
		n, err := strconv.ParseInt(value, 10, 8)
		return gff.FieldI8(int8(n)), wrapParseErr(err)
	case "u16":
		n, err := strconv.ParseUint(value, 10, 16)
		return gff.FieldU16(uint16(n)), wrapParseErr(err)
	case "i16":
		n, err := strconv.ParseInt(value, 10, 16)
		return gff.FieldI16(int16(n)), wrapParseErr(err)
	case "u32":
		n, err := strconv.ParseUint(value, 10, 32)
		return gff.FieldU32(uint32(n)), wrapParseErr(err)
	case "i32":
		n, err := strconv.ParseInt(value, 10, 32)
		return gff.FieldI32(int32(n)), wrapParseErr(err)
	case "u64":
		n, err := strconv.ParseUint(value, 10, 64)
		return gff.FieldU64(n), wrapParseErr(err)
	case "i64":
		n, err := strconv.ParseInt(value, 10, 64)
		return gff.FieldI64(n), wrapParseErr(err)
	case "f32":
		n, err := strconv.ParseFloat(value, 32)
		return gff.FieldF32(float32(n)), wrapParseErr(err)
	case "f64":
		n, err := strconv.ParseFloat(value, 64)
		return gff.FieldF64(n), wrapParseErr(err)
	case "string":
		return gff.FieldString(value), nil
	case "resref":
		rr, err := resref.New(value)
		return gff.FieldResRef(rr), err
	case "localizedstring", "locstring":
		return gff.FieldLocString(gff.LocalizedString{StringRef: -1, Substrings: []gff.Substring{
			{Language: gff.LangEnglish, Gender: gff.GenderMale, Text: value},
		}}), nil
	default:
		return gff.Field{}, aerrors.NewSemanticError("patch.fieldFromTypeValue", aerrors.InvalidPath, typeName, nil)
	}
}

func wrapParseErr(err error) error {
	if err == nil {
		return nil
	}
	return aerrors.NewSemanticError("patch.fieldFromTypeValue", aerrors.InvalidPath, err.Error(), err)
}

// fieldValueString renders a field back to the string captured by a
// Store2DAMemoryN=FieldValue directive (spec.md §4.8.3).
func fieldValueString(f gff.Field) string {
	switch f.Type {
	case gff.TypeString:
		return f.Str()
	case gff.TypeResRef:
		return f.ResRef().String()
	case gff.TypeI32:
		return strconv.FormatInt(int64(f.I32()), 10)
	case gff.TypeU32:
		return strconv.FormatUint(uint64(f.U32()), 10)
	default:
		return ""
	}
}

// AddField is AddField(path, type, value).
type AddField struct {
	Path     string
	Type     string
	Value    string
	Captures []MemoryCapture
}

// ModifyField is ModifyField(path, value).
type ModifyField struct {
	Path     string
	Value    string
	Captures []MemoryCapture
}

// AddList is AddList(path): creates an empty list field.
type AddList struct {
	Path string
}

// AddStruct is AddStruct(list_path, struct_id, {field:value}).
type AddStruct struct {
	ListPath string
	StructID int32
	Fields   map[string]string
}

// Delete is Delete(path): removes a field, or a list element if path's
// last segment is numeric.
type Delete struct {
	Path string
}

var gffWellKnown = map[string]bool{"path": true, "type": true, "value": true, "id": true}

// ParseAddField parses an "AddFieldN=" directive value.
func ParseAddField(value string) (AddField, error) {
	d := parseDirective(value)
	path, _ := d.Get("path")
	typ, _ := d.Get("type")
	val, _ := d.Get("value")
	captures, err := d.MemoryCaptures()
	if err != nil {
		return AddField{}, err
	}
	return AddField{Path: path, Type: typ, Value: val, Captures: captures}, nil
}

// ParseModifyField parses a "ModifyFieldN=" directive value.
func ParseModifyField(value string) (ModifyField, error) {
	d := parseDirective(value)
	path, _ := d.Get("path")
	val, _ := d.Get("value")
	captures, err := d.MemoryCaptures()
	if err != nil {
		return ModifyField{}, err
	}
	return ModifyField{Path: path, Value: val, Captures: captures}, nil
}

// ParseAddList parses an "AddListN=" directive value.
func ParseAddList(value string) (AddList, error) {
	d := parseDirective(value)
	path, ok := d.Get("path")
	if !ok {
		path = d.Bare
	}
	return AddList{Path: path}, nil
}

// ParseAddStruct parses an "AddStructN=" directive value.
func ParseAddStruct(value string) (AddStruct, error) {
	d := parseDirective(value)
	path, _ := d.Get("path")
	idStr, _ := d.Get("id")
	id := int32(-1)
	if idStr != "" {
		n, err := strconv.ParseInt(idStr, 10, 32)
		if err != nil {
			return AddStruct{}, aerrors.NewSemanticError("patch.ParseAddStruct", aerrors.InvalidPath, idStr, err)
		}
		id = int32(n)
	}
	return AddStruct{ListPath: path, StructID: id, Fields: d.extraColumns(gffWellKnown)}, nil
}

// ParseDelete parses a "DeleteN=" directive value.
func ParseDelete(value string) (Delete, error) {
	d := parseDirective(value)
	path, ok := d.Get("path")
	if !ok {
		path = d.Bare
	}
	return Delete{Path: path}, nil
}

func applyGFFCaptures(val string, captures []MemoryCapture, mem *Memory) {
	for _, c := range captures {
		if c.Kind == CaptureFieldValue {
			mem.SetTwoDA(c.Slot, val)
		}
	}
}

// ApplyAddField sets path's field on root to a newly constructed value.
func ApplyAddField(file string, root *gff.Struct, op AddField, mem *Memory) error {
	container, label, err := resolveContainer(root, op.Path)
	if err != nil {
		return err
	}
	val, err := mem.Substitute(file, op.Value)
	if err != nil {
		return err
	}
	f, err := fieldFromTypeValue(op.Type, val)
	if err != nil {
		return err
	}
	container.Set(label, f)
	applyGFFCaptures(fieldValueString(f), op.Captures, mem)
	return nil
}

// ApplyModifyField overwrites an existing field's value, preserving its
// declared type.
func ApplyModifyField(file string, root *gff.Struct, op ModifyField, mem *Memory) error {
	container, label, err := resolveContainer(root, op.Path)
	if err != nil {
		return err
	}
	existing, ok := container.Get(label)
	if !ok {
		return aerrors.NewSemanticError("patch.ApplyModifyField", aerrors.InvalidPath, op.Path, nil)
	}
	val, err := mem.Substitute(file, op.Value)
	if err != nil {
		return err
	}
	f, err := fieldFromTypeValue(existing.Type.String(), val)
	if err != nil {
		return err
	}
	container.Set(label, f)
	applyGFFCaptures(fieldValueString(f), op.Captures, mem)
	return nil
}

// ApplyAddList creates an empty List field at path.
func ApplyAddList(root *gff.Struct, op AddList) error {
	container, label, err := resolveContainer(root, op.Path)
	if err != nil {
		return err
	}
	container.Set(label, gff.FieldList(gff.List{}))
	return nil
}

// ApplyAddStruct appends a new Struct, populated from op.Fields (all
// treated as String fields; richer typing should use AddField against
// the new struct's path once it exists), to the list at op.ListPath.
func ApplyAddStruct(file string, root *gff.Struct, op AddStruct, mem *Memory) error {
	containerSegs, label := splitPath(op.ListPath)
	container, err := navigate(root, containerSegs)
	if err != nil {
		return err
	}
	f, ok := container.Get(label)
	if !ok || f.Type != gff.TypeList {
		return aerrors.NewSemanticError("patch.ApplyAddStruct", aerrors.InvalidPath, op.ListPath, nil)
	}
	list := f.List()
	id := op.StructID
	if id < 0 {
		id = int32(len(list))
	}
	st := gff.NewStruct(id)
	for k, v := range op.Fields {
		sub, err := mem.Substitute(file, v)
		if err != nil {
			return err
		}
		st.Set(k, gff.FieldString(sub))
	}
	list = append(list, st)
	container.Set(label, gff.FieldList(list))
	return nil
}

// ApplyDelete removes path's field, or a whole list element when path's
// last segment is a numeric index into the list field named by the
// second-to-last segment (e.g. "/Items/0" removes the first Items entry).
func ApplyDelete(root *gff.Struct, op Delete) error {
	segs := strings.Split(strings.Trim(op.Path, "/"), "/")
	if len(segs) >= 2 {
		if idx, err := strconv.Atoi(segs[len(segs)-1]); err == nil {
			listLabel := segs[len(segs)-2]
			if parent, err := navigate(root, segs[:len(segs)-2]); err == nil {
				if f, ok := parent.Get(listLabel); ok && f.Type == gff.TypeList {
					list := f.List()
					if idx >= 0 && idx < len(list) {
						list = append(list[:idx], list[idx+1:]...)
						parent.Set(listLabel, gff.FieldList(list))
						return nil
					}
				}
			}
		}
	}

	container, label, err := resolveContainer(root, op.Path)
	if err != nil {
		return err
	}
	container.Delete(label)
	return nil
}
