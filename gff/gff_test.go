package gff

import (
	"testing"

	"github.com/andastra/andastra/internal/xdr"
	"github.com/andastra/andastra/resref"
)

func buildSampleTree() *Tree {
	root := NewStruct(-1)
	root.Set("Tag", FieldString("m1"))
	root.Set("MarkUp", FieldI32(20))
	root.Set("ResRef", FieldResRef(resref.MustNew("merchant01")))
	root.Set("Loc", FieldLocString(LocalizedString{
		StringRef: -1,
		Substrings: []Substring{
			{Language: LangEnglish, Gender: GenderMale, Text: "Hello"},
		},
	}))

	item := NewStruct(0)
	item.Set("InventoryRes", FieldResRef(resref.MustNew("g_w_blstrpstl01")))
	item.Set("Infinite", FieldU8(1))
	root.Set("ItemList", FieldList(List{item}))

	return &Tree{FileType: "UTM ", Version: "V3.2", Root: root}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tree := buildSampleTree()

	b, err := Encode(tree)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Decode(b, "UTM ")
	if err != nil {
		t.Fatal(err)
	}

	if got.FileType != "UTM " || got.Version != "V3.2" {
		t.Fatalf("header mismatch: %q %q", got.FileType, got.Version)
	}

	tag, ok := got.Root.Get("Tag")
	if !ok || tag.Str() != "m1" {
		t.Fatalf("Tag mismatch: %+v", tag)
	}

	markup, ok := got.Root.Get("MarkUp")
	if !ok || markup.I32() != 20 {
		t.Fatalf("MarkUp mismatch: %+v", markup)
	}

	rr, ok := got.Root.Get("ResRef")
	if !ok || rr.ResRef().String() != "merchant01" {
		t.Fatalf("ResRef mismatch: %+v", rr)
	}

	loc, ok := got.Root.Get("Loc")
	if !ok {
		t.Fatal("missing Loc")
	}
	text, ok := loc.LocString().Get(LangEnglish, GenderMale)
	if !ok || text != "Hello" {
		t.Fatalf("LocString mismatch: %+v", loc.LocString())
	}

	items, ok := got.Root.Get("ItemList")
	if !ok || len(items.List()) != 1 {
		t.Fatalf("ItemList mismatch: %+v", items)
	}
	invRes, ok := items.List()[0].Get("InventoryRes")
	if !ok || invRes.ResRef().String() != "g_w_blstrpstl01" {
		t.Fatalf("InventoryRes mismatch: %+v", invRes)
	}
}

// buildNestedListTree builds a JRL-shaped tree: a root list ("Categories")
// of structs that each hold their own nested list ("EntryList"), so that
// encoding the outer list requires recursing into structs which themselves
// append more struct-table entries and their own list-index run before the
// outer list's run is written.
func buildNestedListTree() *Tree {
	root := NewStruct(-1)

	cat0Entry := NewStruct(2)
	cat0Entry.Set("Text", FieldString("entry-a"))
	cat0 := NewStruct(1)
	cat0.Set("Name", FieldString("cat0"))
	cat0.Set("EntryList", FieldList(List{cat0Entry}))

	cat1Entry0 := NewStruct(3)
	cat1Entry0.Set("Text", FieldString("entry-b"))
	cat1Entry1 := NewStruct(4)
	cat1Entry1.Set("Text", FieldString("entry-c"))
	cat1 := NewStruct(1)
	cat1.Set("Name", FieldString("cat1"))
	cat1.Set("EntryList", FieldList(List{cat1Entry0, cat1Entry1}))

	root.Set("Categories", FieldList(List{cat0, cat1}))

	return &Tree{FileType: "JRL ", Version: "V3.2", Root: root}
}

func TestEncodeDecodeRoundTripNestedLists(t *testing.T) {
	tree := buildNestedListTree()

	b, err := Encode(tree)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Decode(b, "JRL ")
	if err != nil {
		t.Fatal(err)
	}

	cats, ok := got.Root.Get("Categories")
	if !ok || len(cats.List()) != 2 {
		t.Fatalf("Categories mismatch: %+v", cats)
	}

	cat0 := cats.List()[0]
	name0, ok := cat0.Get("Name")
	if !ok || name0.Str() != "cat0" {
		t.Fatalf("cat0 Name mismatch: %+v", name0)
	}
	entries0, ok := cat0.Get("EntryList")
	if !ok || len(entries0.List()) != 1 {
		t.Fatalf("cat0 EntryList mismatch: %+v", entries0)
	}
	text, ok := entries0.List()[0].Get("Text")
	if !ok || text.Str() != "entry-a" {
		t.Fatalf("cat0 entry Text mismatch: %+v", text)
	}

	cat1 := cats.List()[1]
	name1, ok := cat1.Get("Name")
	if !ok || name1.Str() != "cat1" {
		t.Fatalf("cat1 Name mismatch: %+v", name1)
	}
	entries1, ok := cat1.Get("EntryList")
	if !ok || len(entries1.List()) != 2 {
		t.Fatalf("cat1 EntryList mismatch: %+v", entries1)
	}
	text0, ok := entries1.List()[0].Get("Text")
	if !ok || text0.Str() != "entry-b" {
		t.Fatalf("cat1 entry 0 Text mismatch: %+v", text0)
	}
	text1, ok := entries1.List()[1].Get("Text")
	if !ok || text1.Str() != "entry-c" {
		t.Fatalf("cat1 entry 1 Text mismatch: %+v", text1)
	}
}

func TestSecondEncodeIsByteIdentical(t *testing.T) {
	tree := buildSampleTree()
	b1, err := Encode(tree)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := Encode(tree)
	if err != nil {
		t.Fatal(err)
	}
	if len(b1) != len(b2) {
		t.Fatalf("encode is not deterministic: %d vs %d bytes", len(b1), len(b2))
	}
	for i := range b1 {
		if b1[i] != b2[i] {
			t.Fatalf("encode is not deterministic at byte %d", i)
		}
	}
}

func TestDecodeRejectsBadSignature(t *testing.T) {
	tree := buildSampleTree()
	b, err := Encode(tree)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(b, "UTC "); err == nil {
		t.Fatal("expected BadSignature error")
	}
}

// TestDecodeDetectsCyclicGraph hand-crafts a GFF byte layout (rather than
// going through Encode, which walks live Go struct pointers and has no
// reason to ever produce a cycle) where struct 0 has a Struct-typed field
// pointing to struct 1, whose List field's only entry points back to
// struct 0 (spec.md §4.2.2 step 7 / scenario 5 of §8).
func TestDecodeDetectsCyclicGraph(t *testing.T) {
	w := xdr.NewWriter()
	w.WriteRaw([]byte("TEST"))
	w.WriteRaw([]byte("V3.2"))

	const (
		structOff = headerSize
		structCnt = 2
	)
	fieldOff := structOff + structCnt*12
	const fieldCnt = 2
	labelOff := fieldOff + fieldCnt*12
	const labelCnt = 2
	fieldDataOff := labelOff + labelCnt*16
	fieldIndicesOff := fieldDataOff
	listIndicesOff := fieldIndicesOff

	w.WriteUint32(uint32(structOff))
	w.WriteUint32(structCnt)
	w.WriteUint32(uint32(fieldOff))
	w.WriteUint32(fieldCnt)
	w.WriteUint32(uint32(labelOff))
	w.WriteUint32(labelCnt)
	w.WriteUint32(uint32(fieldDataOff))
	w.WriteUint32(0)
	w.WriteUint32(uint32(fieldIndicesOff))
	w.WriteUint32(0)
	w.WriteUint32(uint32(listIndicesOff))
	w.WriteUint32(8)

	// struct 0: field_count=1, data=field index 0
	w.WriteUint32(uint32(int32(-1)))
	w.WriteUint32(0)
	w.WriteUint32(1)
	// struct 1: field_count=1, data=field index 1
	w.WriteUint32(0)
	w.WriteUint32(1)
	w.WriteUint32(1)

	// field 0: type=Struct(14), label=0 ("Child"), data=struct index 1
	w.WriteUint32(uint32(TypeStruct))
	w.WriteUint32(0)
	w.WriteUint32(1)
	// field 1: type=List(15), label=1 ("Back"), data=list byte offset 0
	w.WriteUint32(uint32(TypeList))
	w.WriteUint32(1)
	w.WriteUint32(0)

	w.WriteFixed([]byte("Child"), 16)
	w.WriteFixed([]byte("Back"), 16)

	// list indices: length=1, then struct index 0 (cycles back to root)
	w.WriteUint32(1)
	w.WriteUint32(0)

	if _, err := Decode(w.Bytes()); err == nil {
		t.Fatal("expected CyclicGraph error")
	}
}
