package companion

import (
	"testing"

	"github.com/andastra/andastra/gff"
	"github.com/andastra/andastra/internal/cp"
	"github.com/andastra/andastra/resref"
	"github.com/andastra/andastra/tlk"
	"github.com/andastra/andastra/twoda"
)

func buildSampleTree() *gff.Tree {
	root := gff.NewStruct(-1)
	root.Set("Tag", gff.FieldString("m1"))
	root.Set("MarkUp", gff.FieldI32(20))
	root.Set("ResRef", gff.FieldResRef(resref.MustNew("merchant01")))
	root.Set("Loc", gff.FieldLocString(gff.LocalizedString{
		StringRef: -1,
		Substrings: []gff.Substring{
			{Language: gff.LangEnglish, Gender: gff.GenderMale, Text: "Hello"},
		},
	}))
	root.Set("Pos", gff.FieldVector3(1, 2, 3))

	item := gff.NewStruct(0)
	item.Set("InventoryRes", gff.FieldResRef(resref.MustNew("g_w_blstrpstl01")))
	item.Set("Infinite", gff.FieldU8(1))
	root.Set("ItemList", gff.FieldList(gff.List{item}))

	return &gff.Tree{FileType: "UTM ", Version: "V3.2", Root: root}
}

func TestGFFXMLRoundTrip(t *testing.T) {
	tree := buildSampleTree()

	out, err := GFFToXML(tree)
	if err != nil {
		t.Fatal(err)
	}

	got, err := GFFFromXML(out)
	if err != nil {
		t.Fatalf("GFFFromXML: %v\n%s", err, out)
	}

	if got.FileType != tree.FileType || got.Version != tree.Version {
		t.Fatalf("header mismatch: %+v", got)
	}
	tag, ok := got.Root.Get("Tag")
	if !ok || tag.Str() != "m1" {
		t.Fatalf("Tag mismatch: %+v", tag)
	}
	markup, ok := got.Root.Get("MarkUp")
	if !ok || markup.I32() != 20 {
		t.Fatalf("MarkUp mismatch: %+v", markup)
	}
	pos, ok := got.Root.Get("Pos")
	if !ok {
		t.Fatal("Pos missing")
	}
	x, y, z := pos.Vector3()
	if x != 1 || y != 2 || z != 3 {
		t.Fatalf("Pos mismatch: %v %v %v", x, y, z)
	}
	loc, ok := got.Root.Get("Loc")
	if !ok {
		t.Fatal("Loc missing")
	}
	text, ok := loc.LocString().Get(gff.LangEnglish, gff.GenderMale)
	if !ok || text != "Hello" {
		t.Fatalf("Loc substring mismatch: %q", text)
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

func TestTLKJSONRoundTrip(t *testing.T) {
	table := &tlk.Table{
		Language: cp.English,
		Version:  "V3.0",
		Entries: []tlk.Entry{
			{Text: "Hello", Flags: tlk.FlagText},
			{Text: "Bye", Sound: resref.MustNew("snd_bye"), Flags: tlk.FlagText | tlk.FlagSound},
		},
	}

	out, err := TLKToJSON(table)
	if err != nil {
		t.Fatal(err)
	}

	got, err := TLKFromJSON(out)
	if err != nil {
		t.Fatalf("TLKFromJSON: %v\n%s", err, out)
	}

	if len(got.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got.Entries))
	}
	if got.Entries[0].Text != "Hello" {
		t.Fatalf("entry 0 mismatch: %+v", got.Entries[0])
	}
	if !got.Entries[1].HasSound() || got.Entries[1].Sound.String() != "snd_bye" {
		t.Fatalf("entry 1 sound mismatch: %+v", got.Entries[1])
	}
}

func Test2DACSVRoundTrip(t *testing.T) {
	table := &twoda.Table{
		Headers: []string{"label", "cost"},
		Rows: []twoda.Row{
			{Label: "0", Cells: []string{"baremetal", "100"}},
			{Label: "1", Cells: []string{"plastic", "50"}},
		},
	}

	csvText, err := TwoDAToCSV(table)
	if err != nil {
		t.Fatal(err)
	}
	got, err := TwoDAFromCSV(csvText)
	if err != nil {
		t.Fatalf("TwoDAFromCSV: %v\n%s", err, csvText)
	}
	if v, ok := got.Cell(0, "cost"); !ok || v != "100" {
		t.Fatalf("row 0 cost mismatch: %q", v)
	}
}

func TestLIPJSONDualRead(t *testing.T) {
	canonical := []byte(`{"duration":1.5,"keyframes":[{"time":0.1,"shape":2}]}`)
	wrapped := []byte(`{"lip":{"duration":1.5,"keyframes":[{"time":0.1,"shape":2}]}}`)

	for _, data := range [][]byte{canonical, wrapped} {
		l, err := LIPFromJSON(data)
		if err != nil {
			t.Fatalf("LIPFromJSON(%s): %v", data, err)
		}
		if l.Duration != 1.5 || len(l.Keyframes) != 1 || l.Keyframes[0].Shape != 2 {
			t.Fatalf("unexpected LIP: %+v", l)
		}
	}

	l, _ := LIPFromJSON(wrapped)
	out, err := LIPToJSON(l)
	if err != nil {
		t.Fatal(err)
	}
	// Always canonical on write: no "lip" wrapper key in the output.
	if containsLipKey(out) {
		t.Fatalf("expected canonical shape, got %s", out)
	}
}

func containsLipKey(data []byte) bool {
	for i := 0; i+6 <= len(data); i++ {
		if string(data[i:i+6]) == `"lip":` {
			return true
		}
	}
	return false
}
