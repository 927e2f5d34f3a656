package patch

import (
	"testing"

	"github.com/andastra/andastra/gff"
	"github.com/andastra/andastra/resref"
)

func sampleGFFRoot() *gff.Struct {
	root := gff.NewStruct(-1)
	root.Set("Tag", gff.FieldString("g_sword001"))
	root.Set("Cost", gff.FieldI32(100))

	items := gff.List{}
	item := gff.NewStruct(0)
	item.Set("InventoryRes", gff.FieldResRef(mustResRef("g_w_lsaber01")))
	items = append(items, item)
	root.Set("ItemList", gff.FieldList(items))

	return root
}

func mustResRef(s string) resref.ResRef {
	ref, err := resref.New(s)
	if err != nil {
		panic(err)
	}
	return ref
}

func TestApplyAddFieldAndModifyField(t *testing.T) {
	root := sampleGFFRoot()
	mem := NewMemory()

	addOp, err := ParseAddField("path=Plot|type=U8|value=1")
	if err != nil {
		t.Fatal(err)
	}
	if err := ApplyAddField("p_test.utc", root, addOp, mem); err != nil {
		t.Fatal(err)
	}
	f, ok := root.Get("Plot")
	if !ok || f.Type != gff.TypeU8 || f.U8() != 1 {
		t.Fatalf("Plot field = %+v, %v", f, ok)
	}

	modOp, err := ParseModifyField("path=Cost|value=250")
	if err != nil {
		t.Fatal(err)
	}
	if err := ApplyModifyField("p_test.utc", root, modOp, mem); err != nil {
		t.Fatal(err)
	}
	f, _ = root.Get("Cost")
	if f.Type != gff.TypeI32 || f.I32() != 250 {
		t.Fatalf("Cost after modify = %+v", f)
	}
}

func TestApplyModifyFieldMissingPath(t *testing.T) {
	root := sampleGFFRoot()
	mem := NewMemory()
	op, _ := ParseModifyField("path=NoSuchField|value=1")
	if err := ApplyModifyField("p_test.utc", root, op, mem); err == nil {
		t.Fatal("expected error for missing field")
	}
}

func TestApplyAddListAndAddStruct(t *testing.T) {
	root := sampleGFFRoot()
	mem := NewMemory()

	listOp, err := ParseAddList("path=EffectList")
	if err != nil {
		t.Fatal(err)
	}
	if err := ApplyAddList(root, listOp); err != nil {
		t.Fatal(err)
	}
	f, ok := root.Get("EffectList")
	if !ok || f.Type != gff.TypeList || len(f.List()) != 0 {
		t.Fatalf("EffectList = %+v, %v", f, ok)
	}

	structOp, err := ParseAddStruct("path=EffectList|id=2|Hardness=18")
	if err != nil {
		t.Fatal(err)
	}
	if err := ApplyAddStruct("p_test.utc", root, structOp, mem); err != nil {
		t.Fatal(err)
	}
	f, _ = root.Get("EffectList")
	list := f.List()
	if len(list) != 1 {
		t.Fatalf("EffectList length = %d", len(list))
	}
	if list[0].ID != 2 {
		t.Fatalf("new struct id = %d", list[0].ID)
	}
	hv, ok := list[0].Get("Hardness")
	if !ok || hv.Str() != "18" {
		t.Fatalf("new struct Hardness field = %+v, %v", hv, ok)
	}
}

func TestApplyDeleteField(t *testing.T) {
	root := sampleGFFRoot()
	op, err := ParseDelete("path=Cost")
	if err != nil {
		t.Fatal(err)
	}
	if err := ApplyDelete(root, op); err != nil {
		t.Fatal(err)
	}
	if _, ok := root.Get("Cost"); ok {
		t.Fatal("Cost field should have been deleted")
	}
}

func TestApplyDeleteListElement(t *testing.T) {
	root := sampleGFFRoot()
	op, err := ParseDelete("path=ItemList/0")
	if err != nil {
		t.Fatal(err)
	}
	if err := ApplyDelete(root, op); err != nil {
		t.Fatal(err)
	}
	f, _ := root.Get("ItemList")
	if len(f.List()) != 0 {
		t.Fatalf("ItemList should be empty after deleting its only element, got %d", len(f.List()))
	}
}

func TestNavigateIntoListElement(t *testing.T) {
	root := sampleGFFRoot()
	op, err := ParseModifyField("path=ItemList/0/InventoryRes|value=g_w_lsaber02")
	if err != nil {
		t.Fatal(err)
	}
	mem := NewMemory()
	if err := ApplyModifyField("p_test.utc", root, op, mem); err != nil {
		t.Fatal(err)
	}
	f, _ := root.Get("ItemList")
	rr, _ := f.List()[0].Get("InventoryRes")
	if rr.ResRef().String() != "g_w_lsaber02" {
		t.Fatalf("InventoryRes = %q", rr.ResRef().String())
	}
}
