package patch

import (
	"reflect"
	"testing"
)

func TestParseDirectiveBareAndPairs(t *testing.T) {
	d := parseDirective("feat_backstab|NAME=Backstab|Store2DAMemory0=RowLabel")
	if d.Bare != "feat_backstab" {
		t.Fatalf("Bare = %q", d.Bare)
	}
	if v, ok := d.Get("name"); !ok || v != "Backstab" {
		t.Fatalf("Get(name) = %q, %v", v, ok)
	}
	caps, err := d.MemoryCaptures()
	if err != nil {
		t.Fatal(err)
	}
	if len(caps) != 1 || caps[0].Slot != 0 || caps[0].Kind != CaptureRowLabel {
		t.Fatalf("MemoryCaptures() = %+v", caps)
	}
}

func TestParseDirectiveNoBare(t *testing.T) {
	d := parseDirective("default=0|5=one|7=two")
	if d.Bare != "" {
		t.Fatalf("Bare = %q, want empty", d.Bare)
	}
	if len(d.Pairs) != 3 {
		t.Fatalf("Pairs = %+v", d.Pairs)
	}
}

func TestDirectiveGetLastWins(t *testing.T) {
	d := parseDirective("a=1|A=2")
	v, ok := d.Get("a")
	if !ok || v != "2" {
		t.Fatalf("Get(a) = %q, %v, want last value", v, ok)
	}
}

func TestDirectiveExtraColumns(t *testing.T) {
	d := parseDirective("NewRow|NAME=Backstab|COST=500|Store2DAMemory1=FieldValue")
	got := d.extraColumns(map[string]bool{"newlabel": true})
	want := map[string]string{"NAME": "Backstab", "COST": "500"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("extraColumns() = %+v, want %+v", got, want)
	}
}

func TestParseSlotInvalid(t *testing.T) {
	d := parseDirective("Store2DAMemoryX=RowLabel")
	if _, err := d.MemoryCaptures(); err == nil {
		t.Fatal("expected error for non-numeric memory slot")
	}
}
