package patch

import (
	"testing"

	"github.com/andastra/andastra/tlk"
)

func sampleTLK() *tlk.Table {
	return &tlk.Table{
		Version: "V3.0",
		Entries: []tlk.Entry{
			{Text: "Hello", Flags: tlk.FlagText},
			{Text: "World", Flags: tlk.FlagText},
		},
	}
}

func TestApplyAppendTLK(t *testing.T) {
	table := sampleTLK()
	mem := NewMemory()

	op, err := ParseAppendTLK("text=A new line|StrRef0=0")
	if err != nil {
		t.Fatal(err)
	}
	if err := ApplyAppendTLK("dialog.tlk", table, op, mem); err != nil {
		t.Fatal(err)
	}
	if len(table.Entries) != 3 {
		t.Fatalf("entries = %d", len(table.Entries))
	}
	if table.Entries[2].Text != "A new line" {
		t.Fatalf("appended text = %q", table.Entries[2].Text)
	}
	if mem.Str[0] != 2 {
		t.Fatalf("captured strref = %d, want 2", mem.Str[0])
	}
}

func TestApplyAppendTLKWithSubstitution(t *testing.T) {
	table := sampleTLK()
	mem := NewMemory()
	mem.SetTwoDA(1, "Bastila")

	op, err := ParseAppendTLK("text=Hello #2DAMEMORY1#")
	if err != nil {
		t.Fatal(err)
	}
	if err := ApplyAppendTLK("dialog.tlk", table, op, mem); err != nil {
		t.Fatal(err)
	}
	if table.Entries[2].Text != "Hello Bastila" {
		t.Fatalf("substituted text = %q", table.Entries[2].Text)
	}
}

func TestApplyReplaceTLK(t *testing.T) {
	table := sampleTLK()

	op, err := ParseReplaceTLK("strref=0|text=Goodbye")
	if err != nil {
		t.Fatal(err)
	}
	if err := ApplyReplaceTLK(table, op); err != nil {
		t.Fatal(err)
	}
	if table.Entries[0].Text != "Goodbye" {
		t.Fatalf("replaced text = %q", table.Entries[0].Text)
	}
}

func TestApplyReplaceTLKOutOfRange(t *testing.T) {
	table := sampleTLK()
	op, err := ParseReplaceTLK("strref=99|text=x")
	if err != nil {
		t.Fatal(err)
	}
	if err := ApplyReplaceTLK(table, op); err == nil {
		t.Fatal("expected out-of-range error")
	}
}
