package patch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/andastra/andastra/installation"
	"github.com/andastra/andastra/tlk"
	"github.com/andastra/andastra/twoda"
)

func writeTestFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestRunAppendTLKThenReferenceFromTwoDA exercises the scenario where a
// patch configuration appends a new dialog.tlk entry, captures its new
// StrRef into MemoryStr[5], and a later 2DA section substitutes
// "#StrRef5#" into a cell value.
func TestRunAppendTLKThenReferenceFromTwoDA(t *testing.T) {
	root := t.TempDir()
	patchDir := t.TempDir()

	baseTLK := &tlk.Table{Version: "V3.0", Entries: []tlk.Entry{{Text: "Hello", Flags: tlk.FlagText}}}
	tlkBytes, err := tlk.Encode(baseTLK)
	if err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, filepath.Join(patchDir, "dialog.tlk"), tlkBytes)

	baseTable := &twoda.Table{
		Headers: []string{"label", "name", "strref"},
		Rows: []twoda.Row{
			{Label: "sword", Cells: []string{"sword", "Sword", "-1"}},
		},
	}
	twoDABytes, err := twoda.Encode(baseTable)
	if err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, filepath.Join(patchDir, "appearance.2da"), twoDABytes)

	inst, err := installation.Open(root)
	if err != nil {
		t.Fatal(err)
	}
	defer inst.Close()

	ini := `
[dialog.tlk]
AppendTLK0=text=A new greeting|StrRef5=0

[appearance.2da]
ChangeRow0=RowLabel:sword|strref=#StrRef5#
`
	doc, err := ParseConfig([]byte(ini))
	if err != nil {
		t.Fatal(err)
	}
	cs, err := BuildChangeSet(doc)
	if err != nil {
		t.Fatal(err)
	}

	run := NewRun(inst, nil, patchDir)
	sum, err := run.Apply(context.Background(), cs)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Errors != 0 {
		t.Fatalf("unexpected errors in summary: %+v", sum)
	}

	outTLK, err := os.ReadFile(filepath.Join(root, "dialog.tlk"))
	if err != nil {
		t.Fatal(err)
	}
	table, err := tlk.Decode(outTLK)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Entries) != 2 || table.Entries[1].Text != "A new greeting" {
		t.Fatalf("patched TLK entries = %+v", table.Entries)
	}

	outTwoDA, err := os.ReadFile(filepath.Join(root, "Override", "appearance.2da"))
	if err != nil {
		t.Fatal(err)
	}
	patched, err := twoda.Decode(outTwoDA)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := patched.Cell(0, "strref"); v != "1" {
		t.Fatalf("strref cell = %q, want the new TLK entry's StrRef (1)", v)
	}
}

// TestRunOverridePrecedenceOverPatchBaseline verifies that an existing
// Override resource takes precedence over the patch's own shipped
// baseline when loading the file to edit (spec.md's search order).
func TestRunOverridePrecedenceOverPatchBaseline(t *testing.T) {
	root := t.TempDir()
	patchDir := t.TempDir()

	overrideTable := &twoda.Table{
		Headers: []string{"label", "cost"},
		Rows:    []twoda.Row{{Label: "sword", Cells: []string{"sword", "500"}}},
	}
	overrideBytes, err := twoda.Encode(overrideTable)
	if err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, filepath.Join(root, "Override", "appearance.2da"), overrideBytes)

	shippedTable := &twoda.Table{
		Headers: []string{"label", "cost"},
		Rows:    []twoda.Row{{Label: "sword", Cells: []string{"sword", "100"}}},
	}
	shippedBytes, err := twoda.Encode(shippedTable)
	if err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, filepath.Join(patchDir, "appearance.2da"), shippedBytes)

	inst, err := installation.Open(root)
	if err != nil {
		t.Fatal(err)
	}
	defer inst.Close()

	ini := `
[appearance.2da]
ChangeRow0=RowLabel:sword|cost=600
`
	doc, err := ParseConfig([]byte(ini))
	if err != nil {
		t.Fatal(err)
	}
	cs, err := BuildChangeSet(doc)
	if err != nil {
		t.Fatal(err)
	}

	run := NewRun(inst, nil, patchDir)
	sum, err := run.Apply(context.Background(), cs)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Errors != 0 {
		t.Fatalf("unexpected errors in summary: %+v", sum)
	}

	outBytes, err := os.ReadFile(filepath.Join(root, "Override", "appearance.2da"))
	if err != nil {
		t.Fatal(err)
	}
	patched, err := twoda.Decode(outBytes)
	if err != nil {
		t.Fatal(err)
	}
	// cost should have gone 500 -> 600 (edited from the Override baseline),
	// never 100 -> 600 (which would mean the patch's own shipped copy won
	// over the existing Override resource).
	if v, _ := patched.Cell(0, "cost"); v != "600" {
		t.Fatalf("cost = %q, want 600 (edited from the Override baseline, not the shipped one)", v)
	}
}

func TestRunCancelledContextSkipsRemainingFiles(t *testing.T) {
	root := t.TempDir()
	patchDir := t.TempDir()

	table := &twoda.Table{Headers: []string{"label"}, Rows: []twoda.Row{{Label: "a", Cells: []string{"a"}}}}
	data, err := twoda.Encode(table)
	if err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, filepath.Join(patchDir, "a.2da"), data)
	writeTestFile(t, filepath.Join(patchDir, "b.2da"), data)

	inst, err := installation.Open(root)
	if err != nil {
		t.Fatal(err)
	}
	defer inst.Close()

	ini := `
[a.2da]
AddRow0=NewLabel=b

[b.2da]
AddRow0=NewLabel=b
`
	doc, _ := ParseConfig([]byte(ini))
	cs, err := BuildChangeSet(doc)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run := NewRun(inst, nil, patchDir)
	sum, err := run.Apply(ctx, cs)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Warnings == 0 {
		t.Fatal("expected a cancellation warning in the summary")
	}
	if _, err := os.Stat(filepath.Join(root, "Override", "a.2da")); err == nil {
		t.Fatal("no file should have been written once the context was already cancelled")
	}
}
