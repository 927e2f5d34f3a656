package tlk

import (
	"testing"

	"github.com/andastra/andastra/internal/cp"
	"github.com/andastra/andastra/resref"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	table := &Table{
		Language: cp.English,
		Version:  "V3.0",
		Entries: []Entry{
			{Flags: FlagText, Text: "Hello", Sound: resref.MustNew("snd_hello")},
			{Flags: FlagText | FlagSoundLength, Text: "Goodbye", SoundLength: 1.5},
			{Flags: 0},
		},
	}

	b, err := Encode(table)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}

	if len(got.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got.Entries))
	}
	if got.Entries[0].Text != "Hello" {
		t.Fatalf("entry 0 text = %q", got.Entries[0].Text)
	}
	if got.Entries[0].Sound.String() != "snd_hello" {
		t.Fatalf("entry 0 sound = %q", got.Entries[0].Sound.String())
	}
	if got.Entries[1].Text != "Goodbye" || got.Entries[1].SoundLength != 1.5 {
		t.Fatalf("entry 1 = %+v", got.Entries[1])
	}
	if got.Entries[2].HasText() {
		t.Fatalf("entry 2 should have no text: %+v", got.Entries[2])
	}
}

func TestAppendAndReplace(t *testing.T) {
	table := &Table{Language: cp.English}
	ref := table.Append(Entry{Flags: FlagText, Text: "first"})
	if ref != 0 {
		t.Fatalf("expected strref 0, got %d", ref)
	}
	if err := table.Replace(0, Entry{Flags: FlagText, Text: "replaced"}); err != nil {
		t.Fatal(err)
	}
	e, ok := table.Get(0)
	if !ok || e.Text != "replaced" {
		t.Fatalf("got %+v", e)
	}
}

func TestTruncateToBaseline(t *testing.T) {
	table := &Table{Language: cp.English, Entries: make([]Entry, 100)}
	table.Truncate(49265)
	if len(table.Entries) != 100 {
		t.Fatalf("truncate should be a no-op when n > len: got %d", len(table.Entries))
	}
	table.Truncate(10)
	if len(table.Entries) != 10 {
		t.Fatalf("expected 10 entries after truncate, got %d", len(table.Entries))
	}
}

func TestGetOutOfRange(t *testing.T) {
	table := &Table{Language: cp.English, Entries: []Entry{{Flags: FlagText, Text: "x"}}}
	if _, ok := table.Get(-1); ok {
		t.Fatal("strref -1 should report not-ok")
	}
	if _, ok := table.Get(5); ok {
		t.Fatal("out-of-range strref should report not-ok")
	}
}
