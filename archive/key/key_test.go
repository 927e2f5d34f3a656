package key

import (
	"testing"

	"github.com/andastra/andastra/archive"
	"github.com/andastra/andastra/resref"
)

func TestKeyEncodeDecodeRoundTrip(t *testing.T) {
	dir := &Directory{
		Bifs: []BifRef{{Filename: "data\\models.bif", FileSize: 1234}},
		Entries: []archive.Entry{{
			ResRef:  resref.MustNew("p_bastila"),
			ResType: resref.ByExtension("utc"),
			Location: archive.LocationRef{
				Kind:     archive.LocationKeyBif,
				BifIndex: 0,
				Offset:   7,
			},
		}},
	}
	b, err := EncodeKey(dir)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeKey(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Bifs) != 1 || got.Bifs[0].Filename != "data\\models.bif" {
		t.Fatalf("bifs mismatch: %+v", got.Bifs)
	}
	if len(got.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got.Entries))
	}
	if got.Entries[0].ResRef.String() != "p_bastila" {
		t.Fatalf("resref mismatch: %q", got.Entries[0].ResRef.String())
	}
	if got.Entries[0].Location.BifIndex != 0 || got.Entries[0].Location.Offset != 7 {
		t.Fatalf("location mismatch: %+v", got.Entries[0].Location)
	}
}

func TestBifEncodeDecodeRoundTrip(t *testing.T) {
	resources := [][]byte{[]byte("hello"), []byte("world!!")}
	types := []uint32{2002, 2002}
	b, ids, err := EncodeBif(resources, types)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}
	bif, err := DecodeBif(b)
	if err != nil {
		t.Fatal(err)
	}
	got, err := bif.Read(ids[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Fatalf("got %q", got)
	}
	got, err = bif.Read(ids[1])
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "world!!" {
		t.Fatalf("got %q", got)
	}
}

func TestArchiveReadThroughDirectory(t *testing.T) {
	resources := [][]byte{[]byte("payload")}
	types := []uint32{2002}
	b, ids, err := EncodeBif(resources, types)
	if err != nil {
		t.Fatal(err)
	}
	bif, err := DecodeBif(b)
	if err != nil {
		t.Fatal(err)
	}

	dir := &Directory{
		Bifs: []BifRef{{Filename: "data\\x.bif"}},
		Entries: []archive.Entry{{
			ResRef:  resref.MustNew("xyz"),
			ResType: resref.ByExtension("utc"),
			Location: archive.LocationRef{
				Kind:     archive.LocationKeyBif,
				BifIndex: 0,
				Offset:   ids[0],
			},
		}},
	}
	a := NewArchive(dir, []*Bif{bif})
	entries := a.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry")
	}
	got, err := a.Read(entries[0].Location)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "payload" {
		t.Fatalf("got %q", got)
	}
}
