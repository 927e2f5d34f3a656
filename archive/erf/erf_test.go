package erf

import (
	"testing"

	"github.com/andastra/andastra/resref"
)

func TestEncodeDecodeRoundTripUncompressed(t *testing.T) {
	resources := []BuildResource{
		{ResRef: resref.MustNew("module"), ResType: resref.ByExtension("ifo"), Data: []byte("ifo-bytes")},
		{ResRef: resref.MustNew("area01"), ResType: resref.ByExtension("are"), Data: []byte("are-bytes-longer")},
	}
	b, err := Encode(FileTypeMOD, resources, -1)
	if err != nil {
		t.Fatal(err)
	}
	dir, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if dir.Header.Type != FileTypeMOD {
		t.Fatalf("expected MOD type, got %q", dir.Header.Type)
	}
	if len(dir.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(dir.Entries))
	}
	got, err := dir.Read(dir.Entries[1].Location)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "are-bytes-longer" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeDecodeRoundTripCompressed(t *testing.T) {
	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = byte(i % 251)
	}
	resources := []BuildResource{
		{ResRef: resref.MustNew("bigtex"), ResType: resref.ByExtension("tga"), Data: payload, Compress: true},
	}
	b, err := Encode(FileTypeERF, resources, -1)
	if err != nil {
		t.Fatal(err)
	}
	dir, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if !dir.Entries[0].Location.Compressed {
		t.Fatalf("expected entry to be marked compressed")
	}
	got, err := dir.Read(dir.Entries[0].Location)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(payload) {
		t.Fatalf("expected %d decompressed bytes, got %d", len(payload), len(got))
	}
	for i := range payload {
		if got[i] != payload[i] {
			t.Fatalf("byte %d mismatch: want %d got %d", i, payload[i], got[i])
		}
	}
}

func TestArchiveAdapter(t *testing.T) {
	resources := []BuildResource{
		{ResRef: resref.MustNew("x"), ResType: resref.ByExtension("txt"), Data: []byte("hi")},
	}
	b, err := Encode(FileTypeERF, resources, -1)
	if err != nil {
		t.Fatal(err)
	}
	dir, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	a := NewArchive(dir)
	if len(a.Entries()) != 1 {
		t.Fatalf("expected 1 entry")
	}
}
