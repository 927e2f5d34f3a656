package formats

import (
	"bytes"
	"testing"
)

func buildSampleLTR(n int) *Table {
	t := &Table{LetterCount: uint8(n)}
	for g := 0; g < groupCount; g++ {
		t.Singles[g] = make([]float32, n)
		for c := 0; c < n; c++ {
			t.Singles[g][c] = float32(g) + float32(c)*0.1
		}
	}
	t.Doubles = make([][groupCount][]float32, n)
	for p := 0; p < n; p++ {
		for g := 0; g < groupCount; g++ {
			t.Doubles[p][g] = make([]float32, n)
		}
	}
	t.Triples = make([][][groupCount][]float32, n)
	for p2 := 0; p2 < n; p2++ {
		t.Triples[p2] = make([][groupCount][]float32, n)
		for p1 := 0; p1 < n; p1++ {
			for g := 0; g < groupCount; g++ {
				t.Triples[p2][p1][g] = make([]float32, n)
			}
		}
	}
	return t
}

func TestLTRRoundTrip(t *testing.T) {
	table := buildSampleLTR(26)

	out, err := Encode(table)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Decode(out)
	if err != nil {
		t.Fatal(err)
	}

	if got.LetterCount != 26 {
		t.Fatalf("LetterCount = %d", got.LetterCount)
	}
	if got.Singles[0][5] != table.Singles[0][5] {
		t.Fatalf("Singles mismatch: %v vs %v", got.Singles[0][5], table.Singles[0][5])
	}

	out2, err := Encode(got)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, out2) {
		t.Fatal("LTR encode(decode(x)) != x")
	}
}

func TestLTRBadSignature(t *testing.T) {
	if _, err := Decode([]byte("garbage!")); err == nil {
		t.Fatal("expected error on bad signature")
	}
}

func TestLYTRoundTrip(t *testing.T) {
	l := &Layout{
		Rooms:     []Room{{Model: "room01", X: 1, Y: 2, Z: 3}},
		Tracks:    []Track{{Model: "trk01", X: 4, Y: 5, Z: 6}},
		Obstacles: []Obstacle{{Model: "obs01", X: 7, Y: 8, Z: 9}},
		DoorHooks: []DoorHook{{Room: "room01", Door: "door01", Fields: [8]float64{1, 2, 3, 4, 5, 6, 7, 8}}},
	}

	out := Encode(l)
	got, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v\n%s", err, out)
	}
	if len(got.Rooms) != 1 || got.Rooms[0].Model != "room01" || got.Rooms[0].X != 1 {
		t.Fatalf("Rooms mismatch: %+v", got.Rooms)
	}
	if len(got.DoorHooks) != 1 || got.DoorHooks[0].Fields[7] != 8 {
		t.Fatalf("DoorHooks mismatch: %+v", got.DoorHooks)
	}
}

func TestLYTDoorHookLongForm(t *testing.T) {
	data := []byte("beginlayout\ndoorhookcount 1\nroom01 door01 1 2 3 4 5 6 7 8 9 10 11 12 13\ndonelayout\n")
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.DoorHooks) != 1 {
		t.Fatalf("expected 1 door hook, got %d", len(got.DoorHooks))
	}
	dh := got.DoorHooks[0]
	if dh.Fields[7] != 8 || len(dh.Extra) != 5 || dh.Extra[4] != 13 {
		t.Fatalf("long-form door hook mismatch: %+v", dh)
	}
}

func TestWAVPlain(t *testing.T) {
	riff := append([]byte("RIFF"), 0x24, 0, 0, 0)
	riff = append(riff, []byte("WAVEfmt ")...)
	f, err := Decode(riff)
	if err != nil {
		t.Fatal(err)
	}
	if f.Kind != WrapPlain || f.IsMP3 {
		t.Fatalf("unexpected classification: %+v", f)
	}
	if !bytes.Equal(Encode(f), riff) {
		t.Fatal("plain WAV encode mismatch")
	}
}

func TestWAVVOPrefix(t *testing.T) {
	prefix := make([]byte, voPrefixLen)
	riff := append([]byte("RIFF"), 0x24, 0, 0, 0)
	riff = append(riff, []byte("WAVEfmt ")...)
	data := append(append([]byte{}, prefix...), riff...)

	f, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if f.Kind != WrapVO {
		t.Fatalf("expected WrapVO, got %v", f.Kind)
	}
	if !bytes.Equal(Encode(f), data) {
		t.Fatal("VO-wrapped WAV encode mismatch")
	}
}

func TestWAVMP3Sentinel(t *testing.T) {
	riff := append([]byte("RIFF"), 50, 0, 0, 0)
	riff = append(riff, []byte("WAVE")...)
	riff = append(riff, []byte{0xFF, 0xFB, 0x90, 0x00}...) // fake mp3 frame sync

	f, err := Decode(riff)
	if err != nil {
		t.Fatal(err)
	}
	if !f.IsMP3 {
		t.Fatal("expected IsMP3 true for riff_size==50 sentinel")
	}
}
