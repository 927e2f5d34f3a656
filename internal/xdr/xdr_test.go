package xdr

import "testing"

func TestUintRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteUint8(0xAB)
	w.WriteUint16(0x1234)
	w.WriteUint32(0xDEADBEEF)
	w.WriteUint64(0x0102030405060708)

	r := NewReader(w.Bytes())
	if v := r.ReadUint8(); v != 0xAB {
		t.Fatalf("u8 = %x", v)
	}
	if v := r.ReadUint16(); v != 0x1234 {
		t.Fatalf("u16 = %x", v)
	}
	if v := r.ReadUint32(); v != 0xDEADBEEF {
		t.Fatalf("u32 = %x", v)
	}
	if v := r.ReadUint64(); v != 0x0102030405060708 {
		t.Fatalf("u64 = %x", v)
	}
	if err := r.Error(); err != nil {
		t.Fatal(err)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteFloat32(3.5)
	w.WriteFloat64(-12.25)

	r := NewReader(w.Bytes())
	if v := r.ReadFloat32(); v != 3.5 {
		t.Fatalf("f32 = %v", v)
	}
	if v := r.ReadFloat64(); v != -12.25 {
		t.Fatalf("f64 = %v", v)
	}
}

func TestFixedTrimsTrailingNUL(t *testing.T) {
	w := NewWriter()
	w.WriteFixed([]byte("merchant01"), 16)

	r := NewReader(w.Bytes())
	got := r.ReadFixed(16)
	if string(got) != "merchant01" {
		t.Fatalf("got %q", got)
	}
}

func TestLengthPrefixed(t *testing.T) {
	w := NewWriter()
	w.WriteLengthPrefixed32([]byte("hello world"))
	w.WriteLengthPrefixed8([]byte("tag"))

	r := NewReader(w.Bytes())
	if got := r.ReadLengthPrefixed32(0); string(got) != "hello world" {
		t.Fatalf("got %q", got)
	}
	if got := r.ReadLengthPrefixed8(16); string(got) != "tag" {
		t.Fatalf("got %q", got)
	}
}

func TestReadPastEndFails(t *testing.T) {
	r := NewReader([]byte{1, 2})
	r.ReadUint32()
	if r.Error() == nil {
		t.Fatal("expected error reading past end")
	}
}

func TestSeekAndReadAt(t *testing.T) {
	w := NewWriter()
	w.WriteUint32(1)
	w.WriteUint32(2)
	w.WriteUint32(3)

	r := NewReader(w.Bytes())
	r.Seek(8)
	if v := r.ReadUint32(); v != 3 {
		t.Fatalf("seek got %d", v)
	}
	if v := r.ReadUint32At(4); v != 2 {
		t.Fatalf("readat got %d", v)
	}
}
