package resref

import "testing"

func TestNewCaseFolds(t *testing.T) {
	a, err := New("Merchant01")
	if err != nil {
		t.Fatal(err)
	}
	b, err := New("merchant01")
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equals(b) {
		t.Fatalf("expected case-insensitive equality: %q vs %q", a, b)
	}
	if a.String() != "merchant01" {
		t.Fatalf("got %q", a.String())
	}
}

func TestNewRejectsTooLong(t *testing.T) {
	if _, err := New("this_name_is_seventeen"); err == nil {
		t.Fatal("expected error for >16 byte ResRef")
	}
}

func TestNewRejectsNonASCII(t *testing.T) {
	if _, err := New("bad\x80name"); err == nil {
		t.Fatal("expected error for byte > 0x7E")
	}
}

func TestFromFixedTrimsNULs(t *testing.T) {
	var b [16]byte
	copy(b[:], "g_w_blstrpstl01")
	r := FromFixed(b)
	if r.String() != "g_w_blstrpstl01" {
		t.Fatalf("got %q", r.String())
	}
	if r.Len() != len("g_w_blstrpstl01") {
		t.Fatalf("len = %d", r.Len())
	}
}

func TestBytesRoundTrip(t *testing.T) {
	r := MustNew("foo")
	b := r.Bytes()
	r2 := FromFixed(b)
	if !r.Equals(r2) {
		t.Fatal("round trip through Bytes/FromFixed changed value")
	}
}

func TestEmptyResRef(t *testing.T) {
	var r ResRef
	if !r.IsEmpty() {
		t.Fatal("zero value should be empty")
	}
}
