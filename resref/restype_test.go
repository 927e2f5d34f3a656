package resref

import "testing"

func TestByExtensionKnown(t *testing.T) {
	rt := ByExtension("UTM")
	if !rt.IsValid() || rt.Extension != "utm" || rt.Category != CategoryGFF {
		t.Fatalf("got %+v", rt)
	}
}

func TestByExtensionUnknownMapsToInvalid(t *testing.T) {
	rt := ByExtension("zzq")
	if rt != Invalid {
		t.Fatalf("expected Invalid, got %+v", rt)
	}
}

func TestByCodeRoundTrip(t *testing.T) {
	rt := ByExtension("utc")
	got := ByCode(rt.Code)
	if got != rt {
		t.Fatalf("code round trip mismatch: %+v vs %+v", got, rt)
	}
}

func TestByExtensionStripsDot(t *testing.T) {
	a := ByExtension(".2da")
	b := ByExtension("2da")
	if a != b {
		t.Fatalf("dot-prefixed extension should match: %+v vs %+v", a, b)
	}
}
