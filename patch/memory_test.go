package patch

import "testing"

func TestMemorySubstitute(t *testing.T) {
	mem := NewMemory()
	mem.SetTwoDA(0, "feat_backstab")
	mem.SetStr(5, 49999)

	got, err := mem.Substitute("appearance.2da", "row=#2DAMEMORY0# strref=#StrRef5#")
	if err != nil {
		t.Fatal(err)
	}
	want := "row=feat_backstab strref=49999"
	if got != want {
		t.Fatalf("Substitute() = %q, want %q", got, want)
	}
}

func TestMemorySubstituteNoTokens(t *testing.T) {
	mem := NewMemory()
	got, err := mem.Substitute("x.2da", "plain value")
	if err != nil || got != "plain value" {
		t.Fatalf("Substitute() = %q, %v", got, err)
	}
}

func TestMemorySubstituteUndefinedToken(t *testing.T) {
	mem := NewMemory()
	if _, err := mem.Substitute("appearance.2da", "#2DAMEMORY3#"); err == nil {
		t.Fatal("expected undefined-token error")
	}
	if _, err := mem.Substitute("dialog.tlk", "#StrRef9#"); err == nil {
		t.Fatal("expected undefined-token error")
	}
}

func TestParseMemoryCapture(t *testing.T) {
	cases := []struct {
		rhs  string
		kind MemoryCaptureKind
	}{
		{"RowLabel", CaptureRowLabel},
		{"RowIndex", CaptureRowIndex},
		{"FieldValue", CaptureFieldValue},
		{"(label)", CaptureColumn},
	}
	for _, c := range cases {
		got, err := ParseMemoryCapture(1, c.rhs)
		if err != nil {
			t.Fatalf("ParseMemoryCapture(%q): %v", c.rhs, err)
		}
		if got.Kind != c.kind {
			t.Fatalf("ParseMemoryCapture(%q).Kind = %v, want %v", c.rhs, got.Kind, c.kind)
		}
	}
	if got, _ := ParseMemoryCapture(2, "(label)"); got.Column != "label" {
		t.Fatalf("column capture = %q", got.Column)
	}
}

func TestParseMemoryCaptureInvalid(t *testing.T) {
	if _, err := ParseMemoryCapture(0, "Nonsense"); err == nil {
		t.Fatal("expected error for unrecognized capture rhs")
	}
}
