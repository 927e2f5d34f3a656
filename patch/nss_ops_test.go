package patch

import (
	"context"
	"errors"
	"testing"
)

type fakeCompiler struct {
	out []byte
	err error
}

func (f fakeCompiler) Compile(ctx context.Context, source []byte, resRefName string) ([]byte, error) {
	return f.out, f.err
}

func TestApplyNSSNoCompilerKeepsSource(t *testing.T) {
	mem := NewMemory()
	mem.SetTwoDA(0, "g_test")

	source, compiled, err := ApplyNSS("k_test.nss", []byte("string s = \"#2DAMEMORY0#\";"), nil, mem)
	if err != nil {
		t.Fatal(err)
	}
	if compiled != nil {
		t.Fatalf("expected nil compiled bytes, got %v", compiled)
	}
	if string(source) != `string s = "g_test";` {
		t.Fatalf("substituted source = %q", source)
	}
}

func TestApplyNSSCompileSuccess(t *testing.T) {
	mem := NewMemory()
	comp := fakeCompiler{out: []byte{0x01, 0x02, 0x03}}

	source, compiled, err := ApplyNSS("k_test.nss", []byte("void main() {}"), comp, mem)
	if err != nil {
		t.Fatal(err)
	}
	if string(source) != "void main() {}" {
		t.Fatalf("source = %q", source)
	}
	if len(compiled) != 3 {
		t.Fatalf("compiled = %v", compiled)
	}
}

func TestApplyNSSCompileFailureKeepsSource(t *testing.T) {
	mem := NewMemory()
	comp := fakeCompiler{err: errors.New("compile error")}

	source, compiled, err := ApplyNSS("k_test.nss", []byte("void main() {}"), comp, mem)
	if err == nil {
		t.Fatal("expected compile error")
	}
	if compiled != nil {
		t.Fatalf("expected nil compiled on failure, got %v", compiled)
	}
	if string(source) != "void main() {}" {
		t.Fatalf("source should survive compile failure, got %q", source)
	}
}

func TestApplyNSSUndefinedToken(t *testing.T) {
	mem := NewMemory()
	if _, _, err := ApplyNSS("k_test.nss", []byte("#2DAMEMORY9#"), nil, mem); err == nil {
		t.Fatal("expected undefined-token error")
	}
}
