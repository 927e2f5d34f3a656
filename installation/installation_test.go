package installation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/archive/erf"
	"github.com/andastra/andastra/resref"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestOpenAndResolveOverridePrecedence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "KOTOR"), nil)

	modData, err := erf.Encode(erf.FileTypeMOD, []erf.BuildResource{
		{ResRef: resref.MustNew("p_bastila"), ResType: resref.ByExtension("utc"), Data: []byte("from-module")},
	}, -1)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "Modules", "danm13.mod"), modData)
	writeFile(t, filepath.Join(root, "Override", "p_bastila.utc"), []byte("from-override"))

	inst, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	defer inst.Close()

	if inst.game != GameKOTOR1 {
		t.Fatalf("expected KOTOR1 detected, got %s", inst.game)
	}

	got, err := inst.Resolve(resref.MustNew("p_bastila"), resref.ByExtension("utc"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "from-override" {
		t.Fatalf("expected override to shadow module, got %q", got)
	}

	// second call exercises the LRU cache path
	got2, err := inst.Resolve(resref.MustNew("p_bastila"), resref.ByExtension("utc"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got2) != "from-override" {
		t.Fatalf("cached resolve mismatch: %q", got2)
	}
}

func TestResolveFallsBackToModule(t *testing.T) {
	root := t.TempDir()
	modData, err := erf.Encode(erf.FileTypeMOD, []erf.BuildResource{
		{ResRef: resref.MustNew("area01"), ResType: resref.ByExtension("are"), Data: []byte("module-area")},
	}, -1)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "Modules", "area01.mod"), modData)

	inst, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	defer inst.Close()

	got, err := inst.Resolve(resref.MustNew("area01"), resref.ByExtension("are"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "module-area" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveUnknownReturnsSemanticError(t *testing.T) {
	root := t.TempDir()
	inst, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	defer inst.Close()

	_, err = inst.Resolve(resref.MustNew("nope"), resref.ByExtension("utc"))
	if err == nil {
		t.Fatal("expected an error for an unresolvable resource")
	}
	var se *aerrors.SemanticError
	if !errors.As(err, &se) || se.Code != aerrors.UnknownResource {
		t.Fatalf("expected a SemanticError with code UnknownResource, got %v", err)
	}
	// second miss exercises the negative bloom-filter fast path
	if _, err := inst.Resolve(resref.MustNew("nope"), resref.ByExtension("utc")); err == nil {
		t.Fatal("expected an error on the cached-miss path too")
	}
}
