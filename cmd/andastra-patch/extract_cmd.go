package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/andastra/andastra/installation"
	"github.com/andastra/andastra/resref"
)

// ExtractCmd pulls the resolved bytes for a single (resref, restype) out
// of an Installation and writes them to Out (spec.md §6: "extract
// <install_root> <resref> <restype> <out>").
type ExtractCmd struct {
	InstallRoot string `arg:"" help:"Path to the game installation root." type:"path" predictor:"path"`
	ResRef      string `arg:"" help:"Resource name, e.g. p_bastila."`
	ResType     string `arg:"" help:"Resource type: a known extension (utc, 2da, ...) or a numeric type code."`
	Out         string `arg:"" help:"Path to write the resolved bytes to." type:"path" predictor:"path"`
}

func (c *ExtractCmd) Run() error {
	inst, err := installation.Open(c.InstallRoot, installation.WithLogger(l))
	if err != nil {
		return malformed(fmt.Errorf("opening installation at %s: %w", c.InstallRoot, err))
	}
	defer inst.Close()

	ref, err := resref.New(c.ResRef)
	if err != nil {
		return malformed(fmt.Errorf("invalid resref %q: %w", c.ResRef, err))
	}

	rt := resolveResType(c.ResType)
	if !rt.IsValid() {
		return malformed(fmt.Errorf("unrecognized restype %q", c.ResType))
	}

	data, err := inst.Resolve(ref, rt)
	if err != nil {
		return failed(fmt.Errorf("resolving %s.%s: %w", c.ResRef, rt.Extension, err))
	}

	if err := os.WriteFile(c.Out, data, 0o644); err != nil {
		return failed(fmt.Errorf("writing %s: %w", c.Out, err))
	}
	l.Notef("extracted %s.%s (%d bytes) to %s", c.ResRef, rt.Extension, len(data), c.Out)
	return nil
}

// resolveResType accepts either a known file extension (the common case)
// or a raw numeric BioWare resource-type code, so the CLI can reach
// types the extension table doesn't name.
func resolveResType(s string) resref.ResourceType {
	if rt := resref.ByExtension(s); rt.IsValid() {
		return rt
	}
	if code, err := strconv.ParseUint(s, 10, 16); err == nil {
		return resref.ByCode(uint16(code))
	}
	return resref.Invalid
}
