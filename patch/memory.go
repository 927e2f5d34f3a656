// Package patch implements the declarative change-set engine (spec.md
// §4.8, §6): a patch configuration loaded from an INI-shaped text document
// describes per-file edit operations against 2DA/GFF/TLK/NSS resources,
// sharing a per-run Memory2DA/MemoryStr symbol table across files. The
// parse->validate->apply pipeline shape is grounded on
// config_old_reference/config.go's declarative configuration loading (the
// wire format differs, XML vs this package's INI, but the "read
// declarative text, fill in defaults, apply in order" shape is the same);
// the run log is the events package (itself adapted from the teacher's
// pub/sub event bus) replayed as Note/Warning/Error entries.
package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/andastra/andastra/aerrors"
)

// Memory is the per-run symbol table spec.md §4.8 requires:
// Memory2DA: int -> string (typically a row label or column value) and
// MemoryStr: int -> i32 (a TLK StrRef). It is dropped at the end of one
// patch run (spec.md §4.8.6).
type Memory struct {
	TwoDA map[int]string
	Str   map[int]int32
}

// NewMemory returns an empty Memory table.
func NewMemory() *Memory {
	return &Memory{TwoDA: make(map[int]string), Str: make(map[int]int32)}
}

// SetTwoDA records Memory2DA[n] = v.
func (m *Memory) SetTwoDA(n int, v string) { m.TwoDA[n] = v }

// SetStr records MemoryStr[n] = v.
func (m *Memory) SetStr(n int, v int32) { m.Str[n] = v }

var tokenPattern = regexp.MustCompile(`#(2DAMEMORY|StrRef)(\d+)#`)

// Substitute replaces every #2DAMEMORY<n># and #StrRef<n># token in s with
// its recorded Memory value. file is used only to annotate a failure.
// Unknown token indices fail aerrors.UndefinedMemoryToken (spec.md
// §4.8.1).
func (m *Memory) Substitute(file, s string) (string, error) {
	if !strings.Contains(s, "#") {
		return s, nil
	}
	var firstErr error
	out := tokenPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}
		sub := tokenPattern.FindStringSubmatch(match)
		kind, nStr := sub[1], sub[2]
		var n int
		fmt.Sscanf(nStr, "%d", &n)
		switch kind {
		case "2DAMEMORY":
			v, ok := m.TwoDA[n]
			if !ok {
				firstErr = aerrors.NewSemanticError("patch.Substitute", aerrors.UndefinedMemoryToken, file,
					fmt.Errorf("2DAMEMORY%d undefined", n))
				return match
			}
			return v
		case "StrRef":
			v, ok := m.Str[n]
			if !ok {
				firstErr = aerrors.NewSemanticError("patch.Substitute", aerrors.UndefinedMemoryToken, file,
					fmt.Errorf("StrRef%d undefined", n))
				return match
			}
			return fmt.Sprintf("%d", v)
		}
		return match
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// MemoryCaptureKind selects what a Store2DAMemoryN directive records.
type MemoryCaptureKind int

const (
	CaptureRowLabel MemoryCaptureKind = iota
	CaptureRowIndex
	CaptureColumn
	CaptureFieldValue
)

// MemoryCapture is a parsed "Store2DAMemoryN=RowLabel|RowIndex|(column)"
// or "Store2DAMemoryN=FieldValue" directive (spec.md §4.8.2, §4.8.3).
type MemoryCapture struct {
	Slot   int
	Kind   MemoryCaptureKind
	Column string
}

// ParseMemoryCapture parses the right-hand side of a Store2DAMemoryN
// directive: the literal "RowLabel", "RowIndex", "FieldValue", or a
// parenthesized column name "(column)".
func ParseMemoryCapture(slot int, rhs string) (MemoryCapture, error) {
	rhs = strings.TrimSpace(rhs)
	switch {
	case strings.EqualFold(rhs, "RowLabel"):
		return MemoryCapture{Slot: slot, Kind: CaptureRowLabel}, nil
	case strings.EqualFold(rhs, "RowIndex"):
		return MemoryCapture{Slot: slot, Kind: CaptureRowIndex}, nil
	case strings.EqualFold(rhs, "FieldValue"):
		return MemoryCapture{Slot: slot, Kind: CaptureFieldValue}, nil
	case strings.HasPrefix(rhs, "(") && strings.HasSuffix(rhs, ")"):
		return MemoryCapture{Slot: slot, Kind: CaptureColumn, Column: rhs[1 : len(rhs)-1]}, nil
	default:
		return MemoryCapture{}, aerrors.NewSemanticError("patch.ParseMemoryCapture", aerrors.InvalidPath, rhs, nil)
	}
}
