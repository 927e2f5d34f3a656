package patch

import (
	"strconv"

	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/resref"
	"github.com/andastra/andastra/tlk"
)

// AppendTLK is AppendTLK(entry): appends a new TLK record and, when
// StoreStrRef is set, records its new StrRef into MemoryStr[StoreStrRef]
// (spec.md §4.8.4).
type AppendTLK struct {
	Entry       tlk.Entry
	StoreStrRef int
	HasStore    bool
}

// ReplaceTLK is ReplaceTLK(strref, entry).
type ReplaceTLK struct {
	StrRef int32
	Entry  tlk.Entry
}

// ParseAppendTLK parses an "AppendTLKN=" directive value:
// "text=...|sound=...|StrRefN=5".
func ParseAppendTLK(value string) (AppendTLK, error) {
	d := parseDirective(value)
	text, _ := d.Get("text")
	soundStr, _ := d.Get("sound")
	var sound tlk.Entry
	sound.Text = text
	sound.Flags = tlk.FlagText
	if soundStr != "" {
		rr, err := resref.New(soundStr)
		if err != nil {
			return AppendTLK{}, err
		}
		sound.Sound = rr
		sound.Flags |= tlk.FlagSound
	}
	op := AppendTLK{Entry: sound}
	for _, kv := range d.Pairs {
		if len(kv.Key) > 6 && kv.Key[:6] == "StrRef" {
			n, err := strconv.Atoi(kv.Key[6:])
			if err != nil {
				continue
			}
			op.StoreStrRef = n
			op.HasStore = true
		}
	}
	return op, nil
}

// ParseReplaceTLK parses a "ReplaceTLKN=" directive value:
// "strref=120|text=...".
func ParseReplaceTLK(value string) (ReplaceTLK, error) {
	d := parseDirective(value)
	strrefStr, _ := d.Get("strref")
	n, err := strconv.ParseInt(strrefStr, 10, 32)
	if err != nil {
		return ReplaceTLK{}, aerrors.NewSemanticError("patch.ParseReplaceTLK", aerrors.InvalidPath, strrefStr, err)
	}
	text, _ := d.Get("text")
	return ReplaceTLK{StrRef: int32(n), Entry: tlk.Entry{Text: text, Flags: tlk.FlagText}}, nil
}

// ApplyAppendTLK appends op.Entry to t and records the memory capture.
func ApplyAppendTLK(file string, t *tlk.Table, op AppendTLK, mem *Memory) error {
	text, err := mem.Substitute(file, op.Entry.Text)
	if err != nil {
		return err
	}
	entry := op.Entry
	entry.Text = text
	newRef := t.Append(entry)
	if op.HasStore {
		mem.SetStr(op.StoreStrRef, newRef)
	}
	return nil
}

// ApplyReplaceTLK overwrites an existing TLK entry.
func ApplyReplaceTLK(t *tlk.Table, op ReplaceTLK) error {
	return t.Replace(op.StrRef, op.Entry)
}
