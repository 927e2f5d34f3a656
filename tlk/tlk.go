// Package tlk implements the BioWare Talk Table codec (spec.md §3, §4.3):
// a flat, StrRef-indexed vector of localized string entries with
// per-language codepage text and optional attached sound ResRefs.
// Header/record layout follows the same offset-addressed internal/xdr
// conventions as gff; per-language codepage selection is delegated to
// internal/cp, which was built specifically to cover this component's
// legacy-encoding fallback chain.
package tlk

import (
	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/internal/cp"
	"github.com/andastra/andastra/internal/xdr"
	"github.com/andastra/andastra/resref"
)

// Flag bits of TLKEntry.Flags (spec.md §3).
const (
	FlagText        uint32 = 1
	FlagSound       uint32 = 2
	FlagSoundLength uint32 = 4
)

// Entry is one TLK record: its flags, decoded text, attached sound ResRef,
// and sound length in seconds.
type Entry struct {
	Flags       uint32
	Text        string
	Sound       resref.ResRef
	SoundLength float32
}

// HasText reports whether FlagText is set.
func (e Entry) HasText() bool { return e.Flags&FlagText != 0 }

// HasSound reports whether FlagSound is set.
func (e Entry) HasSound() bool { return e.Flags&FlagSound != 0 }

// Table is a decoded talk table: its declared language and its ordered
// entries, indexed by StrRef (0-based; -1 denotes "no string" at the call
// site, not a value stored here).
type Table struct {
	Language cp.Language
	Version  string
	Entries  []Entry
}

const headerSize = 20
const recordSize = 40

// Decode parses a TLK byte buffer. Accepted versions are "V3.0" (KotOR)
// and "V4.0" (Jade Empire); any other version fails UnsupportedVersion.
func Decode(data []byte) (*Table, error) {
	r := xdr.NewReader(data)
	if r.Len() < headerSize {
		return nil, aerrors.NewParseError("tlk.Decode", aerrors.TruncatedSection, nil)
	}

	sig := string(r.ReadRaw(4))
	if sig != "TLK " {
		return nil, aerrors.NewParseError("tlk.Decode", aerrors.BadSignature, nil)
	}
	ver := string(r.ReadRaw(4))
	switch ver {
	case "V3.0", "V4.0":
	default:
		return nil, aerrors.NewParseError("tlk.Decode", aerrors.UnsupportedVersion, nil)
	}

	langID := r.ReadUint32()
	count := r.ReadUint32()
	entriesOffset := r.ReadUint32()
	if err := r.Error(); err != nil {
		return nil, aerrors.NewParseError("tlk.Decode", aerrors.TruncatedSection, err)
	}
	lang := cp.Language(langID)

	t := &Table{Language: lang, Version: ver, Entries: make([]Entry, count)}

	for i := uint32(0); i < count; i++ {
		off := headerSize + int(i)*recordSize
		flags := r.ReadUint32At(off)
		soundBytes := r.ReadAt(off+4, 16)
		_ = r.ReadUint32At(off + 20) // volume_variance, unused
		_ = r.ReadUint32At(off + 24) // pitch_variance, unused
		textOffset := r.ReadUint32At(off + 28)
		textLength := r.ReadUint32At(off + 32)
		soundLength := r.ReadFloat32At(off + 36)
		if r.Error() != nil {
			return nil, aerrors.NewParseError("tlk.Decode", aerrors.TruncatedSection, r.Error())
		}

		var sound resref.ResRef
		if soundBytes != nil {
			var fixed [16]byte
			copy(fixed[:], soundBytes)
			sound = resref.FromFixed(fixed)
		}

		text := ""
		if flags&FlagText != 0 {
			textBytes := r.ReadAt(int(entriesOffset)+int(textOffset), int(textLength))
			if r.Error() != nil {
				return nil, aerrors.NewParseError("tlk.Decode", aerrors.TruncatedSection, r.Error())
			}
			text = cp.Decode(textBytes, lang)
		}

		t.Entries[i] = Entry{Flags: flags, Text: text, Sound: sound, SoundLength: soundLength}
	}

	return t, nil
}

// Encode serializes t back into TLK bytes. Strings are placed into the
// text heap in entry order (spec.md §4.3); no heap-sharing/deduplication
// is attempted, matching the format's own "encode places strings in
// entry order" contract.
func Encode(t *Table) ([]byte, error) {
	w := xdr.NewWriter()
	w.WriteRaw([]byte("TLK "))
	ver := t.Version
	if ver == "" {
		ver = "V3.0"
	}
	w.WriteRaw([]byte(pad4(ver)))
	w.WriteUint32(uint32(t.Language))
	w.WriteUint32(uint32(len(t.Entries)))

	entriesOffset := headerSize + len(t.Entries)*recordSize
	w.WriteUint32(uint32(entriesOffset))

	heap := xdr.NewWriter()
	type placement struct {
		offset, length uint32
	}
	placements := make([]placement, len(t.Entries))
	for i, e := range t.Entries {
		if e.HasText() {
			b := cp.Encode(e.Text, t.Language)
			placements[i] = placement{offset: uint32(heap.Len()), length: uint32(len(b))}
			heap.WriteRaw(b)
		}
	}

	for i, e := range t.Entries {
		w.WriteUint32(e.Flags)
		rr := e.Sound.Bytes()
		w.WriteRaw(rr[:])
		w.WriteUint32(0) // volume_variance
		w.WriteUint32(0) // pitch_variance
		w.WriteUint32(placements[i].offset)
		w.WriteUint32(placements[i].length)
		w.WriteFloat32(e.SoundLength)
	}

	w.WriteRaw(heap.Bytes())
	return w.Bytes(), nil
}

func pad4(s string) string {
	for len(s) < 4 {
		s += " "
	}
	if len(s) > 4 {
		s = s[:4]
	}
	return s
}

// Truncate drops entries beyond n, restoring a vanilla baseline count
// (spec.md §4.3's uninstall semantics: K1=49265, K2=136329).
func (t *Table) Truncate(n int) {
	if n < len(t.Entries) {
		t.Entries = t.Entries[:n]
	}
}

// Get returns the entry at strref, or the zero Entry and false for -1 or
// an out-of-range index.
func (t *Table) Get(strref int32) (Entry, bool) {
	if strref < 0 || int(strref) >= len(t.Entries) {
		return Entry{}, false
	}
	return t.Entries[strref], true
}

// Append adds e to the end of the table and returns its new StrRef.
func (t *Table) Append(e Entry) int32 {
	t.Entries = append(t.Entries, e)
	return int32(len(t.Entries) - 1)
}

// Replace overwrites the entry at strref with e. Fails SelectorNoMatch if
// strref is out of range.
func (t *Table) Replace(strref int32, e Entry) error {
	if strref < 0 || int(strref) >= len(t.Entries) {
		return aerrors.NewSemanticError("tlk.Replace", aerrors.SelectorNoMatch, "", nil)
	}
	t.Entries[strref] = e
	return nil
}

// Baseline entry counts for uninstall truncation (spec.md §4.3, §8).
const (
	BaselineK1 = 49265
	BaselineK2 = 136329
)
