// Package gameobjects implements the generic object layer (spec.md §3,
// §4.7): typed construct/dismantle pairs projecting GFF trees into named
// game objects (UTM merchant, UTC creature, UTE encounter, …). There is
// no teacher analog for a typed struct<->tree projection, so the
// round-trip contract (missing fields take documented engine defaults,
// bit-packed flags explode into named booleans) comes directly from
// spec.md §4.7; the accessor helpers below are grounded on the
// teacher's own encodeHeader/decodeHeader bitfield-flag style kept as a
// reference in gff's package doc.
package gameobjects

import (
	"github.com/andastra/andastra/gff"
	"github.com/andastra/andastra/resref"
)

func getStr(s *gff.Struct, label, def string) string {
	if f, ok := s.Get(label); ok && f.Type == gff.TypeString {
		return f.Str()
	}
	return def
}

func getResRef(s *gff.Struct, label string, def resref.ResRef) resref.ResRef {
	if f, ok := s.Get(label); ok && f.Type == gff.TypeResRef {
		return f.ResRef()
	}
	return def
}

func getI32(s *gff.Struct, label string, def int32) int32 {
	if f, ok := s.Get(label); ok {
		switch f.Type {
		case gff.TypeI32:
			return f.I32()
		case gff.TypeU32:
			return int32(f.U32())
		}
	}
	return def
}

func getU8(s *gff.Struct, label string, def uint8) uint8 {
	if f, ok := s.Get(label); ok && f.Type == gff.TypeU8 {
		return f.U8()
	}
	return def
}

func getU16(s *gff.Struct, label string, def uint16) uint16 {
	if f, ok := s.Get(label); ok && f.Type == gff.TypeU16 {
		return f.U16()
	}
	return def
}

func getU32(s *gff.Struct, label string, def uint32) uint32 {
	if f, ok := s.Get(label); ok && f.Type == gff.TypeU32 {
		return f.U32()
	}
	return def
}

func getF32(s *gff.Struct, label string, def float32) float32 {
	if f, ok := s.Get(label); ok && f.Type == gff.TypeF32 {
		return f.F32()
	}
	return def
}

func getLocString(s *gff.Struct, label string) gff.LocalizedString {
	if f, ok := s.Get(label); ok && f.Type == gff.TypeLocalizedString {
		return f.LocString()
	}
	return gff.LocalizedString{StringRef: -1}
}

func getList(s *gff.Struct, label string) gff.List {
	if f, ok := s.Get(label); ok && f.Type == gff.TypeList {
		return f.List()
	}
	return nil
}

// bitSet/bitGet manipulate a bit-packed flags byte the way UTM's
// BuySellFlag and similar fields across other blueprints work: bit N is
// exploded into one named boolean on construct, and repacked on
// dismantle.
func bitGet(flags uint32, bit uint) bool {
	return flags&(1<<bit) != 0
}

func bitSet(flags *uint32, bit uint, v bool) {
	if v {
		*flags |= 1 << bit
	} else {
		*flags &^= 1 << bit
	}
}
