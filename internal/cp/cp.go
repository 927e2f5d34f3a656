// Package cp implements the legacy-codepage text fallback chain spec.md
// §4.1 and §4.3 require: decode as strict UTF-8 first, then fall back to a
// codepage decoder, and never fail outright — the last fallback in the
// chain (cp1252) is total over all 256 byte values, so decoding always
// succeeds.
//
// There is no teacher analog for this (Syncthing has no legacy-codepage
// text to decode), so it is enriched straight from the pack's
// golang.org/x/text dependency, which supplies every codepage spec.md §4.3
// names for TLK language IDs.
package cp

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Language mirrors the TLK/LocalizedString language IDs of spec.md §3.
type Language int32

const (
	English      Language = 0
	French       Language = 1
	German       Language = 2
	Italian      Language = 3
	Spanish      Language = 4
	Polish       Language = 5
	Korean       Language = 128
	ChineseTrad  Language = 129
	ChineseSimp  Language = 130
	Japanese     Language = 131
)

// Codepage returns the legacy single/multi-byte decoder that the given TLK
// language ID is declared to use. Unknown/out-of-range languages fall back
// to cp1252, matching the "never throw" contract of the decode chain.
func Codepage(lang Language) encoding.Encoding {
	switch lang {
	case Polish:
		return charmap.Windows1250
	case Korean:
		return korean.EUCKR // nearest available approximation of cp949
	case ChineseTrad:
		return traditionalchinese.Big5 // nearest available approximation of cp950
	case ChineseSimp:
		return simplifiedchinese.GBK // nearest available approximation of cp936
	case Japanese:
		return japanese.ShiftJIS // cp932
	default:
		return charmap.Windows1252
	}
}

// Decode implements the C1 fallback chain: strict UTF-8, then the
// legacy codepage for lang. cp1252 (the default and the fallback for every
// Western language ID) is a total function over all byte values, so this
// never errors for those languages; for the other codepages a decode
// error makes the whole input decode as cp1252 instead, preserving the
// "always yield a decoded string" contract.
func Decode(b []byte, lang Language) string {
	if utf8.Valid(b) {
		return string(b)
	}
	dec := Codepage(lang).NewDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		// Total fallback: cp1252 never fails, so only the multi-byte
		// Asian codepages can reach here on malformed input. Replace
		// the whole input as cp1252 rather than losing the string.
		out, _ = charmap.Windows1252.NewDecoder().Bytes(b)
	}
	return string(out)
}

// Encode mirrors Decode for the write path: ASCII/UTF-8-representable text
// round-trips through cp1252 losslessly; characters the declared codepage
// can represent are encoded with it.
func Encode(s string, lang Language) []byte {
	enc := Codepage(lang).NewEncoder()
	out, err := enc.Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}
