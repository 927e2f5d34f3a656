package formats

import (
	"bytes"

	"github.com/andastra/andastra/aerrors"
)

// WrapKind is the BioWare sound-file wrapper variant a WAV payload is
// stored under (spec.md §6).
type WrapKind int

const (
	// WrapPlain is an ordinary RIFF/WAVE file with no prefix.
	WrapPlain WrapKind = iota
	// WrapVO is a 20-byte prefix (KotOR voice-over streaming header)
	// before the RIFF chunk.
	WrapVO
	// WrapSFX is a 470-byte prefix, starting with the 4-byte magic
	// FF F3 60 C4 followed by zero padding, before the RIFF chunk.
	WrapSFX
)

const (
	voPrefixLen  = 20
	sfxPrefixLen = 470
)

var sfxMagic = []byte{0xFF, 0xF3, 0x60, 0xC4}

// mp3SentinelSize is the RIFF chunk size BioWare's streaming music
// writer stamps in place of the real size to flag "the bytes after this
// 12-byte pseudo-header are a raw MP3 stream, not WAVE fmt/data chunks"
// (spec.md §6: "MP3-in-WAV is identified by riff_size == 50").
const mp3SentinelSize = 50

// File is a decoded BioWare WAV wrapper: which prefix variant it used,
// the prefix bytes themselves (opaque, preserved for exact re-encoding),
// whether the payload is raw MP3 rather than WAVE, and the payload bytes
// starting at the RIFF chunk.
type File struct {
	Kind    WrapKind
	Prefix  []byte
	IsMP3   bool
	RIFF    []byte // starts with "RIFF", includes the 12-byte pseudo-header for MP3-in-WAV
}

// Decode classifies data into its wrapper kind and locates the RIFF
// chunk, without parsing WAVE fmt/data sub-chunks (rendering/playback is
// out of scope per spec.md §1).
func Decode(data []byte) (*File, error) {
	if hasRIFFAt(data, 0) {
		return finishDecode(WrapPlain, nil, data)
	}
	if len(data) >= voPrefixLen+4 && hasRIFFAt(data, voPrefixLen) {
		return finishDecode(WrapVO, data[:voPrefixLen], data[voPrefixLen:])
	}
	if len(data) >= sfxPrefixLen+4 && bytes.HasPrefix(data, sfxMagic) && hasRIFFAt(data, sfxPrefixLen) {
		return finishDecode(WrapSFX, data[:sfxPrefixLen], data[sfxPrefixLen:])
	}
	return nil, aerrors.NewParseError("formats.Decode", aerrors.BadSignature, nil)
}

func hasRIFFAt(data []byte, off int) bool {
	return len(data) >= off+4 && string(data[off:off+4]) == "RIFF"
}

func finishDecode(kind WrapKind, prefix, riff []byte) (*File, error) {
	if len(riff) < 8 {
		return nil, aerrors.NewParseError("formats.Decode", aerrors.TruncatedSection, nil)
	}
	size := uint32(riff[4]) | uint32(riff[5])<<8 | uint32(riff[6])<<16 | uint32(riff[7])<<24
	return &File{Kind: kind, Prefix: prefix, IsMP3: size == mp3SentinelSize, RIFF: riff}, nil
}

// Encode reconstructs the exact original bytes: prefix (if any) followed
// by the RIFF chunk.
func Encode(f *File) []byte {
	if len(f.Prefix) == 0 {
		return f.RIFF
	}
	out := make([]byte, 0, len(f.Prefix)+len(f.RIFF))
	out = append(out, f.Prefix...)
	out = append(out, f.RIFF...)
	return out
}
