package companion

import (
	"encoding/json"

	"github.com/andastra/andastra/aerrors"
)

// LIP is the in-memory projection of a lipsync keyframe track (spec.md
// §9's open question: "the LIP JSON reader documents a deliberate
// divergence from its upstream... must read both and must write the
// canonical form"). There is no bit-exact binary LIP layout in this
// module's scope — spec.md's §6 "file formats consumed/produced,
// bit-exact" list omits LIP entirely — so LIP only exists here, as a
// JSON companion surface consumed by an external animation pipeline.
type LIP struct {
	Duration  float32       `json:"duration"`
	Keyframes []LIPKeyframe `json:"keyframes"`
}

// LIPKeyframe is one (time, viseme) sample of a lipsync track. Shape
// follows the BioWare viseme enumeration (0=EE, 1=Ah, ... ordinal codes
// used verbatim by every known LIP JSON producer).
type LIPKeyframe struct {
	Time  float32 `json:"time"`
	Shape int     `json:"shape"`
}

// lipWrapper is the older on-disk shape some tools wrote: the whole
// document nested one level under a "lip" key instead of at the top.
type lipWrapper struct {
	Lip *LIP `json:"lip"`
}

// LIPFromJSON reads either the canonical {"duration":...,"keyframes":
// [...]} shape or the legacy {"lip":{...}} wrapper.
func LIPFromJSON(data []byte) (*LIP, error) {
	var wrapped lipWrapper
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Lip != nil {
		return wrapped.Lip, nil
	}
	var l LIP
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, aerrors.NewParseError("companion.LIPFromJSON", aerrors.TruncatedSection, err)
	}
	return &l, nil
}

// LIPToJSON always emits the canonical top-level shape, regardless of
// which shape the source document used (spec.md §9).
func LIPToJSON(l *LIP) ([]byte, error) {
	out, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, aerrors.NewSemanticError("companion.LIPToJSON", aerrors.InvalidPath, "", err)
	}
	return out, nil
}
