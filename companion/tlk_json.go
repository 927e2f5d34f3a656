package companion

import (
	"encoding/json"

	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/internal/cp"
	"github.com/andastra/andastra/resref"
	"github.com/andastra/andastra/tlk"
)

// jsonTLK is the JSON projection of a decoded talk table: one object per
// entry, in StrRef order, so a diff tool or hand-editor can work against
// line-oriented text instead of the packed binary heap.
type jsonTLK struct {
	Language int32         `json:"language"`
	Version  string        `json:"version"`
	Entries  []jsonTLKEntry `json:"entries"`
}

type jsonTLKEntry struct {
	Text        string  `json:"text,omitempty"`
	Sound       string  `json:"sound,omitempty"`
	SoundLength float32 `json:"soundLength,omitempty"`
}

// TLKToJSON renders a decoded talk table to its JSON projection.
func TLKToJSON(t *tlk.Table) ([]byte, error) {
	jt := jsonTLK{Language: int32(t.Language), Version: t.Version}
	for _, e := range t.Entries {
		je := jsonTLKEntry{SoundLength: e.SoundLength}
		if e.HasText() {
			je.Text = e.Text
		}
		if e.HasSound() {
			je.Sound = e.Sound.String()
		}
		jt.Entries = append(jt.Entries, je)
	}
	out, err := json.MarshalIndent(jt, "", "  ")
	if err != nil {
		return nil, aerrors.NewSemanticError("companion.TLKToJSON", aerrors.InvalidPath, "", err)
	}
	return out, nil
}

// TLKFromJSON parses a JSON projection back into a talk table, ready for
// tlk.Encode.
func TLKFromJSON(data []byte) (*tlk.Table, error) {
	var jt jsonTLK
	if err := json.Unmarshal(data, &jt); err != nil {
		return nil, aerrors.NewParseError("companion.TLKFromJSON", aerrors.TruncatedSection, err)
	}
	t := &tlk.Table{Language: cp.Language(jt.Language), Version: jt.Version}
	for _, je := range jt.Entries {
		e := tlk.Entry{SoundLength: je.SoundLength}
		if je.Text != "" {
			e.Text = je.Text
			e.Flags |= tlk.FlagText
		}
		if je.Sound != "" {
			rr, err := resref.New(je.Sound)
			if err != nil {
				return nil, err
			}
			e.Sound = rr
			e.Flags |= tlk.FlagSound
		}
		if e.SoundLength != 0 {
			e.Flags |= tlk.FlagSoundLength
		}
		t.Entries = append(t.Entries, e)
	}
	return t, nil
}
