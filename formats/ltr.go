package formats

import (
	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/internal/xdr"
)

// groupCount is the number of Markov position groups an LTR table keeps
// per letter context: start-of-name, middle-of-name, end-of-name
// (spec.md §6: "singles (3×n f32)").
const groupCount = 3

// Table is a decoded LTR Markov name table: letter-probability arrays
// keyed by zero, one, or two letters of preceding context.
//
//   - Singles[g][c]            is P(letter=c | start-of-word, group=g)
//   - Doubles[p][g][c]         is P(letter=c | previous letter p, group g)
//   - Triples[p2][p1][g][c]    is P(letter=c | previous two letters p2,p1, group g)
//
// LetterCount (n) is 26 (no punctuation) or 28 (trailing `'`/`-`) per
// spec.md §6; every array is sized to n.
type Table struct {
	LetterCount uint8
	Singles     [groupCount][]float32
	Doubles     [][groupCount][]float32
	Triples     [][][groupCount][]float32
}

// Decode parses an LTR byte buffer (spec.md §6: 4-ASCII type "LTR ",
// 4-ASCII version "V1.0", letter_count: u8, then singles/doubles/triples
// f32 tables).
func Decode(data []byte) (*Table, error) {
	r := xdr.NewReader(data)
	if r.Len() < 9 {
		return nil, aerrors.NewParseError("formats.Decode", aerrors.TruncatedSection, nil)
	}
	sig := string(r.ReadRaw(4))
	if sig != "LTR " {
		return nil, aerrors.NewParseError("formats.Decode", aerrors.BadSignature, nil)
	}
	ver := string(r.ReadRaw(4))
	if ver != "V1.0" {
		return nil, aerrors.NewParseError("formats.Decode", aerrors.UnsupportedVersion, nil)
	}
	n := int(r.ReadUint8())

	t := &Table{LetterCount: uint8(n)}
	for g := 0; g < groupCount; g++ {
		t.Singles[g] = readFloats(r, n)
	}

	t.Doubles = make([][groupCount][]float32, n)
	for p := 0; p < n; p++ {
		for g := 0; g < groupCount; g++ {
			t.Doubles[p][g] = readFloats(r, n)
		}
	}

	t.Triples = make([][][groupCount][]float32, n)
	for p2 := 0; p2 < n; p2++ {
		t.Triples[p2] = make([][groupCount][]float32, n)
		for p1 := 0; p1 < n; p1++ {
			for g := 0; g < groupCount; g++ {
				t.Triples[p2][p1][g] = readFloats(r, n)
			}
		}
	}

	if err := r.Error(); err != nil {
		return nil, aerrors.NewParseError("formats.Decode", aerrors.TruncatedSection, err)
	}
	return t, nil
}

func readFloats(r *xdr.Reader, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = r.ReadFloat32()
	}
	return out
}

// Encode serializes t back to LTR bytes.
func Encode(t *Table) ([]byte, error) {
	n := int(t.LetterCount)
	w := xdr.NewWriter()
	w.WriteFixed([]byte("LTR "), 4)
	w.WriteFixed([]byte("V1.0"), 4)
	w.WriteUint8(t.LetterCount)

	for g := 0; g < groupCount; g++ {
		if err := writeFloats(w, t.Singles[g], n); err != nil {
			return nil, err
		}
	}
	for p := 0; p < n; p++ {
		for g := 0; g < groupCount; g++ {
			if err := writeFloats(w, t.Doubles[p][g], n); err != nil {
				return nil, err
			}
		}
	}
	for p2 := 0; p2 < n; p2++ {
		for p1 := 0; p1 < n; p1++ {
			for g := 0; g < groupCount; g++ {
				if err := writeFloats(w, t.Triples[p2][p1][g], n); err != nil {
					return nil, err
				}
			}
		}
	}
	return w.Bytes(), nil
}

func writeFloats(w *xdr.Writer, vals []float32, n int) error {
	if len(vals) != n {
		return aerrors.NewSemanticError("formats.Encode", aerrors.InvalidPath, "", nil)
	}
	for _, v := range vals {
		w.WriteFloat32(v)
	}
	return nil
}
