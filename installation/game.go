// Package installation implements the resource resolver spec.md §3/§4.6
// describes: given a game root directory, it locates and decodes the
// archives and loose files that make up an installation, then answers
// "give me the bytes for this (resref, restype)" honoring a fixed
// search-order precedence. Composite cache keys are grounded on
// files_old_reference/leveldb.go's keyTypeNode/keyTypeGlobal prefix-byte
// namespacing idea; parallel archive discovery on golang.org/x/sync's
// errgroup the way syncthing's own discovery code fans out lookups.
package installation

// Game identifies which BioWare title an Installation root belongs to;
// the two titles this module targets differ in TLK baseline size
// (tlk.BaselineK1/BaselineK2) and in a handful of default search paths.
type Game int

const (
	GameUnknown Game = iota
	GameKOTOR1
	GameKOTOR2
)

func (g Game) String() string {
	switch g {
	case GameKOTOR1:
		return "kotor1"
	case GameKOTOR2:
		return "kotor2"
	default:
		return "unknown"
	}
}

// executableNames lists the platform-specific binary names used to
// detect which game (if either) lives at a candidate root.
var executableNames = map[Game][]string{
	GameKOTOR1: {"swkotor.exe", "KOTOR"},
	GameKOTOR2: {"swkotor2.exe", "KOTOR2"},
}

// DetectGame inspects a root directory's entry names (as returned by a
// directory listing) for a known executable, reporting which game (if
// any) the root belongs to.
func DetectGame(entryNames []string) Game {
	lower := make(map[string]bool, len(entryNames))
	for _, n := range entryNames {
		lower[lowerASCII(n)] = true
	}
	for _, game := range []Game{GameKOTOR1, GameKOTOR2} {
		for _, exe := range executableNames[game] {
			if lower[lowerASCII(exe)] {
				return game
			}
		}
	}
	return GameUnknown
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
