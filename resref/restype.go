package resref

import "strings"

// Category classifies a ResourceType for dispatch by the archive/resolver
// and companion-codec layers (spec.md §3).
type Category int

const (
	CategoryUnknown Category = iota
	CategoryBinary
	CategoryText
	CategoryGFF
	CategoryArchive
	CategoryAudio
	CategoryImage
	CategoryModel
	CategoryScript
)

func (c Category) String() string {
	switch c {
	case CategoryBinary:
		return "binary"
	case CategoryText:
		return "text"
	case CategoryGFF:
		return "gff"
	case CategoryArchive:
		return "archive"
	case CategoryAudio:
		return "audio"
	case CategoryImage:
		return "image"
	case CategoryModel:
		return "model"
	case CategoryScript:
		return "script"
	default:
		return "unknown"
	}
}

// ResourceType is the tagged record spec.md §3 describes: a numeric code,
// its file extension, and a dispatch category. The BioWare code table is
// externally fixed (not locally assigned), so — unlike internal/intern's
// first-seen id assignment, which the GFF/2DA encoders use — the
// extension<->code map here is a static table built once at package init,
// indexed in both directions (one map by extension, one by code), seeded
// from constants instead of grown on the fly.
type ResourceType struct {
	Code      uint16
	Extension string
	Category  Category
}

// Invalid is the sentinel ResourceType for unrecognized extensions,
// code 0xFFFF per spec.md §3.
var Invalid = ResourceType{Code: 0xFFFF, Extension: "", Category: CategoryUnknown}

var (
	byExtension = map[string]ResourceType{}
	byCode      = map[uint16]ResourceType{}
)

func register(code uint16, ext string, cat Category) {
	rt := ResourceType{Code: code, Extension: ext, Category: cat}
	byExtension[ext] = rt
	byCode[code] = rt
}

func init() {
	register(1, "bmp", CategoryImage)
	register(3, "tga", CategoryImage)
	register(4, "wav", CategoryAudio)
	register(6, "plt", CategoryBinary)
	register(7, "ini", CategoryText)
	register(10, "txt", CategoryText)
	register(2002, "mdl", CategoryModel)
	register(2009, "nss", CategoryScript)
	register(2010, "ncs", CategoryScript)
	register(2012, "mod", CategoryArchive)
	register(2013, "are", CategoryGFF)
	register(2014, "set", CategoryText)
	register(2015, "ifo", CategoryGFF)
	register(2016, "bic", CategoryGFF)
	register(2017, "wok", CategoryBinary)
	register(2018, "2da", CategoryText)
	register(2019, "tlk", CategoryBinary)
	register(2022, "txi", CategoryText)
	register(2023, "git", CategoryGFF)
	register(2024, "bti", CategoryGFF)
	register(2025, "uti", CategoryGFF)
	register(2026, "btc", CategoryGFF)
	register(2027, "utc", CategoryGFF)
	register(2029, "dlg", CategoryGFF)
	register(2030, "itp", CategoryBinary)
	register(2032, "utt", CategoryGFF)
	register(2033, "dds", CategoryImage)
	register(2035, "uts", CategoryGFF)
	register(2036, "ltr", CategoryBinary)
	register(2037, "gff", CategoryGFF)
	register(2038, "fac", CategoryGFF)
	register(2040, "ute", CategoryGFF)
	register(2042, "utd", CategoryGFF)
	register(2044, "utp", CategoryGFF)
	register(2045, "dft", CategoryText)
	register(2046, "gic", CategoryGFF)
	register(2047, "gui", CategoryGFF)
	register(2051, "utm", CategoryGFF)
	register(2052, "dwk", CategoryBinary)
	register(2053, "pwk", CategoryBinary)
	register(2056, "jrl", CategoryGFF)
	register(2058, "utw", CategoryGFF)
	register(2060, "ssf", CategoryBinary)
	register(2065, "ndb", CategoryBinary)
	register(2066, "ptm", CategoryGFF)
	register(2067, "ptt", CategoryGFF)
	register(3000, "lyt", CategoryText)
	register(3001, "vis", CategoryText)
	register(3002, "rim", CategoryArchive)
	register(3003, "pth", CategoryGFF)
	register(3004, "lip", CategoryBinary)
	register(3005, "bwm", CategoryBinary)
	register(3008, "erf", CategoryArchive)
	register(3010, "bif", CategoryArchive)
	register(9999, "key", CategoryArchive)
}

// ByExtension looks up a ResourceType by its file extension (case
// insensitive, with or without a leading dot). Unknown extensions map to
// Invalid, matching spec.md §3.
func ByExtension(ext string) ResourceType {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if rt, ok := byExtension[ext]; ok {
		return rt
	}
	return Invalid
}

// ByCode looks up a ResourceType by its numeric code. Unknown codes map
// to Invalid.
func ByCode(code uint16) ResourceType {
	if rt, ok := byCode[code]; ok {
		return rt
	}
	return Invalid
}

// IsValid reports whether rt is a recognized, non-Invalid ResourceType.
func (rt ResourceType) IsValid() bool {
	return rt.Code != Invalid.Code || rt.Extension != ""
}
