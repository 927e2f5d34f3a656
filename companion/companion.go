// Package companion implements the text-editing projections of spec.md
// §2 C10: XML for GFF, JSON for TLK and LIP, and CSV for 2DA (2DA's own
// CSV round-trip already lives on twoda.Table as ToCSV/FromCSV; this
// package re-exposes it alongside the GFF/TLK/LIP projections so a
// caller has one import for every companion format). These are
// alternate surfaces parallel to the binary codecs (spec.md §2's data
// flow diagram), meant for hand-editing a resource in a text editor and
// re-encoding it losslessly, not for bit-exact binary round-tripping.
//
// Like the teacher's own config package, which reads/writes its
// declarative format with stdlib encoding/xml, these projections use
// stdlib encoding/xml, encoding/json and encoding/csv throughout: no
// pack example reaches for a third-party serialization library for any
// of these three formats, so there is no dependency gap to fill here.
package companion
