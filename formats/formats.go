// Package formats implements the three bit-exact file formats spec.md
// §6 names alongside the core six codecs but outside the lettered
// C1-C10 module list: LTR Markov name tables, the LYT text layout
// format, and the RIFF/VO/SFX/MP3-in-WAV sound-file wrapper variants.
// LTR is grounded on internal/xdr the same way gff/tlk/twoda are; LYT's
// line-oriented text grammar follows twoda's bufio/strings-based text
// reader rather than reaching for a parser library, since the format is
// a flat sequence of whitespace-tokenized lines with no nesting.
package formats
