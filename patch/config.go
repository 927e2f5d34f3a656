package patch

import (
	"bufio"
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/andastra/andastra/aerrors"
)

// KV is one ordered key=value line of a Section. Order is preserved
// because operations on the same target file execute in declaration
// order (spec.md §4.8.6).
type KV struct {
	Key   string
	Value string
}

// Section is one "[name]" block: name is the patched file's name (e.g.
// "appearance.2da", "p_bastila.utc", "dialog.tlk"), and Keys is the
// ordered list of well-known options and operation directives
// (spec.md §6: "sections per file, ordered keys").
type Section struct {
	Name string
	Keys []KV
}

// Get returns the last value recorded for key, case-insensitively.
func (s Section) Get(key string) (string, bool) {
	val, ok := "", false
	for _, kv := range s.Keys {
		if strings.EqualFold(kv.Key, key) {
			val, ok = kv.Value, true
		}
	}
	return val, ok
}

// Document is a parsed patch configuration: an ordered list of Sections.
type Document struct {
	Sections []Section
}

// ParseConfig parses an INI-shaped patch configuration (spec.md §6).
// Input is decoded as UTF-8 first, falling back to Windows-1252 if it
// isn't valid UTF-8 — the format's documented tolerance for legacy
// modder-authored configs.
func ParseConfig(data []byte) (*Document, error) {
	text := decodeConfigText(data)
	doc := &Document{}
	var cur *Section

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimPrefix(line, "﻿")
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			name := strings.TrimSpace(line[1 : len(line)-1])
			doc.Sections = append(doc.Sections, Section{Name: name})
			cur = &doc.Sections[len(doc.Sections)-1]
			continue
		}
		if cur == nil {
			return nil, aerrors.NewParseError("patch.ParseConfig", aerrors.TruncatedSection, nil)
		}
		eq := strings.Index(line, "=")
		var key, val string
		if eq < 0 {
			key, val = line, ""
		} else {
			key, val = strings.TrimSpace(line[:eq]), strings.TrimSpace(line[eq+1:])
		}
		cur.Keys = append(cur.Keys, KV{Key: key, Value: val})
	}
	if err := scanner.Err(); err != nil {
		return nil, aerrors.NewParseError("patch.ParseConfig", aerrors.TruncatedSection, err)
	}
	return doc, nil
}

func decodeConfigText(data []byte) string {
	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(out)
}
