// Package config holds Andastra's process-wide, read-mostly state as an
// explicit Config value (spec.md §9: "wire them through an explicit
// Config value rather than globals"): the set of recognized archive and
// resource extensions, default resolver tuning, and patch-engine
// defaults such as whether SkipIfNotReplace is honored when a change set
// doesn't set it explicitly.
//
// It is loaded from an optional TOML file via github.com/BurntSushi/toml
// — the config-file library the retrieval pack's holo-build example uses
// for exactly this kind of small, hand-editable build/tool
// configuration — with defaults applied via a `default` struct tag
// walked by reflection, the same mechanism the teacher's own
// config.Configuration uses (config_old_reference/config.go's
// setDefaults), just rendered as TOML instead of XML since there is no
// legacy XML file here to stay wire-compatible with.
//
// This is distinct from the patch change set (spec.md §4.8, §6), an
// INI-shaped document read by the patch package in TSLPatcher's own
// format, unrelated to this ambient config layer.
package config

import (
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the explicit process-wide configuration value.
type Config struct {
	// DefaultCodepage names the internal/cp.Language fallback used when a
	// TLK or GFF LocalizedString's language ID can't be determined from
	// context (spec.md §4.1's UTF-8 -> ASCII -> cp1252 chain starts here).
	// No package reads this field: internal/cp picks its codepages from
	// the language ID alone and falls back to cp1252 unconditionally.
	DefaultCodepage string `toml:"default_codepage" default:"cp1252"`

	// KnownArchiveExtensions lists the archive extensions of an install
	// root (spec.md §4.6). No package reads this field: the Installation
	// resolver recognizes archive extensions from its own fixed list.
	KnownArchiveExtensions []string `toml:"known_archive_extensions" default:"key,bif,erf,mod,sav,rim"`

	// OverrideIgnorePatterns are glob patterns (github.com/gobwas/glob
	// syntax) for the override/ directory scan. No package reads this
	// field; the patch command does not pass it to the resolver.
	OverrideIgnorePatterns []string `toml:"override_ignore_patterns"`

	// ResolverCacheSize bounds the LRU of materialized resources and
	// resolved lookups the Installation resolver keeps in memory
	// (github.com/hashicorp/golang-lru/v2-backed).
	ResolverCacheSize int `toml:"resolver_cache_size" default:"512"`

	// PatchSkipIfNotReplaceDefault is the SkipIfNotReplace value a
	// FilePatch section takes when the patch configuration doesn't set
	// it explicitly (spec.md §4.8.6 only defines the behavior once the
	// key is present; the default when absent is our own call). No package
	// reads this field: BuildChangeSet leaves SkipIfNotReplace false when
	// the section doesn't set it.
	PatchSkipIfNotReplaceDefault bool `toml:"patch_skip_if_not_replace_default" default:"false"`

	// NSSCompilerCommand is the default external compiler invocation
	// template for patch.ExternalCompiler (spec.md §4.8.5), e.g.
	// "nwnnsscomp -c {source} -o {output}". Empty disables compilation;
	// NSS operations then only perform token substitution.
	NSSCompilerCommand string `toml:"nss_compiler_command"`
}

// Default returns a Config with every `default` tag applied and no TOML
// file consulted.
func Default() Config {
	var c Config
	setDefaults(&c)
	return c
}

// Load reads path as TOML over a Default() base; a missing file yields
// the defaults unchanged, matching the teacher's "absent config is not
// an error" Load semantics.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, err
	}
	if _, err := toml.Decode(string(data), &c); err != nil {
		return c, err
	}
	return c, nil
}

// setDefaults walks data's fields and, for any zero-valued field tagged
// `default:"..."`, assigns the tag's value — adapted from the teacher's
// config_old_reference/config.go setDefaults, generalized from its
// string/int/bool/[]string switch to also split comma-separated slice
// defaults (TOML has no "append on top of a tag default" decode quirk
// the teacher's XML decoder had, so there is no separate
// fillNilSlices pass here).
func setDefaults(data interface{}) {
	s := reflect.ValueOf(data).Elem()
	t := s.Type()

	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		tag := t.Field(i).Tag.Get("default")
		if tag == "" {
			continue
		}
		switch f.Interface().(type) {
		case string:
			if f.String() == "" {
				f.SetString(tag)
			}
		case int:
			if f.Int() == 0 {
				if n, err := strconv.ParseInt(tag, 10, 64); err == nil {
					f.SetInt(n)
				}
			}
		case bool:
			if !f.Bool() {
				f.SetBool(tag == "true")
			}
		case []string:
			if f.Len() == 0 {
				f.Set(reflect.ValueOf(strings.Split(tag, ",")))
			}
		}
	}
}
