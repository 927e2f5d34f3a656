package installation

import (
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/fnmatch"
)

// SetIgnorePatterns compiles a set of shell-glob patterns (e.g.
// "*.bak", "Thumbs.db") that loadOverride skips when indexing the
// Override directory. Uses gobwas/glob for the richer pattern subset
// (brace/character classes) fnmatch.Convert's POSIX fnmatch semantics
// don't cover.
func (inst *Installation) SetIgnorePatterns(patterns []string) error {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return aerrors.NewSemanticError("installation.SetIgnorePatterns", aerrors.InvalidPath, p, err)
		}
		compiled = append(compiled, g)
	}
	inst.mu.Lock()
	inst.ignore = compiled
	inst.mu.Unlock()
	return nil
}

func (inst *Installation) ignored(name string) bool {
	for _, g := range inst.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// loadOverride indexes the Override directory (recursively: K2 installs
// use Override subfolders as plain namespaces, not a search hierarchy —
// every file anywhere under Override is equally "override"; last one
// found wins if two share a name) by case-insensitive filename, the
// fnmatch.FNM_CASEFOLD way Windows resolves filename lookups.
func (inst *Installation) loadOverride() error {
	root := filepath.Join(inst.root, "Override")
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil
	}

	overrides := make(map[string]string)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		name := info.Name()
		if inst.ignored(name) {
			return nil
		}
		overrides[lowerASCII(name)] = path
		return nil
	})
	if err != nil {
		return aerrors.NewIoError(root, aerrors.FileNotFound, err)
	}

	inst.mu.Lock()
	inst.overrides = overrides
	inst.mu.Unlock()
	return nil
}

// matchOverride looks up a (stem, extension) pair against the override
// index. The index is keyed by lowercased filename for the common exact
// case, but the match itself goes through fnmatch.Match with
// FNM_CASEFOLD so a pattern containing fnmatch metacharacters (a resref
// wildcard a patch's source-file selector produced) is honored the same
// way a case-insensitive filesystem would resolve it.
func (inst *Installation) matchOverride(stem, ext string) (string, bool) {
	want := stem + "." + ext

	inst.mu.RLock()
	defer inst.mu.RUnlock()
	if path, ok := inst.overrides[lowerASCII(want)]; ok {
		return path, ok
	}
	for name, path := range inst.overrides {
		if ok, err := fnmatch.Match(lowerASCII(want), name, fnmatch.FNM_CASEFOLD); err == nil && ok {
			return path, true
		}
	}
	return "", false
}
