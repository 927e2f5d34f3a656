package installation

import (
	"hash/maphash"
	"os"

	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/archive"
	"github.com/andastra/andastra/resref"
)

var seed = maphash.MakeSeed()

func hashKey(s string) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteString(s)
	return h.Sum64()
}

// diskKey builds the on-disk cache key: one byte holding the root path's
// length (mirroring files_old_reference/leveldb.go's keyTypeNode/
// keyTypeGlobal prefix scheme), the root path, then the resource key
// string, so different Installation roots sharing one leveldb directory
// get separate key spaces.
func diskKey(root, key string) []byte {
	b := make([]byte, 0, len(root)+len(key)+1)
	b = append(b, byte(len(root)))
	b = append(b, root...)
	b = append(b, key...)
	return b
}

// Resolve returns the bytes for (ref, rt), honoring the search-order
// precedence of spec.md §4.6: override, then modules, then chitin
// KEY/BIF, then texture packs, then lips. Within a tier, the first
// archive in load order that holds the resource wins; Modules are loaded
// in the directory's natural sort order.
func (inst *Installation) Resolve(ref resref.ResRef, rt resref.ResourceType) ([]byte, error) {
	k := resourceKey(ref, rt)

	if b, ok := inst.cache.Get(k); ok {
		return b, nil
	}

	h := hashKey(k)
	if inst.negative.Has(h) {
		return nil, aerrors.NewSemanticError("installation.Resolve", aerrors.UnknownResource, k, nil)
	}

	if inst.disk != nil {
		if b, err := inst.disk.Get(diskKey(inst.root, k), nil); err == nil {
			inst.cache.Add(k, b)
			return b, nil
		}
	}

	if b, ok := inst.resolveUncached(ref, rt); ok {
		inst.cache.Add(k, b)
		if inst.disk != nil {
			_ = inst.disk.Put(diskKey(inst.root, k), b, nil)
		}
		return b, nil
	}

	inst.negative.Add(h)
	return nil, aerrors.NewSemanticError("installation.Resolve", aerrors.UnknownResource, k, nil)
}

func (inst *Installation) resolveUncached(ref resref.ResRef, rt resref.ResourceType) ([]byte, bool) {
	if path, ok := inst.matchOverride(ref.String(), rt.Extension); ok {
		if b, err := readFile(path); err == nil {
			return b, true
		}
	}

	for _, loc := range []Location{LocationModules, LocationChitin, LocationTexturePacks, LocationLips} {
		if b, ok := inst.resolveInTier(loc, ref, rt); ok {
			return b, true
		}
	}
	return nil, false
}

func (inst *Installation) resolveInTier(loc Location, ref resref.ResRef, rt resref.ResourceType) ([]byte, bool) {
	inst.mu.RLock()
	handles := append([]archiveHandle(nil), inst.archives[loc]...)
	inst.mu.RUnlock()

	for _, h := range handles {
		for _, e := range h.a.Entries() {
			if e.ResType.Code != rt.Code || !e.ResRef.Equals(ref) {
				continue
			}
			b, err := h.a.Read(e.Location)
			if err != nil {
				continue
			}
			return b, true
		}
	}
	return nil, false
}

// ResolveAny tries every extension in candidates, in order, returning the
// first hit. This is what a GFF field or module loader uses when it
// knows a resref but the resource could be one of several related types
// (e.g. a model could be .mdl or .mdx), mirroring spec.md §4.6's
// multi-extension resolution note.
func (inst *Installation) ResolveAny(ref resref.ResRef, candidates []resref.ResourceType) ([]byte, resref.ResourceType, error) {
	for _, rt := range candidates {
		if b, err := inst.Resolve(ref, rt); err == nil {
			return b, rt, nil
		}
	}
	return nil, resref.Invalid, aerrors.NewSemanticError("installation.ResolveAny", aerrors.UnknownResource, ref.String(), nil)
}

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Entries returns every archived resource this Installation can resolve,
// most-specific tier first; override files are not listed. Duplicate
// (resref, restype) pairs across tiers are suppressed, keeping only the
// highest-priority hit — the same shadowing Resolve applies.
func (inst *Installation) Entries() []archive.Entry {
	seen := make(map[string]bool)
	var out []archive.Entry

	// Override entries are resolved by filename match (matchOverride), not
	// listed here: a bare override filename alone doesn't carry enough
	// information to reconstruct a ResourceType category reliably.
	for _, loc := range []Location{LocationModules, LocationChitin, LocationTexturePacks, LocationLips} {
		inst.mu.RLock()
		handles := append([]archiveHandle(nil), inst.archives[loc]...)
		inst.mu.RUnlock()
		for _, h := range handles {
			for _, e := range h.a.Entries() {
				key := resourceKey(e.ResRef, e.ResType)
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, e)
			}
		}
	}
	return out
}
