package installation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/greatroar/blobloom"
	"github.com/syndtr/goleveldb/leveldb"
	"golang.org/x/sync/errgroup"

	"github.com/andastra/andastra/aerrors"
	"github.com/andastra/andastra/archive"
	"github.com/andastra/andastra/archive/erf"
	"github.com/andastra/andastra/archive/key"
	"github.com/andastra/andastra/archive/rim"
	"github.com/andastra/andastra/internal/logger"
	isync "github.com/andastra/andastra/internal/sync"
	"github.com/andastra/andastra/resref"
)

// Location names one rung of the search-order ladder spec.md §4.6
// defines, most specific first: override wins over modules, which win
// over the base chitin archives, which win over texture packs and lips.
type Location int

const (
	LocationOverride Location = iota
	LocationModules
	LocationChitin
	LocationTexturePacks
	LocationLips
	numLocations
)

func (l Location) String() string {
	switch l {
	case LocationOverride:
		return "override"
	case LocationModules:
		return "modules"
	case LocationChitin:
		return "chitin"
	case LocationTexturePacks:
		return "texturepacks"
	case LocationLips:
		return "lips"
	default:
		return "unknown"
	}
}

type archiveHandle struct {
	path string
	a    archive.Archive
}

// Installation is a resolved, cached view over a single game root.
type Installation struct {
	root string
	game Game
	log  *logger.Logger

	mu        isync.RWMutex
	overrides map[string]string // lower(resref+"."+ext) -> absolute path
	ignore    []glob.Glob
	archives  [numLocations][]archiveHandle

	cache    *lru.Cache[string, []byte]
	negative *blobloom.Filter // per-resource-key negative lookup, avoids re-scanning archives for misses
	disk     *leveldb.DB      // optional on-disk cache, nil unless WithDiskCache is given
}

// Option configures an Installation at construction time.
type Option func(*options)

type options struct {
	diskCachePath string
	cacheSize     int
	log           *logger.Logger
}

// WithDiskCache enables an on-disk goleveldb-backed resolved-bytes cache
// at path, surviving across process runs.
func WithDiskCache(path string) Option {
	return func(o *options) { o.diskCachePath = path }
}

// WithCacheSize overrides the in-memory LRU cache's entry capacity
// (default 4096).
func WithCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

// WithLogger attaches a logger; defaults to logger.DefaultLogger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// Open discovers and loads every archive under root, building the
// resolver's search-order index. Module archives (in the Modules/
// subdirectory) are opened in parallel via errgroup, since there are
// typically dozens of independent .rim/.mod/.erf files and each open is
// pure CPU + disk I/O with no shared state until the results are merged.
func Open(root string, opts ...Option) (*Installation, error) {
	o := options{cacheSize: 4096, log: logger.DefaultLogger}
	for _, opt := range opts {
		opt(&o)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, aerrors.NewIoError(root, aerrors.FileNotFound, err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	game := DetectGame(names)

	cache, err := lru.New[string, []byte](o.cacheSize)
	if err != nil {
		return nil, err
	}
	inst := &Installation{
		root:     root,
		game:     game,
		log:      o.log,
		mu:       isync.NewRWMutex(),
		cache:    cache,
		negative: blobloom.NewOptimized(blobloom.Config{Capacity: 1 << 16, FPRate: 0.01}),
	}

	if o.diskCachePath != "" {
		db, err := leveldb.OpenFile(o.diskCachePath, nil)
		if err != nil {
			return nil, aerrors.NewIoError(o.diskCachePath, aerrors.FileNotFound, err)
		}
		inst.disk = db
	}

	if err := inst.loadChitin(); err != nil {
		return nil, err
	}
	if err := inst.loadOverride(); err != nil {
		return nil, err
	}
	if err := inst.loadArchiveDir("Modules", LocationModules); err != nil {
		return nil, err
	}
	if err := inst.loadArchiveDir("TexturePacks", LocationTexturePacks); err != nil {
		return nil, err
	}
	if err := inst.loadArchiveDir("Lips", LocationLips); err != nil {
		return nil, err
	}

	inst.log.Verbosef("installation: opened %s (%s), %d override files, %d chitin bifs", root, game, len(inst.overrides), len(inst.archives[LocationChitin]))
	return inst, nil
}

// Root returns the installation's root directory, as passed to Open.
func (inst *Installation) Root() string { return inst.root }

// GameKind returns the detected game variant.
func (inst *Installation) GameKind() Game { return inst.game }

// Close releases the on-disk cache, if any.
func (inst *Installation) Close() error {
	if inst.disk != nil {
		return inst.disk.Close()
	}
	return nil
}

func (inst *Installation) loadChitin() error {
	keyPath := filepath.Join(inst.root, "chitin.key")
	data, err := os.ReadFile(keyPath)
	if os.IsNotExist(err) {
		return nil // a partial/test fixture installation may have no chitin
	}
	if err != nil {
		return aerrors.NewIoError(keyPath, aerrors.FileNotFound, err)
	}
	dir, err := key.DecodeKey(data)
	if err != nil {
		return err
	}

	bifs := make([]*key.Bif, len(dir.Bifs))
	var g errgroup.Group
	for i, b := range dir.Bifs {
		i, b := i, b
		g.Go(func() error {
			bifPath := filepath.Join(inst.root, filepath.FromSlash(strings.ReplaceAll(b.Filename, "\\", "/")))
			bytes, err := os.ReadFile(bifPath)
			if err != nil {
				return aerrors.NewIoError(bifPath, aerrors.FileNotFound, err)
			}
			bif, err := key.DecodeBif(bytes)
			if err != nil {
				return err
			}
			bifs[i] = bif
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	a := key.NewArchive(dir, bifs)
	inst.archives[LocationChitin] = append(inst.archives[LocationChitin], archiveHandle{path: keyPath, a: a})
	return nil
}

func (inst *Installation) loadArchiveDir(subdir string, loc Location) error {
	dirPath := filepath.Join(inst.root, subdir)
	entries, err := os.ReadDir(dirPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return aerrors.NewIoError(dirPath, aerrors.FileNotFound, err)
	}

	type result struct {
		idx int
		h   archiveHandle
		err error
	}
	results := make([]result, len(entries))
	var g errgroup.Group
	for i, e := range entries {
		i, e := i, e
		if e.IsDir() {
			continue
		}
		g.Go(func() error {
			a, err := openArchiveFile(filepath.Join(dirPath, e.Name()))
			results[i] = result{idx: i, h: archiveHandle{path: e.Name(), a: a}, err: err}
			return nil // collect per-file errors rather than aborting the whole scan
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.err != nil || r.h.a == nil {
			continue
		}
		inst.archives[loc] = append(inst.archives[loc], r.h)
	}
	return nil
}

func openArchiveFile(path string) (archive.Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, aerrors.NewIoError(path, aerrors.FileNotFound, err)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "rim":
		dir, err := rim.Decode(data)
		if err != nil {
			return nil, err
		}
		return rim.NewArchive(dir), nil
	case "erf", "mod", "sav":
		dir, err := erf.Decode(data)
		if err != nil {
			return nil, err
		}
		return erf.NewArchive(dir), nil
	default:
		return nil, aerrors.NewSemanticError("installation.openArchiveFile", aerrors.SelectorNoMatch, path, nil)
	}
}

// resourceKey builds the map/cache key for a (resref, restype) pair.
func resourceKey(ref resref.ResRef, rt resref.ResourceType) string {
	return fmt.Sprintf("%s.%s", strings.ToLower(ref.String()), rt.Extension)
}
