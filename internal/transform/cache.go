package transform

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"sync"

	"github.com/barrelsplit/barrelsplit/internal/barrel"
	"github.com/barrelsplit/barrelsplit/internal/fs"
	"github.com/barrelsplit/barrelsplit/internal/js_parser"
	"github.com/barrelsplit/barrelsplit/internal/logger"
)

// defaultCacheCapacity bounds the number of distinct barrel files a Cache
// will hold onto at once. Real projects have few barrel files relative to
// the number of host files importing from them, so this is generous
// headroom rather than a tight budget — it exists so a pathological
// project, or a long-lived cache shared across many files, can't grow the
// cache without bound.
const defaultCacheCapacity = 1024

// barrelEntry is what Cache stores per absolute path: at most one of
// descriptor or failure is non-nil, mirroring barrel.ValidateBarrel's own
// result shape so a cache hit can be replayed exactly as if validation had
// just run again.
type barrelEntry struct {
	descriptor *barrel.Descriptor
	failure    barrel.Failure
}

// Cache memoises parsed-and-validated barrel descriptors (or their
// validation failures) and file-existence checks for the lifetime of the
// compilation unit that owns it. A Cache is safe for concurrent use; the
// host compiler may transform many files in parallel, but a Cache instance
// itself is meant to be owned by one transform driver (or shared behind
// one lock) rather than contended from many goroutines at once.
type Cache struct {
	barrels *lru.Cache[string, *barrelEntry]

	existsMu sync.Mutex
	exists   map[string]bool
}

// NewCache creates an empty Cache scoped to one compilation run, or reused
// across runs when the host doesn't expose a file-change signal — this
// package makes no attempt at mtime-based invalidation beyond what
// ModKey-keyed callers choose to layer on top.
func NewCache() *Cache {
	barrels, err := lru.New[string, *barrelEntry](defaultCacheCapacity)
	if err != nil {
		// Only returns an error for a non-positive size, which the constant
		// above never is.
		panic(err)
	}
	return &Cache{barrels: barrels, exists: make(map[string]bool)}
}

// FileExists answers fileSystem.FileExists(absPath), memoised. The alias
// engine calls this once per candidate template per import; without
// memoising it, resolving the same alias from many host files in one run
// would re-stat the same handful of barrel files repeatedly.
func (c *Cache) FileExists(fileSystem fs.FS, absPath string) bool {
	c.existsMu.Lock()
	defer c.existsMu.Unlock()
	if exists, ok := c.exists[absPath]; ok {
		return exists
	}
	exists := fileSystem.FileExists(absPath)
	c.exists[absPath] = exists
	return exists
}

// Load returns the validated barrel descriptor for the file at absPath,
// reading, parsing and validating it only when no entry for absPath is
// cached; once more than defaultCacheCapacity barrels have been loaded, the
// least recently used entry is evicted and is read again on its next Load. At
// most one of (descriptor, failure) is non-nil on a nil-error return; err
// is non-nil only for an outright read or parse failure (E_FILE_READ /
// E_FILE_PARSE), which is never cached — a transient read error on one
// call shouldn't poison every later attempt to load the same path.
func (c *Cache) Load(fileSystem fs.FS, absPath string) (*barrel.Descriptor, barrel.Failure, error) {
	if entry, ok := c.barrels.Get(absPath); ok {
		return entry.descriptor, entry.failure, nil
	}

	contents, readErr := fileSystem.ReadFile(absPath)
	if readErr != nil {
		return nil, nil, errFileRead(absPath, readErr)
	}

	log := logger.NewDeferLog()
	source := logger.Source{KeyPath: logger.Path{Text: absPath}, PrettyPath: absPath, Contents: contents}
	file := js_parser.Parse(log, source)
	if log.HasErrors() {
		return nil, nil, errFileParse(absPath, log.Done())
	}

	descriptor, failure := barrel.ValidateBarrel(absPath, file)
	c.barrels.Add(absPath, &barrelEntry{descriptor: descriptor, failure: failure})
	return descriptor, failure, nil
}
