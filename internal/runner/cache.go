package runner

import (
	"fmt"
	"os"

	"github.com/maypok86/otter"

	"github.com/embeddedkit/halgen/internal/cparse"
)

// ParseCache memoizes parsed translation units keyed by path plus
// modification time and size, so watch-mode re-runs only re-parse headers
// that actually changed.
type ParseCache struct {
	cache otter.Cache[string, *cparse.SourceUnit]
}

// NewParseCache creates a cache bounded to capacity entries.
func NewParseCache(capacity int) (*ParseCache, error) {
	cache, err := otter.MustBuilder[string, *cparse.SourceUnit](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("parse cache: %w", err)
	}
	return &ParseCache{cache: cache}, nil
}

// Get returns the cached unit for path if the file is unchanged since it
// was stored.
func (pc *ParseCache) Get(path string) (*cparse.SourceUnit, bool) {
	key, err := cacheKey(path)
	if err != nil {
		return nil, false
	}
	return pc.cache.Get(key)
}

// Put stores the unit under the file's current stamp.
func (pc *ParseCache) Put(path string, unit *cparse.SourceUnit) {
	key, err := cacheKey(path)
	if err != nil {
		return
	}
	pc.cache.Set(key, unit)
}

// Close releases the cache's resources.
func (pc *ParseCache) Close() {
	pc.cache.Close()
}

func cacheKey(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size()), nil
}
