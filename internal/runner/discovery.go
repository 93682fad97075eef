package runner

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

// compiledPattern pairs a pattern string with its compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery finds vendor source files under the immediate
// subdirectories of an input root. The default patterns mirror the vendor
// tree layout: hal implementations live in *hal*.c sources, ll APIs in
// *ll*.h headers.
type FileDiscovery struct {
	rootDir  string
	patterns []compiledPattern
}

// DefaultPatterns match one directory level below the input root.
var DefaultPatterns = []string{"*/*hal*.c", "*/*ll*.h"}

// NewFileDiscovery compiles the glob patterns for the given root.
func NewFileDiscovery(rootDir string, patterns []string) (*FileDiscovery, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	fd := &FileDiscovery{rootDir: rootDir}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		fd.patterns = append(fd.patterns, compiledPattern{pattern: pattern, glob: g})
	}
	return fd, nil
}

// DiscoverFiles walks the root and returns matching files in a stable
// (sorted) order.
func (fd *FileDiscovery) DiscoverFiles() ([]string, error) {
	var files []string
	err := filepath.Walk(fd.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}
		if fd.Matches(filepath.ToSlash(relPath)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Matches reports whether a slash-separated path relative to the root
// matches any discovery pattern.
func (fd *FileDiscovery) Matches(relPath string) bool {
	for _, cp := range fd.patterns {
		if cp.glob.Match(relPath) {
			return true
		}
	}
	return false
}
