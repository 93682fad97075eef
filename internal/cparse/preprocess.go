package cparse

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var quotedInclude = regexp.MustCompile(`^\s*#\s*include\s+"([^"]+)"`)

// expandIncludes inlines quoted #include directives that resolve against the
// including file's directory or the -I search path. The vendor convention
// keeps the handle struct in the sibling header of each hal source file, so
// a single-buffer parse only sees it after inlining. System includes and
// unresolvable files are left as-is; the parser tolerates the unresolved
// types and the per-function failure policy absorbs the rest.
func expandIncludes(path string, source []byte, searchDirs []string, visited map[string]bool) []byte {
	if visited == nil {
		visited = make(map[string]bool)
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		visited[abs] = true
	}

	var out strings.Builder
	for _, line := range strings.SplitAfter(string(source), "\n") {
		m := quotedInclude.FindStringSubmatch(line)
		if m == nil {
			out.WriteString(line)
			continue
		}

		resolved := resolveInclude(m[1], filepath.Dir(path), searchDirs)
		if resolved == "" || visited[resolved] {
			out.WriteString(line)
			continue
		}
		visited[resolved] = true

		data, err := os.ReadFile(resolved)
		if err != nil {
			out.WriteString(line)
			continue
		}
		out.Write(expandIncludes(resolved, data, searchDirs, visited))
		out.WriteString("\n")
	}
	return []byte(out.String())
}

func resolveInclude(name, fromDir string, searchDirs []string) string {
	for _, dir := range append([]string{fromDir}, searchDirs...) {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			abs, err := filepath.Abs(candidate)
			if err == nil {
				return abs
			}
			return candidate
		}
	}
	return ""
}

// applyDefines substitutes object-like macros by whole identifiers. This is
// what makes the forced -D__STATIC_INLINE= and -Dinline= overrides strip the
// storage-class noise off vendor prototypes before tree-sitter sees them.
func applyDefines(source []byte, defs map[string]string) []byte {
	if len(defs) == 0 {
		return source
	}

	var out []byte
	i := 0
	for i < len(source) {
		c := source[i]
		if isIdentStart(c) {
			j := i + 1
			for j < len(source) && isIdentPart(source[j]) {
				j++
			}
			word := string(source[i:j])
			if value, ok := defs[word]; ok {
				out = append(out, value...)
			} else {
				out = append(out, source[i:j]...)
			}
			i = j
			continue
		}
		out = append(out, c)
		i++
	}
	return out
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
