package blocktrie

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// filter is the candidate admission policy: exclude check, regular-file
// check, filename pattern check, size floor, in that order,
// short-circuiting on the first rejection. Patterns arrive already
// compiled, and exclude paths are split into components once at
// construction, so Run never pays either cost per candidate.
type filter struct {
	patterns    []*regexp.Regexp
	excludes    [][]string // each exclude path pre-split into components
	fileMinSize int64
}

func newFilter(patterns []*regexp.Regexp, excludePaths []string, fileMinSize int64) *filter {
	f := &filter{patterns: patterns, fileMinSize: fileMinSize}
	for _, ex := range excludePaths {
		f.excludes = append(f.excludes, splitPathComponents(ex))
	}
	return f
}

func splitPathComponents(p string) []string {
	clean := filepath.ToSlash(filepath.Clean(p))
	var out []string
	for _, part := range strings.Split(clean, "/") {
		if part != "" && part != "." {
			out = append(out, part)
		}
	}
	return out
}

// excludedRelativeTo reports whether relPath, interpreted relative to the
// scan root under which it was discovered, contains any configured
// exclude path as a contiguous run of path components.
func (f *filter) excludedRelativeTo(relPath string) bool {
	if len(f.excludes) == 0 {
		return false
	}
	components := splitPathComponents(relPath)
	for _, exclude := range f.excludes {
		if containsContiguous(components, exclude) {
			return true
		}
	}
	return false
}

func containsContiguous(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for start := 0; start+len(needle) <= len(haystack); start++ {
		match := true
		for i, part := range needle {
			if haystack[start+i] != part {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func (f *filter) matchesPatterns(filename string) bool {
	if len(f.patterns) == 0 {
		return true
	}
	for _, p := range f.patterns {
		if p.MatchString(filename) {
			return true
		}
	}
	return false
}

// admit applies the four-step decision. checkExclude is false for a
// path named directly as a scan root (it was named explicitly, so the
// exclude set, which is interpreted relative to a scan root, does
// not apply to the root itself).
func (f *filter) admit(path, relPath string, info os.FileInfo, checkExclude bool) (ok bool, reason string) {
	if checkExclude && f.excludedRelativeTo(relPath) {
		return false, "excluded path"
	}
	if !info.Mode().IsRegular() {
		return false, "not a regular file"
	}
	if !f.matchesPatterns(filepath.Base(path)) {
		return false, "filename does not match any configured pattern"
	}
	if info.Size() < f.fileMinSize {
		return false, "smaller than configured minimum size"
	}
	return true, ""
}
