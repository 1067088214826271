package blocktrie

import (
	"io/fs"
	"os"
	"path/filepath"
)

// scanRoot processes a single configured scan root: existence check,
// direct-file handling, then directory enumeration.
func (e *Engine) scanRoot(root string, recursive bool) {
	info, err := os.Stat(root)
	if err != nil {
		e.warnf("%s: %v", root, err)
		return
	}

	if info.Mode().IsRegular() {
		if ok, reason := e.filter.admit(root, "", info, false); ok {
			e.debugf(2, "admit %s", root)
			e.insert(root, info.Size())
		} else {
			e.debugf(2, "reject %s: %s", root, reason)
		}
		return
	}

	if !info.IsDir() {
		e.warnf("%s: not a regular file or directory", root)
		return
	}

	e.debugf(1, "scanning %s (recursive=%v)", root, recursive)
	if recursive {
		e.scanRecursive(root)
	} else {
		e.scanFlat(root)
	}
}

// scanFlat enumerates only the direct entries of root.
func (e *Engine) scanFlat(root string) {
	entries, err := os.ReadDir(root)
	if err != nil {
		e.warnf("%s: %v", root, err)
		return
	}
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		e.considerCandidate(root, path)
	}
}

// scanRecursive enumerates every entry under root, depth-first.
func (e *Engine) scanRecursive(root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			e.warnf("%s: %v", path, err)
			return nil
		}
		if path == root {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		e.considerCandidate(root, path)
		return nil
	})
	if err != nil {
		e.warnf("%s: %v", root, err)
	}
}

// considerCandidate resolves path through os.Stat rather than trusting
// the DirEntry the walk handed us: DirEntry.Info() reports the link
// itself for a symlink, which would reject every symlinked regular file
// at the admit step below. os.Stat follows the link, matching the
// filesystem-layer symlink policy the regular-file check is supposed to
// honour.
func (e *Engine) considerCandidate(root, path string) {
	info, err := os.Stat(path)
	if err != nil {
		e.warnf("%s: %v", path, err)
		return
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	if ok, reason := e.filter.admit(path, rel, info, true); ok {
		e.debugf(2, "admit %s", path)
		e.insert(path, info.Size())
	} else {
		e.debugf(2, "reject %s: %s", path, reason)
	}
}
