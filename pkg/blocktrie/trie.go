package blocktrie

import (
	"fmt"
	"os"
)

// node is either a leaf (files non-empty, children empty, one
// equivalence class) or internal (children non-empty, files empty).
// The only node where both are legitimately empty is a freshly allocated
// root bucket, and only until its first insertion completes.
type node struct {
	files    []string
	children map[BlockKey]*node
}

func (n *node) isLeaf() bool { return len(n.files) > 0 }

// trie holds every accepted file of a single run, partitioned first by
// size and then by successive block digests. It is rebuilt from scratch
// on every run; nothing about it persists across calls.
type trie struct {
	buckets map[uint64]*node
}

func newTrie() *trie {
	return &trie{buckets: make(map[uint64]*node)}
}

// insert walks one accepted candidate into the trie by lazy promotion: a
// node is pushed one level deeper only when a second file of the same
// size collides with it, and a file is hashed at level k only when some
// other file of the same size also needs to be distinguished at level k
// or deeper.
func (t *trie) insert(path string, size int64, br *blockReader, dg *digester, warn func(string)) {
	bucket, ok := t.buckets[uint64(size)]
	if !ok {
		t.buckets[uint64(size)] = &node{files: []string{path}}
		return
	}

	f, err := os.Open(path)
	if err != nil {
		warn(fmt.Sprintf("%s: %v", path, err))
		return
	}
	defer f.Close()

	n := bucket
	level := 0
	for {
		if n.isLeaf() {
			if !n.promote(level, size, br, dg, warn) {
				// Every incumbent was lost to an I/O error during
				// re-read; F is the sole survivor at this node.
				n.files = []string{path}
				return
			}
		}

		block, final, err := br.readBlock(f, level, size)
		if err != nil {
			warn(fmt.Sprintf("%s: %v", path, err))
			return
		}

		d := dg.digest(block)
		child, exists := n.children[d]
		if !exists {
			// No other file shares this prefix: F becomes a singleton
			// leaf here and is hashed no deeper.
			n.children[d] = &node{files: []string{path}}
			return
		}

		if final {
			child.files = append(child.files, path)
			return
		}
		n = child
		level++
	}
}

// promote pushes a leaf node one level deeper by hashing block `level`
// of a representative incumbent. The siblings in n.files are known
// identical through every block before `level`, so moving the whole
// list under the representative's digest preserves their equivalence
// class. If the representative's re-read fails, it is dropped (chosen
// policy: drop the incumbent, keep the new file) and the next element
// becomes the representative. promote returns false only when every
// remaining incumbent was unreadable, in which case n.files is left
// empty for the caller to repopulate.
func (n *node) promote(level int, size int64, br *blockReader, dg *digester, warn func(string)) bool {
	for len(n.files) > 0 {
		rep := n.files[0]

		f, err := os.Open(rep)
		if err != nil {
			warn(fmt.Sprintf("%s: dropped during promotion: %v", rep, err))
			n.files = n.files[1:]
			continue
		}
		block, _, err := br.readBlock(f, level, size)
		f.Close()
		if err != nil {
			warn(fmt.Sprintf("%s: dropped during promotion: %v", rep, err))
			n.files = n.files[1:]
			continue
		}

		d := dg.digest(block)
		n.children = map[BlockKey]*node{d: {files: n.files}}
		n.files = nil
		return true
	}
	return false
}
