package blocktrie

import "sort"

// frame is one choice point on the current descent path: the internal
// node n, its children's keys in ascending order, and which key has
// been taken.
type frame struct {
	n    *node
	keys []BlockKey
	idx  int
}

// Iterator is a forward, single-pass traversal over equivalence classes,
// modelled on a C++ forward iterator. Its zero value is not
// usable; obtain one from Engine.Begin or Engine.End.
type Iterator struct {
	eng     *Engine
	gen     uint64
	sizes   []uint64
	sizeIdx int
	stack   []frame
	current *node
	atEnd   bool
}

// Begin returns an iterator positioned at the first equivalence class in
// ascending size-bucket, then depth-first left-to-right key order. The
// size ordering is captured once, at Begin time; it is not affected by
// subsequent Run calls, which instead invalidate the iterator outright.
func (e *Engine) Begin() Iterator {
	it := Iterator{eng: e, gen: e.generation, sizes: sortedSizeKeys(e.trie.buckets)}
	it.seekFirstLeaf()
	return it
}

// End returns the canonical past-the-end iterator.
func (e *Engine) End() Iterator {
	return Iterator{eng: e, gen: e.generation, atEnd: true}
}

// Equal reports whether two iterators denote the same position. Two end
// iterators are always equal to each other regardless of how they were
// produced.
func (it Iterator) Equal(other Iterator) bool {
	if it.atEnd || other.atEnd {
		return it.atEnd == other.atEnd
	}
	if it.sizeIdx != other.sizeIdx || it.current != other.current || len(it.stack) != len(other.stack) {
		return false
	}
	for i := range it.stack {
		if it.stack[i].n != other.stack[i].n || it.stack[i].idx != other.stack[i].idx {
			return false
		}
	}
	return true
}

// Next advances the iterator to the next equivalence class. It panics
// with a bad-access condition if called on an end iterator.
func (it *Iterator) Next() {
	if it.atEnd || it.gen != it.eng.generation {
		panicBadAccess()
	}
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.idx+1 < len(top.keys) {
			top.idx++
			it.descendLeft(top.n.children[top.keys[top.idx]])
			return
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	it.sizeIdx++
	it.seekFirstLeaf()
}

// Accessor dereferences the iterator. It panics with a bad-access
// condition on an end iterator or one invalidated by a later Run.
func (it Iterator) Accessor() Accessor {
	if it.atEnd || it.current == nil || it.gen != it.eng.generation {
		panicBadAccess()
	}
	return Accessor{eng: it.eng, gen: it.gen, files: it.current.files}
}

func (it *Iterator) seekFirstLeaf() {
	if it.sizeIdx >= len(it.sizes) {
		it.atEnd = true
		it.stack = nil
		it.current = nil
		return
	}
	it.stack = it.stack[:0]
	it.descendLeft(it.eng.trie.buckets[it.sizes[it.sizeIdx]])
}

// descendLeft walks from n down the leftmost (lowest-key) child at each
// internal node, pushing a frame per level, until it reaches a leaf.
func (it *Iterator) descendLeft(n *node) {
	for !n.isLeaf() {
		keys := sortedBlockKeys(n.children)
		it.stack = append(it.stack, frame{n: n, keys: keys, idx: 0})
		n = n.children[keys[0]]
	}
	it.current = n
}

// Accessor is a borrowed handle on one leaf, exposing its paths through
// a visitor. It is invalidated by any subsequent Run on the owning
// Engine.
type Accessor struct {
	eng   *Engine
	gen   uint64
	files []string
}

// Visit calls fn once per path in this equivalence class, in the order
// they were inserted. It panics with a bad-access condition if the
// Accessor has been invalidated.
func (a Accessor) Visit(fn func(path string)) {
	if a.eng == nil || a.gen != a.eng.generation {
		panicBadAccess()
	}
	for _, p := range a.files {
		fn(p)
	}
}

func sortedBlockKeys(children map[BlockKey]*node) []BlockKey {
	keys := make([]BlockKey, 0, len(children))
	for k := range children {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedSizeKeys(buckets map[uint64]*node) []uint64 {
	keys := make([]uint64, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
