package blocktrie

import (
	"io"
	"os"
)

// blockReader positions a file handle at level*blockSize and reads exactly
// blockSize bytes, zero-padding a short final read. It owns one scratch
// buffer reused across every block and every file in a run; callers
// must consume the returned slice before the next readBlock call
// invalidates it.
type blockReader struct {
	blockSize int
	buf       []byte
}

func newBlockReader(blockSize int) *blockReader {
	return &blockReader{blockSize: blockSize, buf: make([]byte, blockSize)}
}

// readBlock reads the level-th block of f, a file of the given total
// size. final reports whether the file has exactly level+1 blocks, i.e.
// whether this block's byte range reaches or passes size, computed
// from size directly rather than inferred from a short read, since a
// file whose length is an exact multiple of blockSize would otherwise
// be read as a full block with no EOF signalled.
func (r *blockReader) readBlock(f *os.File, level int, size int64) (block []byte, final bool, err error) {
	offset := int64(level) * int64(r.blockSize)
	final = offset+int64(r.blockSize) >= size

	n, err := f.ReadAt(r.buf, offset)
	if err != nil && err != io.EOF {
		return nil, false, err
	}

	for i := n; i < r.blockSize; i++ {
		r.buf[i] = 0
	}
	return r.buf[:r.blockSize], final, nil
}
