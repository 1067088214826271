package blocktrie

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanRootAcceptsDirectFileArgument(t *testing.T) {
	dir := t.TempDir()
	a := writeTempFile(t, dir, "a.txt", "content")
	b := writeTempFile(t, dir, "b.txt", "content")

	eng, err := NewEngine(InitParams{Algo: MD5, BlockSize: 4, PathsScan: []string{a, b}})
	require.NoError(t, err)
	require.NoError(t, eng.Run(false))

	classes := classesOf(t, eng)
	require.Len(t, classes, 1)
	require.ElementsMatch(t, []string{a, b}, classes[0])
}

func TestScanRootDirectFileIgnoresExcludeSet(t *testing.T) {
	dir := t.TempDir()
	a := writeTempFile(t, dir, "keep.txt", "content")

	eng, err := NewEngine(InitParams{
		Algo:         MD5,
		BlockSize:    4,
		PathsScan:    []string{a},
		PathsExclude: []string{"keep.txt"},
	})
	require.NoError(t, err)
	require.NoError(t, eng.Run(false))

	classes := classesOf(t, eng)
	require.Len(t, classes, 1)
}

func TestScanRecursiveFollowsSymlinkToRegularFile(t *testing.T) {
	dir := t.TempDir()
	target := writeTempFile(t, dir, "real.txt", "hello world")
	linkPath := filepath.Join(dir, "link.txt")
	if err := os.Symlink(target, linkPath); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	writeTempFile(t, dir, "other.txt", "hello world")

	eng, err := NewEngine(InitParams{Algo: MD5, BlockSize: 4, PathsScan: []string{dir}})
	require.NoError(t, err)
	require.NoError(t, eng.Run(true))

	classes := classesOf(t, eng)
	require.Len(t, classes, 1)
	require.ElementsMatch(t, []string{target, linkPath, filepath.Join(dir, "other.txt")}, classes[0])
}

func TestScanFlatFollowsSymlinkToRegularFile(t *testing.T) {
	dir := t.TempDir()
	target := writeTempFile(t, dir, "real.txt", "hello world")
	linkPath := filepath.Join(dir, "link.txt")
	if err := os.Symlink(target, linkPath); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	eng, err := NewEngine(InitParams{Algo: MD5, BlockSize: 4, PathsScan: []string{dir}})
	require.NoError(t, err)
	require.NoError(t, eng.Run(false))

	classes := classesOf(t, eng)
	require.Len(t, classes, 1)
	require.ElementsMatch(t, []string{target, linkPath}, classes[0])
}

func TestScanRootMissingPathWarnsAndContinues(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope")
	present := writeTempFile(t, dir, "a.txt", "x")

	eng, err := NewEngine(InitParams{
		Algo:      MD5,
		BlockSize: 4,
		PathsScan: []string{missing, filepath.Dir(present)},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	eng.SetDiagnosticSink(&buf)
	require.NoError(t, eng.Run(false))

	require.Contains(t, buf.String(), "nope")
}
