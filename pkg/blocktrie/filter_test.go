package blocktrie

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func statOf(t *testing.T, path string) os.FileInfo {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info
}

func TestFilterExcludesContiguousComponentRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vendor", "pkg"), 0o755))
	path := writeTempFile(t, dir, "vendor/pkg/file.txt", "data")

	f := newFilter(nil, []string{"vendor/pkg"}, 0)
	rel, err := filepath.Rel(dir, path)
	require.NoError(t, err)

	ok, reason := f.admit(path, rel, statOf(t, path), true)
	require.False(t, ok)
	require.Equal(t, "excluded path", reason)
}

func TestFilterExcludeDoesNotMatchPartialComponent(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "vendoring/file.txt", "data")

	f := newFilter(nil, []string{"vendor"}, 0)
	rel, err := filepath.Rel(dir, path)
	require.NoError(t, err)

	ok, _ := f.admit(path, rel, statOf(t, path), true)
	require.True(t, ok)
}

func TestFilterScanRootSkipsExcludeCheck(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "file.txt", "data")

	f := newFilter(nil, []string{"file.txt"}, 0)
	ok, _ := f.admit(path, "", statOf(t, path), false)
	require.True(t, ok)
}

func TestFilterRejectsNonRegularFile(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	f := newFilter(nil, nil, 0)
	ok, reason := f.admit(sub, "sub", statOf(t, sub), true)
	require.False(t, ok)
	require.Equal(t, "not a regular file", reason)
}

func TestFilterPatternRejection(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "file.log", "data")

	f := newFilter([]*regexp.Regexp{regexp.MustCompile(`(?i)\.txt$`)}, nil, 0)
	ok, reason := f.admit(path, "file.log", statOf(t, path), true)
	require.False(t, ok)
	require.Equal(t, "filename does not match any configured pattern", reason)
}

func TestFilterPatternCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "FILE.TXT", "data")

	f := newFilter([]*regexp.Regexp{regexp.MustCompile(`(?i)\.txt$`)}, nil, 0)
	ok, _ := f.admit(path, "FILE.TXT", statOf(t, path), true)
	require.True(t, ok)
}

func TestFilterSizeFloorRejection(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "small.txt", "hi")

	f := newFilter(nil, nil, 10)
	ok, reason := f.admit(path, "small.txt", statOf(t, path), true)
	require.False(t, ok)
	require.Equal(t, "smaller than configured minimum size", reason)
}

func TestFilterNoPatternsAdmitsEverything(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "anything.bin", "data")

	f := newFilter(nil, nil, 0)
	ok, _ := f.admit(path, "anything.bin", statOf(t, path), true)
	require.True(t, ok)
}

func TestContainsContiguous(t *testing.T) {
	require.True(t, containsContiguous([]string{"a", "b", "c"}, []string{"b", "c"}))
	require.True(t, containsContiguous([]string{"a", "b", "c"}, []string{"a"}))
	require.False(t, containsContiguous([]string{"a", "b", "c"}, []string{"c", "b"}))
	require.False(t, containsContiguous([]string{"a", "b"}, []string{"a", "b", "c"}))
	require.False(t, containsContiguous([]string{"a", "b"}, nil))
}
