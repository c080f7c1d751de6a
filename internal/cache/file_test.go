package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_RejectsMissingAndNonDir(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing"), Options{})
	require.ErrorIs(t, err, ErrInvalidArgument)

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	_, err = Open(file, Options{})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOpen_EquivalentPathsShareEntries(t *testing.T) {
	dir := t.TempDir()

	a, err := Open(dir+"/", Options{})
	require.NoError(t, err)
	b, err := Open(dir+"//", Options{})
	require.NoError(t, err)
	c, err := Open(dir+"/./", Options{})
	require.NoError(t, err)

	require.Equal(t, a.Dir(), b.Dir())
	require.Equal(t, a.Dir(), c.Dir())

	ok, err := a.Set("foo", "bar", nil)
	require.NoError(t, err)
	require.True(t, ok)

	v, err := b.Get("foo", nil)
	require.NoError(t, err)
	require.Equal(t, "bar", v)
}

func TestOpen_ResolvesSymlink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(t.TempDir(), "link")
	require.NoError(t, os.Symlink(dir, link))

	s, err := Open(link, Options{})
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	require.Equal(t, want, s.Dir())
}

func TestFileStore_OneFilePerKey(t *testing.T) {
	s, err := Open(t.TempDir(), Options{})
	require.NoError(t, err)

	_, _ = s.Set("foo.bar", 1, nil)
	_, _ = s.Set("Baz_9", 2, nil)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"foo.bar", "Baz_9"}, names)
	assert.Equal(t, filepath.Join(s.Dir(), "foo.bar"), s.Path("foo.bar"))
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, Options{})
	require.NoError(t, err)
	Register(map[string]int{})
	ok, err := s.Set("foo", map[string]int{"a": 1}, nil)
	require.NoError(t, err)
	require.True(t, ok)

	s2, err := Open(dir, Options{})
	require.NoError(t, err)
	v, err := s2.Get("foo", nil)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"a": 1}, v)
}

func TestFileStore_CorruptRecordIsMiss(t *testing.T) {
	s, err := Open(t.TempDir(), Options{})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.Path("bad"), []byte("not a record"), 0o600))

	v, err := s.Get("bad", "def")
	require.NoError(t, err)
	require.Equal(t, "def", v)

	has, _ := s.Has("bad")
	require.True(t, has)
}

func TestFileStore_DirectoriesAreNotEntries(t *testing.T) {
	s, err := Open(t.TempDir(), Options{})
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(s.Path("sub"), 0o755))

	has, err := s.Has("sub")
	require.NoError(t, err)
	require.False(t, has)

	for _, k := range []string{"sub", ".", ".."} {
		ok, err := s.Delete(k)
		require.NoError(t, err)
		require.False(t, ok, k)
	}
	_, err = os.Stat(s.Dir())
	require.NoError(t, err, "root must survive Delete(\".\")")

	ok, err := s.Set("sub", "v", nil)
	require.NoError(t, err)
	require.False(t, ok, "cannot write over a directory")
}

func TestFileStore_ClearSkipsSubdirectories(t *testing.T) {
	s, err := Open(t.TempDir(), Options{})
	require.NoError(t, err)

	_, _ = s.SetMultiple(map[string]any{"a": 1, "b": 2}, nil)
	require.NoError(t, os.Mkdir(s.Path("sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "foreign-file"), []byte("x"), 0o600))

	require.True(t, s.Clear())

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "sub", entries[0].Name())
}

func TestFileStore_IOFailuresReportFalse(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "root")
	require.NoError(t, os.Mkdir(dir, 0o755))
	s, err := Open(dir, Options{})
	require.NoError(t, err)
	_, _ = s.Set("k", "v", nil)

	require.NoError(t, os.RemoveAll(dir))

	ok, err := s.Set("k", "v", nil)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = s.SetMultiple(map[string]any{"a": 1}, nil)
	require.NoError(t, err)
	require.False(t, ok)

	require.False(t, s.Clear())

	v, err := s.Get("k", "def")
	require.NoError(t, err)
	require.Equal(t, "def", v)
}
