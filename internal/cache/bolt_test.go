package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.bbolt")

	s, err := OpenBolt(path, BoltOptions{Bucket: "web"})
	require.NoError(t, err)
	ok, err := s.Set("foo", "bar", nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, s.Close())

	s, err = OpenBolt(path, BoltOptions{Bucket: "web"})
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get("foo", nil)
	require.NoError(t, err)
	require.Equal(t, "bar", v)
}

func TestBoltStore_BucketsAreSeparate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.bbolt")

	s, err := OpenBolt(path, BoltOptions{Bucket: "one"})
	require.NoError(t, err)
	_, _ = s.Set("foo", 1, nil)
	require.NoError(t, s.Close())

	s, err = OpenBolt(path, BoltOptions{Bucket: "two"})
	require.NoError(t, err)
	defer s.Close()

	has, err := s.Has("foo")
	require.NoError(t, err)
	require.False(t, has)
}

func TestBoltStore_CloseIsSafeOnNil(t *testing.T) {
	var s *BoltStore
	require.NoError(t, s.Close())
}

func TestBoltStore_ClosedReportsFalse(t *testing.T) {
	s, err := OpenBolt(filepath.Join(t.TempDir(), "cache.bbolt"), BoltOptions{})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	ok, err := s.Set("k", "v", nil)
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, s.Clear())

	_, err = s.Set("bad/key", "v", nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}
