package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardcser/filecache/internal/cache"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filecache.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "cache", cfg.Bucket)
	assert.NotEmpty(t, cfg.Dir)
	assert.NotEmpty(t, cfg.BoltPath)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, "backend: bolt\nbolt_path: "+filepath.Join(dir, "c.bbolt")+"\nbucket: web\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendBolt, cfg.Backend)
	assert.Equal(t, "web", cfg.Bucket)
	assert.Equal(t, filepath.Join(dir, "c.bbolt"), cfg.BoltPath)
}

func TestLoad_ExpandsHome(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load(writeConfig(t, "dir: ~/entries\n"))
	require.NoError(t, err)
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "entries"), cfg.Dir)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read config file")

	_, err = Load(writeConfig(t, "backend: [\n"))
	require.ErrorContains(t, err, "failed to parse config file")

	_, err = Load(writeConfig(t, "backend: redis\n"))
	require.ErrorContains(t, err, "unknown backend")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(envConfigPath, "")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)

	t.Setenv(envConfigPath, writeConfig(t, "backend: bolt\n"))
	cfg, err = LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, BackendBolt, cfg.Backend)
}

func TestOpenCache(t *testing.T) {
	dir := t.TempDir()
	for _, cfg := range []*Config{
		{Backend: BackendFile, Dir: filepath.Join(dir, "new", "entries")},
		{Backend: BackendBolt, BoltPath: filepath.Join(dir, "db", "cache.bbolt"), Bucket: "cache"},
	} {
		c, closeFn, err := OpenCache(cfg)
		require.NoError(t, err, cfg.Backend)

		ok, err := c.Set("foo", "bar", nil)
		require.NoError(t, err)
		require.True(t, ok)
		v, err := c.Get("foo", nil)
		require.NoError(t, err)
		require.Equal(t, "bar", v)
		require.NoError(t, closeFn())
	}

	_, _, err := OpenCache(&Config{Backend: "nope"})
	require.Error(t, err)
}

func TestOpenCache_FileBackendIsFileStore(t *testing.T) {
	c, closeFn, err := OpenCache(&Config{Backend: BackendFile, Dir: t.TempDir()})
	require.NoError(t, err)
	defer closeFn()
	_, ok := c.(*cache.FileStore)
	require.True(t, ok)
}
