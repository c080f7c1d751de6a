package cache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/leonardcser/filecache/internal/logger"
)

// FileStore keeps one file per key in a root directory. It does no locking:
// concurrent stores or processes sharing a directory may race.
type FileStore struct {
	dir string
	now func() time.Time
}

type Options struct {
	// Now is the clock used for expiry. Defaults to time.Now.
	Now func() time.Time
}

// Open returns a FileStore rooted at dir. dir is resolved to its canonical
// absolute path and must be an existing directory.
func Open(dir string, opts Options) (*FileStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, invalid("open", "dir", "%v", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, invalid("open", "dir", "%s does not exist", dir)
	}
	fi, err := os.Stat(resolved)
	if err != nil {
		return nil, invalid("open", "dir", "%v", err)
	}
	if !fi.IsDir() {
		return nil, invalid("open", "dir", "%s is not a directory", resolved)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &FileStore{dir: resolved, now: now}, nil
}

// Dir returns the canonical root directory.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file backing key. key must already be valid.
func (s *FileStore) Path(key string) string {
	return s.dir + string(filepath.Separator) + key
}

func (s *FileStore) Get(key string, def any) (any, error) {
	if err := validateKey("get", key); err != nil {
		return nil, err
	}
	path := s.Path(key)
	b, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warnf("cache: read %s: %v", path, err)
		}
		return def, nil
	}
	r, err := decodeRecord(b)
	if err != nil {
		logger.Warnf("cache: decode %s: %v", path, err)
		return def, nil
	}
	if r.expired(s.now().Unix()) {
		s.remove(path)
		return def, nil
	}
	return r.Value, nil
}

func (s *FileStore) Set(key string, value any, ttl any) (bool, error) {
	if err := validateKey("set", key); err != nil {
		return false, err
	}
	seconds, hasTTL, err := resolveTTL("set", ttl)
	if err != nil {
		return false, err
	}
	path := s.Path(key)
	if hasTTL && seconds <= 0 {
		if !s.isEntry(path) {
			return true, nil
		}
		return s.remove(path), nil
	}
	r := record{Value: value}
	if hasTTL {
		r.ExpiresAt = expiryAt(s.now().Unix(), seconds)
	}
	b, err := encodeRecord(r)
	if err != nil {
		logger.Warnf("cache: encode %s: %v", key, err)
		return false, nil
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		logger.Warnf("cache: write %s: %v", path, err)
		return false, nil
	}
	return true, nil
}

func (s *FileStore) Delete(key string) (bool, error) {
	if err := validateKey("delete", key); err != nil {
		return false, err
	}
	path := s.Path(key)
	if !s.isEntry(path) {
		return false, nil
	}
	return s.remove(path), nil
}

func (s *FileStore) Has(key string) (bool, error) {
	if err := validateKey("has", key); err != nil {
		return false, err
	}
	return s.isEntry(s.Path(key)), nil
}

func (s *FileStore) Clear() bool {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		logger.Warnf("cache: list %s: %v", s.dir, err)
		return false
	}
	ok := true
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if validateKey("clear", e.Name()) != nil {
			// Not a key this store could have written; remove it directly.
			ok = s.remove(filepath.Join(s.dir, e.Name())) && ok
			continue
		}
		deleted, _ := s.Delete(e.Name())
		ok = deleted && ok
	}
	return ok
}

func (s *FileStore) GetMultiple(keys any, def any) (*orderedmap.OrderedMap[string, any], error) {
	return getMultiple(s, keys, def)
}

func (s *FileStore) SetMultiple(values any, ttl any) (bool, error) {
	return setMultiple(s, values, ttl)
}

func (s *FileStore) DeleteMultiple(keys any) (bool, error) {
	return deleteMultiple(s, keys)
}

// isEntry reports whether a non-directory file exists at path. The keys "."
// and ".." map onto directories and so never name an entry.
func (s *FileStore) isEntry(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

func (s *FileStore) remove(path string) bool {
	if err := os.Remove(path); err != nil {
		logger.Warnf("cache: remove %s: %v", path, err)
		return false
	}
	return true
}

var _ Cache = (*FileStore)(nil)
