package cache

import (
	"errors"
	"sync"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	bolt "go.etcd.io/bbolt"

	"github.com/leonardcser/filecache/internal/logger"
)

// BoltStore implements Cache on a single bbolt database file, using the
// same record layout and expiry rules as FileStore.
// It is safe for concurrent use by multiple goroutines.
type BoltStore struct {
	db     *bolt.DB
	bucket []byte
	now    func() time.Time
	mu     sync.RWMutex
}

type BoltOptions struct {
	// Bucket is the name of the Bolt bucket to use.
	Bucket string
	// Now is the clock used for expiry. Defaults to time.Now.
	Now func() time.Time
}

var errNoBucket = errors.New("cache: bucket missing")

// OpenBolt initializes or opens a BoltStore at the given path.
func OpenBolt(path string, opts BoltOptions) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	bucket := []byte("cache")
	if opts.Bucket != "" {
		bucket = []byte(opts.Bucket)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &BoltStore{db: db, bucket: bucket, now: now}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *BoltStore) Get(key string, def any) (any, error) {
	if err := validateKey("get", key); err != nil {
		return nil, err
	}
	var raw []byte
	s.mu.RLock()
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return errNoBucket
		}
		if v := b.Get([]byte(key)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	s.mu.RUnlock()
	if err != nil {
		logger.Warnf("cache: bolt get %s: %v", key, err)
		return def, nil
	}
	if raw == nil {
		return def, nil
	}
	r, err := decodeRecord(raw)
	if err != nil {
		logger.Warnf("cache: bolt decode %s: %v", key, err)
		return def, nil
	}
	if r.expired(s.now().Unix()) {
		_, _ = s.Delete(key)
		return def, nil
	}
	return r.Value, nil
}

func (s *BoltStore) Set(key string, value any, ttl any) (bool, error) {
	if err := validateKey("set", key); err != nil {
		return false, err
	}
	seconds, hasTTL, err := resolveTTL("set", ttl)
	if err != nil {
		return false, err
	}
	if hasTTL && seconds <= 0 {
		if ok, _ := s.Has(key); !ok {
			return true, nil
		}
		return s.Delete(key)
	}
	r := record{Value: value}
	if hasTTL {
		r.ExpiresAt = expiryAt(s.now().Unix(), seconds)
	}
	buf, err := encodeRecord(r)
	if err != nil {
		logger.Warnf("cache: encode %s: %v", key, err)
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return errNoBucket
		}
		return b.Put([]byte(key), buf)
	}); err != nil {
		logger.Warnf("cache: bolt put %s: %v", key, err)
		return false, nil
	}
	return true, nil
}

func (s *BoltStore) Delete(key string) (bool, error) {
	if err := validateKey("delete", key); err != nil {
		return false, err
	}
	var existed bool
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return errNoBucket
		}
		if b.Get([]byte(key)) == nil {
			return nil
		}
		existed = true
		return b.Delete([]byte(key))
	}); err != nil {
		logger.Warnf("cache: bolt delete %s: %v", key, err)
		return false, nil
	}
	return existed, nil
}

func (s *BoltStore) Has(key string) (bool, error) {
	if err := validateKey("has", key); err != nil {
		return false, err
	}
	var found bool
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return errNoBucket
		}
		found = b.Get([]byte(key)) != nil
		return nil
	}); err != nil {
		logger.Warnf("cache: bolt has %s: %v", key, err)
		return false, nil
	}
	return found, nil
}

// Clear removes every key in the bucket in one transaction.
func (s *BoltStore) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(s.bucket) != nil {
			if err := tx.DeleteBucket(s.bucket); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucket(s.bucket)
		return err
	}); err != nil {
		logger.Warnf("cache: bolt clear: %v", err)
		return false
	}
	return true
}

func (s *BoltStore) GetMultiple(keys any, def any) (*orderedmap.OrderedMap[string, any], error) {
	return getMultiple(s, keys, def)
}

func (s *BoltStore) SetMultiple(values any, ttl any) (bool, error) {
	return setMultiple(s, values, ttl)
}

func (s *BoltStore) DeleteMultiple(keys any) (bool, error) {
	return deleteMultiple(s, keys)
}

var _ Cache = (*BoltStore)(nil)
