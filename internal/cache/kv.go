package cache

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Cache defines the key-value cache contract with optional per-entry TTL.
//
// Returned errors are always invalid-argument errors (malformed key, ttl of
// an unsupported type, non-iterable bulk input). Storage failures are never
// returned as errors; they surface as a false result.
type Cache interface {
	// Get returns the stored value, or def if the key is missing or expired.
	// Expired entries are removed as a side effect.
	Get(key string, def any) (any, error)

	// Set stores value under key. ttl may be nil (never expires), an integer
	// number of seconds, a time.Duration or an Interval. A ttl that resolves
	// to zero or less removes the key instead.
	Set(key string, value any, ttl any) (bool, error)

	// Delete removes key. It reports false if the key did not exist.
	Delete(key string) (bool, error)

	// Has reports whether an entry exists for key. Expiration is not checked,
	// and the answer may be stale by the time the caller acts on it.
	Has(key string) (bool, error)

	// Clear removes every entry, continuing past individual failures.
	Clear() bool

	// GetMultiple returns requested key -> value (or def) in request order.
	GetMultiple(keys any, def any) (*orderedmap.OrderedMap[string, any], error)

	// SetMultiple stores every key/value pair, stopping at the first failure.
	SetMultiple(values any, ttl any) (bool, error)

	// DeleteMultiple removes every key, stopping at the first failure.
	DeleteMultiple(keys any) (bool, error)
}
