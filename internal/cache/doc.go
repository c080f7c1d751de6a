// Package cache implements a file-system-backed key-value cache.
//
// Every entry is one file inside a root directory, named after its key.
// Keys are limited to [A-Za-z0-9_.]{1,64} so the mapping from key to file
// name is a bijection with no escaping. Entries may carry a TTL; expiry is
// enforced lazily when an entry is read, with no background sweeper.
//
// BoltStore offers the same contract on a single bbolt file.
package cache
