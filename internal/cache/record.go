package cache

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"time"
)

// headerLen is the size of the expiry header preceding the encoded value.
const headerLen = 8

var errShortRecord = errors.New("cache: record too short")

// record is one stored entry. ExpiresAt is Unix seconds; 0 means never.
type record struct {
	ExpiresAt int64
	Value     any
}

// payload wraps the value so gob transmits its concrete type.
type payload struct {
	V any
}

// Composite types gob does not know on its own. Builtin scalars and their
// slices are registered by gob itself.
func init() {
	gob.Register(map[string]any{})
	gob.Register([]any{})
	gob.Register(map[string]string{})
	gob.Register(map[string]int{})
	gob.Register([]map[string]any{})
	gob.Register(time.Time{})
}

// Register records a concrete type for use as a cache value. Scalars, their
// slices, the common map and []any shapes and time.Time need no registration.
func Register(value any) {
	gob.Register(value)
}

// expired uses a strict comparison: an entry is still served at exactly
// ExpiresAt and only goes stale the second after.
func (r record) expired(nowUnix int64) bool {
	return r.ExpiresAt > 0 && r.ExpiresAt < nowUnix
}

// encodeRecord lays out 8 bytes big endian expiresAt || gob(value).
func encodeRecord(r record) ([]byte, error) {
	var buf bytes.Buffer
	var hdr [headerLen]byte
	binary.BigEndian.PutUint64(hdr[:], uint64(r.ExpiresAt))
	buf.Write(hdr[:])
	if err := gob.NewEncoder(&buf).Encode(payload{V: r.Value}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRecord(b []byte) (record, error) {
	if len(b) < headerLen {
		return record{}, errShortRecord
	}
	r := record{ExpiresAt: int64(binary.BigEndian.Uint64(b[:headerLen]))}
	var p payload
	if err := gob.NewDecoder(bytes.NewReader(b[headerLen:])).Decode(&p); err != nil {
		return record{}, err
	}
	r.Value = p.V
	return r, nil
}
