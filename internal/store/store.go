// Package store implements the concurrent, TTL-aware key-value map at the
// heart of rudis: get/set/del/exists/expire/incrBy/keys/dbsize/flushdb.
package store

import (
	"time"

	"github.com/kvlabs/rudis/pkg/cmap"
)

// Store is a concurrent key-value map with lazy per-key expiration.
//
// It is backed by a sharded cmap.Map instead of a single sync.RWMutex
// guarding a bare map[string]*Entry — spec.md §9 explicitly permits this
// as "a permissible refinement [that] does not change any contract
// above." Every per-key operation here goes through cmap.Map.Locked, which
// holds that key's shard lock for the whole observe-then-mutate sequence,
// so GET's lazy-expiry delete, INCR's read-modify-write, and EXPIRE's
// conditional update are each atomic with respect to other commands on
// the same key.
type Store struct {
	m *cmap.Map[string, *Entry]
}

// New creates an empty Store.
func New() *Store {
	return &Store{m: cmap.New[string, *Entry]()}
}

// Get returns the current value for key if present and not expired.
func (s *Store) Get(key string) ([]byte, bool) {
	var out []byte
	var ok bool
	now := time.Now()
	s.m.Locked(key, func(e *Entry, exists bool) (*Entry, bool) {
		if !exists || e.expired(now) {
			return nil, false
		}
		out, ok = e.Value.Bytes, true
		return e, true
	})
	return out, ok
}

// Set unconditionally installs (value, now+ttl). A zero ttl means no
// expiry, clearing any previously set one.
func (s *Store) Set(key string, value []byte, ttl time.Duration) {
	s.m.Set(key, newEntry(value, ttl))
}

// Del removes each listed key that is present and not expired, returning
// the count actually removed. Expired entries encountered are also
// removed but do not count.
func (s *Store) Del(keys ...string) int64 {
	var count int64
	now := time.Now()
	for _, key := range keys {
		s.m.Locked(key, func(e *Entry, exists bool) (*Entry, bool) {
			if !exists {
				return nil, false
			}
			if !e.expired(now) {
				count++
			}
			return nil, false
		})
	}
	return count
}

// Exists returns the number of listed keys present and not expired.
// Duplicates in keys multiply the count, matching Redis semantics.
func (s *Store) Exists(keys ...string) int64 {
	var count int64
	now := time.Now()
	for _, key := range keys {
		s.m.Locked(key, func(e *Entry, exists bool) (*Entry, bool) {
			if !exists {
				return nil, false
			}
			if e.expired(now) {
				return nil, false
			}
			count++
			return e, true
		})
	}
	return count
}

// Expire sets key's expiry to now+ttl if it exists and is not already
// expired, returning true on success.
func (s *Store) Expire(key string, ttl time.Duration) bool {
	var ok bool
	now := time.Now()
	s.m.Locked(key, func(e *Entry, exists bool) (*Entry, bool) {
		if !exists || e.expired(now) {
			return nil, false
		}
		ok = true
		return &Entry{Value: e.Value, ExpiresAt: now.Add(ttl)}, true
	})
	return ok
}

// IncrBy parses the current value as a signed 64-bit integer (treating an
// absent or expired key as 0), adds delta, stores the canonical ASCII of
// the result, and returns it. ErrNotInteger is returned — leaving the
// stored value unchanged — if the current bytes don't parse as an integer
// or the addition overflows.
func (s *Store) IncrBy(key string, delta int64) (int64, error) {
	var result int64
	var opErr error
	now := time.Now()
	s.m.Locked(key, func(e *Entry, exists bool) (*Entry, bool) {
		var current int64
		if exists && !e.expired(now) {
			n, err := parseStrictInt64(e.Value.Bytes)
			if err != nil {
				opErr = err
				return e, true
			}
			current = n
		}

		n, err := addInt64(current, delta)
		if err != nil {
			opErr = err
			if exists {
				return e, true
			}
			return nil, false
		}

		result = n
		newExpiry := time.Time{}
		if exists && !e.expired(now) {
			newExpiry = e.ExpiresAt
		}
		return &Entry{Value: BytesValue(formatInt64(n)), ExpiresAt: newExpiry}, true
	})
	if opErr != nil {
		return 0, opErr
	}
	return result, nil
}

// Keys returns every non-expired key matching pattern under the glob
// rules of globMatch. Expired entries discovered during enumeration are
// removed and never appear in the result.
func (s *Store) Keys(pattern string) []string {
	now := time.Now()
	pat := []byte(pattern)

	var matched []string
	var expiredKeys []string

	s.m.Range(func(key string, e *Entry) bool {
		if e.expired(now) {
			expiredKeys = append(expiredKeys, key)
			return true
		}
		if globMatch(pat, []byte(key)) {
			matched = append(matched, key)
		}
		return true
	})

	// Deleting inside Range's callback would deadlock (Range holds the
	// shard's RLock; Locked needs its Lock), so expired keys are swept
	// after Range returns, each re-checked to avoid removing a key that
	// was refreshed in the meantime.
	for _, key := range expiredKeys {
		s.m.Locked(key, func(e *Entry, exists bool) (*Entry, bool) {
			if exists && e.expired(now) {
				return nil, false
			}
			return e, exists
		})
	}

	return matched
}

// DBSize returns the number of non-expired entries. Implementations may
// approximate; this one takes a single Range pass and excludes entries
// observed as expired during that pass, without evicting them.
func (s *Store) DBSize() int64 {
	now := time.Now()
	var count int64
	s.m.Range(func(_ string, e *Entry) bool {
		if !e.expired(now) {
			count++
		}
		return true
	})
	return count
}

// FlushDB removes all entries.
func (s *Store) FlushDB() {
	s.m.Clear()
}
