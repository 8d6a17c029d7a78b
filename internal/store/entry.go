package store

import (
	"errors"
	"strconv"
	"time"
)

// Entry is a stored value together with its optional expiry.
//
// Every mutation replaces the *Entry wholesale rather than mutating one in
// place; this is what lets the lazy-expiry path in cmap.Map.Locked observe
// "expired" and delete atomically without a separate version field.
type Entry struct {
	Value     Value
	ExpiresAt time.Time // zero value means no expiry
}

func newEntry(value []byte, ttl time.Duration) *Entry {
	e := &Entry{Value: BytesValue(value)}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	return e
}

func (e *Entry) expired(now time.Time) bool {
	return e != nil && !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// ErrNotInteger is returned when a value is not a valid signed 64-bit
// base-10 ASCII integer, or an INCR/DECR would overflow one.
var ErrNotInteger = errors.New("ERR value is not an integer or out of range")

// parseStrictInt64 parses b as a signed base-10 ASCII integer with no
// leading zeros (other than the literal value "0") and no whitespace.
func parseStrictInt64(b []byte) (int64, error) {
	if len(b) == 0 {
		return 0, ErrNotInteger
	}
	s := b
	if s[0] == '-' {
		s = s[1:]
	}
	if len(s) == 0 {
		return 0, ErrNotInteger
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, ErrNotInteger
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, ErrNotInteger
		}
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, ErrNotInteger
	}
	return n, nil
}

// addInt64 adds delta to n, reporting ErrNotInteger on signed overflow.
func addInt64(n, delta int64) (int64, error) {
	sum := n + delta
	if delta > 0 && sum < n {
		return 0, ErrNotInteger
	}
	if delta < 0 && sum > n {
		return 0, ErrNotInteger
	}
	return sum, nil
}

func formatInt64(n int64) []byte {
	return []byte(strconv.FormatInt(n, 10))
}
