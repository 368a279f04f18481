package cache

import (
	"time"
)

// Cache is a bounded, in-memory key/value cache with least-recent-use
// eviction and optional lazy TTL expiry.
//
// The cache is deliberately unsynchronized: every operation runs to
// completion on the caller's goroutine, and callers that need concurrent
// access must serialize all operations externally (or use NewLocked).
//
// Typical complexity for operations is amortized O(1):
// a map lookup plus constant-time list adjustments.
type Cache[K comparable, V any] interface {
	// Set inserts or updates k→v using the cache's DefaultTTL (if any).
	// The entry always ends up in the most-recently-used position.
	// If k is new and the cache is full, the least-recently-used entry
	// is evicted first.
	Set(k K, v V)

	// SetWithTTL inserts or updates k→v with a per-entry TTL that
	// overrides DefaultTTL. ttl must be positive or the NoExpiry
	// sentinel; anything else returns ErrInvalidTTL and leaves the
	// cache untouched.
	SetWithTTL(k K, v V, ttl time.Duration) error

	// Add inserts k→v only if k is not resident (an expired entry does
	// not count as resident: it is expired on discovery and the insert
	// proceeds). It uses the cache's DefaultTTL (if any).
	// Returns false if the key already exists (no update is performed).
	Add(k K, v V) bool

	// Get returns the value for k and a presence flag.
	// On hit, the entry is promoted to most-recently-used and a hit is
	// counted. An absent or expired key counts as a miss; an expired
	// entry is removed on discovery.
	Get(k K) (V, bool)

	// Peek returns the value for k without promoting the entry and
	// without touching hit/miss counters. Expired entries are still
	// removed (and reported) on discovery.
	Peek(k K) (V, bool)

	// Has reports whether k is resident and unexpired. Like Peek it
	// never promotes and never touches hit/miss counters.
	Has(k K) bool

	// Delete removes k if present and returns true on success.
	// Deliberate removal: the eviction callback does NOT fire.
	Delete(k K) bool

	// Clear removes every entry unconditionally. The eviction callback
	// does not fire and stats are left untouched.
	Clear()

	// Len returns the number of resident entries (including entries
	// that are logically expired but not yet discovered).
	Len() int

	// IsEmpty reports whether the cache holds no entries.
	IsEmpty() bool

	// Capacity returns the configured entry limit.
	Capacity() int

	// Keys returns a snapshot of the resident keys, least-recently-used
	// first. Logically-expired entries may appear until discovered.
	Keys() []K

	// Values returns a snapshot of the resident values in the same
	// order as Keys.
	Values() []V

	// Entries returns a key/value snapshot, least-recently-used first.
	Entries() []Entry[K, V]

	// EntriesNewestFirst returns a key/value snapshot,
	// most-recently-used first.
	EntriesNewestFirst() []Entry[K, V]

	// ForEach visits a snapshot of the entries, least-recently-used
	// first. The visitor must not mutate the cache.
	ForEach(fn func(k K, v V))

	// Stats returns the hit/miss/eviction counters. All zeros unless
	// Options.TrackStats was set.
	Stats() Stats

	// ResetStats zeroes the counters. No-op when stats are disabled.
	ResetStats()

	// PurgeExpired removes every expired entry, firing the eviction
	// callback for each, and returns the number removed. Surviving
	// entries keep their relative recency order.
	PurgeExpired() int
}

// Entry is a key/value pair as returned by the snapshot accessors.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}
