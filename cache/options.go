package cache

import (
	"time"

	"github.com/go-kit/log"

	"github.com/IvanBrykalov/recache/policy"
)

// NoExpiry is the per-entry TTL sentinel meaning "never expires",
// overriding any configured DefaultTTL for that entry.
const NoExpiry time.Duration = -1

// EvictReason explains why an entry was removed by the cache itself.
// Deliberate removals (Delete, Clear) never produce a reason: they do
// not count as evictions.
type EvictReason int

const (
	// EvictCapacity — the least-recently-used entry was removed to make
	// room for a new key.
	EvictCapacity EvictReason = iota
	// EvictTTL — expired entry removed on discovery (lazy read-path
	// cleanup or an explicit PurgeExpired sweep).
	EvictTTL
)

// String returns a stable label for the reason (used by metrics and logs).
func (r EvictReason) String() string {
	switch r {
	case EvictTTL:
		return "ttl"
	default:
		return "capacity"
	}
}

// Metrics exposes cache-level observability hooks. Unlike the Stats
// counters, Metrics fires regardless of TrackStats; a NoopMetrics
// implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int)
}

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock interface{ NowUnixNano() int64 }

// Options configures the cache behavior. Capacity is required; every
// other zero value is safe and defaulted in New():
//   - nil Policy  => LRU
//   - nil Metrics => NoopMetrics
//   - nil Logger  => log.NewNopLogger()
//   - nil Clock   => time.Now()
//
// Options are immutable after construction.
type Options[K comparable, V any] struct {
	// Capacity is the entry count limit. Must be positive.
	Capacity int

	// DefaultTTL applies to Set/Add when no per-entry TTL is provided.
	// Zero or NoExpiry means entries never expire by default; any other
	// non-positive value is rejected by New.
	DefaultTTL time.Duration

	// TrackStats enables the hit/miss/eviction counters behind Stats().
	// When false the counters are never incremented at all.
	TrackStats bool

	// Policy is a pluggable recency policy; nil => LRU.
	Policy policy.Policy[K, V]

	// OnEvict is called synchronously for every cache-driven removal
	// (capacity, TTL discovery, purge) with the removed key and value.
	// A panic in the callback is recovered and logged, never propagated.
	// Calling back into the same cache from OnEvict is unsupported.
	OnEvict func(k K, v V, reason EvictReason)

	// Metrics receives Hit/Miss/Evict/Size signals; nil => NoopMetrics.
	Metrics Metrics

	// Logger is used only at the OnEvict failure boundary.
	Logger log.Logger

	// Clock allows overriding the time source (tests). Nil => time.Now().
	Clock Clock
}
