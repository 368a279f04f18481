// Package cache provides a bounded, generic, in-memory key/value cache
// with least-recent-use eviction, optional lazy TTL expiry, hit/miss
// statistics, and an eviction notification callback.
//
// Design
//
//   - Storage: a map[K]*node for lookups plus an intrusive MRU↔LRU
//     doubly linked list for ordering. The list order IS the recency
//     order: the tail is the least-recently-used entry and is always
//     the one evicted when a new key arrives at capacity. All
//     operations are amortized O(1).
//
//   - TTL: a per-entry absolute deadline (UnixNano) is computed once at
//     write time from DefaultTTL or a per-entry override; the NoExpiry
//     sentinel pins an entry past any default. Expiry is lazy: it is
//     checked when Get/Peek/Has touch the key or during an explicit
//     PurgeExpired sweep. There are no timers and no background
//     goroutines.
//
//   - Read-path asymmetry: Get promotes the entry and counts hits and
//     misses; Peek and Has promote nothing and count nothing, but all
//     three remove an expired entry on discovery and fire the eviction
//     callback for it.
//
//   - Stats: Options.TrackStats enables hit/miss/eviction counters
//     behind Stats(); when disabled the counters are never incremented,
//     so the disabled path has no accounting overhead at all.
//     Independently, Options.Metrics receives Hit/Miss/Evict/Size
//     signals (NoopMetrics by default; plug the Prometheus adapter in
//     metrics/prom to export them).
//
//   - Callbacks: Options.OnEvict(k, v, reason) fires synchronously for
//     every cache-driven removal — capacity (EvictCapacity), lazy TTL
//     discovery and purge (EvictTTL) — and never for Delete or Clear,
//     which are deliberate removals by the owner. A panicking callback
//     is recovered, logged through Options.Logger, and never aborts the
//     cache operation.
//
//   - Policies: the recency policy is pluggable via the policy package;
//     LRU is the default and the only one shipped, since the snapshot
//     accessors promise that iteration order equals LRU recency order.
//
// Concurrency
//
// The cache is single-threaded by design: no operation takes a lock,
// and concurrent mutation from multiple goroutines requires external
// synchronization around the whole instance. NewLocked returns a
// wrapper that does exactly that with one mutex.
//
// Basic usage
//
//	c, err := cache.New[string, string](cache.Options[string, string]{Capacity: 1024})
//	if err != nil {
//	    // invalid configuration
//	}
//	c.Set("a", "1")
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//	c.Delete("a")
//
// With TTL
//
//	c, _ := cache.New[string, string](cache.Options[string, string]{
//	    Capacity:   1024,
//	    DefaultTTL: time.Minute,
//	})
//	_ = c.SetWithTTL("tmp", "v", 200*time.Millisecond) // per-entry override
//	_ = c.SetWithTTL("pin", "v", cache.NoExpiry)       // never expires
//	n := c.PurgeExpired()                              // sweep out the dead
//	_ = n
//
// With eviction notification and stats
//
//	c, _ := cache.New[string, int](cache.Options[string, int]{
//	    Capacity:   2,
//	    TrackStats: true,
//	    OnEvict: func(k string, v int, reason cache.EvictReason) {
//	        log.Printf("evicted %s=%d (%s)", k, v, reason)
//	    },
//	})
//	c.Set("a", 1)
//	c.Set("b", 2)
//	c.Set("c", 3) // evicts "a" (LRU), callback fires
//	st := c.Stats()
//	_ = st.Evictions // 1
package cache
