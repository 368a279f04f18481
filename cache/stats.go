package cache

// Stats is a snapshot of the cache counters. Counters are monotonically
// non-decreasing except through ResetStats.
//
// Evictions covers capacity evictions and TTL discoveries (including
// PurgeExpired); Delete and Clear are deliberate removals and are never
// counted.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}
