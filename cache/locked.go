package cache

import (
	"sync"
	"time"
)

// locked wraps a Cache with a single mutex guarding every operation,
// for callers who want one instance shared between goroutines without
// managing the lock themselves.
//
// The OnEvict callback and ForEach visitor run while the lock is held;
// keep them lightweight and never call back into the same cache.
type locked[K comparable, V any] struct {
	mu sync.Mutex
	c  Cache[K, V]
}

// NewLocked constructs a cache as New does and wraps it so that all
// operations are serialized by one mutex.
func NewLocked[K comparable, V any](opt Options[K, V]) (Cache[K, V], error) {
	c, err := New[K, V](opt)
	if err != nil {
		return nil, err
	}
	return &locked[K, V]{c: c}, nil
}

func (l *locked[K, V]) Set(k K, v V) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.c.Set(k, v)
}

func (l *locked[K, V]) SetWithTTL(k K, v V, ttl time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.SetWithTTL(k, v, ttl)
}

func (l *locked[K, V]) Add(k K, v V) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Add(k, v)
}

func (l *locked[K, V]) Get(k K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Get(k)
}

func (l *locked[K, V]) Peek(k K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Peek(k)
}

func (l *locked[K, V]) Has(k K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Has(k)
}

func (l *locked[K, V]) Delete(k K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Delete(k)
}

func (l *locked[K, V]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.c.Clear()
}

func (l *locked[K, V]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Len()
}

func (l *locked[K, V]) IsEmpty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.IsEmpty()
}

func (l *locked[K, V]) Capacity() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Capacity()
}

func (l *locked[K, V]) Keys() []K {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Keys()
}

func (l *locked[K, V]) Values() []V {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Values()
}

func (l *locked[K, V]) Entries() []Entry[K, V] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Entries()
}

func (l *locked[K, V]) EntriesNewestFirst() []Entry[K, V] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.EntriesNewestFirst()
}

func (l *locked[K, V]) ForEach(fn func(k K, v V)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.c.ForEach(fn)
}

func (l *locked[K, V]) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Stats()
}

func (l *locked[K, V]) ResetStats() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.c.ResetStats()
}

func (l *locked[K, V]) PurgeExpired() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.PurgeExpired()
}

var _ Cache[string, int] = (*locked[string, int])(nil)
