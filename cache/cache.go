package cache

import (
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/IvanBrykalov/recache/policy"
	"github.com/IvanBrykalov/recache/policy/lru"
)

// store is the ordered recency store: a map for O(1) lookup plus an
// intrusive doubly linked list whose order IS the recency order
// (head=MRU, tail=LRU). It has no internal locking; see Cache.
type store[K comparable, V any] struct {
	m    map[K]*node[K, V]
	head *node[K, V] // MRU
	tail *node[K, V] // LRU
	len  int
	cap  int

	// Policy manipulates the list through hooks; the store owns the map.
	pol    policy.StorePolicy[K, V]
	opt    Options[K, V]
	logger log.Logger

	// Counters live only when opt.TrackStats is set; otherwise no code
	// path increments them.
	hits      uint64
	misses    uint64
	evictions uint64
}

// New constructs a cache with the provided Options.
// It returns ErrInvalidCapacity for a non-positive capacity and
// ErrInvalidTTL for a DefaultTTL that is negative but not NoExpiry.
func New[K comparable, V any](opt Options[K, V]) (Cache[K, V], error) {
	if opt.Capacity < 1 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "capacity %d", opt.Capacity)
	}
	if opt.DefaultTTL < 0 && opt.DefaultTTL != NoExpiry {
		return nil, errors.Wrapf(ErrInvalidTTL, "default ttl %s", opt.DefaultTTL)
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = lru.New[K, V]()
	}
	if opt.Logger == nil {
		opt.Logger = log.NewNopLogger()
	}

	s := &store[K, V]{
		m:      make(map[K]*node[K, V], opt.Capacity),
		cap:    opt.Capacity,
		opt:    opt,
		logger: opt.Logger,
	}
	s.pol = opt.Policy.New(storeHooks[K, V]{s: s})
	return s, nil
}

// ---- Cache[K,V] implementation ----

// Set inserts or updates k→v using DefaultTTL if set, and places the
// entry at the most-recently-used position.
func (s *store[K, V]) Set(k K, v V) {
	s.set(k, v, s.defaultDeadline())
}

// SetWithTTL inserts or updates k→v with a per-entry TTL.
// ttl must be positive or NoExpiry; anything else is ErrInvalidTTL and
// the cache is left untouched.
func (s *store[K, V]) SetWithTTL(k K, v V, ttl time.Duration) error {
	exp, err := s.deadline(ttl)
	if err != nil {
		return err
	}
	s.set(k, v, exp)
	return nil
}

// Add inserts k→v only if absent, using DefaultTTL if set.
// A resident entry that turns out to be expired is removed through the
// normal TTL discovery path and the insert then proceeds.
func (s *store[K, V]) Add(k K, v V) bool {
	if n, ok := s.m[k]; ok {
		if !s.expired(n) {
			return false
		}
		s.evictNode(n, EvictTTL)
	}
	s.insert(k, v, s.defaultDeadline())
	return true
}

// Get returns the value for k and a presence flag.
// On hit the entry is promoted to MRU. An expired entry is evicted on
// discovery and reported as a miss.
func (s *store[K, V]) Get(k K) (V, bool) {
	var zero V
	n, ok := s.m[k]
	if !ok {
		s.miss()
		return zero, false
	}
	if s.expired(n) {
		s.evictNode(n, EvictTTL)
		s.miss()
		return zero, false
	}
	s.pol.OnGet(n)
	s.hit()
	return n.val, true
}

// Peek returns the value for k without promoting the entry and without
// touching the hit/miss counters. Expiry cleanup still happens: an
// expired entry is evicted (and the callback fired) on discovery.
func (s *store[K, V]) Peek(k K) (V, bool) {
	var zero V
	n, ok := s.m[k]
	if !ok {
		return zero, false
	}
	if s.expired(n) {
		s.evictNode(n, EvictTTL)
		return zero, false
	}
	return n.val, true
}

// Has reports whether k is resident and unexpired. Same side-effect
// profile as Peek: no promotion, no hit/miss accounting, expiry cleanup
// on discovery.
func (s *store[K, V]) Has(k K) bool {
	_, ok := s.Peek(k)
	return ok
}

// Delete removes k if present. Deliberate removal: no callback, no
// eviction accounting.
func (s *store[K, V]) Delete(k K) bool {
	n, ok := s.m[k]
	if !ok {
		return false
	}
	s.pol.OnRemove(n)
	s.unlink(n)
	delete(s.m, k)
	s.opt.Metrics.Size(s.len)
	return true
}

// Clear removes every entry unconditionally. No callback, no stats.
func (s *store[K, V]) Clear() {
	s.m = make(map[K]*node[K, V], s.cap)
	s.head, s.tail = nil, nil
	s.len = 0
	s.opt.Metrics.Size(0)
}

// Len returns the number of resident entries.
func (s *store[K, V]) Len() int { return s.len }

// IsEmpty reports whether the cache holds no entries.
func (s *store[K, V]) IsEmpty() bool { return s.len == 0 }

// Capacity returns the configured entry limit.
func (s *store[K, V]) Capacity() int { return s.cap }

// Stats returns a snapshot of the counters; all zeros when stats
// tracking is disabled.
func (s *store[K, V]) Stats() Stats {
	if !s.opt.TrackStats {
		return Stats{}
	}
	return Stats{Hits: s.hits, Misses: s.misses, Evictions: s.evictions}
}

// ResetStats zeroes the counters; no-op when stats tracking is disabled.
func (s *store[K, V]) ResetStats() {
	if !s.opt.TrackStats {
		return
	}
	s.hits, s.misses, s.evictions = 0, 0, 0
}

// PurgeExpired sweeps the whole cache once, removing every expired
// entry through the normal TTL discovery path (callback and eviction
// accounting included) and returns the number removed.
// Survivors keep their relative recency order.
func (s *store[K, V]) PurgeExpired() int {
	// Snapshot before mutating: evicting while walking the live list
	// is unsafe.
	now := s.now()
	var expired []*node[K, V]
	for n := s.tail; n != nil; n = n.prev {
		if n.exp != 0 && now > n.exp {
			expired = append(expired, n)
		}
	}
	for _, n := range expired {
		s.evictNode(n, EvictTTL)
	}
	return len(expired)
}

// -------------------- write internals --------------------

// set is the shared insert-or-overwrite path. exp is an absolute
// UnixNano deadline (0 = never expires).
func (s *store[K, V]) set(k K, v V, exp int64) {
	if n, ok := s.m[k]; ok {
		// Overwrite is not a net addition: the existence check runs
		// before any capacity comparison.
		n.val = v
		n.exp = exp
		s.pol.OnUpdate(n)
		s.opt.Metrics.Size(s.len)
		return
	}
	s.insert(k, v, exp)
}

// insert adds a new key, making room first if the store is full.
func (s *store[K, V]) insert(k K, v V, exp int64) {
	if s.len >= s.cap {
		if tail := s.tail; tail != nil {
			s.evictNode(tail, EvictCapacity)
		}
	}
	n := &node[K, V]{key: k, val: v, exp: exp}
	s.m[k] = n
	if ev := s.pol.OnAdd(n); ev != nil {
		s.evictNode(ev.(*node[K, V]), EvictCapacity)
	}
	s.opt.Metrics.Size(s.len)
}

// defaultDeadline returns an absolute deadline based on DefaultTTL.
func (s *store[K, V]) defaultDeadline() int64 {
	if s.opt.DefaultTTL <= 0 {
		return 0
	}
	return s.now() + int64(s.opt.DefaultTTL)
}

// deadline converts a per-entry TTL into an absolute UnixNano deadline.
// NoExpiry yields 0 (never expires); any other non-positive ttl is a
// contract violation.
func (s *store[K, V]) deadline(ttl time.Duration) (int64, error) {
	if ttl == NoExpiry {
		return 0, nil
	}
	if ttl <= 0 {
		return 0, errors.Wrapf(ErrInvalidTTL, "ttl %s", ttl)
	}
	return s.now() + int64(ttl), nil
}

// -------------------- expiry & stats internals --------------------

// expired reports whether n is past its deadline. The deadline instant
// itself is still valid (strict inequality).
func (s *store[K, V]) expired(n *node[K, V]) bool {
	if n.exp == 0 {
		return false
	}
	return s.now() > n.exp
}

func (s *store[K, V]) now() int64 {
	if s.opt.Clock != nil {
		return s.opt.Clock.NowUnixNano()
	}
	return time.Now().UnixNano()
}

func (s *store[K, V]) hit() {
	if s.opt.TrackStats {
		s.hits++
	}
	s.opt.Metrics.Hit()
}

func (s *store[K, V]) miss() {
	if s.opt.TrackStats {
		s.misses++
	}
	s.opt.Metrics.Miss()
}

// evictNode removes the node, updates counters, and notifies the
// observer. Used for every cache-driven removal, never for Delete/Clear.
func (s *store[K, V]) evictNode(n *node[K, V], reason EvictReason) {
	s.pol.OnRemove(n)
	s.unlink(n)
	delete(s.m, n.key)
	if s.opt.TrackStats {
		s.evictions++
	}
	s.opt.Metrics.Evict(reason)
	s.opt.Metrics.Size(s.len)
	s.notify(n.key, n.val, reason)
}

// notify invokes the OnEvict callback behind a recover barrier: a faulty
// observer must never abort or corrupt the cache operation that
// triggered it. Failures are logged and swallowed.
func (s *store[K, V]) notify(k K, v V, reason EvictReason) {
	cb := s.opt.OnEvict
	if cb == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			level.Error(s.logger).Log(
				"msg", "eviction callback panicked",
				"reason", reason,
				"panic", r,
			)
		}
	}()
	cb(k, v, reason)
}

// -------------------- list internals --------------------

// pushFront inserts n at MRU in O(1).
func (s *store[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = s.head
	if s.head != nil {
		s.head.prev = n
	}
	s.head = n
	if s.tail == nil {
		s.tail = n
	}
	s.len++
}

// moveToFront promotes n to MRU in O(1). The node keeps its value and
// deadline; only the links change.
func (s *store[K, V]) moveToFront(n *node[K, V]) {
	if n == s.head {
		return
	}
	// detach
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if s.tail == n {
		s.tail = n.prev
	}
	// insert at head
	n.prev = nil
	n.next = s.head
	if s.head != nil {
		s.head.prev = n
	}
	s.head = n
	if s.tail == nil {
		s.tail = n
	}
}

// unlink removes n from the list in O(1).
func (s *store[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if s.head == n {
		s.head = n.next
	}
	if s.tail == n {
		s.tail = n.prev
	}
	n.prev, n.next = nil, nil
	s.len--
}

// back returns the current LRU node in O(1).
func (s *store[K, V]) back() *node[K, V] { return s.tail }

// -------------------- policy hooks --------------------

// storeHooks adapts the store's list operations to policy.Hooks.
type storeHooks[K comparable, V any] struct{ s *store[K, V] }

func (h storeHooks[K, V]) MoveToFront(x policy.Node[K, V]) { h.s.moveToFront(x.(*node[K, V])) }
func (h storeHooks[K, V]) PushFront(x policy.Node[K, V])   { h.s.pushFront(x.(*node[K, V])) }
func (h storeHooks[K, V]) Remove(x policy.Node[K, V]) {
	// Map bookkeeping is performed by the store itself.
	h.s.unlink(x.(*node[K, V]))
}
func (h storeHooks[K, V]) Back() policy.Node[K, V] {
	// Avoid handing out a typed nil through the interface.
	if n := h.s.back(); n != nil {
		return n
	}
	return nil
}
func (h storeHooks[K, V]) Len() int                { return h.s.len }
