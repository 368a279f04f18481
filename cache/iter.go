package cache

// Snapshot accessors. All of them materialize the current recency order
// (tail=LRU first unless stated otherwise) into a fresh slice, so the
// caller may mutate the cache afterwards without invalidating the
// result. Entries that are logically expired but not yet discovered by
// a read or a purge may appear; that staleness window is intentional.

// Keys returns the resident keys, least-recently-used first.
func (s *store[K, V]) Keys() []K {
	out := make([]K, 0, s.len)
	for n := s.tail; n != nil; n = n.prev {
		out = append(out, n.key)
	}
	return out
}

// Values returns the resident values, least-recently-used first.
func (s *store[K, V]) Values() []V {
	out := make([]V, 0, s.len)
	for n := s.tail; n != nil; n = n.prev {
		out = append(out, n.val)
	}
	return out
}

// Entries returns key/value pairs, least-recently-used first.
func (s *store[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], 0, s.len)
	for n := s.tail; n != nil; n = n.prev {
		out = append(out, Entry[K, V]{Key: n.key, Value: n.val})
	}
	return out
}

// EntriesNewestFirst returns key/value pairs, most-recently-used first.
func (s *store[K, V]) EntriesNewestFirst() []Entry[K, V] {
	out := make([]Entry[K, V], 0, s.len)
	for n := s.head; n != nil; n = n.next {
		out = append(out, Entry[K, V]{Key: n.key, Value: n.val})
	}
	return out
}

// ForEach visits a snapshot of the entries, least-recently-used first.
// The snapshot is taken up front, so the visitor observes a consistent
// view even though it must still not mutate the cache.
func (s *store[K, V]) ForEach(fn func(k K, v V)) {
	for _, e := range s.Entries() {
		fn(e.Key, e.Value)
	}
}
