package cache

// node is an intrusive doubly linked list element owned by the store.
// It carries the key/value alongside list links and the expiry deadline
// used by lazy TTL discovery.
type node[K comparable, V any] struct {
	key K
	val V

	// Intrusive list links: head is MRU, tail is LRU.
	prev *node[K, V]
	next *node[K, V]

	// Absolute expiration deadline in UnixNano, computed once at write
	// time. Zero means "never expires".
	exp int64
}

// Key returns the node key (part of policy.Node interface).
func (n *node[K, V]) Key() K { return n.key }

// Value returns a pointer to the stored value (part of policy.Node
// interface). The pointer is only valid inside the cache operation that
// handed it out.
func (n *node[K, V]) Value() *V { return &n.val }
