package policy

// Node is the minimal contract a cache entry must satisfy for a policy.
// It provides read-only access to the key and a pointer to the value.
// The pointer allows in-place updates without re-linking the intrusive node.
type Node[K comparable, V any] interface {
	Key() K
	Value() *V
}

// Hooks expose O(1) list operations that a policy can use to manipulate
// the store's intrusive MRU/LRU list. Implementations are provided by
// the store.
//
// All hook calls happen inside the cache operation that triggered them;
// the store is not internally synchronized, so neither are the hooks.
// Important: hooks manage only the list; the store owns the key->node map.
type Hooks[K comparable, V any] interface {
	// MoveToFront promotes the node to MRU.
	MoveToFront(Node[K, V])
	// PushFront inserts the node at MRU (used on admission).
	PushFront(Node[K, V])
	// Remove detaches the node from the list (map bookkeeping is done by the store).
	Remove(Node[K, V])
	// Back returns the current LRU node (or nil if empty).
	Back() Node[K, V]
	// Len returns the number of resident nodes.
	Len() int
}

// StorePolicy is a store-local recency policy instance bound to the
// store's hooks.
//
// Semantics:
//   - OnAdd may return an eviction candidate. The store will evict that
//     node and subsequently call OnRemove for it.
//   - OnGet/OnUpdate typically promote the node (e.g., move to MRU).
//   - OnRemove is a notification to update policy-internal state; the
//     store performs the actual deletion. The store may also drop all
//     entries wholesale on Clear without per-node OnRemove calls.
type StorePolicy[K comparable, V any] interface {
	OnAdd(Node[K, V]) (evict Node[K, V])
	OnGet(Node[K, V])
	OnUpdate(Node[K, V])
	OnRemove(Node[K, V])
}

// Policy is a factory that creates policy instances bound to a
// particular store's hooks.
type Policy[K comparable, V any] interface {
	New(Hooks[K, V]) StorePolicy[K, V]
}
