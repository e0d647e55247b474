package assoc

// Assoc is a persistent, ordered-insertion association list.
// Set returns a new Assoc sharing structure with the old one, so a published
// Assoc is never mutated. Lookups shadow by nearest binder: the most recent
// Set for a key wins.
type Assoc[K comparable, V any] struct {
	head *entry[K, V]
}

type entry[K comparable, V any] struct {
	key  K
	val  V
	next *entry[K, V]
}

func New[K comparable, V any]() Assoc[K, V] {
	return Assoc[K, V]{}
}

// Set returns a copy of a with k bound to v, shadowing any previous binding.
func (a Assoc[K, V]) Set(k K, v V) Assoc[K, V] {
	return Assoc[K, V]{head: &entry[K, V]{key: k, val: v, next: a.head}}
}

// Get returns the nearest binding for k.
func (a Assoc[K, V]) Get(k K) (V, bool) {
	for e := a.head; e != nil; e = e.next {
		if e.key == k {
			return e.val, true
		}
	}
	var zero V
	return zero, false
}

func (a Assoc[K, V]) Empty() bool {
	return a.head == nil
}

// Len counts distinct keys.
func (a Assoc[K, V]) Len() int {
	n := 0
	a.Iterate(func(K, V) bool { n++; return true })
	return n
}

// Iterate visits each visible (non-shadowed) binding, oldest first.
// Returning false from f stops the iteration.
func (a Assoc[K, V]) Iterate(f func(k K, v V) bool) {
	var visible []*entry[K, V]
	seen := make(map[K]bool)
	for e := a.head; e != nil; e = e.next {
		if !seen[e.key] {
			seen[e.key] = true
			visible = append(visible, e)
		}
	}
	for i := len(visible) - 1; i >= 0; i-- {
		if !f(visible[i].key, visible[i].val) {
			return
		}
	}
}

// SetAll overlays every visible binding of other onto a. Bindings in other
// shadow bindings in a.
func (a Assoc[K, V]) SetAll(other Assoc[K, V]) Assoc[K, V] {
	res := a
	other.Iterate(func(k K, v V) bool {
		res = res.Set(k, v)
		return true
	})
	return res
}
