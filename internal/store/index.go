package store

import "sync"

// index is a map guarded by its own lock. Every method is atomic with respect
// to the other methods of the same index; nothing is atomic across indices.
type index[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func newIndex[K comparable, V any]() *index[K, V] {
	return &index[K, V]{items: make(map[K]V)}
}

// add inserts v under k unless k is already present.
func (x *index[K, V]) add(k K, v V) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, ok := x.items[k]; ok {
		return false
	}
	x.items[k] = v
	return true
}

func (x *index[K, V]) get(k K) (V, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	v, ok := x.items[k]
	return v, ok
}

// set inserts or overwrites.
func (x *index[K, V]) set(k K, v V) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.items[k] = v
}

// replace overwrites k only if it is present.
func (x *index[K, V]) replace(k K, v V) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, ok := x.items[k]; !ok {
		return false
	}
	x.items[k] = v
	return true
}

// removeIf deletes k only when its value satisfies pred.
func (x *index[K, V]) removeIf(k K, pred func(V) bool) (V, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	v, ok := x.items[k]
	if !ok || !pred(v) {
		var zero V
		return zero, false
	}
	delete(x.items, k)
	return v, true
}

func (x *index[K, V]) remove(k K) (V, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	v, ok := x.items[k]
	if ok {
		delete(x.items, k)
	}
	return v, ok
}

// mutate runs fn on the value under k while holding the write lock, creating
// the value with create first when k is absent. It is the read-modify-write
// primitive for per-user bundles.
func (x *index[K, V]) mutate(k K, create func() V, fn func(V) V) {
	x.mu.Lock()
	defer x.mu.Unlock()

	v, ok := x.items[k]
	if !ok {
		v = create()
	}
	x.items[k] = fn(v)
}

// modify is mutate without the create step: absent keys are left alone.
func (x *index[K, V]) modify(k K, fn func(V) V) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	v, ok := x.items[k]
	if !ok {
		return false
	}
	x.items[k] = fn(v)
	return true
}

// view runs fn on the value under k while holding the read lock. fn must not
// retain or mutate v.
func (x *index[K, V]) view(k K, fn func(V)) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()

	v, ok := x.items[k]
	if ok {
		fn(v)
	}
	return ok
}

// each calls fn for every entry under the read lock until fn returns false.
// Iteration order is unspecified. fn must not call back into x.
func (x *index[K, V]) each(fn func(K, V) bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	for k, v := range x.items {
		if !fn(k, v) {
			return
		}
	}
}

func (x *index[K, V]) len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()

	return len(x.items)
}
