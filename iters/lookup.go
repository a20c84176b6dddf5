package iters

import "github.com/ehsanranjbar/sortkeys"

// Lookup creates an iterator over the given keys that retrieves each value with get when it is read.
func Lookup[K, V any](keys []K, get func(K) (V, error)) sortkeys.Iterator[K, V] {
	return &lookupIterator[K, V]{keys: keys, get: get}
}

type lookupIterator[K, V any] struct {
	keys []K
	get  func(K) (V, error)
	i    int
}

// Close implements the Iterator interface.
func (it *lookupIterator[K, V]) Close() {}

// Next implements the Iterator interface.
func (it *lookupIterator[K, V]) Next() {
	it.i++
}

// Rewind implements the Iterator interface.
func (it *lookupIterator[K, V]) Rewind() {
	it.i = 0
}

// Valid implements the Iterator interface.
func (it *lookupIterator[K, V]) Valid() bool {
	return it.i < len(it.keys)
}

// Key implements the Iterator interface.
func (it *lookupIterator[K, V]) Key() K {
	return it.keys[it.i]
}

// Value implements the Iterator interface.
func (it *lookupIterator[K, V]) Value() (V, error) {
	return it.get(it.keys[it.i])
}
