package iters

import "github.com/ehsanranjbar/sortkeys"

// FilterIterator is an iterator that skips the entries not matching a predicate.
// An entry whose value cannot be read is not skipped so its error surfaces through Value.
type FilterIterator[K, V any] struct {
	base sortkeys.Iterator[K, V]
	f    func(K, V) bool
}

// Filter creates a new filter iterator.
func Filter[K, V any](base sortkeys.Iterator[K, V], f func(K, V) bool) *FilterIterator[K, V] {
	return &FilterIterator[K, V]{base: base, f: f}
}

// Close implements the Iterator interface.
func (it *FilterIterator[K, V]) Close() {
	it.base.Close()
}

// Next implements the Iterator interface.
func (it *FilterIterator[K, V]) Next() {
	it.base.Next()
	it.findNext()
}

func (it *FilterIterator[K, V]) findNext() {
	for ; it.base.Valid(); it.base.Next() {
		v, err := it.base.Value()
		if err != nil || it.f(it.base.Key(), v) {
			return
		}
	}
}

// Rewind implements the Iterator interface.
func (it *FilterIterator[K, V]) Rewind() {
	it.base.Rewind()
	it.findNext()
}

// Valid implements the Iterator interface.
func (it *FilterIterator[K, V]) Valid() bool {
	return it.base.Valid()
}

// Key implements the Iterator interface.
func (it *FilterIterator[K, V]) Key() K {
	return it.base.Key()
}

// Value implements the Iterator interface.
func (it *FilterIterator[K, V]) Value() (value V, err error) {
	return it.base.Value()
}
