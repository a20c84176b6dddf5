package sortkeys

// Iterator walks key-value entries in order.
//
// Rewind positions the iterator on the first entry, Valid reports whether it is positioned on one,
// and Next advances it. Close must be called once the iterator is no longer needed.
type Iterator[K, V any] interface {
	Close()
	Next()
	Rewind()
	Valid() bool
	Key() K
	Value() (value V, err error)
}
