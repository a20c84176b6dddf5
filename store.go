package sortkeys

import (
	badger "github.com/dgraph-io/badger/v4"
)

// BadgerStore is the subset of *badger.Txn the stores in this module build on.
type BadgerStore interface {
	Delete(key []byte) error
	Get(key []byte) (item *badger.Item, err error)
	NewIterator(opts badger.IteratorOptions) *badger.Iterator
	Set(key, value []byte) error
	SetEntry(e *badger.Entry) error
}

var _ BadgerStore = (*badger.Txn)(nil)

// Instantiator binds a store definition to a transaction.
type Instantiator[T any] interface {
	Instantiate(txn *badger.Txn) T
}
