package collection

import (
	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/sortkeys"
)

type docIterator struct {
	ins  *Instance
	base *badger.Iterator
}

var _ sortkeys.Iterator[uint32, []byte] = (*docIterator)(nil)

// Close implements the Iterator interface.
func (it *docIterator) Close() {
	it.base.Close()
}

// Next implements the Iterator interface.
func (it *docIterator) Next() {
	it.base.Next()
}

// Rewind implements the Iterator interface.
func (it *docIterator) Rewind() {
	it.base.Rewind()
}

// Valid implements the Iterator interface.
func (it *docIterator) Valid() bool {
	return it.base.Valid()
}

// Key returns the id of the current document.
func (it *docIterator) Key() uint32 {
	key := it.base.Item().Key()
	// Keys in the docs keyspace always carry a valid id.
	id, _ := it.ins.c.idCodec.Decode(key[len(key)-4:])
	return id
}

// Value returns the encoded body of the current document.
func (it *docIterator) Value() ([]byte, error) {
	return it.base.Item().ValueCopy(nil)
}
