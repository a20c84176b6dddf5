package index

import (
	"bytes"
	"fmt"
	"slices"

	roaring "github.com/RoaringBitmap/roaring/v2"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/sortkeys"
	"github.com/ehsanranjbar/sortkeys/codec/lex"
	"github.com/ehsanranjbar/sortkeys/expr"
)

// IteratorOption configures an Iterator.
type IteratorOption func(*iteratorOptions)

type iteratorOptions struct {
	reverse bool
}

// WithReverse makes the iterator walk from the highest key to the lowest.
func WithReverse() IteratorOption {
	return func(o *iteratorOptions) {
		o.reverse = true
	}
}

// Iterator walks the entries of an index within a range of sort keys.
type Iterator struct {
	base    *badger.Iterator
	prefix  []byte
	r       expr.Range[lex.Key]
	reverse bool
}

var _ sortkeys.Iterator[lex.Key, *roaring.Bitmap] = (*Iterator)(nil)

func newIterator(base *badger.Iterator, prefix []byte, r expr.Range[lex.Key], reverse bool) *Iterator {
	return &Iterator{
		base:    base,
		prefix:  prefix,
		r:       r,
		reverse: reverse,
	}
}

// Close implements the Iterator interface.
func (it *Iterator) Close() {
	it.base.Close()
}

// Next implements the Iterator interface.
func (it *Iterator) Next() {
	it.base.Next()
}

// Rewind positions the iterator on the first entry within the range.
func (it *Iterator) Rewind() {
	start := it.r.Low()
	if it.reverse {
		start = it.r.High()
	}

	if start.IsEmpty() {
		if it.reverse {
			// Sort keys never start with 0xff so this sorts after every entry of the prefix.
			it.base.Seek(slices.Concat(it.prefix, []byte{0xff}))
		} else {
			it.base.Seek(it.prefix)
		}
		return
	}

	it.base.Seek(slices.Concat(it.prefix, start.Value()))
	if start.Exclusive() && it.base.Valid() && bytes.Equal(it.Key(), start.Value()) {
		it.base.Next()
	}
}

// Valid implements the Iterator interface.
func (it *Iterator) Valid() bool {
	if !it.base.Valid() {
		return false
	}

	if it.reverse {
		low := it.r.Low()
		if low.IsEmpty() {
			return true
		}
		c := bytes.Compare(it.Key(), low.Value())
		return c > 0 || (c == 0 && !low.Exclusive())
	}

	high := it.r.High()
	if high.IsEmpty() {
		return true
	}
	c := bytes.Compare(it.Key(), high.Value())
	return c < 0 || (c == 0 && !high.Exclusive())
}

// Key returns the sort key of the current entry.
func (it *Iterator) Key() lex.Key {
	return lex.Key(bytes.Clone(it.base.Item().Key()[len(it.prefix):]))
}

// Value returns the posting list of the current entry.
func (it *Iterator) Value() (*roaring.Bitmap, error) {
	bm := roaring.New()
	err := it.base.Item().Value(bm.UnmarshalBinary)
	if err != nil {
		return nil, fmt.Errorf("failed to decode posting list: %w", err)
	}
	return bm, nil
}
