package index

import (
	"errors"
	"fmt"
	"slices"

	roaring "github.com/RoaringBitmap/roaring/v2"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/sortkeys"
	"github.com/ehsanranjbar/sortkeys/codec/lex"
	"github.com/ehsanranjbar/sortkeys/expr"
)

// Index maps values to posting lists of 32-bit ids.
// Every distinct value is stored once under its sort key, so the entries of an index
// are kept by badger in the natural order of the values.
type Index struct {
	prefix []byte
}

var _ sortkeys.Instantiator[*Instance] = (*Index)(nil)

// New creates a new Index whose entries live under the given prefix.
func New(prefix []byte) *Index {
	return &Index{prefix: prefix}
}

// Prefix returns the prefix of the index.
func (idx *Index) Prefix() []byte {
	return idx.prefix
}

// Instantiate creates a new Instance bound to the transaction.
func (idx *Index) Instantiate(txn *badger.Txn) *Instance {
	return &Instance{
		base:   txn,
		prefix: idx.prefix,
	}
}

// Instance is an index bound to a transaction.
type Instance struct {
	base   sortkeys.BadgerStore
	prefix []byte
}

func (ins *Instance) key(k lex.Key) []byte {
	return slices.Concat(ins.prefix, k)
}

// Add adds the ids to the posting list of the value.
func (ins *Instance) Add(v lex.Value, ids ...uint32) error {
	k, err := lex.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}
	return ins.AddKey(k, ids...)
}

// AddKey adds the ids to the posting list stored under the sort key.
func (ins *Instance) AddKey(k lex.Key, ids ...uint32) error {
	bm, err := ins.GetKey(k)
	if err != nil {
		return err
	}

	bm.AddMany(ids)
	return ins.put(k, bm)
}

// Remove removes the ids from the posting list of the value. Empty posting lists are deleted.
func (ins *Instance) Remove(v lex.Value, ids ...uint32) error {
	k, err := lex.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}
	return ins.RemoveKey(k, ids...)
}

// RemoveKey removes the ids from the posting list stored under the sort key.
func (ins *Instance) RemoveKey(k lex.Key, ids ...uint32) error {
	bm, err := ins.GetKey(k)
	if err != nil {
		return err
	}

	for _, id := range ids {
		bm.Remove(id)
	}
	if bm.IsEmpty() {
		err := ins.base.Delete(ins.key(k))
		if err != nil {
			return fmt.Errorf("failed to delete posting list: %w", err)
		}
		return nil
	}
	return ins.put(k, bm)
}

// Get returns the posting list of the value. It is empty if the value is not indexed.
func (ins *Instance) Get(v lex.Value) (*roaring.Bitmap, error) {
	k, err := lex.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	return ins.GetKey(k)
}

// GetKey returns the posting list stored under the sort key.
func (ins *Instance) GetKey(k lex.Key) (*roaring.Bitmap, error) {
	bm := roaring.New()

	item, err := ins.base.Get(ins.key(k))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return bm, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get posting list: %w", err)
	}

	err = item.Value(bm.UnmarshalBinary)
	if err != nil {
		return nil, fmt.Errorf("failed to decode posting list: %w", err)
	}
	return bm, nil
}

func (ins *Instance) put(k lex.Key, bm *roaring.Bitmap) error {
	bm.RunOptimize()
	data, err := bm.ToBytes()
	if err != nil {
		return fmt.Errorf("failed to encode posting list: %w", err)
	}

	err = ins.base.Set(ins.key(k), data)
	if err != nil {
		return fmt.Errorf("failed to set posting list: %w", err)
	}
	return nil
}

// NewIterator creates an iterator over the entries whose values lie within the range.
func (ins *Instance) NewIterator(r expr.Range[lex.Value], opts ...IteratorOption) (*Iterator, error) {
	kr, err := expr.Map(r, lex.Encode)
	if err != nil {
		return nil, fmt.Errorf("failed to encode range %s: %w", r, err)
	}
	return ins.NewKeyIterator(kr, opts...), nil
}

// NewKeyIterator creates an iterator over the entries whose sort keys lie within the range.
func (ins *Instance) NewKeyIterator(r expr.Range[lex.Key], opts ...IteratorOption) *Iterator {
	var o iteratorOptions
	for _, opt := range opts {
		opt(&o)
	}

	bopts := badger.DefaultIteratorOptions
	bopts.Prefix = ins.prefix
	bopts.Reverse = o.reverse
	return newIterator(ins.base.NewIterator(bopts), ins.prefix, r, o.reverse)
}

// Lookup returns the union of the posting lists of all values within the range.
func (ins *Instance) Lookup(r expr.Range[lex.Value]) (*roaring.Bitmap, error) {
	iter, err := ins.NewIterator(r)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	result := roaring.New()
	for iter.Rewind(); iter.Valid(); iter.Next() {
		bm, err := iter.Value()
		if err != nil {
			return nil, err
		}
		result.Or(bm)
	}
	return result, nil
}
