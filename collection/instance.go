package collection

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/araddon/qlbridge/expr"
	qlvm "github.com/araddon/qlbridge/vm"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/sortkeys"
	"github.com/ehsanranjbar/sortkeys/codec/lex"
	kexpr "github.com/ehsanranjbar/sortkeys/expr"
	"github.com/ehsanranjbar/sortkeys/index"
	"github.com/ehsanranjbar/sortkeys/internal/qlutil"
	"github.com/ehsanranjbar/sortkeys/iters"
	"github.com/ehsanranjbar/sortkeys/schema"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = fmt.Errorf("document not found: %w", badger.ErrKeyNotFound)
	// ErrNotIndexed is returned when finding by a path that has no index.
	ErrNotIndexed = errors.New("path is not indexed")
	// ErrIDOverflow is returned when every 32-bit id has been allocated.
	ErrIDOverflow = errors.New("document ids exhausted")
)

// Instance is a collection bound to a transaction.
type Instance struct {
	c       *Collection
	txn     sortkeys.BadgerStore
	indexes map[string]*index.Instance
}

func (ins *Instance) docKey(id uint32) ([]byte, error) {
	idBytes, err := ins.c.idCodec.Encode(id)
	if err != nil {
		return nil, fmt.Errorf("failed to encode id: %w", err)
	}
	return slices.Concat(ins.c.prefix, []byte{docsSpace}, idBytes), nil
}

// Insert stores the document under a newly allocated id and returns the id.
// Ids already holding a document are skipped.
func (ins *Instance) Insert(doc schema.Document) (uint32, error) {
	for {
		id, err := ins.allocateID()
		if err != nil {
			return 0, err
		}

		_, err = ins.Get(id)
		switch {
		case errors.Is(err, ErrNotFound):
			err = ins.Put(id, doc)
			if err != nil {
				return 0, err
			}
			return id, nil
		case err != nil:
			return 0, err
		default:
			ins.c.debugf("skipping id %d which already holds a document", id)
		}
	}
}

func (ins *Instance) allocateID() (uint32, error) {
	if ins.c.seq != nil {
		n, err := ins.c.seq.Next()
		if err != nil {
			return 0, fmt.Errorf("failed to generate id: %w", err)
		}
		// badger sequences start from 0 while ids start from 1.
		if n >= math.MaxUint32 {
			return 0, ErrIDOverflow
		}
		return uint32(n + 1), nil
	}

	last, err := ins.lastID()
	if err != nil {
		return 0, err
	}
	if last == math.MaxUint32 {
		return 0, ErrIDOverflow
	}

	next := last + 1
	err = ins.setLastID(next)
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (ins *Instance) seqKey() []byte {
	return slices.Concat(ins.c.prefix, []byte{seqSpace})
}

func (ins *Instance) lastID() (last uint32, err error) {
	item, err := ins.txn.Get(ins.seqKey())
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get id sequence: %w", err)
	}

	err = item.Value(func(val []byte) error {
		last, err = ins.c.idCodec.Decode(val)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to decode id sequence: %w", err)
	}
	return last, nil
}

func (ins *Instance) setLastID(id uint32) error {
	bz, err := ins.c.idCodec.Encode(id)
	if err != nil {
		return fmt.Errorf("failed to encode id: %w", err)
	}
	err = ins.txn.Set(ins.seqKey(), bz)
	if err != nil {
		return fmt.Errorf("failed to set id sequence: %w", err)
	}
	return nil
}

// advanceLastID moves the id counter past an id stored explicitly with Put.
func (ins *Instance) advanceLastID(id uint32) error {
	if ins.c.seq != nil {
		return nil
	}

	last, err := ins.lastID()
	if err != nil {
		return err
	}
	if id <= last {
		return nil
	}
	return ins.setLastID(id)
}

// Put stores the document under the id, replacing the existing one and its index entries.
func (ins *Instance) Put(id uint32, doc schema.Document) error {
	keys, err := ins.indexKeys(doc)
	if err != nil {
		return err
	}

	old, err := ins.Get(id)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return err
	default:
		err = ins.unindex(id, old)
		if err != nil {
			return err
		}
	}

	key, err := ins.docKey(id)
	if err != nil {
		return err
	}
	bz, err := ins.c.docCodec.Encode(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	err = ins.txn.Set(key, bz)
	if err != nil {
		return fmt.Errorf("failed to set document: %w", err)
	}
	err = ins.advanceLastID(id)
	if err != nil {
		return err
	}

	for path, k := range keys {
		ins.c.debugf("indexing document %d at %s with key %s", id, path, k)
		err = ins.indexes[path].AddKey(k, id)
		if err != nil {
			return fmt.Errorf("failed to index path %q: %w", path, err)
		}
	}
	return nil
}

// indexKeys returns the sort keys of the indexed paths of the document.
// Paths missing from the document are not indexed.
func (ins *Instance) indexKeys(doc schema.Document) (map[string]lex.Key, error) {
	keys := make(map[string]lex.Key, len(ins.indexes))
	for path := range ins.indexes {
		v, err := schema.ValueAt(doc, path)
		if errors.Is(err, schema.ErrPathNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get value of indexed path %q: %w", path, err)
		}

		k, err := lex.Encode(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode value of indexed path %q: %w", path, err)
		}
		keys[path] = k
	}
	return keys, nil
}

func (ins *Instance) unindex(id uint32, doc schema.Document) error {
	keys, err := ins.indexKeys(doc)
	if err != nil {
		return err
	}

	for path, k := range keys {
		ins.c.debugf("unindexing document %d at %s with key %s", id, path, k)
		err = ins.indexes[path].RemoveKey(k, id)
		if err != nil {
			return fmt.Errorf("failed to unindex path %q: %w", path, err)
		}
	}
	return nil
}

// Get returns the document with the given id.
func (ins *Instance) Get(id uint32) (schema.Document, error) {
	key, err := ins.docKey(id)
	if err != nil {
		return nil, err
	}

	item, err := ins.txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return ins.decode(item)
}

func (ins *Instance) decode(item *badger.Item) (doc schema.Document, err error) {
	err = item.Value(func(val []byte) error {
		doc, err = ins.decodeBytes(val)
		return err
	})
	return doc, err
}

func (ins *Instance) decodeBytes(bz []byte) (schema.Document, error) {
	doc, err := ins.c.docCodec.Decode(bz)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, nil
}

// Delete deletes the document with the given id and its index entries.
func (ins *Instance) Delete(id uint32) error {
	doc, err := ins.Get(id)
	if err != nil {
		return err
	}

	err = ins.unindex(id, doc)
	if err != nil {
		return err
	}

	key, err := ins.docKey(id)
	if err != nil {
		return err
	}
	err = ins.txn.Delete(key)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// NewIterator creates an iterator over all documents in id order.
func (ins *Instance) NewIterator() sortkeys.Iterator[uint32, schema.Document] {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = slices.Concat(ins.c.prefix, []byte{docsSpace})
	raw := &docIterator{
		ins:  ins,
		base: ins.txn.NewIterator(opts),
	}
	return iters.Map(raw, func(_ uint32, bz []byte) (schema.Document, error) {
		return ins.decodeBytes(bz)
	})
}

// FindOption configures Find.
type FindOption func(*findOptions)

type findOptions struct {
	reverse bool
	limit   int
}

// WithReverse makes Find return documents from the highest value to the lowest.
func WithReverse() FindOption {
	return func(o *findOptions) {
		o.reverse = true
	}
}

// WithLimit limits the number of documents returned by Find.
func WithLimit(n int) FindOption {
	return func(o *findOptions) {
		o.limit = n
	}
}

// Find returns the documents whose value at the indexed path lies within the range, ordered
// by that value. Documents with equal values are ordered by id, descending when reversed.
func (ins *Instance) Find(
	path string,
	r kexpr.Range[lex.Value],
	opts ...FindOption,
) (sortkeys.Iterator[uint32, schema.Document], error) {
	var o findOptions
	for _, opt := range opts {
		opt(&o)
	}

	idx, ok := ins.indexes[path]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotIndexed, path)
	}

	var iopts []index.IteratorOption
	if o.reverse {
		iopts = append(iopts, index.WithReverse())
	}
	iter, err := idx.NewIterator(r, iopts...)
	if err != nil {
		return nil, err
	}
	ids, err := collectIDs(iter, o)
	if err != nil {
		return nil, err
	}

	var result sortkeys.Iterator[uint32, schema.Document] = iters.Lookup(ids, ins.Get)
	if o.limit > 0 {
		result = iters.Limit(result, o.limit)
	}
	return result, nil
}

func collectIDs(iter *index.Iterator, o findOptions) ([]uint32, error) {
	defer iter.Close()

	var ids []uint32
	for iter.Rewind(); iter.Valid(); iter.Next() {
		if o.limit > 0 && len(ids) >= o.limit {
			break
		}

		bm, err := iter.Value()
		if err != nil {
			return nil, err
		}
		posting := bm.ToArray()
		if o.reverse {
			slices.Reverse(posting)
		}
		ids = append(ids, posting...)
	}
	return ids, nil
}

// Query returns the documents matching the qlbridge filter expression in id order.
func (ins *Instance) Query(q string) (sortkeys.Iterator[uint32, schema.Document], error) {
	node, err := expr.ParseExpression(q)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query %q: %w", q, err)
	}

	iter := iters.Filter(
		ins.NewIterator(),
		func(id uint32, doc schema.Document) bool {
			ctx := qlutil.NewContextWrapper(id, doc)
			t, _ := qlvm.MatchesExpr(ctx, node)
			return t
		})
	return iter, nil
}
