package collection

import (
	"fmt"
	"slices"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/sortkeys"
	"github.com/ehsanranjbar/sortkeys/codec"
	"github.com/ehsanranjbar/sortkeys/codec/lex"
	"github.com/ehsanranjbar/sortkeys/index"
	"github.com/ehsanranjbar/sortkeys/schema"
)

const (
	docsSpace    = 'd'
	seqSpace     = 's'
	indexesSpace = 'i'
)

// Collection is a set of documents addressed by 32-bit ids with secondary indexes on document paths.
//
// Keyspace layout under the collection prefix:
//
//	d + id          document body
//	s               last allocated or explicitly stored id
//	i + sort key    index of a path, where the sort key is that of the sequence [path]
type Collection struct {
	prefix   []byte
	paths    []string
	indexes  map[string]*index.Index
	logger   badger.Logger
	seq      *badger.Sequence
	idCodec  codec.Codec[uint32]
	docCodec codec.Codec[schema.Document]
}

var _ sortkeys.Instantiator[*Instance] = (*Collection)(nil)

// New creates a new Collection under the given prefix.
func New(prefix []byte, opts ...func(*Collection)) (*Collection, error) {
	c := &Collection{
		prefix:   prefix,
		indexes:  make(map[string]*index.Index),
		idCodec:  codec.Uint32Codec{},
		docCodec: codec.JSONCodec[schema.Document]{},
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, path := range c.paths {
		name, err := lex.EncodeText(path)
		if err != nil {
			return nil, fmt.Errorf("invalid index path %q: %w", path, err)
		}
		c.indexes[path] = index.New(slices.Concat(prefix, []byte{indexesSpace}, lex.EncodeSequence([]lex.Key{name})))
	}
	return c, nil
}

// WithIndex adds an index on the given document path.
func WithIndex(path string) func(*Collection) {
	return func(c *Collection) {
		if !slices.Contains(c.paths, path) {
			c.paths = append(c.paths, path)
		}
	}
}

// WithSequence makes Insert allocate ids from the badger sequence instead of the counter
// stored in the collection keyspace.
func WithSequence(seq *badger.Sequence) func(*Collection) {
	return func(c *Collection) {
		c.seq = seq
	}
}

// WithLogger sets the logger that index maintenance is reported to at debug level.
func WithLogger(logger badger.Logger) func(*Collection) {
	return func(c *Collection) {
		c.logger = logger
	}
}

// Prefix returns the prefix of the collection.
func (c *Collection) Prefix() []byte {
	return c.prefix
}

// Indexes returns the indexed paths in the order they were added.
func (c *Collection) Indexes() []string {
	return slices.Clone(c.paths)
}

// Instantiate creates a new Instance bound to the transaction.
func (c *Collection) Instantiate(txn *badger.Txn) *Instance {
	ins := &Instance{
		c:       c,
		txn:     txn,
		indexes: make(map[string]*index.Instance, len(c.indexes)),
	}
	for path, idx := range c.indexes {
		ins.indexes[path] = idx.Instantiate(txn)
	}
	return ins
}

func (c *Collection) debugf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
