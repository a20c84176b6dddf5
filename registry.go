package sortkeys

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/sortkeys/codec/lex"
	msgpack "github.com/vmihailenco/msgpack/v5"
)

// ErrRegistryFull is returned when every key of the configured length has been handed out.
var ErrRegistryFull = errors.New("name registry is full")

// NameRegistry associates long names with short fixed-size keys that are persisted in the database.
// The keys are meant to be used as keyspace prefixes, e.g. one per collection.
type NameRegistry struct {
	db     *badger.DB
	prefix []byte
	keyLen int
	state  registryState
	mu     sync.Mutex
}

type registryState struct {
	Names map[string][]byte `msgpack:"names"`
	Next  []byte            `msgpack:"next"`
}

// NewNameRegistry creates a new NameRegistry and loads its persisted state.
func NewNameRegistry(db *badger.DB, opts ...func(*NameRegistry)) (*NameRegistry, error) {
	nreg := &NameRegistry{
		db:     db,
		keyLen: 1,
	}
	for _, opt := range opts {
		opt(nreg)
	}
	if nreg.keyLen < 1 {
		return nil, fmt.Errorf("invalid registry key length %d", nreg.keyLen)
	}

	if err := nreg.load(); err != nil {
		return nil, fmt.Errorf("failed to load name registry: %w", err)
	}
	return nreg, nil
}

// WithRegistryPrefix sets the key under which the registry persists its state.
func WithRegistryPrefix(prefix []byte) func(*NameRegistry) {
	return func(nreg *NameRegistry) {
		nreg.prefix = prefix
	}
}

// WithRegistryKeyLen sets the length of the keys handed out by the registry.
func WithRegistryKeyLen(keyLen int) func(*NameRegistry) {
	return func(nreg *NameRegistry) {
		nreg.keyLen = keyLen
	}
}

func (nreg *NameRegistry) stateKey() []byte {
	if len(nreg.prefix) == 0 {
		// The all-zero key is never handed out as the first allocated key is its increment.
		return make([]byte, nreg.keyLen)
	}
	return nreg.prefix
}

func (nreg *NameRegistry) load() error {
	nreg.state = registryState{
		Names: make(map[string][]byte),
		Next:  lex.Increment(make([]byte, nreg.keyLen)),
	}

	return nreg.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(nreg.stateKey())
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get registry state: %w", err)
		}

		return item.Value(func(val []byte) error {
			if err := msgpack.Unmarshal(val, &nreg.state); err != nil {
				return fmt.Errorf("failed to decode registry state: %w", err)
			}
			return nil
		})
	})
}

// MustName is like Name but panics if an error occurs.
func (nreg *NameRegistry) MustName(name string) []byte {
	key, err := nreg.Name(name)
	if err != nil {
		panic(err)
	}
	return key
}

// Name returns the key associated with the name, allocating and persisting a new one if needed.
func (nreg *NameRegistry) Name(name string) ([]byte, error) {
	nreg.mu.Lock()
	defer nreg.mu.Unlock()

	if key, ok := nreg.state.Names[name]; ok {
		return bytes.Clone(key), nil
	}
	if len(nreg.state.Next) > nreg.keyLen {
		return nil, ErrRegistryFull
	}

	key := bytes.Clone(nreg.state.Next)
	next := lex.Increment(bytes.Clone(key))
	nreg.state.Names[name] = key
	nreg.state.Next = next

	if err := nreg.save(); err != nil {
		delete(nreg.state.Names, name)
		nreg.state.Next = key
		return nil, fmt.Errorf("failed to update name registry: %w", err)
	}
	return bytes.Clone(key), nil
}

// Lookup returns the key associated with the name without allocating one.
func (nreg *NameRegistry) Lookup(name string) ([]byte, bool) {
	nreg.mu.Lock()
	defer nreg.mu.Unlock()

	key, ok := nreg.state.Names[name]
	return bytes.Clone(key), ok
}

// Names returns the registered names ordered by their keys.
func (nreg *NameRegistry) Names() []string {
	nreg.mu.Lock()
	defer nreg.mu.Unlock()

	names := make([]string, 0, len(nreg.state.Names))
	for name := range nreg.state.Names {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return bytes.Compare(nreg.state.Names[names[i]], nreg.state.Names[names[j]]) < 0
	})
	return names
}

func (nreg *NameRegistry) save() error {
	data, err := msgpack.Marshal(&nreg.state)
	if err != nil {
		return fmt.Errorf("failed to encode registry state: %w", err)
	}

	return nreg.db.Update(func(txn *badger.Txn) error {
		return txn.Set(nreg.stateKey(), data)
	})
}
