package state

import (
	"context"
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/keylet"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/storage/database"
)

// cacheSize bounds the read-through entry cache.
const cacheSize = 16384

// Store is the durable chain-state view over a key-value backend, with a
// read-through cache in front of it. Mutations only reach the Store through
// a committed Table.
type Store struct {
	db    database.DB
	cache *lru.Cache[[32]byte, []byte]
}

// NewStore creates a store over the given backend.
func NewStore(db database.DB) (*Store, error) {
	cache, err := lru.New[[32]byte, []byte](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, cache: cache}, nil
}

// Read returns the entry at k, or (nil, nil) if absent.
func (s *Store) Read(k keylet.Keylet) ([]byte, error) {
	if data, ok := s.cache.Get(k.Key); ok {
		return data, nil
	}

	data, err := s.db.Read(context.Background(), k.Key[:])
	if err != nil {
		if errors.Is(err, database.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	s.cache.Add(k.Key, data)
	return data, nil
}

// Exists reports whether an entry exists at k.
func (s *Store) Exists(k keylet.Keylet) (bool, error) {
	data, err := s.Read(k)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

// View opens a fresh overlay table on the store.
func (s *Store) View() *Table {
	return NewTable(s)
}

// commit applies a batch of operations and reconciles the cache.
func (s *Store) commit(ops []database.BatchOperation) error {
	if err := s.db.Batch(context.Background(), ops); err != nil {
		return err
	}
	for _, op := range ops {
		var key [32]byte
		copy(key[:], op.Key)
		switch op.Type {
		case database.BatchPut:
			s.cache.Add(key, op.Value)
		case database.BatchDelete:
			s.cache.Remove(key)
		}
	}
	return nil
}
