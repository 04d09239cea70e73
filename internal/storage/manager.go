// Package storage opens chain-state databases by backend name and tracks
// open handles so they can be closed together on shutdown.
package storage

import (
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/storage/database"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/storage/database/bbolt"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/storage/database/pebble"
)

// Backend names accepted by the manager.
const (
	BackendPebble = "pebble"
	BackendBbolt  = "bbolt"
	BackendMemory = "memory"
)

// Manager opens named databases under a data directory.
type Manager struct {
	mu      sync.Mutex
	backend string
	path    string
	dbs     map[string]database.DB
}

// NewManager creates a manager for the given backend and data directory.
func NewManager(backend, path string) *Manager {
	return &Manager{
		backend: backend,
		path:    path,
		dbs:     make(map[string]database.DB),
	}
}

// OpenDB opens the named database, reusing an already-open handle.
func (m *Manager) OpenDB(name string) (database.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if db, ok := m.dbs[name]; ok {
		return db, nil
	}

	var (
		db  database.DB
		err error
	)
	switch m.backend {
	case BackendPebble:
		db, err = pebble.Open(filepath.Join(m.path, name+".db"))
	case BackendBbolt:
		db, err = bbolt.Open(filepath.Join(m.path, name+".db"))
	case BackendMemory:
		db = database.NewMemoryDB()
	default:
		return nil, errors.Wrapf(database.ErrUnknownBackend, "backend %q", m.backend)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database %s", name)
	}

	m.dbs[name] = db
	return db, nil
}

// CloseAll closes every open database.
func (m *Manager) CloseAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for name, db := range m.dbs {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "failed to close database %s", name)
		}
		delete(m.dbs, name)
	}
	return firstErr
}
