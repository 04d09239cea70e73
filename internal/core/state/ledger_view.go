// Package state provides read/write access to chain state. The Store is the
// durable view over the key-value backend; a Table is a per-call overlay that
// commits all of a call's writes as one batch or discards them, which is what
// makes every external operation atomic.
package state

import (
	"errors"

	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/keylet"
)

var (
	// ErrEntryExists is returned when inserting over an existing entry.
	ErrEntryExists = errors.New("entry already exists")

	// ErrEntryNotFound is returned when updating or erasing a missing entry.
	ErrEntryNotFound = errors.New("entry not found")
)

// Reader provides read-only access to chain state.
// Read returns (nil, nil) for an absent entry.
type Reader interface {
	Read(k keylet.Keylet) ([]byte, error)
	Exists(k keylet.Keylet) (bool, error)
}

// LedgerView provides read/write access to chain state.
type LedgerView interface {
	Reader
	Insert(k keylet.Keylet, data []byte) error
	Update(k keylet.Keylet, data []byte) error
	Erase(k keylet.Keylet) error
}

// Write inserts or updates the entry at k.
func Write(v LedgerView, k keylet.Keylet, data []byte) error {
	exists, err := v.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return v.Update(k, data)
	}
	return v.Insert(k, data)
}
