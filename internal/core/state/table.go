package state

import (
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/core/keylet"
	"github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/storage/database"
)

// action represents the type of modification to a tracked entry.
type action int

const (
	actionCache action = iota
	actionInsert
	actionModify
	actionErase
)

// trackedEntry records the state of one entry touched by the current call.
type trackedEntry struct {
	action  action
	current []byte
}

// Table wraps a Store and buffers all modifications made during one call.
// Commit writes them as a single batch; dropping the table discards them.
type Table struct {
	base  *Store
	items map[[32]byte]*trackedEntry
}

// NewTable creates an empty overlay on the given store.
func NewTable(base *Store) *Table {
	return &Table{
		base:  base,
		items: make(map[[32]byte]*trackedEntry),
	}
}

// Read reads an entry, preferring buffered modifications.
func (t *Table) Read(k keylet.Keylet) ([]byte, error) {
	if e, ok := t.items[k.Key]; ok {
		if e.action == actionErase {
			return nil, nil
		}
		return e.current, nil
	}

	data, err := t.base.Read(k)
	if err != nil {
		return nil, err
	}
	if data != nil {
		t.items[k.Key] = &trackedEntry{action: actionCache, current: data}
	}
	return data, nil
}

// Exists reports whether an entry exists in the overlay view.
func (t *Table) Exists(k keylet.Keylet) (bool, error) {
	if e, ok := t.items[k.Key]; ok {
		return e.action != actionErase, nil
	}
	return t.base.Exists(k)
}

// Insert adds a new entry. Fails if the entry already exists.
func (t *Table) Insert(k keylet.Keylet, data []byte) error {
	if e, ok := t.items[k.Key]; ok {
		if e.action != actionErase {
			return ErrEntryExists
		}
		// Re-inserting an erased entry becomes a modify.
		e.action = actionModify
		e.current = data
		return nil
	}

	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return ErrEntryExists
	}

	t.items[k.Key] = &trackedEntry{action: actionInsert, current: data}
	return nil
}

// Update modifies an existing entry.
func (t *Table) Update(k keylet.Keylet, data []byte) error {
	if e, ok := t.items[k.Key]; ok {
		switch e.action {
		case actionErase:
			return ErrEntryNotFound
		case actionCache:
			e.action = actionModify
		}
		e.current = data
		return nil
	}

	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEntryNotFound
	}

	t.items[k.Key] = &trackedEntry{action: actionModify, current: data}
	return nil
}

// Erase removes an entry.
func (t *Table) Erase(k keylet.Keylet) error {
	if e, ok := t.items[k.Key]; ok {
		if e.action == actionErase {
			return ErrEntryNotFound
		}
		if e.action == actionInsert {
			delete(t.items, k.Key)
			return nil
		}
		e.action = actionErase
		e.current = nil
		return nil
	}

	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEntryNotFound
	}

	t.items[k.Key] = &trackedEntry{action: actionErase}
	return nil
}

// Commit flushes all buffered modifications to the store as one batch.
func (t *Table) Commit() error {
	var ops []database.BatchOperation
	for key, e := range t.items {
		switch e.action {
		case actionInsert, actionModify:
			ops = append(ops, database.BatchOperation{
				Type:  database.BatchPut,
				Key:   append([]byte(nil), key[:]...),
				Value: e.current,
			})
		case actionErase:
			ops = append(ops, database.BatchOperation{
				Type: database.BatchDelete,
				Key:  append([]byte(nil), key[:]...),
			})
		}
	}
	if len(ops) == 0 {
		return nil
	}
	return t.base.commit(ops)
}
