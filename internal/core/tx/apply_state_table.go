package tx

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"
)

// Action represents the type of modification to a ledger entry
type Action int

const (
	// ActionCache means the entry was read but not modified
	ActionCache Action = iota
	// ActionInsert means a new entry was created
	ActionInsert
	// ActionModify means an existing entry was modified
	ActionModify
	// ActionErase means an entry was deleted
	ActionErase
)

func (a Action) String() string {
	switch a {
	case ActionCache:
		return "cache"
	case ActionInsert:
		return "insert"
	case ActionModify:
		return "modify"
	case ActionErase:
		return "erase"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Reader is the read side of a ledger view.
type Reader interface {
	Read(k keylet.Keylet) ([]byte, error)
}

// TrackedEntry represents a ledger entry being tracked for changes
type TrackedEntry struct {
	Action   Action
	Original []byte // nil for inserts
	Current  []byte // state before deletion for erases
}

// ApplyStateTable wraps a base reader and tracks all modifications made by one
// operation. Nothing reaches the base until the engine commits Changes().
type ApplyStateTable struct {
	base  Reader
	items map[keylet.Keylet]*TrackedEntry
}

// NewApplyStateTable creates a new ApplyStateTable over base.
func NewApplyStateTable(base Reader) *ApplyStateTable {
	return &ApplyStateTable{
		base:  base,
		items: make(map[keylet.Keylet]*TrackedEntry),
	}
}

// Read reads a ledger entry, tracking it as cached
func (t *ApplyStateTable) Read(k keylet.Keylet) ([]byte, error) {
	if entry, exists := t.items[k]; exists {
		if entry.Action == ActionErase {
			return nil, nil
		}
		return entry.Current, nil
	}

	data, err := t.base.Read(k)
	if err != nil {
		return nil, err
	}

	// Only track entries that exist in the base
	if data != nil {
		t.items[k] = &TrackedEntry{
			Action:   ActionCache,
			Original: data,
			Current:  data,
		}
	}
	return data, nil
}

// Exists checks if an entry exists
func (t *ApplyStateTable) Exists(k keylet.Keylet) (bool, error) {
	data, err := t.Read(k)
	return data != nil, err
}

// Insert adds a new entry
func (t *ApplyStateTable) Insert(k keylet.Keylet, data []byte) error {
	if entry, exists := t.items[k]; exists {
		if entry.Action != ActionErase {
			return fmt.Errorf("%w: %s", ErrEntryExists, k)
		}
		// Re-inserting a deleted entry becomes a modify
		entry.Action = ActionModify
		entry.Current = data
		return nil
	}

	existing, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", ErrEntryExists, k)
	}

	t.items[k] = &TrackedEntry{
		Action:  ActionInsert,
		Current: data,
	}
	return nil
}

// Update modifies an existing entry
func (t *ApplyStateTable) Update(k keylet.Keylet, data []byte) error {
	if entry, exists := t.items[k]; exists {
		if entry.Action == ActionErase {
			return fmt.Errorf("%w: %s (deleted)", ErrEntryNotFound, k)
		}
		if entry.Action == ActionCache {
			entry.Action = ActionModify
		}
		// An insert stays an insert with new data
		entry.Current = data
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, k)
	}

	t.items[k] = &TrackedEntry{
		Action:   ActionModify,
		Original: original,
		Current:  data,
	}
	return nil
}

// Erase removes an entry
func (t *ApplyStateTable) Erase(k keylet.Keylet) error {
	if entry, exists := t.items[k]; exists {
		switch entry.Action {
		case ActionErase:
			return fmt.Errorf("%w: %s (already deleted)", ErrEntryNotFound, k)
		case ActionInsert:
			// Inserting then deleting = no change
			delete(t.items, k)
			return nil
		}
		entry.Action = ActionErase
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, k)
	}

	t.items[k] = &TrackedEntry{
		Action:   ActionErase,
		Original: original,
		Current:  original,
	}
	return nil
}

// IsErased returns true if the entry at the given key has been erased.
func (t *ApplyStateTable) IsErased(k keylet.Keylet) bool {
	if entry, exists := t.items[k]; exists {
		return entry.Action == ActionErase
	}
	return false
}

// Changes returns the net writes of the table in key order. Cached reads and
// modifications that restored the original bytes are omitted.
func (t *ApplyStateTable) Changes() []Change {
	changes := make([]Change, 0, len(t.items))
	for k, entry := range t.items {
		switch entry.Action {
		case ActionCache:
			continue
		case ActionInsert:
			changes = append(changes, Change{Action: ActionInsert, Key: k, After: entry.Current})
		case ActionModify:
			if bytes.Equal(entry.Original, entry.Current) {
				continue
			}
			changes = append(changes, Change{Action: ActionModify, Key: k, Before: entry.Original, After: entry.Current})
		case ActionErase:
			changes = append(changes, Change{Action: ActionErase, Key: k, Before: entry.Original})
		}
	}
	sort.Slice(changes, func(i, j int) bool {
		return bytes.Compare(changes[i].Key.StoreKey(), changes[j].Key.StoreKey()) < 0
	})
	return changes
}

// Metadata summarises the changes for callers of the engine.
func (t *ApplyStateTable) Metadata() *Metadata {
	return NewMetadata(t.Changes())
}
