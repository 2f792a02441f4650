package sle

import (
	"fmt"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"
)

// ReadAccount loads an account entry, returning nil if it does not exist.
func ReadAccount(view LedgerView, id AccountID) (*AccountEntry, error) {
	data, err := view.Read(keylet.Account(id))
	if err != nil || data == nil {
		return nil, err
	}
	return ParseAccount(data)
}

// WriteAccount updates an existing account entry.
func WriteAccount(view LedgerView, a *AccountEntry) error {
	data, err := SerializeAccount(a)
	if err != nil {
		return err
	}
	return view.Update(a.Key(), data)
}

// ReadTrustLine loads holder's trust line in asset, or nil.
func ReadTrustLine(view LedgerView, holder AccountID, asset Asset) (*TrustLineEntry, error) {
	data, err := view.Read(asset.TrustLineKey(holder))
	if err != nil || data == nil {
		return nil, err
	}
	return ParseTrustLine(data)
}

// ReadPreauthorization loads holder's preauthorization in asset, or nil.
func ReadPreauthorization(view LedgerView, holder AccountID, asset Asset) (*PreauthorizationEntry, error) {
	data, err := view.Read(asset.PreauthorizationKey(holder))
	if err != nil || data == nil {
		return nil, err
	}
	return ParsePreauthorization(data)
}

// InsertEntry serializes and inserts a new authorizable entry.
func InsertEntry(view LedgerView, e Authorizable) error {
	data, err := e.Serialize()
	if err != nil {
		return err
	}
	return view.Insert(e.Key(), data)
}

// UpdateEntry serializes and overwrites an existing authorizable entry.
func UpdateEntry(view LedgerView, e Authorizable) error {
	data, err := e.Serialize()
	if err != nil {
		return err
	}
	return view.Update(e.Key(), data)
}

// ParseAuthorizable decodes either sibling entry type.
func ParseAuthorizable(data []byte) (Authorizable, error) {
	t, err := EntryType(data)
	if err != nil {
		return nil, err
	}
	switch t {
	case entry.TypeTrustLine:
		return ParseTrustLine(data)
	case entry.TypePreauthorization:
		return ParsePreauthorization(data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnexpectedEntryType, t)
}

// EntryKey decodes an entry of any known type and returns the key its
// content belongs at.
func EntryKey(data []byte) (keylet.Keylet, error) {
	t, err := EntryType(data)
	if err != nil {
		return keylet.Keylet{}, err
	}
	switch t {
	case entry.TypeAccount:
		a, err := ParseAccount(data)
		if err != nil {
			return keylet.Keylet{}, err
		}
		return a.Key(), nil
	case entry.TypeTrustLine, entry.TypePreauthorization:
		e, err := ParseAuthorizable(data)
		if err != nil {
			return keylet.Keylet{}, err
		}
		return e.Key(), nil
	}
	return keylet.Keylet{}, fmt.Errorf("%w: %s", ErrUnexpectedEntryType, t)
}
