// Package invariant verifies ledger consistency rules, both on the net
// changes of a single operation and over a whole store.
package invariant

import (
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
)

// Rule names.
const (
	RuleFlagsAgree        = "flags-agree"
	RuleKeyMatchesContent = "key-matches-content"
	RuleNativeConserved   = "native-conserved"
)

// Default returns the checkers the engine runs before every commit.
func Default() []tx.InvariantChecker {
	return []tx.InvariantChecker{
		KeyMatchesContent{},
		FlagsAgree{},
		NativeConserved{},
	}
}

// FlagsAgree requires a trust line and a preauthorization at the same
// (account, asset) to carry equal flags.
type FlagsAgree struct{}

func (FlagsAgree) Check(view tx.Reader, changes []tx.Change) error {
	for _, c := range changes {
		if c.After == nil || !c.Key.Type.Authorizable() {
			continue
		}
		e, err := sle.ParseAuthorizable(c.After)
		if err != nil {
			return &InvariantError{Rule: RuleFlagsAgree, Key: c.Key, Description: "undecodable entry", Err: err}
		}
		if err := checkSibling(view, e); err != nil {
			return err
		}
	}
	return nil
}

// SiblingKey returns the key of the other authorizable entry type at e's
// (holder, asset).
func SiblingKey(e sle.Authorizable) keylet.Keylet {
	asset := e.HeldAsset()
	if e.Key().Type == entry.TypeTrustLine {
		return asset.PreauthorizationKey(e.Holder())
	}
	return asset.TrustLineKey(e.Holder())
}

func checkSibling(view tx.Reader, e sle.Authorizable) error {
	siblingKey := SiblingKey(e)
	data, err := view.Read(siblingKey)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	sibling, err := sle.ParseAuthorizable(data)
	if err != nil {
		return &InvariantError{Rule: RuleFlagsAgree, Key: siblingKey, Description: "undecodable sibling", Err: err}
	}
	if sibling.AuthFlags() != e.AuthFlags() {
		return violation(RuleFlagsAgree, e.Key(), "flags %#x, sibling %s has %#x",
			e.AuthFlags(), siblingKey.Type, sibling.AuthFlags())
	}
	return nil
}

// KeyMatchesContent requires every written entry to decode and to sit at the
// key derived from its own content. With keys derived from (type, account,
// asset) this guarantees at most one entry of each type per pair.
type KeyMatchesContent struct{}

func (KeyMatchesContent) Check(_ tx.Reader, changes []tx.Change) error {
	for _, c := range changes {
		if c.After == nil {
			continue
		}
		if err := checkKey(c.Key, c.After); err != nil {
			return err
		}
	}
	return nil
}

func checkKey(k keylet.Keylet, data []byte) error {
	derived, err := sle.EntryKey(data)
	if err != nil {
		return &InvariantError{Rule: RuleKeyMatchesContent, Key: k, Description: "undecodable entry", Err: err}
	}
	if derived != k {
		return violation(RuleKeyMatchesContent, k, "content belongs at %s", derived)
	}
	return nil
}

// NativeConserved requires the sum of account balances and preauthorization
// reserves to be unchanged by an operation.
type NativeConserved struct{}

func (NativeConserved) Check(_ tx.Reader, changes []tx.Change) error {
	var delta int64
	for _, c := range changes {
		before, err := nativeHeld(c.Before)
		if err != nil {
			return &InvariantError{Rule: RuleNativeConserved, Key: c.Key, Description: "undecodable entry", Err: err}
		}
		after, err := nativeHeld(c.After)
		if err != nil {
			return &InvariantError{Rule: RuleNativeConserved, Key: c.Key, Description: "undecodable entry", Err: err}
		}
		delta += after - before
	}
	if delta != 0 {
		return violation(RuleNativeConserved, keylet.Keylet{}, "native total changed by %d", delta)
	}
	return nil
}

// nativeHeld returns the native amount an encoded entry accounts for.
func nativeHeld(data []byte) (int64, error) {
	if data == nil {
		return 0, nil
	}
	t, err := sle.EntryType(data)
	if err != nil {
		return 0, err
	}
	switch t {
	case entry.TypeAccount:
		a, err := sle.ParseAccount(data)
		if err != nil {
			return 0, err
		}
		return a.Balance, nil
	case entry.TypePreauthorization:
		p, err := sle.ParsePreauthorization(data)
		if err != nil {
			return 0, err
		}
		return p.Reserve, nil
	}
	return 0, nil
}
