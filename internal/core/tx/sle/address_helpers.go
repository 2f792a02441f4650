package sle

import (
	"errors"
	"fmt"

	"github.com/stellar/go-stellar-sdk/strkey"
)

// ErrInvalidAccountID is returned when an address does not decode to an
// ed25519 account ID.
var ErrInvalidAccountID = errors.New("invalid account ID")

// AccountID is the raw ed25519 public key identifying a ledger account.
type AccountID [32]byte

// EncodeAccountID encodes a raw account ID as a G... strkey address
func EncodeAccountID(accountID AccountID) (string, error) {
	return strkey.Encode(strkey.VersionByteAccountID, accountID[:])
}

// DecodeAccountID decodes a G... strkey address to a raw account ID
func DecodeAccountID(address string) (AccountID, error) {
	var result AccountID
	raw, err := strkey.Decode(strkey.VersionByteAccountID, address)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrInvalidAccountID, err)
	}
	if len(raw) != len(result) {
		return result, fmt.Errorf("%w: decoded %d bytes", ErrInvalidAccountID, len(raw))
	}
	copy(result[:], raw)
	return result, nil
}

// MustDecodeAccountID is DecodeAccountID for fixtures and constants.
func MustDecodeAccountID(address string) AccountID {
	id, err := DecodeAccountID(address)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the strkey address.
func (a AccountID) String() string {
	return strkey.MustEncode(strkey.VersionByteAccountID, a[:])
}

// IsZero reports whether the ID is unset.
func (a AccountID) IsZero() bool {
	return a == AccountID{}
}

// MarshalText implements encoding.TextMarshaler so IDs appear as
// addresses in JSON.
func (a AccountID) MarshalText() ([]byte, error) {
	s, err := EncodeAccountID(a)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AccountID) UnmarshalText(text []byte) error {
	id, err := DecodeAccountID(string(text))
	if err != nil {
		return err
	}
	*a = id
	return nil
}
