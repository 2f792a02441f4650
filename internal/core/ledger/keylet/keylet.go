package keylet

import (
	"encoding/binary"
	"fmt"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	crypto "github.com/LeJamon/goPreauthLedger/internal/crypto/common"
)

// Space identifiers for keylet generation. Each entry type hashes under
// its own namespace so keys of different types never collide.
const (
	spaceAccount   uint16 = 'a' // Account
	spaceTrustLine uint16 = 'r' // Trust line
	spacePreauth   uint16 = 'p' // Preauthorization
)

// Asset code lengths of the two credit asset variants.
const (
	AlphaNum4Len  = 4
	AlphaNum12Len = 12
)

// StoreKeyLen is the length of the key used by persistent backends.
const StoreKeyLen = 2 + 32

// Keylet represents an addressable location in the ledger state.
// It combines a type identifier with a 256-bit key.
type Keylet struct {
	Type entry.Type
	Key  [32]byte
}

// String renders the keylet for logs.
func (k Keylet) String() string {
	return fmt.Sprintf("%s:%X", k.Type, k.Key[:8])
}

// StoreKey returns the type-prefixed key used by persistent backends.
// The prefix keeps all entries of one type contiguous so they can be
// range-scanned.
func (k Keylet) StoreKey() []byte {
	out := make([]byte, StoreKeyLen)
	binary.BigEndian.PutUint16(out[:2], uint16(k.Type))
	copy(out[2:], k.Key[:])
	return out
}

// FromStoreKey is the inverse of StoreKey.
func FromStoreKey(b []byte) (Keylet, error) {
	if len(b) != StoreKeyLen {
		return Keylet{}, fmt.Errorf("invalid store key length %d", len(b))
	}
	var k Keylet
	k.Type = entry.Type(binary.BigEndian.Uint16(b[:2]))
	copy(k.Key[:], b[2:])
	return k, nil
}

// TypePrefix returns the [start, end) store key range holding every
// entry of the given type.
func TypePrefix(t entry.Type) (start, end []byte) {
	start = make([]byte, 2)
	binary.BigEndian.PutUint16(start, uint16(t))
	end = make([]byte, 2)
	binary.BigEndian.PutUint16(end, uint16(t)+1)
	return start, end
}

// indexHash computes a keylet key by hashing the space and provided data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	spaceBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(spaceBytes, space)

	inputs := make([][]byte, 0, len(data)+1)
	inputs = append(inputs, spaceBytes)
	inputs = append(inputs, data...)

	return crypto.Sha512Half(inputs...)
}

// assetBytes encodes a credit asset as its variant discriminator, the
// zero-padded code and the issuer. Codes longer than four characters
// use the 12-byte variant.
func assetBytes(code string, issuer [32]byte) []byte {
	width, variant := AlphaNum4Len, byte(1)
	if len(code) > AlphaNum4Len {
		width, variant = AlphaNum12Len, 2
	}
	out := make([]byte, 1+width+len(issuer))
	out[0] = variant
	copy(out[1:1+width], code)
	copy(out[1+width:], issuer[:])
	return out
}

// Account returns the keylet for an account entry.
func Account(accountID [32]byte) Keylet {
	return Keylet{
		Type: entry.TypeAccount,
		Key:  indexHash(spaceAccount, accountID[:]),
	}
}

// TrustLine returns the keylet for the trust line of accountID in the
// asset (code, issuer).
func TrustLine(accountID [32]byte, code string, issuer [32]byte) Keylet {
	return Keylet{
		Type: entry.TypeTrustLine,
		Key:  indexHash(spaceTrustLine, accountID[:], assetBytes(code, issuer)),
	}
}

// Preauthorization returns the keylet for the preauthorization of
// accountID in the asset (code, issuer). It shares its discriminator
// with TrustLine but lives in a separate namespace.
func Preauthorization(accountID [32]byte, code string, issuer [32]byte) Keylet {
	return Keylet{
		Type: entry.TypePreauthorization,
		Key:  indexHash(spacePreauth, accountID[:], assetBytes(code, issuer)),
	}
}
