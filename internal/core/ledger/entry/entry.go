package entry

import (
	"fmt"
)

// Type represents a ledger entry type. Values are the stable
// LedgerEntryType discriminators of the ledger's entry union.
type Type uint16

const (
	TypeAccount          Type = 0 // Account objects
	TypeTrustLine        Type = 1 // Trust lines
	TypeOffer            Type = 2 // DEX offers (not handled by this engine)
	TypeData             Type = 3 // Account data entries (not handled by this engine)
	TypePreauthorization Type = 4 // Issuer preauthorizations
)

// String returns the string representation of the Type
func (t Type) String() string {
	switch t {
	case TypeAccount:
		return "Account"
	case TypeTrustLine:
		return "TrustLine"
	case TypeOffer:
		return "Offer"
	case TypeData:
		return "Data"
	case TypePreauthorization:
		return "Preauthorization"
	default:
		return fmt.Sprintf("Unknown(%#x)", uint16(t))
	}
}

// Authorizable reports whether entries of this type carry issuer
// authorization flags that must agree across siblings.
func (t Type) Authorizable() bool {
	return t == TypeTrustLine || t == TypePreauthorization
}
