package sle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"
)

// Asset validation errors
var (
	ErrEmptyAssetCode     = errors.New("asset code is empty")
	ErrAssetCodeTooLong   = errors.New("asset code exceeds 12 characters")
	ErrAssetCodeCharset   = errors.New("asset code must be alphanumeric")
	ErrNativeAsset        = errors.New("native asset is not a credit asset")
	ErrMissingIssuer      = errors.New("asset issuer is required")
	ErrInvalidAssetFormat = errors.New("asset must be formatted as CODE:ISSUER")
)

// NativeAssetName is the shorthand ParseAsset accepts for the native
// asset. As a bare code it is an ordinary AlphaNum12 code.
const NativeAssetName = "native"

// AssetType distinguishes the two credit asset variants
type AssetType uint8

const (
	AssetTypeCreditAlphaNum4  AssetType = 1
	AssetTypeCreditAlphaNum12 AssetType = 2
)

// Asset is a non-native asset: an alphanumeric code plus the issuing
// account. Codes of 1-4 characters are AlphaNum4, 5-12 AlphaNum12.
type Asset struct {
	Code   string
	Issuer AccountID
}

// NewAsset builds an asset and validates it.
func NewAsset(code string, issuer AccountID) (Asset, error) {
	a := Asset{Code: code, Issuer: issuer}
	if err := a.Validate(); err != nil {
		return Asset{}, err
	}
	return a, nil
}

// ValidateAssetCode checks the structural rules for a credit asset code.
func ValidateAssetCode(code string) error {
	if code == "" {
		return ErrEmptyAssetCode
	}
	if len(code) > keylet.AlphaNum12Len {
		return ErrAssetCodeTooLong
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			return fmt.Errorf("%w: %q", ErrAssetCodeCharset, code)
		}
	}
	return nil
}

// Validate checks the code and that an issuer is present.
func (a Asset) Validate() error {
	if err := ValidateAssetCode(a.Code); err != nil {
		return err
	}
	if a.Issuer.IsZero() {
		return ErrMissingIssuer
	}
	return nil
}

// Type returns the credit variant implied by the code length.
func (a Asset) Type() AssetType {
	if len(a.Code) <= keylet.AlphaNum4Len {
		return AssetTypeCreditAlphaNum4
	}
	return AssetTypeCreditAlphaNum12
}

// String formats the asset as CODE:ISSUER.
func (a Asset) String() string {
	return a.Code + ":" + a.Issuer.String()
}

// ParseAsset parses CODE:ISSUER.
func ParseAsset(s string) (Asset, error) {
	code, issuer, ok := strings.Cut(s, ":")
	if !ok {
		if strings.EqualFold(s, NativeAssetName) {
			return Asset{}, ErrNativeAsset
		}
		return Asset{}, ErrInvalidAssetFormat
	}
	issuerID, err := DecodeAccountID(issuer)
	if err != nil {
		return Asset{}, err
	}
	return NewAsset(code, issuerID)
}

// TrustLineKey returns the keylet of holder's trust line in this asset.
func (a Asset) TrustLineKey(holder AccountID) keylet.Keylet {
	return keylet.TrustLine(holder, a.Code, a.Issuer)
}

// PreauthorizationKey returns the keylet of holder's preauthorization
// in this asset.
func (a Asset) PreauthorizationKey(holder AccountID) keylet.Keylet {
	return keylet.Preauthorization(holder, a.Code, a.Issuer)
}
