package testing

import (
	"crypto/sha256"

	"github.com/stellar/go-stellar-sdk/keypair"

	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
)

// Account represents a test account with keypair and address information.
type Account struct {
	// Name is a human-readable identifier for the account (used for debugging).
	Name string

	// Keypair is the full ed25519 keypair.
	Keypair *keypair.Full

	// Address is the G... strkey address.
	Address string

	// ID is the raw account ID.
	ID sle.AccountID
}

// NewAccount creates a new test account with a deterministic keypair derived from the name.
// Using the same name will always produce the same account, making tests reproducible.
func NewAccount(name string) *Account {
	kp, err := keypair.FromRawSeed(sha256.Sum256([]byte(name)))
	if err != nil {
		panic(err)
	}
	return &Account{
		Name:    name,
		Keypair: kp,
		Address: kp.Address(),
		ID:      sle.MustDecodeAccountID(kp.Address()),
	}
}

// Asset returns the asset with the given code issued by this account.
func (a *Account) Asset(code string) sle.Asset {
	return sle.Asset{Code: code, Issuer: a.ID}
}

// String returns the account name and address for failure messages.
func (a *Account) String() string {
	return a.Name + " (" + a.Address + ")"
}
