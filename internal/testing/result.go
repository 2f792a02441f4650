package testing

import (
	"github.com/stellar/go-stellar-sdk/amount"

	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
)

// TxResult represents the result of applying an operation.
type TxResult struct {
	// Code is the symbolic result code (e.g., "CREATE_PREAUTHORIZATION_SUCCESS").
	Code string

	// Result is the typed result code.
	Result tx.Result

	// Success indicates whether the operation was applied.
	Success bool

	// Metadata lists the entries the operation touched.
	Metadata *tx.Metadata
}

// DefaultFunding is the balance Fund gives each account.
var DefaultFunding = Lumens("1000")

// Lumens converts a decimal native amount to stroops.
func Lumens(s string) int64 {
	return int64(amount.MustParse(s))
}
