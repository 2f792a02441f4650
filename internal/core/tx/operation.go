package tx

import "fmt"

// OperationType identifies an operation kind. Values match the ledger protocol
// numbering so they can be stored and journaled verbatim.
type OperationType int32

const (
	OpChangeTrust            OperationType = 6
	OpAllowTrust             OperationType = 7
	OpCreatePreauthorization OperationType = 14
	OpRemovePreauthorization OperationType = 15
)

var operationNames = map[OperationType]string{
	OpChangeTrust:            "CHANGE_TRUST",
	OpAllowTrust:             "ALLOW_TRUST",
	OpCreatePreauthorization: "CREATE_PREAUTHORIZATION",
	OpRemovePreauthorization: "REMOVE_PREAUTHORIZATION",
}

func (t OperationType) String() string {
	if name, ok := operationNames[t]; ok {
		return name
	}
	return fmt.Sprintf("OPERATION(%d)", int32(t))
}

// TypeFromName resolves the symbolic name of an operation type.
func TypeFromName(name string) (OperationType, bool) {
	for t, n := range operationNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// ThresholdLevel is the signing weight class an operation requires.
// Signature checking happens before the engine sees an operation; the
// level is exposed so callers can gate execution.
type ThresholdLevel int

const (
	ThresholdLow ThresholdLevel = iota
	ThresholdMedium
	ThresholdHigh
)

func (l ThresholdLevel) String() string {
	switch l {
	case ThresholdLow:
		return "low"
	case ThresholdMedium:
		return "medium"
	case ThresholdHigh:
		return "high"
	default:
		return fmt.Sprintf("ThresholdLevel(%d)", int(l))
	}
}

// ThresholdFor returns the threshold level required by an operation type.
func ThresholdFor(t OperationType) ThresholdLevel {
	switch t {
	case OpAllowTrust, OpCreatePreauthorization, OpRemovePreauthorization:
		return ThresholdLow
	default:
		return ThresholdMedium
	}
}

// Operation is a single ledger state transition.
type Operation interface {
	// Type returns the operation type.
	Type() OperationType

	// Preflight performs the checks that need no ledger state.
	// A non-success result stops the operation before any read.
	Preflight() Result

	// Apply executes the operation through ctx. Failure results and errors
	// both discard every write made through ctx.View and ctx.Reserves.
	Apply(ctx *ApplyContext) (Result, error)
}
