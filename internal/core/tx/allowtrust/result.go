package allowtrust

import "github.com/LeJamon/goPreauthLedger/internal/core/tx"

// ResultCode is the result of an AllowTrust operation.
type ResultCode int32

const (
	Success          ResultCode = 0
	Malformed        ResultCode = -1
	NoTrustLine      ResultCode = -2
	TrustNotRequired ResultCode = -3
	CantRevoke       ResultCode = -4
	SelfNotAllowed   ResultCode = -5
)

func (c ResultCode) Code() int32     { return int32(c) }
func (c ResultCode) IsSuccess() bool { return c == Success }

func (c ResultCode) String() string {
	switch c {
	case Success:
		return "ALLOW_TRUST_SUCCESS"
	case Malformed:
		return "ALLOW_TRUST_MALFORMED"
	case NoTrustLine:
		return "ALLOW_TRUST_NO_TRUST_LINE"
	case TrustNotRequired:
		return "ALLOW_TRUST_TRUST_NOT_REQUIRED"
	case CantRevoke:
		return "ALLOW_TRUST_CANT_REVOKE"
	case SelfNotAllowed:
		return "ALLOW_TRUST_SELF_NOT_ALLOWED"
	default:
		return tx.UnknownResult("ALLOW_TRUST", int32(c))
	}
}
