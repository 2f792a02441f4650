package changetrust

import "github.com/LeJamon/goPreauthLedger/internal/core/tx"

// ResultCode is the result of a ChangeTrust operation.
type ResultCode int32

const (
	Success        ResultCode = 0
	Malformed      ResultCode = -1
	NoIssuer       ResultCode = -2
	InvalidLimit   ResultCode = -3
	LowReserve     ResultCode = -4
	SelfNotAllowed ResultCode = -5
)

func (c ResultCode) Code() int32     { return int32(c) }
func (c ResultCode) IsSuccess() bool { return c == Success }

func (c ResultCode) String() string {
	switch c {
	case Success:
		return "CHANGE_TRUST_SUCCESS"
	case Malformed:
		return "CHANGE_TRUST_MALFORMED"
	case NoIssuer:
		return "CHANGE_TRUST_NO_ISSUER"
	case InvalidLimit:
		return "CHANGE_TRUST_INVALID_LIMIT"
	case LowReserve:
		return "CHANGE_TRUST_LOW_RESERVE"
	case SelfNotAllowed:
		return "CHANGE_TRUST_SELF_NOT_ALLOWED"
	default:
		return tx.UnknownResult("CHANGE_TRUST", int32(c))
	}
}
