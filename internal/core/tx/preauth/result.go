package preauth

import "github.com/LeJamon/goPreauthLedger/internal/core/tx"

// CreatePreauthorizationResultCode is the result of a CreatePreauthorization.
type CreatePreauthorizationResultCode int32

const (
	CreatePreauthorizationSuccess       CreatePreauthorizationResultCode = 0
	CreatePreauthorizationMalformed     CreatePreauthorizationResultCode = -1
	CreatePreauthorizationAlreadyExists CreatePreauthorizationResultCode = -2
	CreatePreauthorizationLowReserve    CreatePreauthorizationResultCode = -3
)

func (c CreatePreauthorizationResultCode) Code() int32     { return int32(c) }
func (c CreatePreauthorizationResultCode) IsSuccess() bool { return c == CreatePreauthorizationSuccess }

func (c CreatePreauthorizationResultCode) String() string {
	switch c {
	case CreatePreauthorizationSuccess:
		return "CREATE_PREAUTHORIZATION_SUCCESS"
	case CreatePreauthorizationMalformed:
		return "CREATE_PREAUTHORIZATION_MALFORMED"
	case CreatePreauthorizationAlreadyExists:
		return "CREATE_PREAUTHORIZATION_ALREADY_EXISTS"
	case CreatePreauthorizationLowReserve:
		return "CREATE_PREAUTHORIZATION_LOW_RESERVE"
	default:
		return tx.UnknownResult("CREATE_PREAUTHORIZATION", int32(c))
	}
}

// RemovePreauthorizationResultCode is the result of a RemovePreauthorization.
type RemovePreauthorizationResultCode int32

const (
	RemovePreauthorizationSuccess      RemovePreauthorizationResultCode = 0
	RemovePreauthorizationDoesNotExist RemovePreauthorizationResultCode = -1
	RemovePreauthorizationLineFull     RemovePreauthorizationResultCode = -2
	RemovePreauthorizationMalformed    RemovePreauthorizationResultCode = -3
)

func (c RemovePreauthorizationResultCode) Code() int32     { return int32(c) }
func (c RemovePreauthorizationResultCode) IsSuccess() bool { return c == RemovePreauthorizationSuccess }

func (c RemovePreauthorizationResultCode) String() string {
	switch c {
	case RemovePreauthorizationSuccess:
		return "REMOVE_PREAUTHORIZATION_SUCCESS"
	case RemovePreauthorizationDoesNotExist:
		return "REMOVE_PREAUTHORIZATION_DOES_NOT_EXIST"
	case RemovePreauthorizationLineFull:
		return "REMOVE_PREAUTHORIZATION_LINE_FULL"
	case RemovePreauthorizationMalformed:
		return "REMOVE_PREAUTHORIZATION_MALFORMED"
	default:
		return tx.UnknownResult("REMOVE_PREAUTHORIZATION", int32(c))
	}
}
