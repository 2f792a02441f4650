package tx

import "fmt"

// Result is the outcome code of an operation. Every operation declares its own
// closed set of codes; zero means success for all of them.
type Result interface {
	// Code returns the numeric result code.
	Code() int32

	// IsSuccess reports whether the operation took effect.
	IsSuccess() bool

	// String returns the symbolic name, e.g. CREATE_PREAUTHORIZATION_LOW_RESERVE.
	String() string
}

// UnknownResult formats an out-of-range code for the given operation prefix.
// Result enums use it as the default branch of String.
func UnknownResult(prefix string, code int32) string {
	return fmt.Sprintf("%s_UNKNOWN(%d)", prefix, code)
}
