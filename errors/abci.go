package errors

import "fmt"

const (
	// SuccessABCICode is the code of a successful ABCI response.
	SuccessABCICode = 0

	// Errors that were never registered share this code. Their messages
	// may leak implementation details, so they are replaced outside
	// debug mode.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response for err. In debug
// mode the log is the full error, including any stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the outermost coded error in the chain of
// err, or the internal code when there is none.
func abciCode(err error) uint32 {
	if isNilErr(err) {
		return SuccessABCICode
	}
	code := internalABCICode
	visit(err, func(x error) bool {
		c, ok := x.(coder)
		if ok {
			code = c.ABCICode()
		}
		return ok
	})
	return code
}
