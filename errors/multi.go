package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no errors are provided or all errors are nil, nil is returned.
func Append(errs ...error) error {
	var acc []error
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			acc = append(acc, m...)
		} else {
			acc = append(acc, e)
		}
	}
	switch len(acc) {
	case 0:
		return nil
	case 1:
		return acc[0]
	default:
		return multiErr(acc)
	}
}

// multiErr represents a group of errors that happened independently of each
// other, for example while validating several fields of one message.
type multiErr []error

func (e multiErr) Error() string {
	points := make([]string, len(e))
	for i, err := range e {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(e), strings.Join(points, "\n\t"))
}

// Unpack returns the errors this instance is made of.
func (e multiErr) Unpack() []error {
	return e
}

// ABCICode returns the code of the first error.
func (e multiErr) ABCICode() uint32 {
	return abciCode(e[0])
}
