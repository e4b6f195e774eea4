package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches err to a named field of a validated value and returns
// nil for a nil err. Nested fields use dot notation, such as Params.0 for
// the first parameter.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if !hasStack(err) {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{field: name, desc: description, parent: err}
}

// AppendField adds the error of a field, if any, to errs. Validate methods
// use it to report every invalid field at once.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	field  string
	desc   string
	parent error
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error {
	return e.parent
}

func (e *fieldError) Field() string {
	return e.field
}

type fielder interface {
	Field() string
}

// FieldErrors returns the errors reported for the named field anywhere in
// err. The search stops at the outermost match of each branch.
func FieldErrors(err error, name string) []error {
	if isNilErr(err) {
		return nil
	}
	if f, ok := err.(fielder); ok && f.Field() == name {
		return []error{err}
	}
	if g, ok := err.(unpacker); ok {
		var found []error
		for _, e := range g.Unpack() {
			found = append(found, FieldErrors(e, name)...)
		}
		return found
	}
	if c, ok := err.(causer); ok {
		return FieldErrors(c.Cause(), name)
	}
	return nil
}
