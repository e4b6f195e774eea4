/*
Package assert holds the few assertions the quorum tests rely on. Every
failure is fatal: a test stops at the first broken expectation.
*/
package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/quorum/errors"
)

// Tester is the part of testing.TB the value assertions need.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails unless value is nil, typed nil pointers included.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of a wrapped error.
		t.Fatalf("want nil, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails unless want and got are deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails unless fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	if !panics(fn) {
		t.Fatal("panic expected")
	}
}

func panics(fn func()) (ok bool) {
	defer func() {
		ok = recover() != nil
	}()
	fn()
	return false
}

// IsErr fails unless got is want or wraps it.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}

// FieldError fails unless err holds exactly one error for the named field
// and that error is of the wanted kind. A nil want asserts the field is
// valid.
func FieldError(t testing.TB, err error, field string, want *errors.Error) {
	t.Helper()
	found := errors.FieldErrors(err, field)
	if want == nil {
		if len(found) != 0 {
			t.Fatalf("want %s to be valid, got %d errors: %v", field, len(found), found)
		}
		return
	}
	switch len(found) {
	case 0:
		t.Fatalf("no error for %s", field)
	case 1:
		if !want.Is(found[0]) {
			t.Fatalf("want %s error for %s, got %q", want, field, found[0])
		}
	default:
		t.Fatalf("want one error for %s, got %d: %v", field, len(found), found)
	}
}
