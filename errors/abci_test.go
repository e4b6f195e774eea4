package errors

import (
	"io"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	group := Append(Field("Owners", ErrEmpty, "no owners"), ErrState)

	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"success": {
			err:      nil,
			wantCode: SuccessABCICode,
		},
		"typed nil is a success": {
			err:      (*Error)(nil),
			wantCode: SuccessABCICode,
		},
		"registered error": {
			err:      Wrap(Wrap(ErrUnauthorized, "not an owner"), "confirm"),
			wantCode: ErrUnauthorized.code,
			wantLog:  "confirm: not an owner: unauthorized",
		},
		"group takes the first code": {
			err:      group,
			wantCode: ErrEmpty.code,
			wantLog:  group.Error(),
		},
		"unregistered error is hidden": {
			err:      Wrap(io.EOF, "cannot read"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"unregistered error in debug mode": {
			err:      Wrap(io.EOF, "cannot read"),
			debug:    true,
			wantCode: internalABCICode,
			wantLog:  "cannot read: EOF",
		},
		"custom coder": {
			err:      hostErr{},
			wantCode: 999,
			wantLog:  "host",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want code %d, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want log %q, got %q", tc.wantLog, log)
			}
		})
	}
}

type hostErr struct{}

func (hostErr) ABCICode() uint32 { return 999 }

func (hostErr) Error() string { return "host" }
