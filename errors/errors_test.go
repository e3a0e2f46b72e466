package errors

import (
	stdlib "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

// Registered once, codes must stay unique across the test binary.
var (
	errTestCategory = Register(900, "test category")
	errTestSpecific = RegisterIn(errTestCategory, 901, "test specific")
	errTestSibling  = RegisterIn(errTestCategory, 902, "test sibling")
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to a wrapped stdlib error": {
			a:      ErrNotFound,
			b:      errors.Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*customError)(nil),
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
		"not-nil is not nil": {
			a:      ErrNotFound,
			b:      nil,
			wantIs: false,
		},
		"category matches a registered member": {
			a:      errTestCategory,
			b:      errTestSpecific.New("boom"),
			wantIs: true,
		},
		"member matches itself": {
			a:      errTestSpecific,
			b:      Wrap(errTestSpecific.New("boom"), "outer"),
			wantIs: true,
		},
		"member does not match its sibling": {
			a:      errTestSpecific,
			b:      errTestSibling.New("boom"),
			wantIs: false,
		},
		"member does not match its category": {
			a:      errTestSpecific,
			b:      errTestCategory,
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

type customError struct {
}

func (customError) Error() string {
	return "custom error"
}

func TestWrapEmpty(t *testing.T) {
	if err := Wrap(nil, "wrapping <nil>"); err != nil {
		t.Fatal(err)
	}
}

func TestABCICode(t *testing.T) {
	cases := map[string]struct {
		err  error
		want uint32
	}{
		"nil":            {err: nil, want: 0},
		"stdlib":         {err: fmt.Errorf("stdlib"), want: 1},
		"root":           {err: ErrNotFound, want: 3},
		"wrapped member": {err: Wrap(errTestSpecific.New("a"), "b"), want: 901},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := ABCICode(tc.err); got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestRegisterTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(ErrNotFound.ABCICode(), "again")
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	if err := fn(); !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %+v", err)
	}
}

func TestStackTraceIsAttachedOnce(t *testing.T) {
	err := Wrap(Wrap(ErrEmpty, "inner"), "outer")
	if stackTrace(err) == nil {
		t.Fatal("stacktrace missing")
	}
	if got := fmt.Sprintf("%s", err); got != "outer: inner: value is empty" {
		t.Fatalf("unexpected message %q", got)
	}
}
