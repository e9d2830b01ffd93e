package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	err := New(ErrCodeInvalidGraph, "node %d has a self loop", 7)
	if err.Code != ErrCodeInvalidGraph || err.Message != "node 7 has a self loop" {
		t.Errorf("New() = %+v", err)
	}
	if want := "INVALID_GRAPH: node 7 has a self loop"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	cause := errors.New("unexpected token")
	wrapped := Wrap(ErrCodeParse, cause, "k5.txt at line %d", 3)
	if want := "PARSE_ERROR: k5.txt at line 3: unexpected token"; wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
	if errors.Unwrap(wrapped) != cause || !errors.Is(wrapped, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
	if UserMessage(wrapped) != "k5.txt at line 3" {
		t.Errorf("UserMessage() = %q", UserMessage(wrapped))
	}
	if UserMessage(cause) != "unexpected token" {
		t.Errorf("UserMessage() of a plain error = %q", UserMessage(cause))
	}
}

func TestIsAndGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"coded", New(ErrCodeNotBiconnected, "cut vertex 3"), ErrCodeNotBiconnected},
		{"outer code wins", Wrap(ErrCodeParse, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeParse},
		{"behind fmt wrap", fmt.Errorf("check: %w", New(ErrCodeNotFound, "report")), ErrCodeNotFound},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%v, %s) = false", tt.err, tt.code)
			}
			if Is(tt.err, ErrCodeInternal) {
				t.Errorf("Is(%v, INTERNAL_ERROR) = true", tt.err)
			}
		})
	}
}

func TestIsReductionFailure(t *testing.T) {
	for _, c := range []Code{ErrCodeBubbleUp, ErrCodeTemplateMatch} {
		if !c.IsReductionFailure() {
			t.Errorf("%s should be a reduction failure", c)
		}
	}
	for _, c := range []Code{ErrCodeNotBiconnected, ErrCodeInvalidGraph, ""} {
		if c.IsReductionFailure() {
			t.Errorf("%q should not be a reduction failure", c)
		}
	}
}

func TestHTTPStatusAndExitCode(t *testing.T) {
	tests := []struct {
		err    error
		status int
		exit   int
	}{
		{New(ErrCodeInvalidInput, "x"), http.StatusBadRequest, 2},
		{New(ErrCodeInvalidFormat, "x"), http.StatusBadRequest, 2},
		{New(ErrCodeParse, "x"), http.StatusBadRequest, 2},
		{New(ErrCodeInvalidGraph, "x"), http.StatusUnprocessableEntity, 1},
		{New(ErrCodeNotBiconnected, "x"), http.StatusUnprocessableEntity, 1},
		{New(ErrCodeNotFound, "x"), http.StatusNotFound, 1},
		{New(ErrCodeUnsupported, "x"), http.StatusNotImplemented, 1},
		{New(ErrCodeInternal, "x"), http.StatusInternalServerError, 1},
		{errors.New("plain"), http.StatusInternalServerError, 1},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.status {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.status)
			}
			if got := ExitCode(tt.err); got != tt.exit {
				t.Errorf("ExitCode() = %d, want %d", got, tt.exit)
			}
		})
	}
	if ExitCode(nil) != 0 {
		t.Error("ExitCode(nil) should be 0")
	}
}
