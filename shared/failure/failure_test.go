package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"trailguard/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{
			name: "BadRequestFromString",
			err:  failure.BadRequestFromString("invalid QR code"),
			code: http.StatusBadRequest,
		},
		{
			name: "Unauthorized",
			err:  failure.Unauthorized("missing token"),
			code: http.StatusUnauthorized,
		},
		{
			name: "NotFound",
			err:  failure.NotFound("alert not found"),
			code: http.StatusNotFound,
		},
		{
			name: "Conflict",
			err:  failure.Conflict("alert is already resolved"),
			code: http.StatusConflict,
		},
		{
			name: "Forbidden",
			err:  failure.Forbidden("officer role required"),
			code: http.StatusForbidden,
		},
		{
			name: "InternalError",
			err:  failure.InternalError(errors.New("boom")),
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := failure.GetCode(errors.New("plain error")); got != http.StatusInternalServerError {
		t.Errorf("plain errors must map to 500, got %d", got)
	}

	wrapped := fmt.Errorf("outer: %w", failure.NotFound("visit not found"))
	if got := failure.GetCode(wrapped); got != http.StatusNotFound {
		t.Errorf("wrapped failures must keep their code, got %d", got)
	}
}

func TestNilErrorConstructors(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("BadRequest(nil) must be nil")
	}

	if failure.InternalError(nil) != nil {
		t.Error("InternalError(nil) must be nil")
	}
}
