package kit

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewInvalidArgument_setsCodeAndMessage(t *testing.T) {
	err := NewInvalidArgument("bad input")
	if err.Code != StatusInvalidArgument {
		t.Errorf("expected StatusInvalidArgument, got %v", err.Code)
	}
	if err.Message != "bad input" {
		t.Errorf("expected 'bad input', got %q", err.Message)
	}
}

func TestNewFailedPreconditionf_formatsMessage(t *testing.T) {
	err := NewFailedPreconditionf("item %s not in cart", "abc")
	if err.Code != StatusFailedPrecondition {
		t.Errorf("expected StatusFailedPrecondition, got %v", err.Code)
	}
	if err.Message != "item abc not in cart" {
		t.Errorf("expected 'item abc not in cart', got %q", err.Message)
	}
}

func TestCommandError_unwrapsCause(t *testing.T) {
	sentinel := errors.New("invalid promotion code")
	err := fmt.Errorf("apply: %w", NewInvalidArgument("rejected").WithCause(sentinel))

	if !errors.Is(err, sentinel) {
		t.Error("expected errors.Is to reach the cause")
	}
	if !IsCode(err, StatusInvalidArgument) {
		t.Error("expected IsCode to see through the wrap")
	}
	if IsCode(err, StatusNotFound) {
		t.Error("expected IsCode to reject a different code")
	}
}

func TestStatusCode_String_returnsLabel(t *testing.T) {
	tests := []struct {
		code StatusCode
		want string
	}{
		{StatusInvalidArgument, "INVALID_ARGUMENT"},
		{StatusFailedPrecondition, "FAILED_PRECONDITION"},
		{StatusNotFound, "NOT_FOUND"},
		{StatusCode(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("StatusCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}
