package kit

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestMapCommandError_mapsCodes(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{NewInvalidArgument("bad field"), codes.InvalidArgument},
		{NewFailedPrecondition("not ready"), codes.FailedPrecondition},
		{NewNotFound("no session"), codes.NotFound},
		{fmt.Errorf("wrapped: %w", NewFailedPrecondition("not ready")), codes.FailedPrecondition},
		{status.Error(codes.DeadlineExceeded, "slow"), codes.DeadlineExceeded},
		{errors.New("something broke"), codes.Internal},
	}
	for _, tt := range tests {
		st, ok := status.FromError(MapCommandError(tt.err))
		if !ok {
			t.Fatalf("expected gRPC status error for %v", tt.err)
		}
		if st.Code() != tt.want {
			t.Errorf("%v: expected %v, got %v", tt.err, tt.want, st.Code())
		}
	}
}

func TestMapCommandError_keepsMessage(t *testing.T) {
	st, _ := status.FromError(MapCommandError(NewInvalidArgument("bad field")))
	if st.Message() != "bad field" {
		t.Errorf("expected 'bad field', got %q", st.Message())
	}
}

func TestMapCommandError_nil(t *testing.T) {
	if MapCommandError(nil) != nil {
		t.Error("expected nil")
	}
}
