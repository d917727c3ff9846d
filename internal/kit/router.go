// Package kit provides the shared plumbing of the ecocart domains: command
// errors and validation, JSON-in-Any event packing, state reconstruction,
// suffix-based command routing, and the gRPC server harness.
package kit

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/known/anypb"
)

// Error message constants.
const (
	ErrMsgUnknownCommand = "unknown command type"
	ErrMsgNoCommand      = "no command"
)

// CommandHandler processes the raw JSON value of a command.
type CommandHandler[R any] func(ctx context.Context, data []byte) (R, error)

type commandEntry[R any] struct {
	suffix  string
	handler CommandHandler[R]
}

// CommandRouter dispatches commands to handlers by type_url suffix.
//
// Example:
//
//	router := kit.NewCommandRouter[*structpb.Struct]("session").
//	    On("AddItem", s.handleAddItem).
//	    On("Submit", s.handleSubmit)
//
//	resp, err := router.Dispatch(ctx, cmd)
type CommandRouter[R any] struct {
	name    string
	entries []commandEntry[R]
}

// NewCommandRouter creates a command router.
func NewCommandRouter[R any](name string) *CommandRouter[R] {
	return &CommandRouter[R]{name: name}
}

// On registers a handler for a command type_url suffix.
//
// The suffix is matched against the end of the command's type_url.
// E.g., .On("AddItem", handleAddItem) matches any type_url ending in "AddItem".
func (r *CommandRouter[R]) On(suffix string, handler CommandHandler[R]) *CommandRouter[R] {
	r.entries = append(r.entries, commandEntry[R]{suffix, handler})
	return r
}

// Dispatch matches the type_url suffix and calls the handler.
//
// A type URL matches a suffix only at a name boundary, so "ClearPromotion"
// never reaches a handler registered for "Promotion".
func (r *CommandRouter[R]) Dispatch(ctx context.Context, cmd *anypb.Any) (R, error) {
	var zero R
	if cmd == nil || cmd.TypeUrl == "" {
		return zero, NewInvalidArgument(ErrMsgNoCommand)
	}

	name := ShortName(cmd.TypeUrl)
	for _, e := range r.entries {
		if name == e.suffix || strings.HasSuffix(cmd.TypeUrl, "/"+e.suffix) {
			return e.handler(ctx, cmd.Value)
		}
	}

	return zero, NewInvalidArgument(fmt.Sprintf("%s: %s", ErrMsgUnknownCommand, cmd.TypeUrl))
}

// Name returns the router name.
func (r *CommandRouter[R]) Name() string { return r.name }

// Types returns registered command type suffixes.
func (r *CommandRouter[R]) Types() []string {
	result := make([]string, len(r.entries))
	for i, e := range r.entries {
		result[i] = e.suffix
	}
	return result
}
