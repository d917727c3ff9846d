package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
)

// Client calls the session service.
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient creates a client over conn.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Handle sends a packed command.
func (c *Client) Handle(ctx context.Context, cmd *anypb.Any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, HandleFullMethod, cmd, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Send packs cmd and sends it.
func (c *Client) Send(ctx context.Context, cmd kit.Named, opts ...grpc.CallOption) (*structpb.Struct, error) {
	packed, err := kit.Pack(cmd)
	if err != nil {
		return nil, err
	}
	return c.Handle(ctx, packed, opts...)
}
