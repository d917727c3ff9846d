// Package rpc exposes checkout sessions over gRPC. A single unary method
// carries every command as a google.protobuf.Any whose type URL names the
// command and whose value is JSON; replies are google.protobuf.Struct views
// of the session.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service and method names.
const (
	ServiceName      = "ecocart.v1.Session"
	HandleMethod     = "Handle"
	HandleFullMethod = "/" + ServiceName + "/" + HandleMethod
)

// SessionServer is the server API for the session service.
type SessionServer interface {
	Handle(context.Context, *anypb.Any) (*structpb.Struct, error)
}

// SessionServiceDesc describes the session service.
var SessionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SessionServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: HandleMethod,
			Handler:    handleHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ecocart/v1/session.proto",
}

// RegisterSessionServer registers srv on s.
func RegisterSessionServer(s grpc.ServiceRegistrar, srv SessionServer) {
	s.RegisterService(&SessionServiceDesc, srv)
}

func handleHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(anypb.Any)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SessionServer).Handle(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: HandleFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SessionServer).Handle(ctx, req.(*anypb.Any))
	}
	return interceptor(ctx, in, info, handler)
}
