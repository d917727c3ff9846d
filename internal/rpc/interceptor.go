package rpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/anypb"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
)

// CommandRecorder records handled commands.
type CommandRecorder interface {
	ObserveCommand(command, code string, elapsed time.Duration)
}

// UnaryInterceptor logs every command and reports it to rec, which may be nil.
func UnaryInterceptor(logger *zap.Logger, rec CommandRecorder) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		elapsed := time.Since(start)

		command := info.FullMethod
		if a, ok := req.(*anypb.Any); ok && a.GetTypeUrl() != "" {
			command = kit.ShortName(a.GetTypeUrl())
		}
		code := status.Code(err).String()

		if rec != nil {
			rec.ObserveCommand(command, code, elapsed)
		}
		fields := []zap.Field{
			zap.String("command", command),
			zap.String("code", code),
			zap.Duration("elapsed", elapsed),
		}
		if err != nil {
			logger.Warn("command failed", append(fields, zap.Error(err))...)
		} else {
			logger.Debug("command handled", fields...)
		}
		return resp, err
	}
}
