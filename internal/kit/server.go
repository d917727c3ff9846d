package kit

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// RegisterFunc registers gRPC services on a server.
type RegisterFunc func(*grpc.Server)

// ServerConfig configures a gRPC server.
type ServerConfig struct {
	Name string
	Port string
}

// RunServer starts a gRPC server with health checks on cfg.Port.
//
// Blocks until the server exits or ctx is cancelled, in which case the
// server is stopped gracefully and nil is returned.
func RunServer(ctx context.Context, cfg ServerConfig, logger *zap.Logger, register RegisterFunc, opts ...grpc.ServerOption) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", cfg.Port, err)
	}
	return Serve(ctx, lis, cfg, logger, register, opts...)
}

// Serve runs a gRPC server with health checks on an existing listener.
func Serve(ctx context.Context, lis net.Listener, cfg ServerConfig, logger *zap.Logger, register RegisterFunc, opts ...grpc.ServerOption) error {
	s := grpc.NewServer(opts...)
	register(s)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	logger.Info("grpc server started",
		zap.String("name", cfg.Name),
		zap.String("addr", lis.Addr().String()),
	)

	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			healthServer.Shutdown()
			s.GracefulStop()
		case <-stopped:
		}
	}()
	defer close(stopped)

	if err := s.Serve(lis); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}
	logger.Info("grpc server stopped", zap.String("name", cfg.Name))
	return nil
}
