package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/metrics"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/rpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve checkout sessions over gRPC",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	promotions, err := cfg.PromotionTable()
	if err != nil {
		return err
	}
	m := metrics.New()
	svc, err := rpc.NewService(cfg.Gateway(logger),
		rpc.WithLogger(logger),
		rpc.WithObserver(m),
		rpc.WithPromotions(promotions),
		rpc.WithTimeout(cfg.Payment.Timeout),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("close sessions", zap.Error(err))
		}
	}()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return kit.RunServer(ctx,
			kit.ServerConfig{Name: "ecocart", Port: cfg.Server.GRPCPort},
			logger,
			func(s *grpc.Server) { rpc.RegisterSessionServer(s, svc) },
			grpc.UnaryInterceptor(rpc.UnaryInterceptor(logger, m)),
		)
	})

	if cfg.Server.MetricsPort != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.Server.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("metrics server started", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
