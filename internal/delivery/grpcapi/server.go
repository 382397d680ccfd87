package grpcapi

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/config"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Server exposes the standard gRPC health service for orchestrators.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
	check  func(ctx context.Context) error
	log    *zap.Logger
}

// NewServer builds the gRPC server. check probes the backing store; nil
// means the service always reports SERVING.
func NewServer(log *zap.Logger, check func(ctx context.Context) error) *Server {
	s := &Server{
		grpc:   grpc.NewServer(grpc.ChainUnaryInterceptor(UnaryErrorInterceptor(log))),
		health: health.NewServer(),
		check:  check,
		log:    log,
	}
	grpc_health_v1.RegisterHealthServer(s.grpc, s.health)
	s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	return s
}

// Serve blocks until ctx is cancelled, then stops gracefully.
func (s *Server) Serve(ctx context.Context, cfg config.GRPCServer) error {
	lis, err := net.Listen("tcp", net.JoinHostPort(cfg.Host, cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.serve(ctx, lis)
}

func (s *Server) serve(ctx context.Context, lis net.Listener) error {
	go s.watch(ctx, 15*time.Second)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("grpc server started", zap.String("addr", lis.Addr().String()))
		errCh <- s.grpc.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpc.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

// watch flips the health status whenever the store probe changes outcome.
func (s *Server) watch(ctx context.Context, every time.Duration) {
	if s.check == nil {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		s.refresh(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) refresh(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.check(probeCtx); err != nil {
		if ctx.Err() == nil {
			s.log.Warn("store probe failed", zap.Error(err))
			s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		}
		return
	}
	s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
}
