package grpcapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

func TestToStatus(t *testing.T) {
	cases := map[error]codes.Code{
		domain.ErrValidation:         codes.InvalidArgument,
		domain.ErrNotFound:           codes.NotFound,
		domain.ErrForbidden:          codes.PermissionDenied,
		domain.ErrInvalidTransition:  codes.FailedPrecondition,
		domain.ErrInsufficientPoints: codes.FailedPrecondition,
		domain.ErrConflict:           codes.Aborted,
		domain.ErrStorage:            codes.Unavailable,
		errors.New("boom"):           codes.Internal,
	}
	for err, want := range cases {
		got := status.Code(ToStatus(fmt.Errorf("%w: detail", err)))
		assert.Equal(t, want, got, err.Error())
	}
	assert.NoError(t, ToStatus(nil))
}

func TestUnaryErrorInterceptor(t *testing.T) {
	interceptor := UnaryErrorInterceptor(zap.NewNop())
	info := &grpc.UnaryServerInfo{FullMethod: "/printshop.Test/Call"}

	_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return nil, fmt.Errorf("%w: order o-1", domain.ErrNotFound)
	})
	assert.Equal(t, codes.NotFound, status.Code(err))

	resp, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestHealthReflectsStoreProbe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	probeErr := fmt.Errorf("%w: connection refused", domain.ErrStorage)
	srv := NewServer(zap.NewNop(), func(context.Context) error { return probeErr })

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- srv.serve(ctx, lis) }()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()
	client := grpc_health_v1.NewHealthClient(conn)

	require.Eventually(t, func() bool {
		callCtx, callCancel := context.WithTimeout(ctx, 200*time.Millisecond)
		defer callCancel()
		resp, err := client.Check(callCtx, &grpc_health_v1.HealthCheckRequest{})
		return err == nil && resp.Status == grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
