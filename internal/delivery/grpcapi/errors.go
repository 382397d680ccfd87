package grpcapi

import (
	"context"
	"errors"

	"github.com/LavaJover/printshop-order-service/internal/domain"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ToStatus converts a domain error into a gRPC status error.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, domain.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrInsufficientPoints):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, domain.ErrStorage):
		return status.Error(codes.Unavailable, "storage unavailable")
	}
	return status.Error(codes.Internal, "internal error")
}

// UnaryErrorInterceptor logs failed calls and maps their errors to gRPC codes.
func UnaryErrorInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			st := status.Convert(ToStatus(err))
			log.Warn("grpc call failed",
				zap.String("method", info.FullMethod),
				zap.String("code", st.Code().String()),
				zap.Error(err),
			)
			return nil, st.Err()
		}
		return resp, nil
	}
}
