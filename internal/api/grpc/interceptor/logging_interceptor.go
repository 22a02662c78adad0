package interceptor

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"eventhub-backend/internal/logger"
)

// UnaryLogging logs every unary RPC with its status code and duration.
func UnaryLogging() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
		if err != nil {
			logger.Warn("gRPC request failed", append(args, "error", err)...)
		} else {
			logger.Debug("gRPC request", args...)
		}
		return resp, err
	}
}
