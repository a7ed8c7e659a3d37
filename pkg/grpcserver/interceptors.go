package grpcserver

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// WorkerPoolInterceptor bounds how many unary call bodies execute at once.
// The gRPC runtime keeps accepting connections and reading requests; calls
// beyond the limit queue on the semaphore in FIFO order. A caller that gives
// up while queued gets the context error back; an in-flight handler is never
// interrupted here.
func WorkerPoolInterceptor(size int) grpc.UnaryServerInterceptor {
	if size < 1 {
		size = 1
	}
	workers := semaphore.NewWeighted(int64(size))

	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if err := workers.Acquire(ctx, 1); err != nil {
			return nil, status.FromContextError(ctx.Err()).Err()
		}
		defer workers.Release(1)

		return handler(ctx, req)
	}
}

// RequestLogInterceptor tags every call with a request id and logs the
// method, status code and duration.
func RequestLogInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		reqID := uuid.NewString()
		start := time.Now()

		resp, err := handler(ctx, req)

		log.Printf("request %s method=%s code=%s duration=%s",
			reqID, info.FullMethod, status.Code(err), time.Since(start))
		return resp, err
	}
}
