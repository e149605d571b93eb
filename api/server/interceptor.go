package server

import (
	"context"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/cuemby/cmfanout/pkg/metrics"
)

// MetricsUnaryInterceptor records cmfanout_rpc_requests_total and
// cmfanout_rpc_request_duration_seconds for every unary RPC, labeled by
// method name and resulting status code.
func MetricsUnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		method := methodName(info.FullMethod)
		metrics.RPCRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		metrics.RPCRequestsTotal.WithLabelValues(method, status.Code(err).String()).Inc()

		return resp, err
	}
}

// MetricsStreamInterceptor records the same metrics for the Subscribe
// streaming RPCs, measuring the full stream lifetime and always reporting
// codes.OK unless the stream itself returns an error.
func MetricsStreamInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)

		method := methodName(info.FullMethod)
		metrics.RPCRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		metrics.RPCRequestsTotal.WithLabelValues(method, status.Code(err).String()).Inc()

		return err
	}
}

func methodName(fullMethod string) string {
	parts := strings.Split(fullMethod, "/")
	return parts[len(parts)-1]
}
