package server

import (
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/cuemby/cmfanout/api/proto"
	"github.com/cuemby/cmfanout/pkg/log"
	"github.com/cuemby/cmfanout/pkg/messageservice"
	"github.com/cuemby/cmfanout/pkg/tokenservice"
)

// GRPCServer is the fan-out service's single listening gRPC endpoint,
// hosting TokenService, MessageService, and the standard gRPC health
// checking protocol (spec §6's "Check, Watch — standard health probes").
type GRPCServer struct {
	grpc   *grpc.Server
	health *health.Server
}

// New builds a GRPCServer wired to tokenSvc and messageSvc, instrumented
// with the request-count/latency interceptors from interceptor.go.
func New(tokenSvc *tokenservice.Service, messageSvc *messageservice.Service) *GRPCServer {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(MetricsUnaryInterceptor()),
		grpc.ChainStreamInterceptor(MetricsStreamInterceptor()),
	)

	proto.RegisterTokenServiceServer(s, NewTokenServer(tokenSvc))
	proto.RegisterMessageServiceServer(s, NewMessageServer(messageSvc))

	hs := health.NewServer()
	hs.SetServingStatus("cmfanout.TokenService", grpc_health_v1.HealthCheckResponse_SERVING)
	hs.SetServingStatus("cmfanout.MessageService", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(s, hs)

	return &GRPCServer{grpc: s, health: hs}
}

// Serve binds addr (e.g. "[::1]:10000", spec §6's default) and blocks
// serving RPCs until the listener errors or Stop is called.
func (s *GRPCServer) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", addr, err)
	}

	log.Info("gRPC server listening on " + addr)
	return s.grpc.Serve(lis)
}

// Stop gracefully drains in-flight RPCs (including open Subscribe streams)
// before returning; each subscription task's context is canceled as its
// stream's RPC handler returns, which unwinds the task and unsubscribes it
// from the bus.
func (s *GRPCServer) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
