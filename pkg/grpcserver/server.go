package grpcserver

import (
	"fmt"
	hello "greeterservice/gen/v1"
	"greeterservice/internal/config"
	"log"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

type Server struct {
	server *grpc.Server
	health *health.Server
	addr   string
}

// NewServer builds the gRPC server: keepalive tuning, request logging, the
// bounded worker pool, health checking, and reflection in development.
func NewServer(handler hello.GreeterServer, cfg *config.Config) *Server {
	kaep := keepalive.EnforcementPolicy{
		MinTime:             5 * time.Second,
		PermitWithoutStream: true,
	}

	kasp := keepalive.ServerParameters{
		MaxConnectionIdle:     15 * time.Second,
		MaxConnectionAge:      30 * time.Second,
		MaxConnectionAgeGrace: 5 * time.Second,
		Time:                  5 * time.Second,
		Timeout:               1 * time.Second,
	}

	s := grpc.NewServer(
		grpc.KeepaliveEnforcementPolicy(kaep),
		grpc.KeepaliveParams(kasp),
		grpc.MaxRecvMsgSize(1024*1024*10), // 10MB
		grpc.MaxSendMsgSize(1024*1024*10), // 10MB
		grpc.ChainUnaryInterceptor(
			RequestLogInterceptor(),
			WorkerPoolInterceptor(cfg.GRPC.MaxWorkers),
		),
	)

	hello.RegisterGreeterServer(s, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	if cfg.App.Env == "development" {
		reflection.Register(s)
	}

	return &Server{
		server: s,
		health: healthServer,
		addr:   fmt.Sprintf(":%d", cfg.GRPC.Port),
	}
}

// Run listens on the configured port and serves until stopped.
func (s *Server) Run() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	log.Printf("gRPC server listening at %v", lis.Addr())
	return s.server.Serve(lis)
}

// Serve serves on an existing listener. Tests use this with bufconn.
func (s *Server) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

// GracefulStop marks the server not serving and drains in-flight calls.
func (s *Server) GracefulStop() {
	s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	s.server.GracefulStop()
}
