package main

import (
	"greeterservice/internal/config"
	"greeterservice/internal/delivery/grpch"
	"greeterservice/internal/service"
	"greeterservice/internal/sysinfo"
	"greeterservice/pkg/grpcserver"
	"log"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Sampler -> service -> gRPC handler
	sampler := sysinfo.NewSampler(cfg.Sample.CPUInterval)
	greeterService := service.NewGreeterService(sampler)
	handler := grpch.NewGreeterHandler(greeterService)

	server := grpcserver.NewServer(handler, cfg)

	log.Printf("Starting gRPC server on port %d (workers: %d)", cfg.GRPC.Port, cfg.GRPC.MaxWorkers)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil && err != grpc.ErrServerStopped {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down gRPC server...")

	server.GracefulStop()
	log.Println("gRPC server stopped gracefully")
}
