package main

import (
	"fmt"
	"greeterservice/internal/config"
	httpgateway "greeterservice/internal/delivery/http"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	grpcAddr := fmt.Sprintf("localhost:%d", cfg.GRPC.Port)
	httpAddr := fmt.Sprintf(":%d", cfg.HTTP.Port)

	gateway := httpgateway.NewGateway(grpcAddr, httpAddr)

	if err := gateway.SetupRoutes(); err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting HTTP Gateway on %s", httpAddr)
		if err := gateway.Run(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to run gateway: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down gateway...")

	gateway.Close()
	log.Println("Gateway shutdown complete")
}
