package grpch

import (
	"context"
	"errors"
	hello "greeterservice/gen/v1"
	"greeterservice/internal/domain"
	"log"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type GreeterHandler struct {
	hello.UnimplementedGreeterServer
	service domain.GreeterService
}

func NewGreeterHandler(service domain.GreeterService) *GreeterHandler {
	return &GreeterHandler{
		service: service,
	}
}

// SayHello handles the Greeter.SayHello RPC.
func (h *GreeterHandler) SayHello(ctx context.Context, req *hello.HelloRequest) (*hello.HelloReply, error) {
	log.Printf("SayHello request for name: %q", req.GetName())

	resp, err := h.service.SayHello(ctx, &domain.HelloRequest{Name: req.GetName()})
	if err != nil {
		log.Printf("Service error: %v", err)
		if errors.Is(err, domain.ErrUsageSample) {
			return nil, status.Error(codes.Internal, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "failed to build greeting: %v", err)
	}

	return &hello.HelloReply{
		Message: resp.Message,
	}, nil
}
