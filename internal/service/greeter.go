package service

import (
	"context"
	"fmt"

	"greeterservice/internal/domain"
)

type greeterService struct {
	sampler domain.UsageSampler
}

func NewGreeterService(sampler domain.UsageSampler) domain.GreeterService {
	return &greeterService{sampler: sampler}
}

func (s *greeterService) SayHello(ctx context.Context, req *domain.HelloRequest) (*domain.HelloResponse, error) {
	body := req.Name
	switch req.Name {
	case domain.RecordName:
		body = domain.RecordPlaceholder
	case domain.ReplayName:
		body = domain.ReplayPlaceholder
	}

	usage, err := s.sampler.Sample(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUsageSample, err)
	}

	// The usage summary follows the greeting with no separator.
	return &domain.HelloResponse{
		Message: "Hello, " + body + "!" + usage.String(),
	}, nil
}
