package domain

import (
	"context"
	"fmt"
)

// Reserved request names and the fixed greeting bodies substituted for them.
// The record/replay names let a benchmarking harness tell recorded traffic
// apart from replayed traffic by the reply alone.
const (
	RecordName = "record"
	ReplayName = "replay"

	RecordPlaceholder = "record_response"
	ReplayPlaceholder = "replay_response"
)

type HelloRequest struct {
	Name string
}

type HelloResponse struct {
	Message string
}

// GreeterService builds the greeting returned by the Greeter RPC.
type GreeterService interface {
	SayHello(ctx context.Context, req *HelloRequest) (*HelloResponse, error)
}

// ResourceUsage is a point-in-time sample of host utilization.
type ResourceUsage struct {
	// MemoryPercent is rounded to the nearest whole percent.
	MemoryPercent int
	// CPUPercent is measured over the sampler's blocking window.
	CPUPercent float64
}

// String renders the sample in the fixed form appended to every greeting,
// two spaces between the fields and no decimal point on memory:
//
//	Memory usage:62%  CPU:13.37%
func (u ResourceUsage) String() string {
	return fmt.Sprintf("Memory usage:%d%%  CPU:%.2f%%", u.MemoryPercent, u.CPUPercent)
}

// UsageSampler reads live host memory and CPU statistics.
type UsageSampler interface {
	Sample(ctx context.Context) (*ResourceUsage, error)
}
