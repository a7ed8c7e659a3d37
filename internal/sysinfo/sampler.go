package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"greeterservice/internal/domain"
	"math"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// DefaultCPUInterval is the blocking CPU measurement window. Every sample
// holds the calling worker for this long, so it dominates the end-to-end
// latency of a call; it is exposed through config for exactly that reason.
const DefaultCPUInterval = time.Second

// Sampler reads host memory and CPU utilization through gopsutil.
type Sampler struct {
	cpuInterval time.Duration
}

func NewSampler(cpuInterval time.Duration) *Sampler {
	if cpuInterval <= 0 {
		cpuInterval = DefaultCPUInterval
	}
	return &Sampler{cpuInterval: cpuInterval}
}

// Sample takes a fresh reading. The memory figure is instantaneous; the CPU
// figure blocks for the configured interval.
func (s *Sampler) Sample(ctx context.Context) (*domain.ResourceUsage, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read virtual memory stats: %w", err)
	}

	percents, err := cpu.PercentWithContext(ctx, s.cpuInterval, false)
	if err != nil {
		return nil, fmt.Errorf("failed to read cpu stats: %w", err)
	}
	if len(percents) == 0 {
		return nil, errors.New("cpu stats returned no samples")
	}

	return &domain.ResourceUsage{
		MemoryPercent: int(math.Round(vm.UsedPercent)),
		CPUPercent:    percents[0],
	}, nil
}
