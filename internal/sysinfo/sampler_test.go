package sysinfo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleLive(t *testing.T) {
	// Short window to keep the test fast; the format does not depend on it.
	sampler := NewSampler(50 * time.Millisecond)

	usage, err := sampler.Sample(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, usage.MemoryPercent, 0)
	assert.LessOrEqual(t, usage.MemoryPercent, 100)
	assert.GreaterOrEqual(t, usage.CPUPercent, 0.0)
	assert.LessOrEqual(t, usage.CPUPercent, 100.0)

	assert.Regexp(t, `^Memory usage:\d{1,3}%  CPU:\d+\.\d{2}%$`, usage.String())
}

func TestSampleBlocksForInterval(t *testing.T) {
	interval := 200 * time.Millisecond
	sampler := NewSampler(interval)

	start := time.Now()
	_, err := sampler.Sample(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), interval)
}

func TestNewSamplerDefaultsInterval(t *testing.T) {
	assert.Equal(t, DefaultCPUInterval, NewSampler(0).cpuInterval)
	assert.Equal(t, DefaultCPUInterval, NewSampler(-time.Second).cpuInterval)
}
