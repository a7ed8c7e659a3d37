package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceUsageString(t *testing.T) {
	tests := []struct {
		name     string
		usage    ResourceUsage
		expected string
	}{
		{"typical load", ResourceUsage{MemoryPercent: 62, CPUPercent: 13.37}, "Memory usage:62%  CPU:13.37%"},
		{"idle host", ResourceUsage{MemoryPercent: 0, CPUPercent: 0}, "Memory usage:0%  CPU:0.00%"},
		{"saturated host", ResourceUsage{MemoryPercent: 100, CPUPercent: 100}, "Memory usage:100%  CPU:100.00%"},
		{"cpu padded to two decimals", ResourceUsage{MemoryPercent: 7, CPUPercent: 5.5}, "Memory usage:7%  CPU:5.50%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.usage.String())
		})
	}
}
