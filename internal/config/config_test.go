package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	dir := writeConfig(t, "app:\n  name: greeterservice\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "greeterservice", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 50051, cfg.GRPC.Port)
	assert.Equal(t, 1, cfg.GRPC.MaxWorkers)
	assert.Equal(t, 8888, cfg.HTTP.Port)
	assert.Equal(t, time.Second, cfg.Sample.CPUInterval)
}

func TestLoadConfigOverrides(t *testing.T) {
	viper.Reset()
	dir := writeConfig(t, `
grpc:
  port: 6000
  max_workers: 4
sample:
  cpu_interval: 250ms
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.GRPC.Port)
	assert.Equal(t, 4, cfg.GRPC.MaxWorkers)
	assert.Equal(t, 250*time.Millisecond, cfg.Sample.CPUInterval)
}

func TestLoadConfigMissingFile(t *testing.T) {
	viper.Reset()

	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
