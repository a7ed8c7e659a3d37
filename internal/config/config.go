package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	GRPC   GRPCConfig
	HTTP   HTTPConfig
	Sample SampleConfig
	Log    LogConfig
}

type AppConfig struct {
	Name    string
	Env     string
	Version string
}

type GRPCConfig struct {
	Port int
	// MaxWorkers bounds how many call bodies run concurrently. With the
	// default of 1 all calls are serialized behind a single worker slot.
	MaxWorkers int `mapstructure:"max_workers"`
}

type HTTPConfig struct {
	Port int
}

type SampleConfig struct {
	// CPUInterval is the blocking CPU measurement window per call.
	CPUInterval time.Duration `mapstructure:"cpu_interval"`
}

type LogConfig struct {
	Level  string
	Format string
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("app.name", "greeterservice")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("grpc.port", 50051)
	viper.SetDefault("grpc.max_workers", 1)
	viper.SetDefault("http.port", 8888)
	viper.SetDefault("sample.cpu_interval", "1s")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}
