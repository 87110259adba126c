package server

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime settings for the projection API server.
type Config struct {
	ListenAddress  string
	RequestTimeout time.Duration
	MaxIterations  int
	StrictUpstream bool
	SeedFile       string
}

// LoadConfig reads server settings via viper, from an optional config
// file plus DHANAM_-prefixed environment variables, with defaults that
// suit local development.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("listen_address", ":8080")
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("max_iterations", 50000)
	v.SetDefault("strict_upstream", false)
	v.SetDefault("seed_file", "")

	v.SetEnvPrefix("dhanam")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read server config %s: %w", path, err)
		}
	}

	cfg := &Config{
		ListenAddress:  v.GetString("listen_address"),
		RequestTimeout: v.GetDuration("request_timeout"),
		MaxIterations:  v.GetInt("max_iterations"),
		StrictUpstream: v.GetBool("strict_upstream"),
		SeedFile:       v.GetString("seed_file"),
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	return cfg, nil
}
