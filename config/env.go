package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvHost    = "WEBPOOL_HOST"
	EnvPort    = "WEBPOOL_PORT"
	EnvRoot    = "WEBPOOL_ROOT"
	EnvWorkers = "WEBPOOL_WORKERS"
)

// FromEnv returns the default config overlaid with values from the environment. Malformed
// numeric values are reported instead of being silently ignored.
func FromEnv() (*Config, error) {
	return overlay(Default(), os.LookupEnv)
}

func overlay(cfg *Config, lookup func(string) (string, bool)) (*Config, error) {
	if host, ok := lookup(EnvHost); ok {
		cfg.NET.Host = host
	}

	if root, ok := lookup(EnvRoot); ok && len(root) > 0 {
		cfg.Static.Root = root
	}

	if value, ok := lookup(EnvPort); ok {
		port, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%s: bad port %q: %w", EnvPort, value, err)
		}

		cfg.NET.Port = uint16(port)
	}

	if value, ok := lookup(EnvWorkers); ok {
		workers, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s: bad workers count %q: %w", EnvWorkers, value, err)
		}

		cfg.Workers.Count = workers
	}

	return cfg, cfg.Validate()
}
