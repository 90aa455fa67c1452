package config

import (
	_ "embed"
)

//go:embed defaults/lazor.yaml
var defaultLazorYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Solver: SolverConfig{
			Strategy: "backtrack",
			Workers:  0,
			MaxNodes: 0,
		},
		Levels: LevelsConfig{
			Dir: "levels",
		},
		Log: LogConfig{
			Level: "info",
		},
		View: ViewConfig{
			FPS:   8,
			Theme: "dark",
		},
		Serve: ServeConfig{
			Host:        "0.0.0.0",
			Port:        2323,
			HostKeyPath: ".ssh/lazor_host_key",
			MaxSessions: 16,
		},
	}
}
