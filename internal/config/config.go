// Package config provides YAML-based configuration loading and search
// presets for the lazor tools.
package config

// Config contains all configuration for the lazor CLI and viewer.
type Config struct {
	Solver  SolverConfig  `yaml:"solver"`
	Levels  LevelsConfig  `yaml:"levels"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	View    ViewConfig    `yaml:"view"`
	Serve   ServeConfig   `yaml:"serve"`
}

// SolverConfig defines search parameters.
type SolverConfig struct {
	Strategy string `yaml:"strategy"` // backtrack, exhaustive or parallel
	Workers  int    `yaml:"workers"`  // 0 = one per CPU
	MaxNodes int64  `yaml:"max_nodes"`
	Timeout  string `yaml:"timeout"` // Go duration, empty = none
}

// LevelsConfig defines where board files are looked up.
type LevelsConfig struct {
	Dir string `yaml:"dir"`
}

// StorageConfig defines the run history database.
type StorageConfig struct {
	DBPath  string `yaml:"db_path"` // empty = ~/.lazor/lazor.db
	Disable bool   `yaml:"disable"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ViewConfig defines the interactive viewer.
type ViewConfig struct {
	FPS   int    `yaml:"fps"`   // auto-play sweeps per second
	Theme string `yaml:"theme"` // dark or plain
}

// ServeConfig defines the SSH viewer server.
type ServeConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	HostKeyPath string `yaml:"host_key_path"`
	MaxSessions int    `yaml:"max_sessions"` // 0 = no cap
}
