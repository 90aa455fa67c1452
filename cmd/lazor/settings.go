package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lazor/internal/config"
	"github.com/vovakirdan/lazor/internal/lazor/levels"
	"github.com/vovakirdan/lazor/internal/lazor/solver"
	"github.com/vovakirdan/lazor/internal/platform/tui"
	"github.com/vovakirdan/lazor/internal/storage"
)

// Resolved once per invocation by loadSettings.
var (
	settings config.Config
	logger   *log.Logger
)

// loadSettings reads the config file and lays the global flags over it.
func loadSettings(cmd *cobra.Command) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	pf := cmd.Flags()
	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			return err
		}
		config.ApplyPreset(&cfg.Solver, preset)
	}
	if pf.Changed("strategy") {
		cfg.Solver.Strategy = flagStrategy
	}
	if pf.Changed("workers") {
		cfg.Solver.Workers = flagWorkers
	}
	if pf.Changed("max-nodes") {
		cfg.Solver.MaxNodes = flagMaxNodes
	}
	if pf.Changed("timeout") {
		cfg.Solver.Timeout = flagTimeout
	}
	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagNoHistory {
		cfg.Storage.Disable = true
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if _, err := solver.ParseStrategy(cfg.Solver.Strategy); err != nil {
		return err
	}
	if _, err := searchTimeout(cfg); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "lazor",
		Level:           level,
	})

	settings = cfg
	return nil
}

func searchTimeout(cfg config.Config) (time.Duration, error) {
	if cfg.Solver.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(cfg.Solver.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", cfg.Solver.Timeout, err)
	}
	return d, nil
}

// solverOptions builds search options from the resolved settings.
func solverOptions() solver.Options {
	strategy, _ := solver.ParseStrategy(settings.Solver.Strategy)
	return solver.Options{
		Strategy: strategy,
		Workers:  settings.Solver.Workers,
		MaxNodes: settings.Solver.MaxNodes,
		Logger:   logger,
	}
}

// searchContext bounds one search by the configured timeout.
func searchContext() (context.Context, context.CancelFunc) {
	d, _ := searchTimeout(settings)
	if d <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), d)
}

func newLoader() *levels.Loader {
	return levels.NewLoader(settings.Levels.Dir)
}

// openStore opens the run history. It returns nil when history is
// disabled or unavailable; callers carry on without it.
func openStore() *storage.Store {
	if settings.Storage.Disable {
		return nil
	}
	store, err := storage.Open(settings.DBPath())
	if err != nil {
		logger.Warn("run history unavailable", "error", err)
		return nil
	}
	return store
}

// recordRun saves a finished search when a store is open.
func recordRun(store *storage.Store, run storage.Run) {
	if store == nil {
		return
	}
	if _, err := store.SaveRun(run); err != nil {
		logger.Warn("could not record run", "board", run.BoardID, "error", err)
	}
}

func viewerOptions(store *storage.Store) tui.ViewerOptions {
	timeout, _ := searchTimeout(settings)
	return tui.ViewerOptions{
		Solver:  solverOptions(),
		Timeout: timeout,
		FPS:     settings.View.FPS,
		Theme:   tui.ThemeByName(settings.View.Theme),
		Store:   store,
		Logger:  logger,
	}
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalSize returns the stdout size, or 80x24 when it is unknown.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// fail prints an error the way every subcommand does and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
