// lazor solves optical block puzzles and lets you step through their rays
// in the terminal.
//
// Usage:
//
//	lazor solve <board>      - Solve a board file or level ID
//	lazor batch [dir]        - Solve every board in a directory
//	lazor show <board>       - Print a board and its current ray path
//	lazor list               - List boards with their run history
//	lazor view [board]       - Interactive sweep-by-sweep viewer
//	lazor history [board]    - Show recorded solver runs
//	lazor serve              - Serve the viewer over SSH
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.lazor/configs, ./configs)
//	--levels <dir>      - Board directory
//	--strategy <name>   - backtrack, exhaustive or parallel
//	--preset <name>     - quick, balanced, wide or verify
//	--workers <n>       - Parallel workers (0 = one per CPU)
//	--max-nodes <n>     - Abort a search after n nodes
//	--timeout <dur>     - Abort a search after a duration
//	--db <path>         - Run history database (default: ~/.lazor/lazor.db)
//	--no-history        - Do not record runs
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig    string
	flagLevelsDir string
	flagStrategy  string
	flagPreset    string
	flagWorkers   int
	flagMaxNodes  int64
	flagTimeout   string
	flagDBPath    string
	flagNoHistory bool
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lazor",
	Short: "Lazor - place blocks so every laser hits its targets",
	Long: `Lazor loads optical block puzzles, searches for block placements that
route every laser through all target points, and shows the result.

Available commands:
  solve    - Solve one board
  batch    - Solve every board in a directory
  show     - Print a board or a saved report
  list     - List boards
  view     - Interactive viewer
  history  - Recorded solver runs
  serve    - SSH server for the viewer

Examples:
  lazor solve levels/mad_1.bff
  lazor solve mad_1 --strategy parallel --out mad_1.json.zst
  lazor batch levels --preset quick
  lazor view
  lazor serve --ssh :2323`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadSettings(cmd)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.StringVar(&flagLevelsDir, "levels", "", "Board directory (overrides config)")
	pf.StringVar(&flagStrategy, "strategy", "", "Search strategy: backtrack, exhaustive, parallel")
	pf.StringVar(&flagPreset, "preset", "", "Search preset: quick, balanced, wide, verify")
	pf.IntVar(&flagWorkers, "workers", 0, "Parallel workers (0 = one per CPU)")
	pf.Int64Var(&flagMaxNodes, "max-nodes", 0, "Abort a search after this many nodes (0 = unlimited)")
	pf.StringVar(&flagTimeout, "timeout", "", "Abort a search after this duration, e.g. 30s")
	pf.StringVar(&flagDBPath, "db", "", "Path to run history database")
	pf.BoolVar(&flagNoHistory, "no-history", false, "Do not record solver runs")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}
