package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lazor/internal/lazor/levels"
	"github.com/vovakirdan/lazor/internal/lazor/solver"
	"github.com/vovakirdan/lazor/internal/storage"
)

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Solve every board in a directory",
	Long: `Solve each board file in a directory (default: the levels directory),
timing every search, and print a summary.

Files that fail to parse are listed and counted as errors; they do not stop
the batch.

Examples:
  lazor batch
  lazor batch ./boards --preset wide`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBatch,
}

// batchRow is one line of the batch summary.
type batchRow struct {
	id       string
	status   string
	duration time.Duration
	nodes    int64
	detail   string
}

// batchSummary counts batch outcomes.
type batchSummary struct {
	solved, unsolved, failed int
}

func runBatch(_ *cobra.Command, args []string) {
	dir := settings.Levels.Dir
	if len(args) == 1 {
		dir = args[0]
	}

	rows, sum, err := solveDir(dir)
	if err != nil {
		fail("%v", err)
	}
	if len(rows) == 0 {
		fmt.Printf("No boards found in %s.\n", dir)
		return
	}

	// Calculate column widths
	maxIDLen := 5 // "Board" header
	for _, r := range rows {
		if len(r.id) > maxIDLen {
			maxIDLen = len(r.id)
		}
	}

	fmt.Printf("  %-*s  %-11s  %10s  %10s\n", maxIDLen, "Board", "Status", "Time", "Nodes")
	fmt.Printf("  %-*s  %-11s  %10s  %10s\n", maxIDLen, "-----", "------", "----", "-----")
	for _, r := range rows {
		fmt.Printf("  %-*s  %-11s  %10s  %10d", maxIDLen, r.id, r.status, r.duration.Round(time.Microsecond), r.nodes)
		if r.detail != "" {
			fmt.Printf("  %s", r.detail)
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Printf("%d board(s): %d solved, %d without solution, %d error(s)\n",
		len(rows), sum.solved, sum.unsolved, sum.failed)

	if sum.failed > 0 {
		os.Exit(1)
	}
}

// solveDir solves every board under dir and records each run. The run
// history is closed before it returns.
func solveDir(dir string) ([]batchRow, batchSummary, error) {
	var sum batchSummary

	lvls, bad, err := levels.NewLoader(dir).Scan()
	if err != nil {
		return nil, sum, err
	}
	if len(lvls) == 0 && len(bad) == 0 {
		return nil, sum, nil
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	opts := solverOptions()
	rows := make([]batchRow, 0, len(lvls)+len(bad))

	for _, lvl := range lvls {
		row := solveOne(lvl, opts, store)
		switch row.status {
		case storage.StatusSolved:
			sum.solved++
		case storage.StatusNoSolution:
			sum.unsolved++
		default:
			sum.failed++
		}
		rows = append(rows, row)
	}
	for _, fe := range bad {
		sum.failed++
		rows = append(rows, batchRow{id: fe.Path, status: storage.StatusError, detail: fe.Err.Error()})
	}
	return rows, sum, nil
}

func solveOne(lvl levels.Level, opts solver.Options, store *storage.Store) batchRow {
	row := batchRow{id: lvl.ID}

	b, err := lvl.Board()
	if err != nil {
		row.status = storage.StatusError
		row.detail = err.Error()
		return row
	}

	ctx, cancel := searchContext()
	defer cancel()

	res, err := solver.Solve(ctx, b, opts)
	run := storage.NewRun(lvl.ID, opts.Strategy, res, err)
	recordRun(store, run)

	row.status = run.Status
	row.duration = res.Stats.Duration
	row.nodes = res.Stats.Nodes
	row.detail = run.Error
	return row
}
