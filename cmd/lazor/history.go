package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lazor/internal/platform/tui"
	"github.com/vovakirdan/lazor/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
	flagHistoryPlain bool
)

var historyCmd = &cobra.Command{
	Use:   "history [board]",
	Short: "Show recorded solver runs",
	Long: `Display recorded solver runs, newest first. In a terminal this opens a
browsable table; otherwise (or with --plain) it prints the runs.

Examples:
  lazor history
  lazor history mad_1 --plain
  lazor history mad_1 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of runs to print")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete recorded runs (for one board if given)")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print instead of opening the table")
}

func runHistory(_ *cobra.Command, args []string) {
	boardID := ""
	if len(args) == 1 {
		boardID = args[0]
	}

	// History is the point of this command, so a disabled store is still opened.
	store, err := storage.Open(settings.DBPath())
	if err != nil {
		fail("opening run history: %v", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearRuns(boardID); err != nil {
			fail("%v", err)
		}
		if boardID == "" {
			fmt.Println("Cleared all runs.")
		} else {
			fmt.Printf("Cleared runs for %s.\n", boardID)
		}
		return
	}

	if boardID == "" && !flagHistoryPlain && isTerminal() {
		w, h := terminalSize()
		if err := tui.RunHistory(store, w, h); err != nil {
			fail("running history: %v", err)
		}
		return
	}

	var runs []storage.Run
	if boardID == "" {
		runs, err = store.RecentRuns(flagHistoryLimit)
	} else {
		runs, err = store.RunsForBoard(boardID, flagHistoryLimit)
	}
	if err != nil {
		fail("%v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'lazor solve <board>' to record one.")
		return
	}

	fmt.Printf("  %-16s  %-12s  %-10s  %-11s  %10s  %10s\n", "Date", "Board", "Strategy", "Status", "Nodes", "Time")
	fmt.Printf("  %-16s  %-12s  %-10s  %-11s  %10s  %10s\n", "----", "-----", "--------", "------", "-----", "----")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-12s  %-10s  %-11s  %10d  %10s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.BoardID, r.Strategy, r.Status, r.Nodes,
			r.Duration.Round(time.Microsecond))
	}

	if boardID != "" {
		if bs, err := store.GetBoardStats(boardID); err == nil && bs != nil && bs.Solved > 0 {
			fmt.Println()
			fmt.Printf("Solved %d of %d run(s), fewest nodes %d\n", bs.Solved, bs.Runs, bs.FewestNodes)
		}
	}
}
