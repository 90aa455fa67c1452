package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lazor/internal/lazor/core"
	"github.com/vovakirdan/lazor/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards in the levels directory",
	Long: `Shows every board in the levels directory with its size, blocks and the
best recorded run. Files that fail to load are listed on stderr.`,
	Args: cobra.NoArgs,
	Run:  runList,
}

func runList(_ *cobra.Command, _ []string) {
	lvls, bad, err := newLoader().Scan()
	if err != nil {
		fail("%v", err)
	}

	for _, fe := range bad {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", fe)
	}

	if len(lvls) == 0 {
		fmt.Printf("No boards found in %s.\n", settings.Levels.Dir)
		return
	}

	var history map[string]*storage.BoardStats
	if store := openStore(); store != nil {
		if history, err = store.GetAllBoardStats(); err != nil {
			logger.Warn("could not read run history", "error", err)
		}
		store.Close()
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Println("Boards:")
	fmt.Println()
	fmt.Printf("  %-*s  %-5s  %-12s  %-10s  %s\n", maxIDLen, "ID", "Size", "Blocks", "Runs", "Name")
	fmt.Printf("  %-*s  %-5s  %-12s  %-10s  %s\n", maxIDLen, "--", "----", "------", "----", "----")

	for _, l := range lvls {
		b, err := l.Board()
		if err != nil {
			continue
		}
		st := core.ComputeBoardStats(b)

		runs := "-"
		if bs := history[l.ID]; bs != nil {
			runs = fmt.Sprintf("%d/%d", bs.Solved, bs.Runs)
		}
		fmt.Printf("  %-*s  %-5s  %-12s  %-10s  %s\n",
			maxIDLen, l.ID,
			fmt.Sprintf("%dx%d", st.Width, st.Height),
			inventoryString(st.Blocks),
			runs,
			l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'lazor solve <id>' to solve a board or 'lazor view <id>' to step through it.")
}
