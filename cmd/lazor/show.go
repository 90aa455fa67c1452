package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lazor/internal/lazor/core"
	"github.com/vovakirdan/lazor/internal/lazor/levels"
	"github.com/vovakirdan/lazor/internal/platform/tui"
	"github.com/vovakirdan/lazor/internal/report"
)

var flagShowReport string

var showCmd = &cobra.Command{
	Use:   "show [board]",
	Short: "Print a board or a saved report",
	Long: `Print a board with the path its lasers take before any block is placed,
and the targets that path misses. With --report, print a report written by
'lazor solve --out' instead.

Without arguments in a terminal, pick the board from a menu.

Examples:
  lazor show mad_1
  lazor show --report mad_1.json.zst`,
	Args: cobra.MaximumNArgs(1),
	Run:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&flagShowReport, "report", "", "Report file to print (.json or .json.zst)")
}

func runShow(_ *cobra.Command, args []string) {
	if flagShowReport != "" {
		showReport(flagShowReport)
		return
	}

	var (
		lvl levels.Level
		b   *core.Board
	)
	switch {
	case len(args) == 1:
		var err error
		if lvl, err = newLoader().Resolve(args[0]); err != nil {
			fail("%v", err)
		}
		if b, err = lvl.Board(); err != nil {
			fail("%v", err)
		}
	case isTerminal():
		items, err := tui.LoadBoardItems(newLoader())
		if err != nil {
			fail("%v", err)
		}
		w, h := terminalSize()
		item, err := tui.RunBoardSelector(items, tui.ThemeByName(settings.View.Theme), w, h)
		if err != nil {
			fail("%v", err)
		}
		if item == nil {
			return
		}
		lvl, b = item.Level, item.Board
	default:
		fail("a board is required when not running in a terminal")
	}

	cfg := b.NewConfiguration()
	path := core.Propagate(cfg)
	st := core.ComputeBoardStats(b)

	fmt.Printf("%s (%s)\n", lvl.Name, lvl.ID)
	fmt.Printf("%dx%d, %d open, blocks %s, %d ray(s), %d target(s)\n\n",
		st.Width, st.Height, st.Open, inventoryString(st.Blocks), st.Rays, st.Targets)
	fmt.Print(core.RenderASCII(cfg, path))

	missing := core.Missing(path, b.Rays(), b.Targets())
	fmt.Println()
	if len(missing) == 0 {
		fmt.Println("All targets are hit with no blocks placed.")
		return
	}
	pts := make([]string, len(missing))
	for i, p := range missing {
		pts[i] = p.String()
	}
	fmt.Printf("Missed targets: %s\n", strings.Join(pts, " "))
	if !st.Feasible {
		fmt.Println("More blocks than open cells: this board cannot be solved.")
	}
}

func inventoryString(inv core.Inventory) string {
	var parts []string
	for _, k := range core.AllKinds {
		if n := inv.Count(k); n > 0 {
			parts = append(parts, fmt.Sprintf("%c×%d", k.Symbol(), n))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

func showReport(path string) {
	r, err := report.Load(path)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("%s  %dx%d  strategy %s  %s\n", r.BoardID, r.Size[0], r.Size[1], r.Strategy,
		r.CreatedAt.Local().Format("2006-01-02 15:04"))
	if !r.Solved {
		fmt.Println("No solution.")
	} else {
		fmt.Println()
		for _, row := range r.Grid {
			fmt.Printf("  %s\n", row)
		}
		fmt.Println()
		for _, p := range r.Placements {
			fmt.Printf("  %s at [%d,%d]\n", p.Kind, p.Col, p.Row)
		}
		fmt.Printf("  %d segment(s)\n", len(r.Segments))
	}
	fmt.Printf("\n  nodes %d, evaluations %d, pruned %d, workers %d, %dµs\n",
		r.Stats.Nodes, r.Stats.Evaluations, r.Stats.Pruned, r.Stats.Workers, r.Stats.DurationUS)
}
