package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lazor/internal/lazor/core"
	"github.com/vovakirdan/lazor/internal/lazor/solver"
	"github.com/vovakirdan/lazor/internal/report"
	"github.com/vovakirdan/lazor/internal/storage"
)

var (
	flagReportOut string
	flagRequire   bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <board>",
	Short: "Solve a board",
	Long: `Search for block placements that make every laser pass through all
target points. <board> is a .bff, .yaml or .json file, or the ID of a board
in the levels directory.

A board without a solution is reported, not treated as an error, unless
--require is given.

Examples:
  lazor solve levels/mad_1.bff
  lazor solve mad_1 --strategy exhaustive
  lazor solve mad_1 --out mad_1.json.zst`,
	Args: cobra.ExactArgs(1),
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&flagReportOut, "out", "o", "", "Write a JSON report (.zst suffix compresses it)")
	solveCmd.Flags().BoolVar(&flagRequire, "require", false, "Exit with an error when the board has no solution")
}

func runSolve(_ *cobra.Command, args []string) {
	lvl, err := newLoader().Resolve(args[0])
	if err != nil {
		fail("%v", err)
	}
	b, err := lvl.Board()
	if err != nil {
		fail("%v", err)
	}

	opts := solverOptions()
	ctx, cancel := searchContext()
	defer cancel()

	res, err := solver.Solve(ctx, b, opts)

	if store := openStore(); store != nil {
		recordRun(store, storage.NewRun(lvl.ID, opts.Strategy, res, err))
		store.Close()
	}

	if err != nil {
		fail("solving %s: %v", lvl.ID, err)
	}

	if flagReportOut != "" {
		if err := report.Save(flagReportOut, report.New(lvl.ID, b, opts.Strategy, res)); err != nil {
			fail("%v", err)
		}
	}

	fmt.Printf("%s (%s)\n\n", lvl.Name, lvl.ID)
	if !res.Solved {
		fmt.Println("No solution.")
		printStats(res.Stats)
		if flagRequire {
			fail("%s: %v", lvl.ID, core.ErrNoSolution)
		}
		return
	}

	fmt.Print(core.RenderASCII(res.Config, res.Path))
	fmt.Println()
	fmt.Println("Placements:")
	if len(res.Placements) == 0 {
		fmt.Println("  (none)")
	}
	for _, p := range res.Placements {
		fmt.Printf("  %s\n", p)
	}
	printStats(res.Stats)
	if flagReportOut != "" {
		fmt.Printf("\nReport written to %s\n", flagReportOut)
	}
}

func printStats(st solver.Stats) {
	fmt.Println()
	fmt.Printf("  %-12s %d\n", "Nodes", st.Nodes)
	fmt.Printf("  %-12s %d\n", "Evaluations", st.Evaluations)
	fmt.Printf("  %-12s %d\n", "Pruned", st.Pruned)
	fmt.Printf("  %-12s %d\n", "Workers", st.Workers)
	fmt.Printf("  %-12s %s\n", "Time", st.Duration.Round(time.Microsecond))
}
