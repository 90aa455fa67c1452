package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lazor/internal/platform/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view [board]",
	Short: "Step through a board's laser paths interactively",
	Long: `Open the interactive viewer. Without arguments, pick a board from the
levels directory; with one, open that board directly.

Controls:
  n/→        - Advance every ray one step
  e          - Run to the end
  p/Space    - Play or pause
  s          - Solve and show the solution
  r          - Restart the trace
  c          - Clear placed blocks
  Esc/b      - Back
  q/Ctrl+C   - Quit

Examples:
  lazor view
  lazor view mad_1 --strategy parallel`,
	Args: cobra.MaximumNArgs(1),
	Run:  runView,
}

func runView(_ *cobra.Command, args []string) {
	if !isTerminal() {
		fail("the viewer needs a terminal")
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	opts := viewerOptions(store)
	w, h := terminalSize()

	if len(args) == 0 {
		items, err := tui.LoadBoardItems(newLoader())
		if err != nil {
			fail("%v", err)
		}
		if err := tui.RunSession(items, opts, w, h); err != nil {
			fail("running viewer: %v", err)
		}
		return
	}

	lvl, err := newLoader().Resolve(args[0])
	if err != nil {
		fail("%v", err)
	}
	b, err := lvl.Board()
	if err != nil {
		fail("%v", err)
	}
	if err := tui.RunViewer(lvl, b, opts, w, h); err != nil {
		fail("running viewer: %v", err)
	}
}
