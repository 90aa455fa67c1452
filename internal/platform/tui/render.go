package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lazor/internal/lazor/core"
)

// RenderLattice converts a lattice to a styled string for display.
// Each lattice point becomes one rune followed by a space so the board keeps
// a roughly square aspect. Adjacent points with the same glyph are grouped
// to minimize ANSI escape sequences.
func RenderLattice(t Theme, lattice [][]core.LatticeCell) string {
	var sb strings.Builder
	if len(lattice) > 0 {
		sb.Grow(len(lattice) * len(lattice[0]) * 4)
	}

	for y, row := range lattice {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < len(row) {
			start := row[x]

			var run strings.Builder
			for x < len(row) && row[x] == start {
				run.WriteRune(row[x].Rune())
				if x < len(row)-1 {
					run.WriteRune(' ')
				}
				x++
			}

			sb.WriteString(t.Style(start).Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within a given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
