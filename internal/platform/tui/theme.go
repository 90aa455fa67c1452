package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lazor/internal/lazor/core"
)

// Theme contains all configurable visual styles for the board views.
type Theme struct {
	// Lattice glyph styles
	Corner    lipgloss.Style
	Open      lipgloss.Style
	Blocked   lipgloss.Style
	Reflect   lipgloss.Style
	Opaque    lipgloss.Style
	Refract   lipgloss.Style
	Placed    lipgloss.Style // Added on top of the kind style
	Beam      lipgloss.Style
	Source    lipgloss.Style
	Target    lipgloss.Style
	TargetHit lipgloss.Style

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDControls  lipgloss.Style
	HUDSolved    lipgloss.Style
	HUDFailed    lipgloss.Style

	// Board picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultTheme returns the default dark-terminal theme.
func DefaultTheme() Theme {
	return Theme{
		Corner:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")), // Dark gray
		Open:      lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Blocked:   lipgloss.NewStyle().Foreground(lipgloss.Color("88")),             // Dark red
		Reflect:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),  // Bright cyan
		Opaque:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true), // Light gray
		Refract:   lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true), // Medium purple
		Placed:    lipgloss.NewStyle().Underline(true),
		Beam:      lipgloss.NewStyle().Foreground(lipgloss.Color("205")), // Hot pink
		Source:    lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Target:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		TargetHit: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDControls:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDSolved:    lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		HUDFailed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// PlainTheme returns a theme without colors or attributes.
func PlainTheme() Theme {
	s := lipgloss.NewStyle()
	return Theme{
		Corner: s, Open: s, Blocked: s, Reflect: s, Opaque: s, Refract: s,
		Placed: s, Beam: s, Source: s, Target: s, TargetHit: s,
		HUDTitle: s, HUDValue: s, HUDSeparator: s, HUDControls: s,
		HUDSolved: s, HUDFailed: s,
		MenuTitle: s, MenuItemNormal: s, MenuItemActive: s, MenuDescription: s,
	}
}

// ThemeByName returns the named theme; unknown names get DefaultTheme.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "plain", "none", "mono":
		return PlainTheme()
	default:
		return DefaultTheme()
	}
}

// Style returns the style for one lattice point.
func (t Theme) Style(lc core.LatticeCell) lipgloss.Style {
	switch lc.Glyph {
	case core.GlyphCorner:
		return t.Corner
	case core.GlyphOpen:
		return t.Open
	case core.GlyphBlocked:
		return t.Blocked
	case core.GlyphReflect:
		return t.Reflect
	case core.GlyphOpaque:
		return t.Opaque
	case core.GlyphRefract:
		return t.Refract
	case core.GlyphPlaced:
		return t.Placed.Inherit(t.kindStyle(lc.Kind))
	case core.GlyphBeam:
		return t.Beam
	case core.GlyphSource:
		return t.Source
	case core.GlyphTarget:
		return t.Target
	case core.GlyphTargetHit:
		return t.TargetHit
	default:
		return lipgloss.NewStyle()
	}
}

func (t Theme) kindStyle(k core.BlockKind) lipgloss.Style {
	switch k {
	case core.Reflect:
		return t.Reflect
	case core.Opaque:
		return t.Opaque
	default:
		return t.Refract
	}
}
