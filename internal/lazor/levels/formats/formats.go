// Package formats provides pluggable board file format parsers.
// Every parser produces a Level holding a core.BoardSpec; validation of
// the grid itself is left to core.Load.
package formats

import (
	"fmt"

	"github.com/vovakirdan/lazor/internal/lazor/core"
)

// Level is a parsed board file ready for core.Load.
type Level struct {
	ID       string
	Name     string
	Spec     core.BoardSpec
	Metadata map[string]string
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".bff", ".yaml", ".yml", ".json"}
}

// Parse routes data to the parser for ext. Source names the file in errors.
func Parse(data []byte, ext, source string) (Level, error) {
	switch ext {
	case ".bff":
		return ParseBFF(data, source)
	case ".yaml", ".yml":
		return ParseYAML(data, source)
	case ".json":
		return ParseJSON(data, source)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// boardDoc is the shared structure of YAML and JSON board files.
type boardDoc struct {
	ID       string            `yaml:"id" json:"id"`
	Name     string            `yaml:"name" json:"name"`
	Grid     []string          `yaml:"grid" json:"grid"`
	Blocks   map[string]int    `yaml:"blocks,omitempty" json:"blocks,omitempty"`
	Rays     []rayDoc          `yaml:"rays" json:"rays"`
	Targets  []pointDoc        `yaml:"targets" json:"targets"`
	Metadata map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

type rayDoc struct {
	X  int `yaml:"x" json:"x"`
	Y  int `yaml:"y" json:"y"`
	DX int `yaml:"dx" json:"dx"`
	DY int `yaml:"dy" json:"dy"`
}

type pointDoc struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// level converts a decoded document into a Level.
func (d boardDoc) level(source string) (Level, error) {
	blocks := make(map[core.BlockKind]int, len(d.Blocks))
	for name, n := range d.Blocks {
		kind, ok := core.ParseBlockKind(name)
		if !ok {
			return Level{}, &core.ParseError{Source: source, Reason: fmt.Sprintf("unknown block kind %q", name)}
		}
		blocks[kind] += n
	}

	rays := make([]core.Ray, len(d.Rays))
	for i, r := range d.Rays {
		rays[i] = core.NewRay(core.P(r.X, r.Y), core.P(r.DX, r.DY))
	}

	targets := make([]core.Point, len(d.Targets))
	for i, p := range d.Targets {
		targets[i] = core.P(p.X, p.Y)
	}

	return Level{
		ID:   d.ID,
		Name: d.Name,
		Spec: core.BoardSpec{
			Source:  source,
			Rows:    d.Grid,
			Blocks:  blocks,
			Rays:    rays,
			Targets: targets,
		},
		Metadata: d.Metadata,
	}, nil
}
