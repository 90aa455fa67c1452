// Package report exports solver results as JSON documents.
// Paths ending in .zst are zstd-compressed.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/lazor/internal/lazor/core"
	"github.com/vovakirdan/lazor/internal/lazor/solver"
)

// Version of the report document layout.
const Version = 1

// Report describes one solved (or unsolved) board.
type Report struct {
	Version    int         `json:"version"`
	BoardID    string      `json:"board_id"`
	Size       [2]int      `json:"size"`
	Strategy   string      `json:"strategy"`
	Solved     bool        `json:"solved"`
	Placements []Placement `json:"placements"`
	Segments   [][4]int    `json:"segments,omitempty"` // x1 y1 x2 y2
	Grid       []string    `json:"grid,omitempty"`     // solved board in file symbols
	Stats      Stats       `json:"stats"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Placement is a placed block in report form.
type Placement struct {
	Col  int    `json:"col"`
	Row  int    `json:"row"`
	Kind string `json:"kind"`
}

// Stats mirrors solver.Stats with explicit units.
type Stats struct {
	Nodes       int64 `json:"nodes"`
	Evaluations int64 `json:"evaluations"`
	Pruned      int64 `json:"pruned"`
	Workers     int   `json:"workers"`
	DurationUS  int64 `json:"duration_us"`
}

// New builds a report from a solver result.
func New(boardID string, b *core.Board, strategy solver.Strategy, res solver.Result) Report {
	r := Report{
		Version:    Version,
		BoardID:    boardID,
		Size:       [2]int{b.W, b.H},
		Strategy:   string(strategy),
		Solved:     res.Solved,
		Placements: []Placement{},
		Stats: Stats{
			Nodes:       res.Stats.Nodes,
			Evaluations: res.Stats.Evaluations,
			Pruned:      res.Stats.Pruned,
			Workers:     res.Stats.Workers,
			DurationUS:  res.Stats.Duration.Microseconds(),
		},
		CreatedAt: time.Now().UTC(),
	}

	for _, p := range res.Placements {
		r.Placements = append(r.Placements, Placement{Col: p.At.Col, Row: p.At.Row, Kind: string(p.Kind.Symbol())})
	}
	if res.Path != nil {
		for _, s := range res.Path.Segments() {
			r.Segments = append(r.Segments, [4]int{s.From.X, s.From.Y, s.To.X, s.To.Y})
		}
	}
	if res.Config != nil {
		r.Grid = res.Config.Rows()
	}
	return r
}

// Write encodes r as indented JSON.
func Write(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("report: encode: %w", err)
	}
	return nil
}

// Read decodes a report.
func Read(rd io.Reader) (Report, error) {
	var r Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return Report{}, fmt.Errorf("report: decode: %w", err)
	}
	if r.Version != Version {
		return Report{}, fmt.Errorf("report: unsupported version %d", r.Version)
	}
	return r, nil
}

// Compressed reports whether path selects zstd compression.
func Compressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zst")
}

// Save writes r to path, creating parent directories.
func Save(path string, r Report) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("report: cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("report: close: %w", cerr)
		}
	}()

	if !Compressed(path) {
		bw := bufio.NewWriter(f)
		if err := Write(bw, r); err != nil {
			return err
		}
		return bw.Flush()
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("report: zstd: %w", err)
	}
	if err := Write(enc, r); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("report: zstd close: %w", err)
	}
	return nil
}

// Load reads a report written by Save.
func Load(path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("report: %w", err)
	}
	defer f.Close()

	if !Compressed(path) {
		return Read(bufio.NewReader(f))
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		return Report{}, fmt.Errorf("report: zstd: %w", err)
	}
	defer dec.Close()
	return Read(dec)
}
