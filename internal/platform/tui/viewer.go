package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lazor/internal/lazor/core"
	"github.com/vovakirdan/lazor/internal/lazor/levels"
	"github.com/vovakirdan/lazor/internal/lazor/solver"
	"github.com/vovakirdan/lazor/internal/storage"
)

// ViewerOptions configures a ViewerModel.
type ViewerOptions struct {
	Solver  solver.Options
	Timeout time.Duration // per solve; 0 = none
	FPS     int           // auto-play sweeps per second
	Theme   Theme
	Store   *storage.Store // optional run history
	Logger  *log.Logger
}

// solveDoneMsg carries a finished background search.
type solveDoneMsg struct {
	res solver.Result
	err error
}

// ViewerModel traces a board sweep by sweep.
// The configuration starts empty; solving replaces it with the solution.
type ViewerModel struct {
	level  levels.Level
	board  *core.Board
	cfg    *core.Configuration
	engine *core.Engine
	opts   ViewerOptions
	keys   ViewerKeyMap
	help   help.Model

	playing  bool
	tickGen  int // bumped on every play start or stop
	solving  bool
	cancel   context.CancelFunc // aborts the background solve
	status   string
	failed   bool
	width    int
	height   int
	quitting bool
	back     bool
}

// NewViewerModel creates a viewer for a loaded level.
func NewViewerModel(level levels.Level, board *core.Board, opts ViewerOptions, width, height int) ViewerModel {
	if opts.FPS <= 0 {
		opts.FPS = 8
	}
	h := help.New()
	h.ShowAll = false

	cfg := board.NewConfiguration()
	return ViewerModel{
		level:  level,
		board:  board,
		cfg:    cfg,
		engine: core.NewEngine(cfg),
		opts:   opts,
		keys:   DefaultViewerKeyMap(),
		help:   h,
		status: "ready",
		width:  width,
		height: height,
	}
}

// Init initializes the model.
func (m ViewerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.playing || msg.gen != m.tickGen {
			return m, nil
		}
		if !m.engine.Sweep() {
			m.stopPlaying()
			m.status = m.traceStatus()
			return m, nil
		}
		return m, tickCmd(m.opts.FPS, m.tickGen)

	case solveDoneMsg:
		return m.handleSolved(msg), nil
	}
	return m, nil
}

func (m ViewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelSolve()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.cancelSolve()
		m.back = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Step):
		m.stopPlaying()
		m.engine.Sweep()
		m.status = m.traceStatus()

	case key.Matches(msg, m.keys.Run):
		m.stopPlaying()
		m.engine.Run()
		m.status = m.traceStatus()

	case key.Matches(msg, m.keys.Play):
		if m.engine.Done() {
			m.engine = core.NewEngine(m.cfg)
		}
		if m.playing {
			m.stopPlaying()
			return m, nil
		}
		m.playing = true
		m.tickGen++
		return m, tickCmd(m.opts.FPS, m.tickGen)

	case key.Matches(msg, m.keys.Reset):
		m.stopPlaying()
		m.engine = core.NewEngine(m.cfg)
		m.status, m.failed = "ready", false

	case key.Matches(msg, m.keys.Clear):
		m.stopPlaying()
		m.cfg = m.board.NewConfiguration()
		m.engine = core.NewEngine(m.cfg)
		m.status, m.failed = "placements cleared", false

	case key.Matches(msg, m.keys.Solve):
		if m.solving {
			return m, nil
		}
		m.stopPlaying()
		m.solving = true
		m.status = fmt.Sprintf("solving (%s)...", strategyName(m.opts.Solver.Strategy))

		ctx := context.Background()
		if m.opts.Timeout > 0 {
			ctx, m.cancel = context.WithTimeout(ctx, m.opts.Timeout)
		} else {
			ctx, m.cancel = context.WithCancel(ctx)
		}
		return m, m.solveCmd(ctx)
	}

	return m, nil
}

// stopPlaying ends auto-play and invalidates any tick still in flight.
func (m *ViewerModel) stopPlaying() {
	if m.playing {
		m.tickGen++
	}
	m.playing = false
}

// cancelSolve aborts a running background search.
func (m *ViewerModel) cancelSolve() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// solveCmd runs the search off the UI goroutine.
func (m ViewerModel) solveCmd(ctx context.Context) tea.Cmd {
	board, opts := m.board, m.opts.Solver
	if opts.Logger == nil {
		opts.Logger = m.opts.Logger
	}
	return func() tea.Msg {
		res, err := solver.Solve(ctx, board, opts)
		return solveDoneMsg{res: res, err: err}
	}
}

func (m ViewerModel) handleSolved(msg solveDoneMsg) ViewerModel {
	m.solving = false
	m.cancelSolve()

	if m.opts.Store != nil {
		run := storage.NewRun(m.level.ID, m.opts.Solver.Strategy, msg.res, msg.err)
		if _, err := m.opts.Store.SaveRun(run); err != nil && m.opts.Logger != nil {
			m.opts.Logger.Warn("could not record run", "board", m.level.ID, "error", err)
		}
	}

	switch {
	case msg.err != nil:
		m.status, m.failed = "search failed: "+msg.err.Error(), true
	case !msg.res.Solved:
		m.status, m.failed = fmt.Sprintf("no solution (%d nodes)", msg.res.Stats.Nodes), true
	default:
		m.cfg = msg.res.Config
		m.engine = core.NewEngine(m.cfg)
		m.status, m.failed = fmt.Sprintf("solved in %s (%d nodes), press p to trace",
			msg.res.Stats.Duration.Round(time.Microsecond), msg.res.Stats.Nodes), false
	}
	return m
}

// traceStatus summarises the engine state after a sweep.
func (m ViewerModel) traceStatus() string {
	if !m.engine.Done() {
		return "tracing"
	}
	if core.Covers(m.engine.Path(), m.board.Rays(), m.board.Targets()) {
		return "all targets hit"
	}
	return "trace finished"
}

// View renders the viewer.
func (m ViewerModel) View() string {
	if m.quitting {
		return ""
	}
	t := m.opts.Theme

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(t.HUDTitle.Render(strings.ToUpper(m.level.Name)), m.width))
	b.WriteString("\n\n")

	board := RenderLattice(t, core.Lattice(m.cfg, m.engine.Path()))
	for _, line := range strings.Split(board, "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(centerText(m.hud(), m.width))
	b.WriteString("\n")

	statusStyle := t.HUDValue
	switch {
	case m.failed:
		statusStyle = t.HUDFailed
	case m.engine.Done() && core.Covers(m.engine.Path(), m.board.Rays(), m.board.Targets()):
		statusStyle = t.HUDSolved
	}
	b.WriteString(centerText(statusStyle.Render(m.status), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(t.HUDControls.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")
	return b.String()
}

// hud renders the counters line.
func (m ViewerModel) hud() string {
	t := m.opts.Theme
	sep := t.HUDSeparator.Render("  |  ")

	active := 0
	rays := m.engine.Rays()
	for _, r := range rays {
		if r.Active {
			active++
		}
	}
	targets := m.board.Targets()
	hit := len(targets) - len(core.Missing(m.engine.Path(), m.board.Rays(), targets))

	fields := []string{
		fmt.Sprintf("Sweep %d", m.engine.Sweeps()),
		fmt.Sprintf("Rays %d/%d", active, len(rays)),
		fmt.Sprintf("Segments %d", m.engine.Path().Len()),
		fmt.Sprintf("Targets %d/%d", hit, len(targets)),
		fmt.Sprintf("Placed %d", len(m.cfg.Placements())),
	}
	for i, f := range fields {
		fields[i] = t.HUDValue.Render(f)
	}
	return strings.Join(fields, sep)
}

// Engine returns the current propagation run.
func (m ViewerModel) Engine() *core.Engine {
	return m.engine
}

// Status returns the status line.
func (m ViewerModel) Status() string {
	return m.status
}

// IsPlaying returns true while auto-play is running.
func (m ViewerModel) IsPlaying() bool {
	return m.playing
}

// IsQuitting returns true if user wants to quit.
func (m ViewerModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m ViewerModel) WantsBack() bool {
	return m.back
}

func strategyName(s solver.Strategy) string {
	if s == "" {
		return string(solver.StrategyBacktrack)
	}
	return string(s)
}

// RunViewer runs the viewer for one level until the user leaves it.
func RunViewer(level levels.Level, board *core.Board, opts ViewerOptions, width, height int) error {
	model := NewViewerModel(level, board, opts, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
