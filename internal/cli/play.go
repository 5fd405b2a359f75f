package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/rubik"
	"github.com/SeamusWaldron/rubik/internal/netview"
	"github.com/SeamusWaldron/rubik/internal/notation"
	"github.com/SeamusWaldron/rubik/internal/recorder"
	"github.com/SeamusWaldron/rubik/internal/solver"
	"github.com/SeamusWaldron/rubik/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive cube in the terminal",
	Long: `Start an interactive TUI showing the cube as an unfolded sticker net.

Keyboard shortcuts:
  u l f r b d   - Turn a face clockwise (shift for counter-clockwise)
  v h s         - Turn a middle slice (shift for counter-clockwise)
  x             - Scramble
  z             - Solve with the configured solver
  0             - Reset
  2             - Toggle a second, independent cube that mirrors scrambles and solves
  q/Esc         - Quit

Moves are stored as a play session unless --no-save is given.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntVarP(&scrambleLength, "moves", "n", 20, "Scramble length")
	playCmd.Flags().String("solver", "", "Solver to use (inverse, command:<program> [args])")
	playCmd.Flags().BoolVar(&noSave, "no-save", false, "Do not store the session")
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Messages
type tickMsg time.Time
type solvedMsg struct {
	solution []string
	mark     rubik.Mark
	err      error
}

// playModel drives one engine, and optionally a second one, from the
// bubbletea event loop. Every engine call happens inside Update.
type playModel struct {
	engine *rubik.Engine
	second *rubik.Engine
	solver solver.Solver
	rec    *recorder.Session
	frame  time.Duration

	scramble []string
	solution []string
	solving  bool
	err      error
	quitting bool
}

func newPlayModel(engine *rubik.Engine, sv solver.Solver, rec *recorder.Session) *playModel {
	frame := cfg.Animation.FrameCap
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	return &playModel{
		engine: engine,
		solver: sv,
		rec:    rec,
		frame:  frame,
	}
}

func (m *playModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *playModel) tickCmd() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case tickMsg:
		now := time.Time(msg)
		m.engine.Update(now)
		if m.second != nil {
			m.second.Update(now)
		}
		return m, m.tickCmd()

	case solvedMsg:
		m.solving = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		// The cube was turned or reset while the solver ran.
		if !m.engine.Unchanged(msg.mark) {
			m.err = rubik.ErrStale
			return m, nil
		}
		m.solution = msg.solution
		m.setPhase(storage.PhaseSolve)
		m.engine.MoveFromList(msg.solution)
		if m.second != nil {
			m.second.MoveFromList(msg.solution)
		}
	}

	return m, nil
}

func (m *playModel) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return tea.Quit

	case "x":
		m.err = nil
		m.solution = nil
		m.setPhase(storage.PhaseScramble)
		m.scramble = m.engine.Scramble(scrambleLength)
		if m.second != nil {
			m.second.MoveFromList(m.scramble)
		}

	case "z":
		return m.solve()

	case "0":
		m.engine.Reset()
		if m.second != nil {
			m.second.Reset()
		}
		m.scramble, m.solution, m.err = nil, nil, nil

	case "2":
		if m.second != nil {
			m.second = nil
			return nil
		}
		m.second = newEngine()
		// Start from the same committed state.
		m.second.MoveFromList(notation.Tokens(m.engine.History()))

	default:
		if mv, ok := keyMove(key); ok {
			m.setPhase(storage.PhaseManual)
			_ = m.engine.Enqueue(mv)
		}
	}
	return nil
}

// keyMove maps a layer key to a move; upper case means counter-clockwise.
func keyMove(key string) (rubik.Move, bool) {
	if len(key) != 1 {
		return rubik.Move{}, false
	}
	layer := rubik.Layer(strings.ToUpper(key))
	if !layer.Valid() {
		return rubik.Move{}, false
	}
	turn := rubik.CW
	if key != strings.ToLower(key) {
		turn = rubik.CCW
	}
	return rubik.Move{Layer: layer, Turn: turn}, true
}

func (m *playModel) solve() tea.Cmd {
	if m.solving {
		return nil
	}
	if !m.engine.Idle() {
		m.err = fmt.Errorf("wait for the cube to stop turning")
		return nil
	}
	m.err = nil
	m.solving = true
	input := notation.ToSolverInput(m.engine.History())
	mark := m.engine.Mark()
	sv := m.solver
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		solution, err := sv.Solve(ctx, input)
		return solvedMsg{solution: solution, mark: mark, err: err}
	}
}

func (m *playModel) setPhase(phase string) {
	if m.rec != nil {
		m.rec.SetPhase(phase)
	}
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Rubik's Cube"))
	b.WriteString("\n\n")

	net := netview.Render(m.engine.Stickers())
	if m.second != nil {
		net = lipgloss.JoinHorizontal(lipgloss.Top, net, "    ", netview.Render(m.second.Stickers()))
	}
	b.WriteString(net)
	b.WriteString("\n\n")

	// Animation status
	status := fmt.Sprintf("%s  queued: %d  committed: %d", m.engine.Phase(), m.engine.Pending(), len(m.engine.History()))
	if mv, angle, ok := m.engine.Current(); ok {
		status += fmt.Sprintf("  turning %s %.0f°", mv.Notation(), angle)
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")

	switch {
	case m.solving:
		b.WriteString(phaseStyle.Render("SOLVING..."))
		b.WriteString("\n")
	case m.engine.IsSolved():
		b.WriteString(phaseStyle.Render("SOLVED"))
		b.WriteString("\n")
	}

	if len(m.scramble) > 0 {
		b.WriteString("Scramble: ")
		b.WriteString(moveStyle.Render(strings.Join(m.scramble, " ")))
		b.WriteString("\n")
	}
	if len(m.solution) > 0 {
		b.WriteString("Solution: ")
		b.WriteString(moveStyle.Render(strings.Join(m.solution, " ")))
		b.WriteString("\n")
	}

	// Recent moves
	if history := m.engine.History(); len(history) > 0 {
		start := 0
		b.WriteString("Moves: ")
		if len(history) > 20 {
			start = len(history) - 20
			b.WriteString("... ")
		}
		b.WriteString(moveStyle.Render(notation.FormatSequence(history[start:])))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ulfrbd/vhs=turn (shift=prime)  x=scramble  z=solve  0=reset  2=second cube  q=quit"))
	b.WriteString("\n")

	return b.String()
}

func runPlay(cmd *cobra.Command, args []string) error {
	sv, err := solver.New(cfg.Solver)
	if err != nil {
		return err
	}

	engine := newEngine()
	var rec *recorder.Session
	if !noSave {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		rec = recorder.NewSession(db, logger)
		engine.OnCommit(rec.Record)
		if _, err := rec.Start(storage.KindPlay, ""); err != nil {
			return err
		}
	}

	model := newPlayModel(engine, sv, rec)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if rec != nil {
		if err := rec.End(strings.Join(model.solution, " "), sv.Name(), engine.IsSolved()); err != nil {
			return err
		}
		fmt.Printf("Session %s: %d moves recorded\n", rec.SessionID(), rec.MoveCount())
	}
	return nil
}
