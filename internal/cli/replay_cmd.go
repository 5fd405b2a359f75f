package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/rubik"
	"github.com/SeamusWaldron/rubik/internal/netview"
	"github.com/SeamusWaldron/rubik/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay [session-id]",
	Short: "Replay a stored session",
	Long: `Replay the committed moves of a stored session on a fresh cube, animated
in the terminal.

Usage:
  rubik replay --last             # Replay the most recent session
  rubik replay <session-id>       # Replay a specific session
  rubik replay --speed 2.0        # Replay at 2x speed
  rubik replay --step             # Step through moves manually`,
	RunE: runReplay,
}

var (
	replaySpeed float64
	replayStep  bool
	replayLast  bool
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Float64VarP(&replaySpeed, "speed", "s", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVarP(&replayStep, "step", "t", false, "Step through moves manually")
	replayCmd.Flags().BoolVar(&replayLast, "last", false, "Replay the most recent session")
}

func runReplay(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := resolveSession(storage.NewSessionRepository(db), args, replayLast)
	if err != nil {
		return err
	}
	records, err := storage.NewMoveRepository(db).GetBySession(s.SessionID)
	if err != nil {
		return fmt.Errorf("failed to load moves: %w", err)
	}

	fmt.Printf("Loaded session: %s (%s)\n", s.SessionID, s.Kind)
	fmt.Printf("Moves: %d\n", len(records))

	model := newReplayModel(records, replaySpeed, replayStep)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}
	return nil
}

// replayModel feeds stored moves to an engine one at a time, so the
// current phase tag can be shown as each move animates.
type replayModel struct {
	records  []storage.MoveRecord
	moves    []rubik.Move
	index    int
	speed    float64
	stepMode bool
	paused   bool
	engine   *rubik.Engine
	frame    time.Duration
	quitting bool
}

func newReplayModel(records []storage.MoveRecord, speed float64, stepMode bool) *replayModel {
	m := &replayModel{
		records:  records,
		moves:    storage.ToMoves(records),
		speed:    speed,
		stepMode: stepMode,
		frame:    16 * time.Millisecond,
	}
	m.reset()
	return m
}

func (m *replayModel) reset() {
	m.engine = m.newEngine()
	m.index = 0
}

func (m *replayModel) newEngine() *rubik.Engine {
	speed := cfg.Animation.Speed
	if speed <= 0 {
		speed = DefaultConfig().Animation.Speed
	}
	return newEngine(rubik.WithAnimationSpeed(speed * float32(m.speed)))
}

// respeed rebuilds the engine at the current speed with the moves played
// so far applied at once.
func (m *replayModel) respeed() {
	e := m.newEngine()
	_ = e.Apply(m.moves[:m.index]...)
	m.engine = e
}

func (m *replayModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *replayModel) tickCmd() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// next queues the following stored move.
func (m *replayModel) next() {
	if m.index < len(m.moves) {
		_ = m.engine.Enqueue(m.moves[m.index])
		m.index++
	}
}

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "n":
			if m.stepMode || m.paused {
				if m.engine.Idle() {
					m.next()
				}
			} else {
				m.paused = !m.paused
			}

		case "p":
			m.paused = !m.paused

		case "r":
			m.reset()

		case "+", "=":
			m.speed *= 2
			if m.speed > 16 {
				m.speed = 16
			}
			m.respeed()

		case "-":
			m.speed /= 2
			if m.speed < 0.25 {
				m.speed = 0.25
			}
			m.respeed()
		}

	case tickMsg:
		m.engine.Update(time.Time(msg))
		if !m.stepMode && !m.paused && m.engine.Idle() {
			m.next()
		}
		return m, m.tickCmd()
	}

	return m, nil
}

func (m *replayModel) View() string {
	if m.quitting {
		return "Replay ended.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Session Replay"))
	b.WriteString("\n\n")

	progress := fmt.Sprintf("Move %d/%d", m.index, len(m.moves))
	if m.paused {
		progress += " [PAUSED]"
	}
	if m.stepMode {
		progress += " [STEP MODE]"
	}
	b.WriteString(statusStyle.Render(progress))
	b.WriteString(fmt.Sprintf(" (%.2gx speed)\n\n", m.speed))

	b.WriteString(netview.Render(m.engine.Stickers()))
	b.WriteString("\n\n")

	if m.index > 0 {
		rec := m.records[m.index-1]
		b.WriteString(fmt.Sprintf("Phase: %s\n", phaseStyle.Render(rec.Phase)))
	}
	if m.engine.IsSolved() && m.index > 0 {
		b.WriteString(phaseStyle.Render("SOLVED!"))
		b.WriteString("\n")
	}

	// Recent moves
	if m.index > 0 {
		start := 0
		b.WriteString("Moves: ")
		if m.index > 20 {
			start = m.index - 20
			b.WriteString("... ")
		}
		var notations []string
		for _, mv := range m.moves[start:m.index] {
			notations = append(notations, mv.Notation())
		}
		b.WriteString(moveStyle.Render(strings.Join(notations, " ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "SPACE=pause  r=restart  +/-=speed  q=quit"
	if m.stepMode || m.paused {
		help = "SPACE/n=next move  p=resume  r=restart  q=quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}
