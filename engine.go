package rubik

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/rubik/internal/anim"
	"github.com/SeamusWaldron/rubik/internal/cube"
	"github.com/SeamusWaldron/rubik/internal/cubie"
	"github.com/SeamusWaldron/rubik/internal/notation"
	"github.com/SeamusWaldron/rubik/pkg/types"
)

// Phase is the state of an engine's animation scheduler.
type Phase = anim.Phase

const (
	PhaseIdle      = anim.Idle
	PhaseAnimating = anim.Animating
)

// Engine owns one cube: its slot maps, its cubie geometry, its move queue
// and the turn in progress. Engines share nothing, so any number may run
// side by side. An Engine is not safe for concurrent use.
type Engine struct {
	id     string
	cfg    *config
	log    *zap.Logger
	state  *cube.State
	cubies *cubie.Set
	sched  *anim.Scheduler

	history    []Move
	generation uint64
	onCommit   []func(Move, error)
}

// Mark identifies an engine's committed state at one moment: its reset
// generation and the number of turns committed since that reset.
type Mark struct {
	generation uint64
	committed  int
}

// New creates an engine holding a solved cube.
func New(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		id:     uuid.NewString(),
		cfg:    cfg,
		state:  cube.New(),
		cubies: cubie.NewSet(),
	}
	e.log = cfg.logger.With(zap.String("engine", e.id[:8]))

	e.sched = anim.NewScheduler(target{e},
		anim.WithSpeed(cfg.speed),
		anim.WithFrameCap(cfg.frameCap),
		anim.WithLogger(e.log),
		anim.WithClock(cfg.clock),
	)
	e.sched.OnCommit(e.committed)

	e.pushAll()
	return e
}

// ID returns the engine's unique identifier.
func (e *Engine) ID() string {
	return e.id
}

// OnCommit registers a callback fired after every finished quarter turn.
// err is non-nil when the turn was rejected and the cube left unchanged.
func (e *Engine) OnCommit(fn func(m Move, err error)) {
	e.onCommit = append(e.onCommit, fn)
}

// Enqueue queues moves for animation. Half turns run as two quarter turns.
// If nothing is animating the first move starts at once. A move naming an
// unknown layer is skipped and reported; the rest are still queued.
func (e *Engine) Enqueue(moves ...Move) error {
	var bad error
	for _, m := range moves {
		if !m.Layer.Valid() || (m.Turn != CW && m.Turn != CCW && m.Turn != Double) {
			e.log.Warn("unknown move skipped", zap.String("move", m.Notation()))
			if bad == nil {
				bad = fmt.Errorf("%w: %q", ErrUnknownMove, m.Notation())
			}
			continue
		}
		e.sched.Enqueue(m)
	}
	return bad
}

// Update advances the animation to time now. It is the single per-frame
// entry point; every state change happens inside it.
func (e *Engine) Update(now time.Time) {
	e.sched.Tick(now)
}

// Drain runs every queued move to completion on a simulated clock starting
// at now and returns the simulated end time.
func (e *Engine) Drain(now time.Time) time.Time {
	return e.sched.Drain(now)
}

// Apply executes moves immediately, without animation. Any queued or
// in-flight turns are finished first so ordering is preserved.
func (e *Engine) Apply(moves ...Move) error {
	e.Drain(e.cfg.clock())
	for _, m := range moves {
		if !m.Layer.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownMove, m.Notation())
		}
		for _, q := range m.Quarters() {
			names := e.state.Cubies(q.Layer)
			t := target{e}
			if err := t.Turn(names, q.Layer, q.TargetAngle()); err != nil {
				return err
			}
			err := t.Commit(q)
			e.committed(q, err)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Reset discards the queue and any turn in progress and rebuilds the solved
// cube.
func (e *Engine) Reset() {
	e.sched.Reset()
	e.state.Reset()
	e.cubies.Reset()
	e.history = nil
	e.generation++
	e.pushAll()
	e.log.Debug("engine reset")
}

// Scramble queues n random quarter turns of the outer faces, never turning
// the same face twice in a row, and returns their notation.
func (e *Engine) Scramble(n int) []string {
	if n < 0 {
		n = 0
	}
	moves := make([]Move, 0, n)
	var last Layer
	for len(moves) < n {
		face := types.Faces[e.cfg.rng.Intn(len(types.Faces))]
		if face == last {
			continue
		}
		last = face
		turn := CW
		if e.cfg.rng.Intn(2) == 1 {
			turn = CCW
		}
		moves = append(moves, Move{Layer: face, Turn: turn})
	}
	_ = e.Enqueue(moves...)
	e.log.Info("scramble queued", zap.Int("moves", n))
	return notation.Tokens(moves)
}

// MoveFromList queues moves given as notation tokens. Unknown tokens are
// skipped; the number skipped is returned.
func (e *Engine) MoveFromList(tokens []string) int {
	moves, skipped := notation.ParseTokens(tokens)
	for _, tok := range skipped {
		e.log.Warn("unknown notation token skipped", zap.String("token", tok))
	}
	_ = e.Enqueue(moves...)
	return len(skipped)
}

// Phase returns whether a turn is animating.
func (e *Engine) Phase() Phase {
	return e.sched.Phase()
}

// Idle reports whether nothing is animating and nothing is queued.
func (e *Engine) Idle() bool {
	return e.sched.Idle()
}

// Pending returns the number of queued quarter turns.
func (e *Engine) Pending() int {
	return e.sched.Pending()
}

// Current returns the turn in progress and its accumulated angle.
func (e *Engine) Current() (Move, float32, bool) {
	return e.sched.Current()
}

// History returns the quarter turns committed since the last reset.
func (e *Engine) History() []Move {
	return append([]Move(nil), e.history...)
}

// Mark returns the engine's current mark.
func (e *Engine) Mark() Mark {
	return Mark{generation: e.generation, committed: len(e.history)}
}

// Unchanged reports whether the engine is idle and has neither committed a
// turn nor been reset since m was taken. Work computed from the state at m,
// such as a solution, is only valid while this holds.
func (e *Engine) Unchanged(m Mark) bool {
	return e.Idle() && e.Mark() == m
}

// State returns a copy of the slot maps.
func (e *Engine) State() *cube.State {
	return e.state.Clone()
}

// Face returns the cubie names on a face, row-major as seen from outside.
func (e *Engine) Face(face Layer) [9]string {
	return e.state.Face(face)
}

// Slice returns the cubie ring of a middle slice.
func (e *Engine) Slice(slice Layer) [8]string {
	return e.state.Slice(slice)
}

// IsSolved returns true if every cubie is in its home slot.
func (e *Engine) IsSolved() bool {
	return e.state.IsSolved()
}

// Validate checks the slot maps and that every cubie's geometry sits on the
// slot the maps assign it. It is only meaningful while idle.
func (e *Engine) Validate() error {
	if err := e.state.Validate(); err != nil {
		return err
	}
	want := e.state.Positions()
	for name, got := range e.cubies.Positions() {
		if want[name] != got {
			return fmt.Errorf("%w: %s drawn at %v, mapped to %v", ErrConsistency, name, got, want[name])
		}
	}
	return nil
}

// Stickers returns the face color showing at every face slot.
func (e *Engine) Stickers() [6][9]Layer {
	var out [6][9]Layer
	for i, face := range types.Faces {
		for slot := 0; slot < 9; slot++ {
			out[i][slot], _ = e.cubies.Sticker(e.state, face, slot)
		}
	}
	return out
}

// Buffer returns the interleaved vertex buffer of one cubie.
func (e *Engine) Buffer(name string) ([]float32, error) {
	c, ok := e.cubies.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCubie, name)
	}
	return c.Buffer(), nil
}

// Buffers returns the vertex buffers of all 26 cubies keyed by name.
func (e *Engine) Buffers() map[string][]float32 {
	out := make(map[string][]float32, e.cubies.Len())
	for _, name := range e.cubies.Names() {
		c, _ := e.cubies.Get(name)
		out[name] = c.Buffer()
	}
	return out
}

func (e *Engine) committed(m Move, err error) {
	if err == nil {
		e.history = append(e.history, m)
	}
	for _, fn := range e.onCommit {
		fn(m, err)
	}
}

func (e *Engine) push(names []string) {
	for _, name := range names {
		if c, ok := e.cubies.Get(name); ok {
			e.cfg.renderer.UpdateBuffer(name, c.Buffer())
		}
	}
}

func (e *Engine) pushAll() {
	e.push(e.cubies.Names())
}

// target adapts an Engine to the scheduler.
type target struct {
	e *Engine
}

func (t target) Group(l Layer) []string {
	return t.e.state.Cubies(l)
}

func (t target) Turn(names []string, l Layer, degrees float32) error {
	if err := t.e.cubies.RotateGroup(names, l, degrees); err != nil {
		return err
	}
	t.e.push(names)
	return nil
}

// Commit applies the slot permutation. If the maps reject it the geometry
// is turned back so drawing and maps stay in step.
func (t target) Commit(m Move) error {
	names := t.e.state.Cubies(m.Layer)
	err := t.e.state.Rotate(m.Layer, m.Clockwise())
	if err != nil {
		t.e.log.Error("consistency violation", zap.String("move", m.Notation()), zap.Error(err))
		_ = t.e.cubies.RotateGroup(names, m.Layer, -m.TargetAngle())
	}
	t.e.cubies.Snap(names)
	t.e.push(names)
	return err
}
