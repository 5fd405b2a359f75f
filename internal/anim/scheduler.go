package anim

import (
	"time"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/rubik/pkg/types"
)

// Target is what the scheduler drives: the owner of a cube's slot maps and
// cubie geometry.
type Target interface {
	// Group returns the names of the cubies currently in layer l.
	Group(l types.Layer) []string
	// Turn rotates the geometry of the named cubies by degrees.
	Turn(names []string, l types.Layer, degrees float32) error
	// Commit applies a finished quarter turn to the logical state.
	Commit(m types.Move) error
}

// Phase is the state of the scheduler.
type Phase int

const (
	Idle Phase = iota
	Animating
)

func (p Phase) String() string {
	if p == Animating {
		return "animating"
	}
	return "idle"
}

// CommitFunc is called once per finished quarter turn. err is non-nil when
// the logical commit was rejected.
type CommitFunc func(m types.Move, err error)

// Scheduler runs one quarter turn at a time, advancing it on every Tick.
// It is not safe for concurrent use.
type Scheduler struct {
	target Target
	cfg    *config
	queue  Queue

	phase   Phase
	current types.Move
	names   []string
	angle   float32
	goal    float32
	last    time.Time

	onCommit []CommitFunc
}

// NewScheduler creates an idle scheduler driving target.
func NewScheduler(target Target, opts ...Option) *Scheduler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Scheduler{target: target, cfg: cfg}
}

// OnCommit registers a callback fired after every finished quarter turn.
func (s *Scheduler) OnCommit(fn CommitFunc) {
	s.onCommit = append(s.onCommit, fn)
}

// Enqueue adds a move to the queue. Half turns become two quarter turns.
// When idle the first quarter starts immediately.
func (s *Scheduler) Enqueue(m types.Move) {
	s.queue.Push(m)
	if s.phase == Idle {
		s.startNext(s.cfg.clock())
	}
}

// Phase returns the current scheduler state.
func (s *Scheduler) Phase() Phase {
	return s.phase
}

// Idle reports whether nothing is animating and nothing is queued.
func (s *Scheduler) Idle() bool {
	return s.phase == Idle && s.queue.Len() == 0
}

// Pending returns the number of queued quarter turns, excluding the one in
// progress.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// Queued returns a copy of the pending quarter turns.
func (s *Scheduler) Queued() []types.Move {
	return s.queue.Snapshot()
}

// Current returns the move in progress and its accumulated angle.
func (s *Scheduler) Current() (types.Move, float32, bool) {
	if s.phase != Animating {
		return types.Move{}, 0, false
	}
	return s.current, s.angle, true
}

// Reset drops the queue and any rotation in progress without committing it.
// The caller is responsible for rebuilding the geometry.
func (s *Scheduler) Reset() {
	s.queue.Clear()
	s.finish()
}

// Tick advances the rotation in progress to time now. When the rotation
// reaches its target it is committed and the next queued move starts.
func (s *Scheduler) Tick(now time.Time) {
	if s.phase != Animating {
		return
	}

	dt := now.Sub(s.last)
	if dt > s.cfg.frameCap {
		dt = s.cfg.frameCap
	}
	if dt < 0 {
		dt = 0
	}
	s.last = now

	sign := float32(1)
	if s.goal < 0 {
		sign = -1
	}
	change := sign * s.cfg.speed * float32(dt.Seconds())
	remaining := s.goal - s.angle

	if abs(remaining) <= abs(change)+Epsilon {
		s.turn(remaining)
		s.angle = s.goal
		s.commit()
		s.startNext(now)
		return
	}

	if change == 0 {
		return
	}
	s.turn(change)
	s.angle += change
}

// Drain runs the scheduler with a simulated clock until the queue is empty
// and returns the time reached.
func (s *Scheduler) Drain(start time.Time) time.Time {
	now := start
	for s.phase == Animating {
		now = now.Add(s.cfg.frameCap)
		s.Tick(now)
	}
	return now
}

func (s *Scheduler) startNext(now time.Time) {
	if s.phase == Animating {
		return
	}
	m, ok := s.queue.Pop()
	if !ok {
		return
	}
	s.phase = Animating
	s.current = m
	s.names = s.target.Group(m.Layer)
	s.angle = 0
	s.goal = m.TargetAngle()
	s.last = now
}

func (s *Scheduler) turn(degrees float32) {
	if err := s.target.Turn(s.names, s.current.Layer, degrees); err != nil {
		s.cfg.logger.Error("turn failed",
			zap.String("move", s.current.Notation()),
			zap.Error(err))
	}
}

func (s *Scheduler) commit() {
	m := s.current
	err := s.target.Commit(m)
	if err != nil {
		s.cfg.logger.Error("commit rejected",
			zap.String("move", m.Notation()),
			zap.Error(err))
	} else {
		s.cfg.logger.Debug("move committed",
			zap.String("move", m.Notation()),
			zap.Int("pending", s.queue.Len()))
	}
	s.finish()
	for _, fn := range s.onCommit {
		fn(m, err)
	}
}

func (s *Scheduler) finish() {
	s.phase = Idle
	s.current = types.Move{}
	s.names = nil
	s.angle = 0
	s.goal = 0
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
