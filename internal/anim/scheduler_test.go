package anim

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SeamusWaldron/rubik/pkg/types"
)

var errRejected = errors.New("rejected")

type fakeTarget struct {
	turns   []float32
	commits []types.Move
	failOn  types.Layer
}

func (f *fakeTarget) Group(l types.Layer) []string {
	return []string{string(l)}
}

func (f *fakeTarget) Turn(_ []string, _ types.Layer, degrees float32) error {
	f.turns = append(f.turns, degrees)
	return nil
}

func (f *fakeTarget) Commit(m types.Move) error {
	f.commits = append(f.commits, m)
	if m.Layer == f.failOn {
		return errRejected
	}
	return nil
}

type SchedulerSuite struct {
	suite.Suite
	target *fakeTarget
	sched  *Scheduler
	t0     time.Time
}

func (s *SchedulerSuite) SetupTest() {
	s.t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.target = &fakeTarget{}
	s.sched = NewScheduler(s.target, WithClock(func() time.Time { return s.t0 }))
}

func (s *SchedulerSuite) TestEnqueueWhileIdleStartsImmediately() {
	require := require.New(s.T())
	require.True(s.sched.Idle())

	s.sched.Enqueue(types.Move{Layer: types.LayerR, Turn: types.TurnCW})
	require.Equal(Animating, s.sched.Phase())
	require.Equal(0, s.sched.Pending())

	m, angle, ok := s.sched.Current()
	require.True(ok)
	require.Equal(types.LayerR, m.Layer)
	require.Zero(angle)
}

func (s *SchedulerSuite) TestAngleGrowsMonotonicallyAndCommitsOnce() {
	require := require.New(s.T())
	s.sched.Enqueue(types.Move{Layer: types.LayerU, Turn: types.TurnCW})

	now := s.t0
	prev := float32(0)
	for i := 0; i < 1000 && s.sched.Phase() == Animating; i++ {
		now = now.Add(5 * time.Millisecond)
		s.sched.Tick(now)
		if _, angle, ok := s.sched.Current(); ok {
			require.Greater(abs(angle), abs(prev), "tick %d", i)
			require.LessOrEqual(abs(angle), types.QuarterAngle)
			require.Less(angle, float32(0), "clockwise turns are negative")
			prev = angle
		}
	}

	require.Equal(Idle, s.sched.Phase())
	require.Len(s.target.commits, 1)

	var sum float32
	for _, d := range s.target.turns {
		sum += d
	}
	require.InDelta(-90, sum, 1e-3)
}

func (s *SchedulerSuite) TestCounterClockwiseIsPositive() {
	require := require.New(s.T())
	s.sched.Enqueue(types.Move{Layer: types.LayerF, Turn: types.TurnCCW})
	s.sched.Tick(s.t0.Add(10 * time.Millisecond))

	_, angle, ok := s.sched.Current()
	require.True(ok)
	require.Greater(angle, float32(0))
}

func (s *SchedulerSuite) TestLongFrameIsCapped() {
	require := require.New(s.T())
	s.sched.Enqueue(types.Move{Layer: types.LayerR, Turn: types.TurnCW})
	s.sched.Tick(s.t0.Add(2 * time.Second))

	_, angle, ok := s.sched.Current()
	require.True(ok, "a single long frame must not finish the turn")
	require.InDelta(-DefaultSpeed*float32(DefaultFrameCap.Seconds()), angle, 1e-4)
}

func (s *SchedulerSuite) TestMovesRunInQueueOrder() {
	require := require.New(s.T())
	moves := []types.Move{
		{Layer: types.LayerR, Turn: types.TurnCW},
		{Layer: types.LayerU, Turn: types.TurnCW},
		{Layer: types.LayerF, Turn: types.TurnCCW},
	}
	for _, m := range moves {
		s.sched.Enqueue(m)
	}
	require.Equal(2, s.sched.Pending())

	s.sched.Drain(s.t0)
	require.Equal(moves, s.target.commits)
	require.True(s.sched.Idle())
}

func (s *SchedulerSuite) TestHalfTurnBecomesTwoQuarters() {
	require := require.New(s.T())
	s.sched.Enqueue(types.Move{Layer: types.LayerD, Turn: types.Turn180})
	s.sched.Drain(s.t0)

	q := types.Move{Layer: types.LayerD, Turn: types.TurnCW}
	require.Equal([]types.Move{q, q}, s.target.commits)
}

func (s *SchedulerSuite) TestRejectedCommitDoesNotStallQueue() {
	require := require.New(s.T())
	s.target.failOn = types.LayerU

	var errs []error
	s.sched.OnCommit(func(_ types.Move, err error) { errs = append(errs, err) })

	s.sched.Enqueue(types.Move{Layer: types.LayerU, Turn: types.TurnCW})
	s.sched.Enqueue(types.Move{Layer: types.LayerR, Turn: types.TurnCW})
	s.sched.Drain(s.t0)

	require.Len(s.target.commits, 2)
	require.Len(errs, 2)
	require.ErrorIs(errs[0], errRejected)
	require.NoError(errs[1])
	require.True(s.sched.Idle())
}

func (s *SchedulerSuite) TestResetDropsEverything() {
	require := require.New(s.T())
	s.sched.Enqueue(types.Move{Layer: types.LayerU, Turn: types.TurnCW})
	s.sched.Enqueue(types.Move{Layer: types.LayerR, Turn: types.TurnCW})
	s.sched.Tick(s.t0.Add(5 * time.Millisecond))

	s.sched.Reset()
	require.True(s.sched.Idle())

	s.sched.Drain(s.t0)
	require.Empty(s.target.commits)
}

func (s *SchedulerSuite) TestTickWhileIdleIsNoop() {
	s.sched.Tick(s.t0.Add(time.Second))
	s.Require().Empty(s.target.turns)
}

func TestSchedulerSuite(t *testing.T) {
	suite.Run(t, new(SchedulerSuite))
}
