package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SeamusWaldron/rubik/pkg/types"
)

type StorageSuite struct {
	suite.Suite
	db       *DB
	sessions *SessionRepository
	moves    *MoveRepository
}

func (s *StorageSuite) SetupTest() {
	db, err := Open(filepath.Join(s.T().TempDir(), "test.db"))
	s.Require().NoError(err)
	s.db = db
	s.sessions = NewSessionRepository(db)
	s.moves = NewMoveRepository(db)
}

func (s *StorageSuite) TearDownTest() {
	s.db.Close()
}

func (s *StorageSuite) TestMigrationsApplied() {
	require := require.New(s.T())
	v, err := s.db.CurrentVersion()
	require.NoError(err)
	require.Equal(1, v)

	// Reapplying is a no-op.
	require.NoError(s.db.MigrateUp())
	v, err = s.db.CurrentVersion()
	require.NoError(err)
	require.Equal(1, v)
}

func (s *StorageSuite) TestSessionLifecycle() {
	require := require.New(s.T())
	id, err := s.sessions.Create(KindSolve, "R U F'")
	require.NoError(err)
	require.Len(id, 36)

	got, err := s.sessions.Get(id)
	require.NoError(err)
	require.NotNil(got)
	require.Equal(KindSolve, got.Kind)
	require.Equal("R U F'", *got.ScrambleText)
	require.Nil(got.EndedAt)
	require.False(got.Solved)

	require.NoError(s.sessions.End(id, "F U' R'", "inverse", true))
	got, err = s.sessions.Get(id)
	require.NoError(err)
	require.NotNil(got.EndedAt)
	require.True(got.Solved)
	require.Equal("inverse", *got.Solver)
	require.Equal("F U' R'", *got.SolutionText)
	require.GreaterOrEqual(got.Duration(), time.Duration(0))
}

func (s *StorageSuite) TestGetMissingReturnsNil() {
	got, err := s.sessions.Get("missing")
	s.Require().NoError(err)
	s.Require().Nil(got)

	s.Require().Error(s.sessions.End("missing", "", "", false))
}

func (s *StorageSuite) TestListNewestFirst() {
	require := require.New(s.T())
	first, err := s.sessions.Create(KindScramble, "")
	require.NoError(err)
	second, err := s.sessions.Create(KindPlay, "")
	require.NoError(err)

	list, err := s.sessions.List(10)
	require.NoError(err)
	require.Len(list, 2)
	require.Equal(second, list[0].SessionID)
	require.Equal(first, list[1].SessionID)

	last, err := s.sessions.GetLast()
	require.NoError(err)
	require.Equal(second, last.SessionID)
}

func (s *StorageSuite) TestMovesRoundTripAndCascade() {
	require := require.New(s.T())
	id, err := s.sessions.Create(KindSolve, "")
	require.NoError(err)

	scramble := []types.Move{
		{Layer: types.LayerR, Turn: types.TurnCW},
		{Layer: types.LayerV, Turn: types.TurnCCW},
	}
	require.NoError(s.moves.CreateBatch(id, PhaseScramble, scramble, 0))

	next, err := s.moves.GetNextIndex(id)
	require.NoError(err)
	require.Equal(2, next)

	_, err = s.moves.Create(id, next, PhaseSolve, types.Move{Layer: types.LayerV, Turn: types.TurnCW})
	require.NoError(err)

	all, err := s.moves.GetBySession(id)
	require.NoError(err)
	require.Len(all, 3)
	require.Equal("V'", all[1].Notation)
	require.Equal(scramble, ToMoves(all[:2]))

	solve, err := s.moves.GetBySessionPhase(id, PhaseSolve)
	require.NoError(err)
	require.Len(solve, 1)

	// Duplicate index violates the unique constraint and rolls back the batch.
	err = s.moves.CreateBatch(id, PhaseSolve, scramble, 2)
	require.Error(err)
	n, err := s.moves.Count(id)
	require.NoError(err)
	require.Equal(3, n)

	require.NoError(s.sessions.Delete(id))
	n, err = s.moves.Count(id)
	require.NoError(err)
	require.Zero(n)
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}
