package recorder

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/rubik"
	"github.com/SeamusWaldron/rubik/internal/storage"
)

func TestSession_RecordsEngineCommits(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "rec.db"))
	require.NoError(t, err)
	defer db.Close()

	rec := NewSession(db, nil)
	require.Equal(t, StateIdle, rec.State())

	e := rubik.New()
	e.OnCommit(rec.Record)

	// Not recording yet: ignored.
	require.NoError(t, e.Apply(rubik.R))

	id, err := rec.Start(storage.KindSolve, "")
	require.NoError(t, err)
	_, err = rec.Start(storage.KindSolve, "")
	require.ErrorIs(t, err, ErrAlreadyRecording)

	rec.SetPhase(storage.PhaseScramble)
	require.NoError(t, rec.SetScramble("U F2"))
	e.Enqueue(rubik.U, rubik.F2)
	e.Drain(time.Now())

	rec.SetPhase(storage.PhaseSolve)
	rec.Record(rubik.FPrime, errors.New("rejected"))
	require.NoError(t, e.Apply(rubik.F2, rubik.UPrime, rubik.RPrime))
	require.True(t, e.IsSolved())

	require.NoError(t, rec.End("F2 U' R'", "inverse", e.IsSolved()))
	require.Equal(t, StateEnded, rec.State())
	require.ErrorIs(t, rec.End("", "", false), ErrNotRecording)

	moves, err := storage.NewMoveRepository(db).GetBySession(id)
	require.NoError(t, err)
	// U, F, F, then F, F, U', R'.
	require.Len(t, moves, 7)
	require.Equal(t, storage.PhaseScramble, moves[0].Phase)
	require.Equal(t, storage.PhaseSolve, moves[6].Phase)
	require.Equal(t, 7, rec.MoveCount())

	sess, err := storage.NewSessionRepository(db).Get(id)
	require.NoError(t, err)
	require.True(t, sess.Solved)
	require.Equal(t, "U F2", *sess.ScrambleText)
}
