// Package recorder persists the committed moves of an engine run as a
// session in the store.
package recorder

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/rubik/internal/storage"
	"github.com/SeamusWaldron/rubik/pkg/types"
)

// Errors returned by Session.
var (
	ErrAlreadyRecording = errors.New("recorder: session already in progress")
	ErrNotRecording     = errors.New("recorder: no session in progress")
)

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session records one engine run. Record is meant to be registered as the
// engine's commit callback.
type Session struct {
	log *zap.Logger

	mu        sync.RWMutex
	state     SessionState
	sessionID string
	startTime time.Time
	moveIndex int
	phase     string

	sessionRepo *storage.SessionRepository
	moveRepo    *storage.MoveRepository
}

// NewSession creates a new session manager.
func NewSession(db *storage.DB, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		log:         log,
		state:       StateIdle,
		phase:       storage.PhaseManual,
		sessionRepo: storage.NewSessionRepository(db),
		moveRepo:    storage.NewMoveRepository(db),
	}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SessionID returns the current session ID.
func (s *Session) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// MoveCount returns the number of moves recorded so far.
func (s *Session) MoveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moveIndex
}

// Elapsed returns the time since the session started.
func (s *Session) Elapsed() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateRecording {
		return 0
	}
	return time.Since(s.startTime)
}

// Start starts a new recording session of the given kind.
func (s *Session) Start(kind, scramble string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", ErrAlreadyRecording
	}

	id, err := s.sessionRepo.Create(kind, scramble)
	if err != nil {
		return "", fmt.Errorf("failed to start session: %w", err)
	}

	s.sessionID = id
	s.startTime = time.Now()
	s.moveIndex = 0
	s.phase = storage.PhaseManual
	s.state = StateRecording

	s.log.Info("session started", zap.String("session", id), zap.String("kind", kind))
	return id, nil
}

// SetPhase sets the phase tag given to subsequently recorded moves.
func (s *Session) SetPhase(phase string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = phase
}

// SetScramble stores the scramble notation once it is known.
func (s *Session) SetScramble(scramble string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}
	return s.sessionRepo.SetScramble(s.sessionID, scramble)
}

// Record stores a committed move. Rejected moves (err != nil) and moves
// arriving while not recording are ignored.
func (s *Session) Record(m types.Move, err error) {
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return
	}

	if _, dbErr := s.moveRepo.Create(s.sessionID, s.moveIndex, s.phase, m); dbErr != nil {
		s.log.Error("failed to store move", zap.String("move", m.Notation()), zap.Error(dbErr))
		return
	}
	s.moveIndex++
}

// End ends the current session with its outcome.
func (s *Session) End(solution, solverName string, solved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}

	if err := s.sessionRepo.End(s.sessionID, solution, solverName, solved); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	s.state = StateEnded
	s.log.Info("session ended",
		zap.String("session", s.sessionID),
		zap.Int("moves", s.moveIndex),
		zap.Bool("solved", solved))
	return nil
}
