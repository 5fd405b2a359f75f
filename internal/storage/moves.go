package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/rubik/pkg/types"
)

// Move phases within a session.
const (
	PhaseScramble = "scramble"
	PhaseSolve    = "solve"
	PhaseManual   = "manual"
)

// MoveRecord represents a committed quarter turn in the database.
type MoveRecord struct {
	MoveID    int64
	SessionID string
	MoveIndex int
	Phase     string
	Layer     string
	Turn      int
	Notation  string
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// Create creates a new move and returns its ID.
func (r *MoveRepository) Create(sessionID string, moveIndex int, phase string, move types.Move) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO session_moves (session_id, move_index, phase, layer, turn, notation)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sessionID, moveIndex, phase, string(move.Layer), int(move.Turn), move.Notation())

	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}

	return id, nil
}

// CreateBatch creates multiple moves in a single transaction, numbering
// them from startIndex.
func (r *MoveRepository) CreateBatch(sessionID, phase string, moves []types.Move, startIndex int) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, move := range moves {
			_, err := tx.Exec(`
				INSERT INTO session_moves (session_id, move_index, phase, layer, turn, notation)
				VALUES (?, ?, ?, ?, ?, ?)
			`, sessionID, startIndex+i, phase, string(move.Layer), int(move.Turn), move.Notation())
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", startIndex+i, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves all moves of a session in order.
func (r *MoveRepository) GetBySession(sessionID string) ([]MoveRecord, error) {
	return r.query(`
		SELECT move_id, session_id, move_index, phase, layer, turn, notation
		FROM session_moves
		WHERE session_id = ?
		ORDER BY move_index
	`, sessionID)
}

// GetBySessionPhase retrieves the moves of one phase of a session.
func (r *MoveRepository) GetBySessionPhase(sessionID, phase string) ([]MoveRecord, error) {
	return r.query(`
		SELECT move_id, session_id, move_index, phase, layer, turn, notation
		FROM session_moves
		WHERE session_id = ? AND phase = ?
		ORDER BY move_index
	`, sessionID, phase)
}

func (r *MoveRepository) query(q string, args ...any) ([]MoveRecord, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.SessionID, &m.MoveIndex, &m.Phase, &m.Layer, &m.Turn, &m.Notation)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// GetNextIndex returns the next move index for a session.
func (r *MoveRepository) GetNextIndex(sessionID string) (int, error) {
	var maxIndex int
	err := r.db.QueryRow(`
		SELECT COALESCE(MAX(move_index), -1) FROM session_moves WHERE session_id = ?
	`, sessionID).Scan(&maxIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to get max move index: %w", err)
	}
	return maxIndex + 1, nil
}

// Count returns the number of moves for a session.
func (r *MoveRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM session_moves WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// ToMoves converts MoveRecords to a move slice.
func ToMoves(records []MoveRecord) []types.Move {
	moves := make([]types.Move, len(records))
	for i, r := range records {
		moves[i] = types.Move{
			Layer: types.Layer(r.Layer),
			Turn:  types.Turn(r.Turn),
		}
	}
	return moves
}
