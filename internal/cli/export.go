package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/rubik/internal/storage"
)

var (
	exportSessionID string
	exportFormat    string
	exportOutput    string
	exportLast      bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session data",
	Long:  `Export session data in various formats.`,
}

var exportMovesCmd = &cobra.Command{
	Use:   "moves",
	Short: "Export moves from a session",
	Long: `Export the committed quarter turns of a session as text, JSON or YAML.

Examples:
  rubik export moves --last
  rubik export moves --id <session_id> --format json
  rubik export moves --id <session_id> --format yaml -o moves.yaml`,
	RunE: runExportMoves,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.AddCommand(exportMovesCmd)
	exportMovesCmd.Flags().StringVar(&exportSessionID, "id", "", "Session ID (or unique prefix) to export")
	exportMovesCmd.Flags().BoolVar(&exportLast, "last", false, "Export the last session")
	exportMovesCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json, yaml)")
	exportMovesCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

// exportedMove is the JSON and YAML shape of a stored move.
type exportedMove struct {
	MoveIndex int    `json:"move_index" yaml:"move_index"`
	Phase     string `json:"phase" yaml:"phase"`
	Layer     string `json:"layer" yaml:"layer"`
	Turn      int    `json:"turn" yaml:"turn"`
	Notation  string `json:"notation" yaml:"notation"`
}

// exportedSession wraps the moves with the session header.
type exportedSession struct {
	SessionID string         `json:"session_id" yaml:"session_id"`
	Kind      string         `json:"kind" yaml:"kind"`
	Scramble  string         `json:"scramble,omitempty" yaml:"scramble,omitempty"`
	Solution  string         `json:"solution,omitempty" yaml:"solution,omitempty"`
	Solved    bool           `json:"solved" yaml:"solved"`
	Moves     []exportedMove `json:"moves" yaml:"moves"`
}

func formatExport(format string, s *storage.Session, moves []storage.MoveRecord) (string, error) {
	switch strings.ToLower(format) {
	case "txt":
		var notations []string
		for _, m := range moves {
			notations = append(notations, m.Notation)
		}
		return strings.Join(notations, " "), nil

	case "json", "yaml", "yml":
		out := exportedSession{
			SessionID: s.SessionID,
			Kind:      s.Kind,
			Scramble:  deref(s.ScrambleText),
			Solution:  deref(s.SolutionText),
			Solved:    s.Solved,
		}
		for _, m := range moves {
			out.Moves = append(out.Moves, exportedMove{
				MoveIndex: m.MoveIndex,
				Phase:     m.Phase,
				Layer:     m.Layer,
				Turn:      m.Turn,
				Notation:  m.Notation,
			})
		}

		var (
			data []byte
			err  error
		)
		if strings.ToLower(format) == "json" {
			data, err = json.MarshalIndent(out, "", "  ")
		} else {
			data, err = yaml.Marshal(out)
		}
		if err != nil {
			return "", fmt.Errorf("failed to marshal %s: %w", format, err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
	return "", fmt.Errorf("unknown format: %s (use txt, json or yaml)", format)
}

func runExportMoves(cmd *cobra.Command, args []string) error {
	if exportSessionID == "" && !exportLast {
		return fmt.Errorf("specify --id or --last")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var ids []string
	if exportSessionID != "" {
		ids = []string{exportSessionID}
	}
	s, err := resolveSession(storage.NewSessionRepository(db), ids, exportLast)
	if err != nil {
		return err
	}

	moves, err := storage.NewMoveRepository(db).GetBySession(s.SessionID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}
	if len(moves) == 0 {
		return fmt.Errorf("no moves found for session %s", s.SessionID)
	}

	output, err := formatExport(exportFormat, s, moves)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Println(output)
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("Exported %d moves to %s\n", len(moves), exportOutput)
	return nil
}
