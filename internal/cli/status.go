package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/rubik/internal/solver"
	"github.com/SeamusWaldron/rubik/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and stored sessions",
	Long:  `Display the effective configuration, the database location and a summary of stored sessions.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("rubik Status")
	fmt.Println("============")
	fmt.Println()

	// Configuration
	path, err := configPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config: %s\n", path)
	} else {
		fmt.Printf("Config: built-in defaults (run 'rubik config init' to create %s)\n", path)
	}
	fmt.Printf("Animation: %.0f deg/s, frame cap %s\n", cfg.Animation.Speed, cfg.Animation.FrameCap)
	if sv, err := solver.New(cfg.Solver); err != nil {
		fmt.Printf("Solver: %v\n", err)
	} else {
		fmt.Printf("Solver: %s\n", sv.Name())
	}
	fmt.Println()

	// Database info
	dbFile := cfg.DB
	if dbFile == "" {
		dbFile, _ = storage.DefaultDBPath()
	}
	fmt.Printf("Database: %s\n", dbFile)

	db, err := openDB()
	if err != nil {
		fmt.Printf("  (unavailable: %v)\n", err)
		return nil
	}
	defer db.Close()

	if v, err := db.CurrentVersion(); err == nil {
		fmt.Printf("Schema version: %d\n", v)
	}

	sessions, err := storage.NewSessionRepository(db).List(100000)
	if err != nil {
		return err
	}
	counts := make(map[string]int)
	solved := 0
	for _, s := range sessions {
		counts[s.Kind]++
		if s.Solved {
			solved++
		}
	}
	fmt.Printf("Total sessions: %d (%d scramble, %d solve, %d play), %d ended solved\n",
		len(sessions), counts[storage.KindScramble], counts[storage.KindSolve], counts[storage.KindPlay], solved)
	if len(sessions) > 0 {
		fmt.Printf("Last session: %s\n", sessions[0].StartedAt.Local().Format(time.RFC3339))
	}
	return nil
}
