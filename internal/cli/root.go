// Package cli implements the command-line interface for rubik.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/rubik"
	"github.com/SeamusWaldron/rubik/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	cfgFile string
	dbPath  string
	verbose bool

	cfg    Config
	logger = zap.NewNop()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "rubik",
	Short: "Rubik's cube state machine",
	Long: `rubik - A 26-cubie Rubik's cube simulator.

Scramble and solve a simulated cube from the command line, play with it in
an interactive terminal view, or stream its geometry to a browser. Every run
can be stored as a session and inspected later.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return initLogger()
	},
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.rubik/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.rubik/rubik.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// initLogger builds the process logger. Verbose runs get the human
// readable development encoder at debug level.
func initLogger() error {
	var (
		l   *zap.Logger
		err error
	)
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		pc := zap.NewProductionConfig()
		pc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		l, err = pc.Build()
	}
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l
	return nil
}

// openDB opens the configured database.
func openDB() (*storage.DB, error) {
	if cfg.DB == "" {
		return storage.OpenDefault()
	}
	db, err := storage.Open(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// engineOptions returns the engine options derived from the configuration.
func engineOptions(extra ...rubik.Option) []rubik.Option {
	opts := []rubik.Option{
		rubik.WithAnimationSpeed(cfg.Animation.Speed),
		rubik.WithFrameCap(cfg.Animation.FrameCap),
		rubik.WithLogger(logger),
	}
	return append(opts, extra...)
}

func newEngine(extra ...rubik.Option) *rubik.Engine {
	return rubik.New(engineOptions(extra...)...)
}
