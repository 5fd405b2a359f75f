package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/rubik/internal/server"
	"github.com/SeamusWaldron/rubik/internal/solver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cube to a browser",
	Long: `Start an HTTP server with a browser viewer. The cube's vertex buffers are
streamed over a websocket at /ws and key presses in the page are sent back as
moves. /state reports the animation status as JSON.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default: localhost:8080)")
	serveCmd.Flags().String("solver", "", "Solver to use (inverse, command:<program> [args])")
}

func runServe(cmd *cobra.Command, args []string) error {
	sv, err := solver.New(cfg.Solver)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server.Addr,
		[]server.Option{
			server.WithLogger(logger),
			server.WithSolver(sv),
			server.WithFrame(cfg.Animation.FrameCap),
		},
		engineOptions()...,
	)

	fmt.Printf("Serving on http://%s (Ctrl+C to stop)\n", cfg.Server.Addr)
	return srv.Run(ctx)
}
