// Package server streams a cube's vertex buffers to browsers over a
// websocket and takes move commands back. It is the renderer boundary made
// remote: every cubie buffer the engine pushes is forwarded to each client.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/rubik"
	"github.com/SeamusWaldron/rubik/internal/notation"
	"github.com/SeamusWaldron/rubik/internal/solver"
)

//go:embed static
var static embed.FS

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
}

// DefaultScramble is the scramble length used when a command gives none.
const DefaultScramble = 20

// ErrBusy is returned for a solve request while moves are still queued.
var ErrBusy = errors.New("server: cube is still turning")

// Server owns one engine and drives it from a frame ticker. All engine
// access is serialised by mu.
type Server struct {
	addr   string
	frame  time.Duration
	log    *zap.Logger
	solver solver.Solver

	mu      sync.Mutex
	engine  *rubik.Engine
	dirty   map[string][]float32
	clients map[*client]struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithFrame sets the update period of the tick loop.
func WithFrame(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.frame = d
		}
	}
}

// WithLogger sets the server logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSolver sets the solver used by solve commands.
func WithSolver(sv solver.Solver) Option {
	return func(s *Server) {
		if sv != nil {
			s.solver = sv
		}
	}
}

// New creates a server listening on addr. engineOpts configure the engine it
// owns; the renderer option is always replaced by the server's.
func New(addr string, opts []Option, engineOpts ...rubik.Option) *Server {
	s := &Server{
		addr:    addr,
		frame:   16 * time.Millisecond,
		log:     zap.NewNop(),
		solver:  solver.Inverse{},
		dirty:   make(map[string][]float32),
		clients: make(map[*client]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	engineOpts = append(engineOpts, rubik.WithRenderer(rubik.RendererFunc(s.markDirty)))
	s.engine = rubik.New(engineOpts...)
	s.dirty = make(map[string][]float32)
	return s
}

// Router returns the HTTP handler: the viewer page at / and the stream at /ws.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ws", s.serveWebsocket)
	r.HandleFunc("/state", s.serveState).Methods(http.MethodGet)

	sub, _ := fs.Sub(static, "static")
	r.PathPrefix("/").Handler(http.FileServer(http.FS(sub))).Methods(http.MethodGet)
	return r
}

// Run serves HTTP and drives the engine until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		s.log.Info("serving", zap.String("addr", s.addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	group.Go(func() error {
		for range channerics.NewTicker(groupCtx.Done(), s.frame) {
			s.Step(time.Now())
		}
		return nil
	})
	return group.Wait()
}

// Step advances the engine to now and publishes any changed buffers.
func (s *Server) Step(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Update(now)
	s.flush()
}

// Do runs fn with exclusive access to the engine and publishes whatever it
// changed.
func (s *Server) Do(fn func(e *rubik.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
	s.flush()
}

func (s *Server) markDirty(name string, data []float32) {
	s.dirty[name] = data
}

// flush publishes the buffers changed since the last flush. It must be
// called with mu held.
func (s *Server) flush() {
	if len(s.dirty) == 0 {
		return
	}
	s.broadcast(Frame{})
}

// broadcast sends extra, the dirty buffers and the engine status to every
// client. It must be called with mu held.
func (s *Server) broadcast(extra Frame) {
	f := s.status(extra)
	f.Buffers = s.dirty
	for c := range s.clients {
		c.queue(f)
	}
	s.dirty = make(map[string][]float32)
}

func (s *Server) status(f Frame) Frame {
	f.Type = frameType
	f.Phase = s.engine.Phase().String()
	f.Pending = s.engine.Pending()
	f.Solved = s.engine.IsSolved()
	return f
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", zap.Error(err))
		return
	}

	c := newClient(ws, s.log.With(zap.String("remote", r.RemoteAddr)))
	s.mu.Lock()
	s.clients[c] = struct{}{}
	snapshot := s.status(Frame{})
	snapshot.Buffers = s.engine.Buffers()
	c.queue(snapshot)
	s.mu.Unlock()
	c.log.Debug("client connected")

	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		c.close()
		c.log.Debug("client disconnected")
	}()

	if err := c.run(r.Context(), s.handle); err != nil {
		c.log.Warn("client error", zap.Error(err))
	}
}

// serveState reports the engine status without opening a stream.
func (s *Server) serveState(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	f := s.status(Frame{})
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(f)
}

func (s *Server) handle(ctx context.Context, cmd Command) {
	switch cmd.Type {
	case CmdMove:
		s.mu.Lock()
		defer s.mu.Unlock()
		moves, skipped := notation.ParseSequence(cmd.Notation)
		_ = s.engine.Enqueue(moves...)
		if len(skipped) > 0 {
			s.broadcast(Frame{Error: fmt.Sprintf("unknown moves %v", skipped)})
			return
		}
		s.broadcast(Frame{})

	case CmdScramble:
		n := cmd.N
		if n <= 0 {
			n = DefaultScramble
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.engine.Reset()
		tokens := s.engine.Scramble(n)
		s.broadcast(Frame{Scramble: tokens})

	case CmdSolve:
		solution, mark, err := s.solve(ctx)
		s.mu.Lock()
		defer s.mu.Unlock()
		if err == nil && !s.engine.Unchanged(mark) {
			err = rubik.ErrStale
		}
		if err != nil {
			s.broadcast(Frame{Error: err.Error()})
			return
		}
		s.engine.MoveFromList(solution)
		s.broadcast(Frame{Solution: solution})

	case CmdReset:
		s.mu.Lock()
		defer s.mu.Unlock()
		s.engine.Reset()
		s.broadcast(Frame{})

	default:
		s.mu.Lock()
		defer s.mu.Unlock()
		s.broadcast(Frame{Error: fmt.Sprintf("unknown command %q", cmd.Type)})
	}
}

// solve asks the solver for the moves undoing everything committed since
// the last reset. The engine lock is not held while the solver runs; the
// returned mark is the engine state the solution applies to.
func (s *Server) solve(ctx context.Context) ([]string, rubik.Mark, error) {
	s.mu.Lock()
	if !s.engine.Idle() {
		s.mu.Unlock()
		return nil, rubik.Mark{}, ErrBusy
	}
	input := notation.ToSolverInput(s.engine.History())
	mark := s.engine.Mark()
	s.mu.Unlock()

	if input == "" {
		return []string{}, mark, nil
	}
	solution, err := s.solver.Solve(ctx, input)
	if err != nil {
		s.log.Warn("solve failed", zap.String("solver", s.solver.Name()), zap.Error(err))
		return nil, mark, fmt.Errorf("solve: %w", err)
	}
	s.log.Info("solved", zap.Int("moves", len(solution)))
	return solution, mark, nil
}
