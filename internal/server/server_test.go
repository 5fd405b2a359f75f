package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SeamusWaldron/rubik"
	"github.com/SeamusWaldron/rubik/internal/solver"
)

type ServerSuite struct {
	suite.Suite
	srv  *Server
	http *httptest.Server
}

func (s *ServerSuite) SetupTest() {
	s.srv = New("", nil, rubik.WithAnimationSpeed(1e6))
	s.http = httptest.NewServer(s.srv.Router())
}

func (s *ServerSuite) TearDownTest() {
	s.http.Close()
}

type stream struct {
	conn   *websocket.Conn
	frames <-chan Frame
}

func (s *ServerSuite) dial() stream {
	url := "ws" + strings.TrimPrefix(s.http.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)

	frames := make(chan Frame, 64)
	done := make(chan struct{})
	go func() {
		defer close(frames)
		for {
			var f Frame
			if err := conn.ReadJSON(&f); err != nil {
				return
			}
			select {
			case frames <- f:
			case <-done:
				return
			}
		}
	}()
	s.T().Cleanup(func() {
		close(done)
		conn.Close()
	})
	return stream{conn: conn, frames: frames}
}

// readUntil steps the engine and reads frames until match accepts one.
func (s *ServerSuite) readUntil(st stream, match func(Frame) bool) Frame {
	deadline := time.After(5 * time.Second)
	for {
		s.srv.Step(time.Now())
		select {
		case f, ok := <-st.frames:
			s.Require().True(ok, "stream closed")
			if match(f) {
				return f
			}
		case <-time.After(10 * time.Millisecond):
		case <-deadline:
			s.FailNow("no matching frame")
			return Frame{}
		}
	}
}

// settle steps the engine until every queued move has committed.
func (s *ServerSuite) settle() *rubik.Engine {
	var engine *rubik.Engine
	s.Require().Eventually(func() bool {
		s.srv.Step(time.Now())
		idle := false
		s.srv.Do(func(e *rubik.Engine) {
			engine = e
			idle = e.Idle()
		})
		return idle
	}, 5*time.Second, 5*time.Millisecond)
	return engine
}

func (s *ServerSuite) send(st stream, cmd Command) {
	s.Require().NoError(st.conn.WriteJSON(cmd))
}

func (s *ServerSuite) TestIndexPage() {
	require := require.New(s.T())
	resp, err := http.Get(s.http.URL + "/")
	require.NoError(err)
	defer resp.Body.Close()

	require.Equal(http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.Contains(string(body), "<canvas")
}

func (s *ServerSuite) TestStateEndpoint() {
	require := require.New(s.T())
	resp, err := http.Get(s.http.URL + "/state")
	require.NoError(err)
	defer resp.Body.Close()

	var f Frame
	require.NoError(json.NewDecoder(resp.Body).Decode(&f))
	require.True(f.Solved)
	require.Equal("idle", f.Phase)
	require.Zero(f.Pending)
}

func (s *ServerSuite) TestSnapshotOnConnect() {
	require := require.New(s.T())
	conn := s.dial()

	var f Frame
	select {
	case f = <-conn.frames:
	case <-time.After(2 * time.Second):
		s.FailNow("no snapshot")
	}
	require.Equal(frameType, f.Type)
	require.Len(f.Buffers, 26)
	for name, buf := range f.Buffers {
		require.Len(buf, 36*8, name)
	}
}

func (s *ServerSuite) TestMoveStreamsTurnedCubies() {
	require := require.New(s.T())
	conn := s.dial()
	s.readUntil(conn, func(f Frame) bool { return len(f.Buffers) == 26 })

	s.send(conn, Command{Type: CmdMove, Notation: "R"})
	f := s.readUntil(conn, func(f Frame) bool { return len(f.Buffers) > 0 })
	require.Len(f.Buffers, 9)
	require.Contains(f.Buffers, "RUF")
	require.NotContains(f.Buffers, "LUF")

	e := s.settle()
	require.Equal("RDF", e.Face(rubik.LayerU)[8])
}

func (s *ServerSuite) TestUnknownTokensAreReported() {
	conn := s.dial()
	s.send(conn, Command{Type: CmdMove, Notation: "R Q"})
	f := s.readUntil(conn, func(f Frame) bool { return f.Error != "" })
	s.Contains(f.Error, "Q")
}

func (s *ServerSuite) TestUnknownCommand() {
	conn := s.dial()
	s.send(conn, Command{Type: "spin"})
	f := s.readUntil(conn, func(f Frame) bool { return f.Type == errorType })
	s.Contains(f.Error, "spin")
}

func (s *ServerSuite) TestScrambleThenSolve() {
	require := require.New(s.T())
	conn := s.dial()

	s.send(conn, Command{Type: CmdScramble, N: 8})
	f := s.readUntil(conn, func(f Frame) bool { return f.Scramble != nil })
	require.Len(f.Scramble, 8)
	s.settle()

	s.send(conn, Command{Type: CmdSolve})
	f = s.readUntil(conn, func(f Frame) bool { return f.Solution != nil || f.Error != "" })
	require.Empty(f.Error)
	require.NotEmpty(f.Solution)
	require.True(s.settle().IsSolved())
}

func (s *ServerSuite) TestSolveWhileTurningIsRefused() {
	conn := s.dial()
	s.srv.Do(func(e *rubik.Engine) {
		e.Enqueue(rubik.R, rubik.U)
	})
	s.send(conn, Command{Type: CmdSolve})

	timeout := time.After(2 * time.Second)
	for {
		select {
		case f, ok := <-conn.frames:
			s.Require().True(ok, "stream closed")
			if f.Error != "" {
				s.Contains(f.Error, ErrBusy.Error())
				return
			}
		case <-timeout:
			s.FailNow("no error frame")
		}
	}
}

// gatedSolver undoes the scramble but waits for release before answering.
type gatedSolver struct {
	started chan struct{}
	release chan struct{}
}

func (g *gatedSolver) Name() string { return "gated" }

func (g *gatedSolver) Solve(ctx context.Context, scramble string) ([]string, error) {
	close(g.started)
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return solver.Inverse{}.Solve(ctx, scramble)
}

func (s *ServerSuite) TestMoveDuringSolveDropsSolution() {
	require := require.New(s.T())
	gate := &gatedSolver{started: make(chan struct{}), release: make(chan struct{})}
	srv := New("", []Option{WithSolver(gate)}, rubik.WithAnimationSpeed(1e6))
	s.srv = srv
	s.http.Close()
	s.http = httptest.NewServer(srv.Router())

	conn := s.dial()
	srv.Do(func(e *rubik.Engine) {
		require.NoError(e.Apply(rubik.F))
	})

	s.send(conn, Command{Type: CmdSolve})
	select {
	case <-gate.started:
	case <-time.After(2 * time.Second):
		s.FailNow("solver not called")
	}

	srv.Do(func(e *rubik.Engine) {
		require.NoError(e.Enqueue(rubik.U))
	})
	close(gate.release)

	f := s.readUntil(conn, func(f Frame) bool { return f.Error != "" || f.Solution != nil })
	require.Contains(f.Error, rubik.ErrStale.Error())
	require.Nil(f.Solution)
	require.Equal([]rubik.Move{rubik.F, rubik.U}, s.settle().History())
}

func (s *ServerSuite) TestReset() {
	conn := s.dial()
	s.srv.Do(func(e *rubik.Engine) {
		s.Require().NoError(e.Apply(rubik.F, rubik.V))
	})
	s.readUntil(conn, func(f Frame) bool { return !f.Solved })

	s.send(conn, Command{Type: CmdReset})
	s.readUntil(conn, func(f Frame) bool { return f.Solved && len(f.Buffers) == 26 })
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}
