package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 1 * time.Second
	// Maximum message size allowed from peer.
	maxMessageSize = 8192
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Time to wait before force close on connection.
	closeGracePeriod = time.Second
)

// client is one websocket connection. Frames for it accumulate in pending
// until the writer picks them up, so a slow client skips intermediate
// geometry but never loses a cubie update.
type client struct {
	ws  *websocket.Conn
	log *zap.Logger

	mu      sync.Mutex
	pending *Frame
	notify  chan struct{}
}

func newClient(ws *websocket.Conn, log *zap.Logger) *client {
	return &client{
		ws:     ws,
		log:    log,
		notify: make(chan struct{}, 1),
	}
}

// queue merges f into the client's pending frame.
func (c *client) queue(f Frame) {
	c.mu.Lock()
	if c.pending == nil {
		c.pending = &Frame{Type: f.Type, Buffers: make(map[string][]float32)}
	}
	p := c.pending
	for name, buf := range f.Buffers {
		p.Buffers[name] = buf
	}
	p.Phase, p.Pending, p.Solved = f.Phase, f.Pending, f.Solved
	if f.Scramble != nil {
		p.Scramble = f.Scramble
	}
	if f.Solution != nil {
		p.Solution = f.Solution
	}
	if f.Error != "" {
		p.Type, p.Error = errorType, f.Error
	}
	c.mu.Unlock()

	select {
	case c.notify <- struct{}{}:
	default:
	}
}

func (c *client) take() *Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.pending
	c.pending = nil
	return f
}

// run serves the connection until the peer leaves or ctx ends. Commands
// read from the socket are passed to handle.
func (c *client) run(ctx context.Context, handle func(context.Context, Command)) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return c.readMessages(groupCtx, handle)
	})
	group.Go(func() error {
		return c.pingPong(groupCtx)
	})
	group.Go(func() error {
		return c.publish(groupCtx)
	})

	err := group.Wait()
	if isClosure(err) {
		return nil
	}
	return err
}

func (c *client) readMessages(ctx context.Context, handle func(context.Context, Command)) error {
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var cmd Command
		if err := c.ws.ReadJSON(&cmd); err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return err
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}
		handle(ctx, cmd)
	}
}

func (c *client) pingPong(ctx context.Context) error {
	pinger := channerics.NewTicker(ctx.Done(), pingPeriod)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pinger:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}
		}
	}
}

func (c *client) publish(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.notify:
			f := c.take()
			if f == nil {
				continue
			}
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("failed to set deadline: %w", err)
			}
			if err := c.ws.WriteJSON(f); err != nil {
				if isError(err) {
					return fmt.Errorf("publish failed: %w", err)
				}
				return err
			}
		}
	}
}

func (c *client) close() {
	_ = c.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	time.AfterFunc(closeGracePeriod, func() { c.ws.Close() })
}

func isError(err error) bool {
	return err != nil && websocket.IsUnexpectedCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}

func isClosure(err error) bool {
	return err != nil && websocket.IsCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived)
}
