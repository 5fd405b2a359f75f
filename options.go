package rubik

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	speed    float32
	frameCap time.Duration
	logger   *zap.Logger
	renderer Renderer
	rng      *rand.Rand
	clock    func() time.Time
}

func defaultConfig() *config {
	return &config{
		speed:    360,
		frameCap: 16 * time.Millisecond,
		logger:   zap.NewNop(),
		renderer: nopRenderer{},
		clock:    time.Now,
	}
}

// WithAnimationSpeed sets how fast a layer turns, in degrees per second.
// The default is 360, a quarter turn in 250ms.
func WithAnimationSpeed(degPerSec float32) Option {
	return func(c *config) {
		if degPerSec > 0 {
			c.speed = degPerSec
		}
	}
}

// WithFrameCap sets the largest time step one Update may advance a turn.
// A long frame is clamped to this so a turn cannot overshoot.
func WithFrameCap(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.frameCap = d
		}
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRenderer sets the receiver of per-cubie vertex buffers.
func WithRenderer(r Renderer) Option {
	return func(c *config) {
		if r != nil {
			c.renderer = r
		}
	}
}

// WithRand sets the random source used by Scramble.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		c.rng = r
	}
}

// WithClock sets the time source used when a move starts between updates.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.clock = now
		}
	}
}
