package anim

import (
	"time"

	"go.uber.org/zap"
)

// Defaults for the scheduler.
const (
	DefaultSpeed    float32 = 360 // degrees per second
	DefaultFrameCap         = 16 * time.Millisecond
	Epsilon         float32 = 1e-4
)

// Option configures a Scheduler.
type Option func(*config)

type config struct {
	speed    float32
	frameCap time.Duration
	logger   *zap.Logger
	clock    func() time.Time
}

func defaultConfig() *config {
	return &config{
		speed:    DefaultSpeed,
		frameCap: DefaultFrameCap,
		logger:   zap.NewNop(),
		clock:    time.Now,
	}
}

// WithSpeed sets the rotation speed in degrees per second.
// Non-positive values are ignored.
func WithSpeed(degPerSec float32) Option {
	return func(c *config) {
		if degPerSec > 0 {
			c.speed = degPerSec
		}
	}
}

// WithFrameCap sets the largest time step a single tick may advance.
func WithFrameCap(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.frameCap = d
		}
	}
}

// WithLogger sets the logger used for commits and failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the time source used when a move starts outside of a tick.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.clock = now
		}
	}
}
