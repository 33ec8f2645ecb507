// Package acquire runs the serial acquisition loop: open the device, wait for
// it to settle, then poll for lines and feed them through the parser into the
// rolling window and the renderer, one line at a time.
package acquire

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/itohio/gridscope/pkg/device"
	"github.com/itohio/gridscope/pkg/telemetry"
	"github.com/itohio/gridscope/pkg/window"
)

const (
	// DefaultPollInterval is the idle sleep when no bytes are waiting.
	DefaultPollInterval = 100 * time.Millisecond
	// DefaultSettleDelay gives the board time to reset after the port opens.
	DefaultSettleDelay = 2 * time.Second
)

// State is the acquisition loop lifecycle state.
type State int

const (
	Disconnected State = iota
	Connected
	Polling
	Closing
	Closed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	case Polling:
		return "polling"
	case Closing:
		return "closing"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Renderer redraws the plots from the window contents.
type Renderer interface {
	Render(w *window.Window)
}

// Options configures loop timing.
type Options struct {
	PollInterval time.Duration
	SettleDelay  time.Duration
	// Start is the origin of the elapsed-seconds axis, usually the process
	// start. Zero means the time New is called.
	Start time.Time
}

// Loop owns the device and the window for the lifetime of a run.
type Loop struct {
	dev    device.Device
	window *window.Window
	log    zerolog.Logger

	pollInterval time.Duration
	settleDelay  time.Duration

	start time.Time
	state State

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a loop reading from dev into w.
func New(dev device.Device, w *window.Window, opts Options, log zerolog.Logger) *Loop {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.SettleDelay < 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.Start.IsZero() {
		opts.Start = time.Now()
	}

	return &Loop{
		dev:          dev,
		window:       w,
		log:          log,
		pollInterval: opts.PollInterval,
		settleDelay:  opts.SettleDelay,
		start:        opts.Start,
		state:        Disconnected,
		now:          time.Now,
		sleep:        sleepContext,
	}
}

// State returns the current lifecycle state.
func (l *Loop) State() State {
	return l.state
}

// Window returns the rolling window fed by the loop.
func (l *Loop) Window() *window.Window {
	return l.window
}

// Connect opens the device and waits for it to settle.
// On failure the loop is closed and a *ConnectionError is returned.
// An interrupt during the settle delay closes the device and returns ErrInterrupted.
func (l *Loop) Connect(ctx context.Context) error {
	if l.state != Disconnected {
		return errors.New("connect: loop is " + l.state.String())
	}

	if err := l.dev.Open(); err != nil {
		l.shutdown()
		return &ConnectionError{Port: l.dev.Name(), Err: err}
	}
	l.state = Connected
	l.log.Info().Str("port", l.dev.Name()).Msg("connected")

	if l.settleDelay > 0 {
		l.log.Debug().Dur("delay", l.settleDelay).Msg("waiting for device to settle")
		if err := l.sleep(ctx, l.settleDelay); err != nil {
			l.log.Info().Msg("stopped by user")
			l.shutdown()
			return ErrInterrupted
		}
	}

	return nil
}

// Run polls the device until ctx is cancelled or the device fails.
// It returns nil on a user stop and *IOError on a device failure.
// The device is closed on every return path.
func (l *Loop) Run(ctx context.Context, r Renderer) error {
	if l.state != Connected {
		return ErrNotConnected
	}
	defer l.shutdown()

	l.state = Polling
	for {
		if ctx.Err() != nil {
			l.log.Info().Msg("stopped by user")
			return nil
		}

		n, err := l.dev.Waiting()
		if err != nil {
			return l.fail(err)
		}
		if n == 0 {
			if err := l.sleep(ctx, l.pollInterval); err != nil {
				l.log.Info().Msg("stopped by user")
				return nil
			}
			continue
		}

		raw, err := l.dev.ReadLine()
		if err != nil {
			return l.fail(err)
		}
		l.process(raw, r)
	}
}

// process handles a single line: parse, store, render.
func (l *Loop) process(raw []byte, r Renderer) {
	line := telemetry.Decode(raw)
	l.log.Info().Str("line", line).Msg("received")

	reading, err := telemetry.Parse(line)
	if err != nil {
		// ParseError carries the raw line and the cause
		l.log.Warn().Err(err).Msg("error parsing data")
		return
	}

	l.window.Push(reading, l.now().Sub(l.start).Seconds())
	r.Render(l.window)
}

func (l *Loop) fail(err error) error {
	l.log.Error().Err(err).Str("port", l.dev.Name()).Msg("serial read failed")
	return &IOError{Port: l.dev.Name(), Err: err}
}

// shutdown moves through Closing to Closed, closing the device if it is open.
func (l *Loop) shutdown() {
	l.state = Closing
	if l.dev.IsOpen() {
		if err := l.dev.Close(); err != nil {
			l.log.Error().Err(err).Msg("error closing serial port")
		} else {
			l.log.Info().Msg("serial port closed")
		}
	}
	l.state = Closed
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
