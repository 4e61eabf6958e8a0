package loop

import (
	"time"

	"go.uber.org/zap"
)

const (
	DefaultFrameRate    = 60
	DefaultMaxDeltaTime = 250 * time.Millisecond
)

// Config sets the simulation tick rate and the cap on how much wall time a
// single frame may contribute.
type Config struct {
	FrameRate    int
	MaxDeltaTime time.Duration
}

// Callback receives the fixed step and the cumulative simulation time, both
// in seconds.
type Callback func(delta, elapsed float64)

// Driver is the host's frame source. RequestFrame arranges for fn to be
// called once with the wall-clock time of the next displayed frame;
// CancelFrame drops a pending request.
type Driver interface {
	RequestFrame(fn func(now time.Time))
	CancelFrame()
}

type subscription struct {
	id uint64
	fn Callback
}

// Loop turns variable-rate frame callbacks into fixed-size simulation ticks
// using an accumulator. It is driven from a single goroutine.
type Loop struct {
	timeStep     time.Duration
	maxDeltaTime time.Duration

	accumulated time.Duration
	elapsed     time.Duration
	lastFrame   time.Time
	running     bool
	ticks       uint64

	subs   []subscription
	nextID uint64

	driver Driver
	now    func() time.Time
	log    *zap.Logger
}

type Option func(*Loop)

// WithClock replaces time.Now as the source for the start timestamp.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) { l.now = now }
}

// New builds a stopped loop. A nil driver means the host calls Frame itself.
func New(cfg Config, driver Driver, log *zap.Logger, opts ...Option) *Loop {
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = DefaultFrameRate
	}
	if cfg.MaxDeltaTime <= 0 {
		cfg.MaxDeltaTime = DefaultMaxDeltaTime
	}
	l := &Loop{
		timeStep:     time.Second / time.Duration(cfg.FrameRate),
		maxDeltaTime: cfg.MaxDeltaTime,
		driver:       driver,
		now:          time.Now,
		log:          log,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) TimeStep() time.Duration { return l.timeStep }
func (l *Loop) Running() bool           { return l.running }

// Elapsed is the cumulative simulation time in seconds.
func (l *Loop) Elapsed() float64 { return l.elapsed.Seconds() }

// Ticks is the number of fixed steps dispatched since construction.
func (l *Loop) Ticks() uint64 { return l.ticks }

// Start begins requesting frames. Starting a running loop does nothing.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.lastFrame = l.now()
	l.log.Info("game loop started",
		zap.Duration("time_step", l.timeStep),
		zap.Duration("max_delta", l.maxDeltaTime),
	)
	l.requestFrame()
}

// Stop cancels the pending frame. A tick already in progress runs to
// completion. Stopping a stopped loop does nothing.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	if l.driver != nil {
		l.driver.CancelFrame()
	}
	l.log.Info("game loop stopped",
		zap.Uint64("ticks", l.ticks),
		zap.Float64("elapsed", l.Elapsed()),
	)
}

// Subscribe registers fn and returns a func that removes exactly that
// subscription.
func (l *Loop) Subscribe(fn Callback) (unsubscribe func()) {
	l.nextID++
	id := l.nextID
	l.subs = append(l.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

// Frame is the per-frame entry point; now is the wall-clock time of the
// displayed frame.
func (l *Loop) Frame(now time.Time) {
	if !l.running {
		return
	}

	delta := now.Sub(l.lastFrame)
	l.lastFrame = now
	if delta < 0 {
		delta = 0
	}
	if delta > l.maxDeltaTime {
		l.log.Debug("frame delta clamped",
			zap.Duration("delta", delta),
			zap.Duration("max", l.maxDeltaTime),
		)
		delta = l.maxDeltaTime
	}

	l.accumulated += delta
	// Elapsed follows the clamped wall delta, not the dispatched steps.
	l.elapsed += delta

	step := l.timeStep.Seconds()
	for l.accumulated >= l.timeStep {
		elapsed := l.elapsed.Seconds()
		subs := l.subs
		for _, s := range subs {
			s.fn(step, elapsed)
		}
		l.accumulated -= l.timeStep
		l.ticks++
	}

	l.requestFrame()
}

func (l *Loop) requestFrame() {
	if l.running && l.driver != nil {
		l.driver.RequestFrame(l.Frame)
	}
}
