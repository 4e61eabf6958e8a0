package loop

import (
	"context"
	"sync"
	"time"
)

// TickerDriver is the headless frame source: a ticker at the display refresh
// rate. Run must be called on the goroutine that owns the simulation; every
// frame callback executes there.
type TickerDriver struct {
	interval time.Duration

	mu      sync.Mutex
	pending func(time.Time)
}

func NewTickerDriver(refreshRate int) *TickerDriver {
	if refreshRate <= 0 {
		refreshRate = DefaultFrameRate
	}
	return &TickerDriver{interval: time.Second / time.Duration(refreshRate)}
}

func (d *TickerDriver) Interval() time.Duration { return d.interval }

func (d *TickerDriver) RequestFrame(fn func(time.Time)) {
	d.mu.Lock()
	d.pending = fn
	d.mu.Unlock()
}

func (d *TickerDriver) CancelFrame() {
	d.mu.Lock()
	d.pending = nil
	d.mu.Unlock()
}

// Run delivers pending frame requests until ctx is done.
func (d *TickerDriver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-ticker.C:
			d.mu.Lock()
			fn := d.pending
			d.pending = nil
			d.mu.Unlock()
			if fn != nil {
				fn(t)
			}
		}
	}
}
