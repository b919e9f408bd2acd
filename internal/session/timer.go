package session

import (
	"sync"
	"time"
)

// Countdown is a cancellable once-per-interval countdown. It fires onExpire
// exactly once when the remaining time reaches zero, no matter how the ticker
// and Stop race; Stop after expiry and repeated Stop are both no-ops.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	interval  time.Duration
	onTick    func(remaining int)
	onExpire  func()
	done      chan struct{}
	stopped   bool
	expired   bool
}

// NewCountdown creates a countdown over the given number of ticks. Callbacks
// may be nil. The countdown does not run until Start is called.
func NewCountdown(ticks int, interval time.Duration, onTick func(int), onExpire func()) *Countdown {
	return &Countdown{
		remaining: ticks,
		interval:  interval,
		onTick:    onTick,
		onExpire:  onExpire,
		done:      make(chan struct{}),
	}
}

// Start launches the countdown loop. A countdown that starts at zero expires
// on its first tick.
func (c *Countdown) Start() {
	go c.run()
}

func (c *Countdown) run() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if c.tick() {
				return
			}
		}
	}
}

// tick decrements and reports whether the countdown is finished.
func (c *Countdown) tick() bool {
	c.mu.Lock()
	if c.stopped || c.expired {
		c.mu.Unlock()
		return true
	}
	if c.remaining > 0 {
		c.remaining--
	}
	remaining := c.remaining
	expired := remaining <= 0
	if expired {
		c.expired = true
	}
	onTick := c.onTick
	onExpire := c.onExpire
	c.mu.Unlock()

	if onTick != nil {
		onTick(remaining)
	}
	if expired && onExpire != nil {
		onExpire()
	}
	return expired
}

// Stop cancels the countdown. It is safe to call from any goroutine, any
// number of times, including after expiry.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	close(c.done)
}

// Remaining returns the ticks left on the clock.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Delay is a single cancellable deferred call, used for presentation timing
// such as the flashcard flip-settle. Cancelling after the call has run is a
// no-op.
type Delay struct {
	timer *time.Timer
}

// After schedules fn once d has elapsed. A non-positive d runs fn
// synchronously and returns an already-spent handle, which keeps timing out
// of the way in tests.
func After(d time.Duration, fn func()) *Delay {
	if d <= 0 {
		fn()
		return &Delay{}
	}
	return &Delay{timer: time.AfterFunc(d, fn)}
}

// Cancel discards the pending call if it has not run yet.
func (d *Delay) Cancel() {
	if d.timer != nil {
		d.timer.Stop()
	}
}
