/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Countdown calls a function once per interval until stopped.
type Countdown struct {
	ticker clockwork.Ticker
	stop   chan struct{}
	once   sync.Once
}

func startCountdown(clock clockwork.Clock, interval time.Duration, fn func(*Countdown)) *Countdown {
	c := &Countdown{
		ticker: clock.NewTicker(interval),
		stop:   make(chan struct{}),
	}

	go c.run(fn)

	return c
}

func (c *Countdown) run(fn func(*Countdown)) {
	for {
		select {
		case <-c.stop:
			return
		case <-c.ticker.Chan():
			select {
			case <-c.stop:
				return
			default:
			}

			fn(c)
		}
	}
}

// Stop cancels the countdown. It is safe to call more than once, on a nil
// Countdown, and from inside fn.
func (c *Countdown) Stop() {
	if c == nil {
		return
	}

	c.once.Do(func() {
		c.ticker.Stop()
		close(c.stop)
	})
}

// Stopped reports whether Stop has been called.
func (c *Countdown) Stopped() bool {
	if c == nil {
		return true
	}

	select {
	case <-c.stop:
		return true
	default:
		return false
	}
}
