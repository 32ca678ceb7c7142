package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// FormatTime renders remaining seconds for the timer display. The hours field is always 00.
func FormatTime(seconds int) string {
	return fmt.Sprintf("Time Remaining: 00:%02d:%02d", seconds/60, seconds%60)
}

// periodic is a cancellable repeating tick owned by a controller. Each tick
// calls fn with the handle itself so the callee can tell a stale tick from a
// current one.
type periodic struct {
	ticker   clockwork.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

func startPeriodic(ctx context.Context, clock clockwork.Clock, every time.Duration, fn func(*periodic)) *periodic {
	p := &periodic{
		ticker: clock.NewTicker(every),
		done:   make(chan struct{}),
	}

	go func() {
		for {
			select {
			case <-p.done:
				return
			case <-ctx.Done():
				p.stop()
				return
			case <-p.ticker.Chan():
				fn(p)
			}
		}
	}()

	return p
}

// stop halts the ticker and releases its goroutine. Safe to call more than once and on nil.
func (p *periodic) stop() {
	if p == nil {
		return
	}
	p.stopOnce.Do(func() {
		p.ticker.Stop()
		close(p.done)
	})
}
