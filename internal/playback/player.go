// Package playback is the external clock collaborator: it periodically
// reports an advancing playhead position. The player never touches the
// timeline itself; the callback owns all writes to CurrentTime.
package playback

import (
	"context"
	"time"
)

// DefaultInterval is the tick cadence used when none is configured.
const DefaultInterval = 50 * time.Millisecond

// Player drives a playhead from a start position to an end position in real
// time.
type Player struct {
	Interval time.Duration
}

// NewPlayer creates a player with the default tick cadence.
func NewPlayer() *Player {
	return &Player{Interval: DefaultInterval}
}

// Run ticks from the from position until the until position is reached,
// calling tick with the current playhead each time. The final tick is clamped
// exactly to until. Run blocks; cancel the context to stop early.
func (p *Player) Run(ctx context.Context, from, until float64, tick func(now float64)) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	start := time.Now()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			now := from + time.Since(start).Seconds()
			if now >= until {
				tick(until)
				return nil
			}
			tick(now)
		}
	}
}
