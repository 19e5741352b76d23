package main

import (
	"context"
	"time"

	"github.com/ericogr/giera/internal/constants"
	"github.com/ericogr/giera/internal/logging"
)

type idleSweeper interface {
	SweepIdle(idle time.Duration) int
}

// startRunSweeper periodically forgets runs nobody has touched for idle.
// Abandoned runs report nothing; the player's gold is already persisted.
func startRunSweeper(ctx context.Context, s idleSweeper, every, idle time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.SweepIdle(idle); n > 0 {
					logging.Info("idle runs dropped", logging.Fields{constants.LogFieldSwept: n})
				}
			}
		}
	}()
}
