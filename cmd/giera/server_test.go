package main

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingSweeper struct {
	calls atomic.Int32
	idle  atomic.Int64
}

func (s *countingSweeper) SweepIdle(idle time.Duration) int {
	s.calls.Add(1)
	s.idle.Store(int64(idle))
	return 1
}

func TestRunSweeper_TicksUntilCancelled(t *testing.T) {
	s := &countingSweeper{}
	ctx, cancel := context.WithCancel(context.Background())
	startRunSweeper(ctx, s, 5*time.Millisecond, time.Hour)

	assert.Eventually(t, func() bool { return s.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(time.Hour), s.idle.Load())

	cancel()
	time.Sleep(20 * time.Millisecond)
	after := s.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, s.calls.Load())
}
