// Package gateway hands persistence and score writes to background
// workers so game logic never waits on storage.
package gateway

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/ericogr/giera/internal/constants"
	"github.com/ericogr/giera/internal/logging"

	"golang.org/x/sync/errgroup"
)

const defaultTaskTimeout = 10 * time.Second

// Task is one fire-and-forget write. Run errors are logged, never returned
// to the submitter.
type Task struct {
	Name   string
	Fields logging.Fields
	Run    func(ctx context.Context) error
}

// Dispatcher runs tasks on a fixed set of workers. Tasks submitted with
// the same key always land on the same worker, so writes for one owner
// apply in submission order.
type Dispatcher struct {
	queues      []chan Task
	taskTimeout time.Duration

	mu      sync.RWMutex
	closed  bool
	started bool
	ctx     context.Context
	group   *errgroup.Group
}

// NewDispatcher creates a dispatcher with workers goroutines, each with a
// buffer of queueSize pending tasks.
func NewDispatcher(workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	qs := make([]chan Task, workers)
	for i := range qs {
		qs[i] = make(chan Task, queueSize)
	}
	return &Dispatcher{queues: qs, taskTimeout: defaultTaskTimeout}
}

// Start launches the workers. Tasks run with a context derived from ctx.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true
	d.group, d.ctx = errgroup.WithContext(ctx)
	for i := range d.queues {
		q := d.queues[i]
		d.group.Go(func() error {
			for t := range q {
				d.run(t)
			}
			return nil
		})
	}
	logging.Info("dispatcher started", logging.Fields{constants.LogFieldWorkers: len(d.queues), constants.LogFieldQueueLen: cap(d.queues[0])})
}

func (d *Dispatcher) run(t Task) {
	ctx, cancel := context.WithTimeout(d.ctx, d.taskTimeout)
	defer cancel()
	if err := t.Run(ctx); err != nil {
		fields := logging.Fields{constants.LogFieldTask: t.Name}
		for k, v := range t.Fields {
			fields[k] = v
		}
		logging.Error("background task failed", err, fields)
	}
}

// Submit enqueues t without blocking. It returns false when the dispatcher
// is closed or the worker's queue is full; the task is then dropped and
// logged.
func (d *Dispatcher) Submit(key string, t Task) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		logging.Warn("dispatcher closed; task dropped", logging.Fields{constants.LogFieldTask: t.Name})
		return false
	}
	select {
	case d.queues[d.shard(key)] <- t:
		return true
	default:
		logging.Warn("dispatcher queue full; task dropped", logging.Fields{constants.LogFieldTask: t.Name})
		return false
	}
}

func (d *Dispatcher) shard(key string) int {
	if len(d.queues) == 1 {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.queues)))
}

// Close stops accepting tasks, lets the workers drain what is queued and
// waits for them.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	for _, q := range d.queues {
		close(q)
	}
	started := d.started
	d.mu.Unlock()
	if !started {
		return nil
	}
	return d.group.Wait()
}
