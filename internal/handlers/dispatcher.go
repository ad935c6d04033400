package handlers

import (
	"context"
	"sync"
)

// Dispatcher runs jobs on a fixed set of workers. Jobs of one chat always land
// on the same worker, so a user's updates are handled one at a time and in order.
type Dispatcher struct {
	queues []chan func()
	wg     sync.WaitGroup
}

func NewDispatcher(workers, buffer int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	d := &Dispatcher{queues: make([]chan func(), workers)}
	for i := range d.queues {
		d.queues[i] = make(chan func(), buffer)
	}
	return d
}

// Start launches the workers. They drain their queues and exit after Stop.
func (d *Dispatcher) Start() {
	for _, q := range d.queues {
		d.wg.Add(1)
		go func(q chan func()) {
			defer d.wg.Done()
			for job := range q {
				job()
			}
		}(q)
	}
}

// Submit queues job for chatID, blocking while that worker's queue is full.
func (d *Dispatcher) Submit(ctx context.Context, chatID int64, job func()) error {
	q := d.queues[shard(chatID, len(d.queues))]
	select {
	case q <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop waits for queued jobs to finish. Submit must not be called afterwards.
func (d *Dispatcher) Stop() {
	for _, q := range d.queues {
		close(q)
	}
	d.wg.Wait()
}

func shard(chatID int64, n int) int {
	if chatID < 0 {
		chatID = -chatID
	}
	return int(chatID % int64(n))
}
