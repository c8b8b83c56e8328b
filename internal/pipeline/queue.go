// Package pipeline drives the fetch and download passes over a listing.
package pipeline

import (
	"context"
	"sync"
)

// Queue runs indexed tasks in submission order with a bounded number in flight.
// A concurrency of 1 makes the queue strictly sequential: a task starts only
// after the previous one returned.
type Queue struct {
	concurrency int
}

// NewQueue creates a queue. Values below 1 are treated as 1.
func NewQueue(concurrency int) *Queue {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Queue{concurrency: concurrency}
}

// Concurrency returns the maximum number of tasks in flight
func (q *Queue) Concurrency() int {
	return q.concurrency
}

// Run starts task(ctx, i) for i in [0, n) in increasing order and waits for all
// started tasks. Tasks that have not started when ctx is cancelled are skipped
// and ctx.Err() is returned.
func (q *Queue) Run(ctx context.Context, n int, task func(ctx context.Context, i int)) error {
	slots := make(chan struct{}, q.concurrency)
	var wg sync.WaitGroup

	var err error
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case slots <- struct{}{}:
		}
		if err != nil {
			break
		}
		// A slot may win the race against an already cancelled context
		if err = ctx.Err(); err != nil {
			<-slots
			break
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-slots }()
			task(ctx, i)
		}(i)
	}

	wg.Wait()
	return err
}
