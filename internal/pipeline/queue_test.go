package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestQueue_SequentialByDefault(t *testing.T) {
	q := NewQueue(0)
	if q.Concurrency() != 1 {
		t.Fatalf("Expected concurrency 1, got %d", q.Concurrency())
	}

	var (
		inFlight atomic.Int32
		maxSeen  atomic.Int32
		mu       sync.Mutex
		order    []int
	)
	err := q.Run(context.Background(), 5, func(ctx context.Context, i int) {
		n := inFlight.Add(1)
		if n > maxSeen.Load() {
			maxSeen.Store(n)
		}
		time.Sleep(2 * time.Millisecond)
		mu.Lock()
		order = append(order, i)
		mu.Unlock()
		inFlight.Add(-1)
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if maxSeen.Load() != 1 {
		t.Errorf("Expected at most one task in flight, saw %d", maxSeen.Load())
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("Expected tasks to run in order, got %v", order)
		}
	}
}

func TestQueue_BoundedConcurrency(t *testing.T) {
	q := NewQueue(3)

	var inFlight, maxSeen atomic.Int32
	var mu sync.Mutex
	err := q.Run(context.Background(), 12, func(ctx context.Context, i int) {
		n := inFlight.Add(1)
		mu.Lock()
		if n > maxSeen.Load() {
			maxSeen.Store(n)
		}
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if maxSeen.Load() > 3 {
		t.Errorf("Expected at most 3 tasks in flight, saw %d", maxSeen.Load())
	}
}

func TestQueue_CancelledSkipsRemaining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var ran atomic.Int32
	err := NewQueue(1).Run(ctx, 10, func(ctx context.Context, i int) {
		ran.Add(1)
		if i == 1 {
			cancel()
		}
	})
	if err == nil {
		t.Fatal("Expected context error")
	}
	if ran.Load() != 2 {
		t.Errorf("Expected 2 tasks to run before cancellation, got %d", ran.Load())
	}
}

func TestQueue_Empty(t *testing.T) {
	called := false
	if err := NewQueue(1).Run(context.Background(), 0, func(context.Context, int) { called = true }); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if called {
		t.Error("Expected no task to run")
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		current, total, want int
	}{
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 66},
		{3, 3, 100},
		{1, 0, 0},
		{7, 8, 87},
	}
	for _, tt := range tests {
		if got := Percent(tt.current, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.current, tt.total, got, tt.want)
		}
	}
}
