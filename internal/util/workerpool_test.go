package util

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	var count int64
	pool := NewWorkerPool(3)
	err := pool.Run(context.Background(), 20, func(ctx context.Context, i int) error {
		atomic.AddInt64(&count, 1)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 20 {
		t.Errorf("expected 20 jobs run, got %d", count)
	}
}

func TestWorkerPoolPropagatesFirstError(t *testing.T) {
	sentinel := errors.New("boom")
	pool := NewWorkerPool(2)
	err := pool.Run(context.Background(), 5, func(ctx context.Context, i int) error {
		if i == 2 {
			return sentinel
		}
		return nil
	})
	if err != sentinel {
		t.Errorf("expected sentinel error, got %v", err)
	}
}

func TestWorkerPoolZeroCountIsNoOp(t *testing.T) {
	pool := NewWorkerPool(4)
	if err := pool.Run(context.Background(), 0, func(ctx context.Context, i int) error {
		t.Fatal("should not be called")
		return nil
	}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
