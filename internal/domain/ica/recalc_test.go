package ica

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestRecalculateAllSucceeds(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5}
	var calls atomic.Int64

	result, err := RecalculateAll(context.Background(), ids, 3, func(ctx context.Context, id int64) error {
		calls.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 5 {
		t.Fatalf("expected 5 calls, got %d", calls.Load())
	}
	if result.Total != 5 || result.Succeeded != 5 || result.Failed() != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestRecalculateAllReportsPartialFailure(t *testing.T) {
	ids := []int64{10, 11, 12, 13, 14, 15}
	boom := errors.New("recalcul impossible")

	result, err := RecalculateAll(context.Background(), ids, 2, func(ctx context.Context, id int64) error {
		if id%2 == 0 {
			return boom
		}
		return nil
	})
	if err != nil {
		t.Fatalf("batch must not fail atomically: %v", err)
	}
	if result.Total != 6 || result.Succeeded != 3 || result.Failed() != 3 {
		t.Fatalf("expected 3 successes and 3 failures, got %+v", result)
	}
	for _, failure := range result.Failures {
		if failure.RecordID%2 != 0 {
			t.Fatalf("record %d should have succeeded", failure.RecordID)
		}
		if !errors.Is(failure.Err, boom) {
			t.Fatalf("unexpected failure error: %v", failure.Err)
		}
	}
}

func TestRecalculateAllAllFail(t *testing.T) {
	ids := []int64{1, 2, 3}
	result, err := RecalculateAll(context.Background(), ids, 1, func(ctx context.Context, id int64) error {
		return errors.New("panne")
	})
	if err != nil {
		t.Fatalf("batch must not fail atomically: %v", err)
	}
	if result.Succeeded != 0 || result.Failed() != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestRecalculateAllHonoursConcurrencyLimit(t *testing.T) {
	ids := make([]int64, 20)
	for i := range ids {
		ids[i] = int64(i)
	}

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	barrier := make(chan struct{})
	go func() { close(barrier) }()

	_, err := RecalculateAll(context.Background(), ids, 4, func(ctx context.Context, id int64) error {
		mu.Lock()
		active++
		if active > maxSeen {
			maxSeen = active
		}
		mu.Unlock()
		<-barrier
		mu.Lock()
		active--
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if maxSeen > 4 {
		t.Fatalf("concurrency limit exceeded: %d", maxSeen)
	}
}

func TestRecalculateAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RecalculateAll(ctx, []int64{1, 2, 3}, 2, func(ctx context.Context, id int64) error {
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRecalculateAllEmpty(t *testing.T) {
	result, err := RecalculateAll(context.Background(), nil, 2, func(ctx context.Context, id int64) error {
		t.Fatal("must not be called")
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 0 || result.Succeeded != 0 || result.Failed() != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
