// Package ica drives the per-record ICA recalculation fan-out. The backend
// only exposes a single-record recalculation endpoint, so "recalculer tout"
// is a bounded burst of independent calls whose partial failures are
// reported per record instead of aborting the batch.
package ica

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// RecalcFunc recalculates one leave-history record on the backend.
type RecalcFunc func(ctx context.Context, recordID int64) error

type Failure struct {
	RecordID int64
	Err      error
}

type Result struct {
	Total     int
	Succeeded int
	Failures  []Failure
}

func (r Result) Failed() int {
	return len(r.Failures)
}

// RecalculateAll fans out one recalculation per record, at most concurrency
// at a time, and waits for the whole batch. Individual errors are collected;
// the batch itself only fails when the context is cancelled before all
// records were attempted.
func RecalculateAll(ctx context.Context, recordIDs []int64, concurrency int, recalc RecalcFunc) (Result, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		mu       sync.Mutex
		failures []Failure
	)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	for _, id := range recordIDs {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := recalc(ctx, id); err != nil {
				mu.Lock()
				failures = append(failures, Failure{RecordID: id, Err: err})
				mu.Unlock()
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	sort.Slice(failures, func(i, j int) bool { return failures[i].RecordID < failures[j].RecordID })
	return Result{
		Total:     len(recordIDs),
		Succeeded: len(recordIDs) - len(failures),
		Failures:  failures,
	}, nil
}
