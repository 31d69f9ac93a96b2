// Package batch provides a bounded-concurrency fan-out combinator for
// processing a slice of independent items, preserving input order in
// the result. It is the ambient concurrency layer spec.md §5 keeps
// deliberately separate from the single-threaded compiler core:
// internal/compile calls into it only where items genuinely don't
// depend on each other (regex-membership compilation), never for the
// straight-line assignment walk, which is inherently sequential.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Processor transforms one item into one result.
type Processor[T any, R any] func(context.Context, T) (R, error)

// Batch runs a Processor over every item in a slice, either
// sequentially (ConcurrencyLimit <= 1, the default) or concurrently
// bounded by ConcurrencyLimit.
type Batch[T any, R any] struct {
	Processor Processor[T, R]

	// ConcurrencyLimit bounds how many items are in flight at once. A
	// value <= 1 runs sequentially.
	ConcurrencyLimit int

	// ContinueOnError runs every item regardless of earlier failures
	// and returns only the results that succeeded, dropping failures
	// silently from the slice (callers that need to know which items
	// failed should not set this). When false (the default), the first
	// error stops the batch and Run returns it.
	ContinueOnError bool
}

// New constructs a Batch with the given processor and the zero values
// for ConcurrencyLimit/ContinueOnError (sequential, stop-on-error);
// callers mutate the returned value's fields to configure it, mirroring
// the fluent With* setters this combinator is adapted from.
func New[T any, R any](processor Processor[T, R]) *Batch[T, R] {
	return &Batch[T, R]{Processor: processor}
}

// WithConcurrencyLimit sets the maximum number of items processed
// concurrently; 0 or 1 means sequential.
func (b *Batch[T, R]) WithConcurrencyLimit(limit int) *Batch[T, R] {
	b.ConcurrencyLimit = limit
	return b
}

// WithContinueOnError makes Run keep processing every item even after
// one fails, returning only the successes.
func (b *Batch[T, R]) WithContinueOnError() *Batch[T, R] {
	b.ContinueOnError = true
	return b
}

// Run processes every item in items and returns the results in the same
// order as the input.
func (b *Batch[T, R]) Run(ctx context.Context, items []T) ([]R, error) {
	if b.ConcurrencyLimit <= 1 {
		return b.runOne(ctx, items)
	}
	return b.runN(ctx, items)
}

func (b *Batch[T, R]) runOne(ctx context.Context, items []T) ([]R, error) {
	var results []R
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := b.Processor(ctx, item)
		if err == nil {
			results = append(results, res)
		} else if !b.ContinueOnError {
			return nil, err
		}
	}
	return results, nil
}

func (b *Batch[T, R]) runN(ctx context.Context, items []T) ([]R, error) {
	order := make([]*R, len(items))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(b.ConcurrencyLimit)

	for i, item := range items {
		i, item := i, item
		group.Go(func() error {
			res, err := b.Processor(groupCtx, item)
			if err == nil {
				order[i] = &res
			}
			if !b.ContinueOnError {
				return err
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	results := make([]R, 0, len(items))
	for _, r := range order {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results, nil
}
