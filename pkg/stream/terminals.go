package stream

import (
	"context"
	"errors"
)

// errStop ends a run early from inside a receiver once a terminal has what it needs.
var errStop = errors.New("stream: stop")

// ============================================================================
// TERMINALS (SINKS / FOLDS)
// ============================================================================

// Reduce consumes the entire stream and folds the results into a single accumulator using the provided function.
// It blocks until the stream is exhausted, the context is cancelled, or an error occurs.
//
// Parameters:
//
//	ctx: The context for cancellation.
//	s: The stream to reduce.
//	init: The initial value of the accumulator.
//	fn: The reduction function that combines the accumulator and the next element.
//
// Returns:
//
//	Acc: The accumulated value (partial if the stream failed).
//	error: An error if the stream fails or is cancelled.
func Reduce[T, Acc any](
	ctx context.Context,
	s Stream[T],
	init Acc,
	fn func(Acc, T) Acc,
) (Acc, error) {
	acc := init
	exec, err := asExecutable(s)
	if err != nil {
		return acc, err
	}

	err = exec.run(ctx, func(batch *Vector[T]) error {
		defer batch.Release()
		for _, item := range batch.Data {
			acc = fn(acc, item)
		}
		return nil
	})
	return acc, err
}

// Collect runs s to completion and returns all its elements in order.
func Collect[T any](ctx context.Context, s Stream[T]) ([]T, error) {
	return Reduce(ctx, s, []T(nil), func(acc []T, item T) []T {
		return append(acc, item)
	})
}

// First runs s until its first element and returns it. ok is false if s
// completed without emitting.
func First[T any](ctx context.Context, s Stream[T]) (first T, ok bool, err error) {
	exec, err := asExecutable(s)
	if err != nil {
		return first, false, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	err = exec.run(ctx, func(batch *Vector[T]) error {
		defer batch.Release()
		if len(batch.Data) == 0 {
			return nil
		}
		first, ok = batch.Data[0], true
		return errStop
	})
	if errors.Is(err, errStop) {
		err = nil
	}
	return first, ok, err
}
