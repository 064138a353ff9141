package stream

import (
	"context"
	"sync"

	"starsearch/pkg/stream/queue"
)

// ============================================================================
// RUNTIME
// ============================================================================

// asyncStream represents a stream that should run asynchronously from its parent.
type asyncStream[T any] struct {
	baseStream[T]
	parent   Stream[T]
	capacity int
}

// --- Map Execution ---

func (s *mappedStream[In, Out]) run(ctx context.Context, next Receiver[Out]) error {
	// Run the PARENT with a receiver that maps and calls NEXT.
	parentExec, err := asExecutable(s.parent)
	if err != nil {
		return err
	}

	pool := newVecPool[Out](DefaultVectorSize)

	return parentExec.run(ctx, func(inVec *Vector[In]) error {
		outVec := pool.Get()
		if cap(outVec.Data) < len(inVec.Data) {
			outVec.Data = make([]Out, 0, len(inVec.Data))
		}
		for _, item := range inVec.Data {
			outVec.Data = append(outVec.Data, s.mapper(item))
		}

		// Release input vector as we are done with it
		inVec.Release()
		return next(outVec)
	})
}

// --- Filter Execution ---

func (s *filteredStream[T]) run(ctx context.Context, next Receiver[T]) error {
	parentExec, err := asExecutable(s.parent)
	if err != nil {
		return err
	}

	pool := newVecPool[T](DefaultVectorSize)

	return parentExec.run(ctx, func(inVec *Vector[T]) error {
		outVec := pool.Get()
		for _, item := range inVec.Data {
			if s.predicate(item) {
				outVec.Data = append(outVec.Data, item)
			}
		}
		inVec.Release()

		if len(outVec.Data) == 0 {
			outVec.Release()
			return nil
		}
		return next(outVec)
	})
}

// --- Async Execution ---

func (s *asyncStream[T]) run(ctx context.Context, next Receiver[T]) error {
	parentExec, err := asExecutable(s.parent)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 1. Create Queue
	q := queue.NewRingBuffer[*Vector[T]](s.capacity)

	// 2. Spawn Producer (Parent -> Queue)
	var wg sync.WaitGroup
	var parentErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer q.Close()

		// Ownership of each vector moves into the queue; the consumer releases it.
		parentErr = parentExec.run(ctx, func(vec *Vector[T]) error {
			if err := q.OfferWait(ctx, vec); err != nil {
				vec.Release()
				return err
			}
			return nil
		})
	}()

	// 3. Consume Queue -> Next
	var nextErr error
	for {
		vec, ok := q.PollWait(ctx)
		if !ok {
			break
		}
		if nextErr = next(vec); nextErr != nil {
			cancel()
			break
		}
	}

	wg.Wait()
	if nextErr != nil {
		// Release what the producer left behind.
		for {
			vec, ok := q.Poll()
			if !ok {
				break
			}
			vec.Release()
		}
		return nextErr
	}
	if parentErr != nil {
		return parentErr
	}
	return ctx.Err()
}

// ============================================================================
// SINKS
// ============================================================================

// CollectorSink collects all elements into a slice.
type CollectorSink[T any] struct {
	results []T
	mu      sync.Mutex
}

// NewCollectorSink creates a sink that collects all elements into a slice.
// Useful for testing.
func NewCollectorSink[T any]() Sink[T] {
	return &CollectorSink[T]{}
}

// Consume runs input and appends every element to the collected results.
func (s *CollectorSink[T]) Consume(ctx context.Context, input Stream[T]) error {
	exec, err := asExecutable(input)
	if err != nil {
		return err
	}
	return exec.run(ctx, func(v *Vector[T]) error {
		s.collect(v)
		return nil
	})
}

func (s *CollectorSink[T]) collect(v *Vector[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, v.Data...)
	v.Release()
}

// Results returns a copy of the collected results.
func (s *CollectorSink[T]) Results() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]T, len(s.results))
	copy(res, s.results)
	return res
}

// DiscardSink discards all elements.
type DiscardSink[T any] struct{}

// NewDiscardSink creates a sink that drops every element. Useful for benchmarks.
func NewDiscardSink[T any]() Sink[T] {
	return &DiscardSink[T]{}
}

// Consume runs input, releasing each vector as it arrives.
func (s *DiscardSink[T]) Consume(ctx context.Context, input Stream[T]) error {
	exec, err := asExecutable(input)
	if err != nil {
		return err
	}
	return exec.run(ctx, func(v *Vector[T]) error {
		v.Release()
		return nil
	})
}
