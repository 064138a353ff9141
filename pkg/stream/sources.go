package stream

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ============================================================================
// SOURCE OPERATORS
// ============================================================================

type sourceStream[T any] struct {
	baseStream[T]
	generator func(context.Context, chan<- T) error
	batchSize int
}

type sliceStream[T any] struct {
	baseStream[T]
	items     []T
	batchSize int
}

type funcStream[T any] struct {
	baseStream[T]
	fn func(context.Context) (T, error)
}

type failedStream[T any] struct {
	baseStream[T]
	err error
}

// Source creates a Stream from a generator function.
// The generator runs in its own goroutine and pushes items into out. It must
// stop sending once ctx is done, and should return nil on success or an error
// to fail the stream. Items are forwarded as soon as they are available; a
// burst of ready items is coalesced into one vector of up to BatchSize items.
//
// Parameters:
//
//	gen: The generating function.
//	opts: Operator options (WithBatchSize).
//
// Returns:
//
//	Stream[T]: A new cold stream. Every run invokes gen again.
func Source[T any](gen func(ctx context.Context, out chan<- T) error, opts ...Option) Stream[T] {
	cfg := ApplyOptions(opts...)
	s := &sourceStream[T]{
		generator: gen,
		batchSize: cfg.BatchSize,
	}
	s.self = s
	return s
}

// FromSlice creates a stream that emits the items of the slice in order, then completes.
func FromSlice[T any](items []T, opts ...Option) Stream[T] {
	cfg := ApplyOptions(opts...)
	s := &sliceStream[T]{
		items:     items,
		batchSize: cfg.BatchSize,
	}
	s.self = s
	return s
}

// Just creates a stream that emits the given items in order, then completes.
func Just[T any](items ...T) Stream[T] {
	return FromSlice(items)
}

// Empty creates a stream that completes without emitting.
func Empty[T any]() Stream[T] {
	return FromSlice[T](nil)
}

// FromFunc creates a one-shot stream: each run calls fn once and emits its
// result, or fails with its error. This is the shape of a single request.
func FromFunc[T any](fn func(ctx context.Context) (T, error)) Stream[T] {
	s := &funcStream[T]{fn: fn}
	s.self = s
	return s
}

// Fail creates a stream that fails immediately with err.
func Fail[T any](err error) Stream[T] {
	s := &failedStream[T]{err: err}
	s.self = s
	return s
}

// --- Source Execution ---

func (s *sourceStream[T]) run(ctx context.Context, next Receiver[T]) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outCh := make(chan T, ChannelBuffer)

	// Use errgroup for structured concurrency.
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(outCh)
		return s.generator(gCtx, outCh)
	})

	// Vectorizer
	pool := newVecPool[T](s.batchSize)
	var nextErr error
	for item := range outCh {
		vec := pool.one(item)
		// Coalesce whatever is already buffered without waiting for more.
	fill:
		for len(vec.Data) < pool.size {
			select {
			case more, ok := <-outCh:
				if !ok {
					break fill
				}
				vec.Data = append(vec.Data, more)
			default:
				break fill
			}
		}
		if nextErr = next(vec); nextErr != nil {
			cancel()
			break
		}
	}
	if nextErr != nil {
		// Unblock the generator, then wait for it to return.
		for range outCh {
		}
		_ = g.Wait()
		return nextErr
	}
	return g.Wait()
}

// --- Slice Execution ---

func (s *sliceStream[T]) run(ctx context.Context, next Receiver[T]) error {
	pool := newVecPool[T](s.batchSize)
	for start := 0; start < len(s.items); start += pool.size {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+pool.size, len(s.items))
		vec := pool.Get()
		vec.Data = append(vec.Data, s.items[start:end]...)
		if err := next(vec); err != nil {
			return err
		}
	}
	return nil
}

// --- Func Execution ---

func (s *funcStream[T]) run(ctx context.Context, next Receiver[T]) error {
	v, err := s.fn(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return next(newVecPool[T](eventVectorSize).one(v))
}

// --- Fail Execution ---

func (s *failedStream[T]) run(ctx context.Context, next Receiver[T]) error {
	return s.err
}
