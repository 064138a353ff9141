package stream

import (
	"context"
	"time"
)

// ============================================================================
// TIME-BASED OPERATORS
// ============================================================================

// Debounce creates a Flow that emits an element only after window has
// passed without another element arriving. Elements superseded within the
// window are dropped and never reach downstream.
//
// When the parent completes, a pending element is emitted immediately and
// the stream completes. When the parent fails, the pending element is
// discarded and the failure propagates.
//
// Parameters:
//
//	window: The trailing quiet period.
//
// Returns:
//
//	Flow[T, T]: The debouncing stage.
func Debounce[T any](window time.Duration) Flow[T, T] {
	return FlowFunc[T, T](func(input Stream[T]) Stream[T] {
		s := &debouncedStream[T]{
			parent: input,
			window: window,
		}
		s.self = s
		return s
	})
}

type debouncedStream[T any] struct {
	baseStream[T]
	parent Stream[T]
	window time.Duration
}

func (s *debouncedStream[T]) run(ctx context.Context, next Receiver[T]) error {
	parentExec, err := asExecutable(s.parent)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The parent runs in its own goroutine and hands items over one by one;
	// only this goroutine calls next.
	items := make(chan T)
	parentDone := make(chan error, 1)
	go func() {
		parentDone <- parentExec.run(ctx, func(vec *Vector[T]) error {
			defer vec.Release()
			for _, item := range vec.Data {
				select {
				case items <- item:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}()

	pool := newVecPool[T](eventVectorSize)
	timer := time.NewTimer(s.window)
	timer.Stop()
	defer timer.Stop()

	var (
		pending    T
		hasPending bool
		timerC     <-chan time.Time
	)

	for {
		select {
		case item := <-items:
			pending, hasPending = item, true
			timer.Reset(s.window)
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if !hasPending {
				continue
			}
			item := pending
			var zero T
			pending, hasPending = zero, false
			if err := next(pool.one(item)); err != nil {
				cancel()
				<-parentDone
				return err
			}

		case err := <-parentDone:
			// Every item was received before the parent returned.
			if err != nil {
				return err
			}
			if hasPending {
				return next(pool.one(pending))
			}
			return nil
		}
	}
}

// ============================================================================
// LIFECYCLE OPERATORS
// ============================================================================

// Finalize creates a Flow that calls fn once every run of the stream has
// ended: with nil on completion, with the failure otherwise. fn runs after
// the last element has been delivered.
func Finalize[T any](fn func(err error)) Flow[T, T] {
	return FlowFunc[T, T](func(input Stream[T]) Stream[T] {
		s := &finalizedStream[T]{
			parent: input,
			fn:     fn,
		}
		s.self = s
		return s
	})
}

type finalizedStream[T any] struct {
	baseStream[T]
	parent Stream[T]
	fn     func(error)
}

func (s *finalizedStream[T]) run(ctx context.Context, next Receiver[T]) error {
	parentExec, err := asExecutable(s.parent)
	if err != nil {
		return err
	}
	err = parentExec.run(ctx, next)
	s.fn(err)
	return err
}
