package stream

import (
	"context"
	"errors"
	"sync"
)

// ============================================================================
// SUBSCRIPTIONS
// ============================================================================

// ErrUnsubscribed is returned to a running stream once its subscription has
// been released.
var ErrUnsubscribed = errors.New("stream: unsubscribed")

// IsReleased reports whether err ended a run that was cancelled or
// unsubscribed, as opposed to one that failed.
func IsReleased(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, ErrUnsubscribed)
}

// Observer receives the events of a subscribed stream.
// Any callback may be nil.
type Observer[T any] struct {
	// Next is called for every element, serially.
	Next func(T)
	// Error is called once if the stream fails.
	Error func(error)
	// Complete is called once if the stream completes normally.
	Complete func()
}

// Subscription is the handle of a running stream started by Subscribe.
//
// It separates the three ways a run can end: normal completion (Err returns
// nil), failure (Err returns the error) and release through Unsubscribe.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu           sync.Mutex
	unsubscribed bool
	err          error

	once sync.Once
}

// Subscribe starts running s in a new goroutine and feeds its events to obs.
//
// The run stops when s terminates, when ctx is done, or when the returned
// subscription is released. Observer callbacks are never invoked
// concurrently, and none is invoked once Unsubscribe has returned.
func Subscribe[T any](ctx context.Context, s Stream[T], obs Observer[T]) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	exec, err := asExecutable(s)
	go func() {
		defer close(sub.done)
		defer cancel()

		if err == nil {
			err = exec.run(ctx, func(vec *Vector[T]) error {
				defer vec.Release()
				sub.mu.Lock()
				defer sub.mu.Unlock()
				if sub.unsubscribed {
					return ErrUnsubscribed
				}
				if obs.Next != nil {
					for _, item := range vec.Data {
						obs.Next(item)
					}
				}
				return nil
			})
		}

		sub.mu.Lock()
		defer sub.mu.Unlock()
		if sub.unsubscribed {
			return
		}
		sub.err = err
		if err != nil {
			if obs.Error != nil {
				obs.Error(err)
			}
			return
		}
		if obs.Complete != nil {
			obs.Complete()
		}
	}()

	return sub
}

// Unsubscribe releases the subscription: the run is cancelled and no
// observer callback fires after Unsubscribe returns. It is safe to call more
// than once and on a nil subscription. It must not be called from inside an
// observer callback of the same subscription.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.mu.Lock()
		s.unsubscribed = true
		s.mu.Unlock()
		s.cancel()
	})
}

// Done is closed when the run has fully stopped.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the run has stopped and returns its terminal error.
func (s *Subscription) Wait() error {
	<-s.done
	return s.Err()
}

// Err returns the failure that ended the run, or nil if it completed
// normally, was released, or is still running.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Closed reports whether Unsubscribe has been called.
func (s *Subscription) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsubscribed
}
