package stream

import (
	"context"
	"fmt"
)

// ============================================================================
// VECTOR
// ============================================================================

// Vector holds a slice of data and a reference to its origin pool.
// It is the fundamental unit of data transport in the pipeline.
type Vector[T any] struct {
	Data []T
	pool *vecPool[T]
}

// Release returns the vector to its origin pool.
// It must be called exactly once by the consumer when the data is no longer needed.
func (v *Vector[T]) Release() {
	if v == nil {
		return
	}
	if v.pool != nil {
		p := v.pool
		v.pool = nil
		p.Put(v)
	}
}

// ============================================================================
// BLUEPRINT INTERFACES (DEFINITION)
// ============================================================================

// Stream represents an asynchronous sequence: zero or more values over time,
// followed by either normal completion or a failure.
// It is a blueprint; nothing happens until it is run by a Sink or Subscribe.
// A blueprint may be run more than once; every run is independent unless the
// stream is hot (see Subject).
type Stream[T any] interface {
	// Via transforms this stream into another stream using a Flow.
	Via(flow Flow[T, T]) Stream[T]
	// Async inserts an asynchronous boundary with the given buffer size.
	Async(capacity int) Stream[T]
	// To connects this stream to a Sink, creating a Runnable.
	To(sink Sink[T]) Runnable
}

// Flow represents a transformation stage.
// It can be a simple function (Map, Filter) or a complex composed logic.
type Flow[In, Out any] interface {
	// Apply transforms an input stream into an output stream.
	Apply(input Stream[In]) Stream[Out]
}

// Sink represents a terminal stage.
type Sink[T any] interface {
	// Consume runs the stream to completion, feeding every element to the sink.
	Consume(ctx context.Context, input Stream[T]) error
}

// Runnable represents a complete pipeline ready to be executed.
type Runnable interface {
	// Run executes the pipeline.
	Run(ctx context.Context) error
}

// ============================================================================
// EXECUTION CONTRACT
// ============================================================================

// Receiver is a function that accepts a vector.
//
// The receiver takes ownership of the vector whatever it returns. A non-nil
// error stops the producing stage, which returns that error from run.
type Receiver[T any] func(*Vector[T]) error

// executable is an internal interface that all stream implementations must satisfy.
//
// run pushes values into next and returns nil on completion, the failure
// otherwise. Implementations never call next concurrently.
type executable[T any] interface {
	run(ctx context.Context, next Receiver[T]) error
}

func asExecutable[T any](s Stream[T]) (executable[T], error) {
	exec, ok := s.(executable[T])
	if !ok {
		return nil, fmt.Errorf("stream type %T is not executable", s)
	}
	return exec, nil
}
