package stream

import (
	"context"
)

// ============================================================================
// BASE STREAM
// ============================================================================

// baseStream gives every concrete stream the fluent blueprint methods.
// self must point at the embedding stream so flows see the outer type.
type baseStream[T any] struct {
	self Stream[T]
}

func (s *baseStream[T]) Via(flow Flow[T, T]) Stream[T] {
	return flow.Apply(s.self)
}

// Async decouples the producer from the consumer with a bounded SPSC queue
// of capacity vectors. The producer blocks while the queue is full.
func (s *baseStream[T]) Async(capacity int) Stream[T] {
	as := &asyncStream[T]{
		parent:   s.self,
		capacity: capacity,
	}
	as.self = as
	return as
}

func (s *baseStream[T]) To(sink Sink[T]) Runnable {
	return &runnableImpl[T]{
		stream: s.self,
		sink:   sink,
	}
}

// ============================================================================
// FLOWS
// ============================================================================

// FlowFunc adapts a plain function to the Flow interface.
type FlowFunc[In, Out any] func(Stream[In]) Stream[Out]

// Apply calls f(input).
func (f FlowFunc[In, Out]) Apply(input Stream[In]) Stream[Out] {
	return f(input)
}

// Map creates a Flow that applies f to each element.
func Map[In, Out any](f func(In) Out) Flow[In, Out] {
	return FlowFunc[In, Out](func(input Stream[In]) Stream[Out] {
		s := &mappedStream[In, Out]{
			parent: input,
			mapper: f,
		}
		s.self = s
		return s
	})
}

// Filter creates a Flow that keeps the elements satisfying predicate and
// silently drops the rest.
func Filter[T any](predicate func(T) bool) Flow[T, T] {
	return FlowFunc[T, T](func(input Stream[T]) Stream[T] {
		s := &filteredStream[T]{
			parent:    input,
			predicate: predicate,
		}
		s.self = s
		return s
	})
}

// Compose composes two flows: f1 then f2.
func Compose[A, B, C any](f1 Flow[A, B], f2 Flow[B, C]) Flow[A, C] {
	return FlowFunc[A, C](func(input Stream[A]) Stream[C] {
		return f2.Apply(f1.Apply(input))
	})
}

type mappedStream[In, Out any] struct {
	baseStream[Out]
	parent Stream[In]
	mapper func(In) Out
}

type filteredStream[T any] struct {
	baseStream[T]
	parent    Stream[T]
	predicate func(T) bool
}

// ============================================================================
// RUNNABLE
// ============================================================================

type runnableImpl[T any] struct {
	stream Stream[T]
	sink   Sink[T]
}

func (r *runnableImpl[T]) Run(ctx context.Context) error {
	return r.sink.Consume(ctx, r.stream)
}
