// Package stream provides a generic, push-based asynchronous stream framework.
//
// A Stream is a blueprint of an asynchronous sequence: it produces zero or
// more values over time and then either completes or fails. Streams are
// composed with Flows (Map, Filter, Debounce, Finalize) and combinators (Merge,
// MergeMap, ForkJoin, CombineLatest), and started by a Sink, a terminal
// (Reduce, Collect, First) or Subscribe, which returns a cancellable
// Subscription handle.
//
// Internally values travel in pooled batches (vectors). Bulk sources batch
// aggressively; event-driven sources such as Subject emit each value as soon
// as it arrives.
//
// Key features include:
//   - Hot, imperatively fed sources (Subject, BehaviorSubject).
//   - Structured concurrency for error propagation and cancellation.
//   - Serial delivery: a receiver is never called concurrently, even when
//     the values come from concurrent inner streams.
package stream
