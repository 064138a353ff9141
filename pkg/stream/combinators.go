package stream

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ============================================================================
// FAN-IN (MERGE)
// ============================================================================

// Merge combines multiple streams into a single stream.
// It runs all inputs concurrently and emits elements as they arrive, so the
// output order across inputs is non-deterministic while each input's own
// order is preserved. It completes when every input has completed. The
// first failing input fails the merged stream and cancels the others.
func Merge[T any](inputs ...Stream[T]) Stream[T] {
	s := &mergedStream[T]{
		inputs: inputs,
	}
	s.self = s
	return s
}

type mergedStream[T any] struct {
	baseStream[T]
	inputs []Stream[T]
}

func (m *mergedStream[T]) run(ctx context.Context, next Receiver[T]) error {
	// Inputs push from different goroutines; next is not thread-safe, so
	// deliveries are serialized.
	serial := serialize(next)

	g, gCtx := errgroup.WithContext(ctx)
	for _, input := range m.inputs {
		exec, err := asExecutable(input)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return exec.run(gCtx, serial)
		})
	}
	return g.Wait()
}

// serialize wraps next so concurrent producers deliver one vector at a time.
func serialize[T any](next Receiver[T]) Receiver[T] {
	var mu sync.Mutex
	return func(vec *Vector[T]) error {
		mu.Lock()
		defer mu.Unlock()
		return next(vec)
	}
}

// ============================================================================
// FAN-OUT + MERGE (MERGEMAP)
// ============================================================================

// MergeMap projects every element of parent to an inner stream and merges
// all inner streams into the output.
//
// A new inner stream is started as soon as its element arrives, even while
// earlier inner streams are still running; nothing is cancelled when a newer
// element arrives. Inner results are emitted in the order they are
// produced, which is completion order across inner streams.
//
// The output completes once the parent and every inner stream have
// completed. If the parent or any inner stream fails, the output fails with
// that error and all other running streams are cancelled.
//
// Parameters:
//
//	parent: The stream of elements to project.
//	project: Builds the inner stream for one element.
//	opts: WithConcurrency caps the number of running inner streams (default: unbounded).
//
// Returns:
//
//	Stream[Out]: The merged inner results.
func MergeMap[In, Out any](
	parent Stream[In],
	project func(In) Stream[Out],
	opts ...Option,
) Stream[Out] {
	cfg := ApplyOptions(opts...)
	s := &mergeMapStream[In, Out]{
		parent:      parent,
		project:     project,
		concurrency: cfg.Concurrency,
	}
	s.self = s
	return s
}

type mergeMapStream[In, Out any] struct {
	baseStream[Out]
	parent      Stream[In]
	project     func(In) Stream[Out]
	concurrency int
}

func (s *mergeMapStream[In, Out]) run(ctx context.Context, next Receiver[Out]) error {
	parentExec, err := asExecutable(s.parent)
	if err != nil {
		return err
	}

	serial := serialize(next)
	g, gCtx := errgroup.WithContext(ctx)

	var slots chan struct{}
	if s.concurrency > 0 {
		slots = make(chan struct{}, s.concurrency)
	}

	// The parent runs inside the group so a failing inner stream cancels it,
	// and a failing parent cancels the inner streams.
	g.Go(func() error {
		return parentExec.run(gCtx, func(vec *Vector[In]) error {
			defer vec.Release()
			for _, item := range vec.Data {
				inner, err := asExecutable(s.project(item))
				if err != nil {
					return err
				}
				if slots != nil {
					select {
					case slots <- struct{}{}:
					case <-gCtx.Done():
						return gCtx.Err()
					}
				}
				g.Go(func() error {
					if slots != nil {
						defer func() { <-slots }()
					}
					if err := inner.run(gCtx, serial); err != nil {
						return fmt.Errorf("MergeMap inner stream: %w", err)
					}
					return nil
				})
			}
			return nil
		})
	})

	return g.Wait()
}

// ============================================================================
// FAN-IN (FORKJOIN)
// ============================================================================

// ForkJoin runs all sources concurrently and waits for every one of them to
// complete, then emits a single slice holding the last value of each source,
// in source order, and completes.
//
// If any source fails, the output fails immediately; the remaining sources
// are cancelled and their eventual outcome is ignored. If a source completes
// without emitting, the output completes without emitting.
func ForkJoin[T any](sources ...Stream[T]) Stream[[]T] {
	s := &forkJoinStream[T]{sources: sources}
	s.self = s
	return s
}

type forkJoinStream[T any] struct {
	baseStream[[]T]
	sources []Stream[T]
}

type forkJoinOutcome struct {
	index int
	err   error
}

func (s *forkJoinStream[T]) run(ctx context.Context, next Receiver[[]T]) error {
	if len(s.sources) == 0 {
		return nil
	}
	execs := make([]executable[T], len(s.sources))
	for i, src := range s.sources {
		exec, err := asExecutable(src)
		if err != nil {
			return err
		}
		execs[i] = exec
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mu sync.Mutex
	last := make([]T, len(execs))
	has := make([]bool, len(execs))

	// Buffered so branches still running after an early return never block.
	outcomes := make(chan forkJoinOutcome, len(execs))
	for i, exec := range execs {
		go func() {
			err := exec.run(ctx, func(vec *Vector[T]) error {
				defer vec.Release()
				if len(vec.Data) == 0 {
					return nil
				}
				mu.Lock()
				last[i] = vec.Data[len(vec.Data)-1]
				has[i] = true
				mu.Unlock()
				return nil
			})
			outcomes <- forkJoinOutcome{index: i, err: err}
		}()
	}

	for range execs {
		select {
		case o := <-outcomes:
			if o.err != nil {
				return fmt.Errorf("ForkJoin source %d: %w", o.index, o.err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	mu.Lock()
	defer mu.Unlock()
	for _, ok := range has {
		if !ok {
			return nil
		}
	}
	result := make([]T, len(last))
	copy(result, last)
	return next(newVecPool[[]T](eventVectorSize).one(result))
}

// ============================================================================
// COMBINE-LATEST
// ============================================================================

// errSourceEmpty stops a CombineLatest group when a source completes without
// ever emitting; the combination can then never produce a value.
var errSourceEmpty = errors.New("source completed without emitting")

// CombineLatest emits a slice of the latest value of every source each time
// any source emits, once every source has emitted at least once.
//
// Every emission triggers its own recombination before the next emission is
// processed; near-simultaneous updates are not batched. The output completes
// when all sources have completed (or right away when a source completes
// without emitting). The first failing source fails the output and cancels
// the others.
func CombineLatest[T any](sources ...Stream[T]) Stream[[]T] {
	s := &combineLatestStream[T]{sources: sources}
	s.self = s
	return s
}

type combineLatestStream[T any] struct {
	baseStream[[]T]
	sources []Stream[T]
}

func (s *combineLatestStream[T]) run(ctx context.Context, next Receiver[[]T]) error {
	execs := make([]executable[T], len(s.sources))
	for i, src := range s.sources {
		exec, err := asExecutable(src)
		if err != nil {
			return err
		}
		execs[i] = exec
	}

	var mu sync.Mutex
	latest := make([]T, len(execs))
	has := make([]bool, len(execs))
	ready := 0
	pool := newVecPool[[]T](eventVectorSize)

	g, gCtx := errgroup.WithContext(ctx)
	for i, exec := range execs {
		g.Go(func() error {
			err := exec.run(gCtx, func(vec *Vector[T]) error {
				defer vec.Release()
				mu.Lock()
				defer mu.Unlock()
				for _, item := range vec.Data {
					latest[i] = item
					if !has[i] {
						has[i] = true
						ready++
					}
					if ready < len(latest) {
						continue
					}
					snapshot := make([]T, len(latest))
					copy(snapshot, latest)
					if err := next(pool.one(snapshot)); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if !has[i] {
				return errSourceEmpty
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, errSourceEmpty) {
		return err
	}
	return nil
}
