package stream

import (
	"context"
	"sync"
)

// ============================================================================
// HOT SOURCES (SUBJECTS)
// ============================================================================

// Subject is a hot, multicast stream that is fed imperatively.
//
// Values passed to Next are delivered to every run that is active at that
// moment; a run started later only sees later values (unless the subject
// replays, see NewBehaviorSubject). Values pushed before the first run
// subscribes are queued and handed to it, so an input fed before its pipeline
// is subscribed loses nothing. Once a run has subscribed, values pushed while
// nobody is subscribed are dropped. Each subscriber has its own unbounded queue,
// so Next never blocks on a slow consumer.
//
// Next, Error and Complete are safe for concurrent use.
type Subject[T any] struct {
	baseStream[T]

	mu     sync.Mutex
	subs   map[uint64]*subjectSub[T]
	nextID uint64
	done   bool
	err    error

	replay    bool
	latest    T
	hasLatest bool

	backlog    []T
	subscribed bool
}

type subjectSub[T any] struct {
	mu     sync.Mutex
	items  []T
	done   bool
	err    error
	wakeup chan struct{}
}

// NewSubject creates a Subject with no replay.
func NewSubject[T any]() *Subject[T] {
	s := &Subject[T]{subs: make(map[uint64]*subjectSub[T])}
	s.self = s
	return s
}

// NewBehaviorSubject creates a Subject that holds a current value.
// Each new run first receives the current value, then every later one.
func NewBehaviorSubject[T any](initial T) *Subject[T] {
	s := NewSubject[T]()
	s.replay = true
	s.latest = initial
	s.hasLatest = true
	return s
}

// Next pushes v to all active subscribers. It is a no-op after Error or Complete.
func (s *Subject[T]) Next(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	if s.replay {
		s.latest = v
		s.hasLatest = true
	} else if len(s.subs) == 0 {
		if !s.subscribed {
			s.backlog = append(s.backlog, v)
		}
		return
	}
	for _, sub := range s.subs {
		sub.push(v)
	}
}

// Error terminates the subject with err. Active and future subscribers fail with err.
func (s *Subject[T]) Error(err error) {
	s.terminate(err)
}

// Complete terminates the subject normally.
func (s *Subject[T]) Complete() {
	s.terminate(nil)
}

// Value returns the current value of a behavior subject.
func (s *Subject[T]) Value() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.hasLatest
}

// Observed reports how many runs are currently subscribed.
func (s *Subject[T]) Observed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Subject[T]) terminate(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done = true
	s.err = err
	for _, sub := range s.subs {
		sub.finish(err)
	}
}

func (s *Subject[T]) subscribe() (uint64, *subjectSub[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &subjectSub[T]{wakeup: make(chan struct{}, 1)}
	s.subscribed = true
	if len(s.backlog) > 0 {
		sub.items = s.backlog
		s.backlog = nil
	}
	if s.done {
		sub.finish(s.err)
		return 0, sub
	}
	if s.replay && s.hasLatest {
		sub.push(s.latest)
	}
	s.nextID++
	s.subs[s.nextID] = sub
	return s.nextID, sub
}

func (s *Subject[T]) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

func (s *Subject[T]) run(ctx context.Context, next Receiver[T]) error {
	id, sub := s.subscribe()
	defer s.unsubscribe(id)

	pool := newVecPool[T](eventVectorSize)
	for {
		items, done, err := sub.take()
		for _, item := range items {
			if err := next(pool.one(item)); err != nil {
				return err
			}
		}
		if done {
			return err
		}
		if len(items) > 0 {
			continue
		}
		select {
		case <-sub.wakeup:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (sub *subjectSub[T]) push(v T) {
	sub.mu.Lock()
	sub.items = append(sub.items, v)
	sub.mu.Unlock()
	signalWakeup(sub.wakeup)
}

func (sub *subjectSub[T]) finish(err error) {
	sub.mu.Lock()
	sub.done = true
	sub.err = err
	sub.mu.Unlock()
	signalWakeup(sub.wakeup)
}

// take hands over everything queued so far. done is only reported once the
// queue is empty, so values pushed before termination are still delivered.
func (sub *subjectSub[T]) take() ([]T, bool, error) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if len(sub.items) > 0 {
		items := sub.items
		sub.items = nil
		return items, false, nil
	}
	return nil, sub.done, sub.err
}

func signalWakeup(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
