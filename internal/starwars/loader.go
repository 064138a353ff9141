package starwars

import (
	"sync"

	"starsearch/pkg/stream"
)

// Loader folds overlapping requests of one kind into a single in-flight
// signal: true when the first request starts, false when the last one ends.
type Loader struct {
	mu       sync.Mutex
	inFlight int
	signal   *stream.Subject[bool]
}

// NewLoader creates a Loader whose signal starts at false.
func NewLoader() *Loader {
	return &Loader{signal: stream.NewBehaviorSubject(false)}
}

// Begin marks a request as started.
func (l *Loader) Begin() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight++
	if l.inFlight == 1 {
		l.signal.Next(true)
	}
}

// End marks a request as finished.
func (l *Loader) End() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight--
	if l.inFlight == 0 {
		l.signal.Next(false)
	}
}

// Signal returns the hot in-flight signal.
func (l *Loader) Signal() stream.Stream[bool] {
	return l.signal
}

// Close completes the signal.
func (l *Loader) Close() {
	l.signal.Complete()
}
