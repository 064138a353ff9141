// Package search turns raw search terms into character lookups.
package search

import (
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"starsearch/internal/metrics"
	"starsearch/internal/starwars"
	"starsearch/pkg/stream"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultDebounce      = 500 * time.Millisecond
	DefaultMinTermLength = 4
)

// Searcher performs one lookup per term.
type Searcher interface {
	SearchCharacters(term string) stream.Stream[[]starwars.Record]
}

// Options tunes the dispatcher.
type Options struct {
	// Debounce is the quiet period a term must survive before dispatch.
	Debounce time.Duration
	// MinTermLength is the minimum term length in runes.
	MinTermLength int
}

// Request is an accepted term on its way to the searcher.
type Request struct {
	ID   uuid.UUID
	Term string
}

// Dispatcher owns the keystroke pipeline:
//
//	Submit -> Filter(length) -> Debounce -> Map(Request) -> MergeMap(lookup) -> Results
//
// Lookups are never cancelled by later terms; results arrive in completion
// order. The first failed lookup fails Results for good.
type Dispatcher struct {
	input   *stream.Subject[string]
	results stream.Stream[[]starwars.Record]
}

// NewDispatcher builds the pipeline. Nothing runs until Results is run.
func NewDispatcher(searcher Searcher, opts Options, logger *slog.Logger) *Dispatcher {
	if opts.Debounce == 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MinTermLength == 0 {
		opts.MinTermLength = DefaultMinTermLength
	}

	input := stream.NewSubject[string]()

	longEnough := stream.Filter(func(term string) bool {
		if utf8.RuneCountInString(term) >= opts.MinTermLength {
			return true
		}
		metrics.TermsFiltered.Inc()
		logger.Debug("term dropped", "term", term)
		return false
	})

	toRequest := stream.Map(func(term string) Request {
		return Request{ID: uuid.New(), Term: term}
	})

	lookup := func(req Request) stream.Stream[[]starwars.Record] {
		metrics.LookupsDispatched.Inc()
		log := logger.With("request_id", req.ID.String(), "term", req.Term)
		log.Debug("lookup dispatched")

		start := time.Now()
		return searcher.SearchCharacters(req.Term).Via(stream.Finalize[[]starwars.Record](func(err error) {
			metrics.RecordLookup(time.Since(start).Seconds(), err)
			switch metrics.Outcome(err) {
			case metrics.OutcomeFailure:
				log.Warn("lookup failed", "error", err)
			case metrics.OutcomeCancelled:
				log.Debug("lookup cancelled")
			default:
				log.Debug("lookup finished", "duration", time.Since(start))
			}
		}))
	}

	terms := input.Via(longEnough).Via(stream.Debounce[string](opts.Debounce))
	return &Dispatcher{
		input:   input,
		results: stream.MergeMap(toRequest.Apply(terms), lookup),
	}
}

// Submit feeds a raw term into the pipeline. Terms submitted before Results
// is running are queued for it.
func (d *Dispatcher) Submit(term string) {
	d.input.Next(term)
}

// Results is the merged lookup output. It is hot: run it once.
func (d *Dispatcher) Results() stream.Stream[[]starwars.Record] {
	return d.results
}

// Close ends the input. A debounced term still pending is dispatched, and
// Results completes once every in-flight lookup has finished.
func (d *Dispatcher) Close() {
	d.input.Complete()
}
