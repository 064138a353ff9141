// Package component wires the search, combined-fetch and loading pipelines
// into the state behind the screen.
package component

import (
	"context"
	"log/slog"
	"sync"

	"starsearch/internal/combined"
	"starsearch/internal/loading"
	"starsearch/internal/metrics"
	"starsearch/internal/search"
	"starsearch/internal/starwars"
	"starsearch/pkg/stream"
)

// resultsBuffer is how many lookup results may queue up behind a slow renderer.
const resultsBuffer = 16

// InputEvent is a change of the search box.
type InputEvent struct {
	Value string
}

// State is what the renderer shows.
type State struct {
	// IsLoading is true while every data source is busy.
	IsLoading bool
	// Results holds the latest lookup result.
	Results []starwars.Record
	// SearchErr is the failure that ended the search pipeline.
	SearchErr error
	// Combined holds the characters followed by the planets.
	Combined []starwars.Record
	// CombinedErr is the failure of the latest combined load.
	CombinedErr error
}

// Component owns the subscriptions of one screen from Init to Destroy.
type Component struct {
	data       starwars.DataService
	logger     *slog.Logger
	dispatcher *search.Dispatcher
	fetcher    *combined.Fetcher

	mu       sync.Mutex
	state    State
	onChange func(State)

	ctx        context.Context
	cancel     context.CancelFunc
	loadingSub *stream.Subscription
	searchSub  *stream.Subscription
	destroyed  bool

	// loadMu serializes combined loads with Destroy and guards combinedSub.
	loadMu      sync.Mutex
	combinedSub *stream.Subscription
}

// New creates a Component. Nothing runs before Init.
func New(data starwars.DataService, opts search.Options, logger *slog.Logger) *Component {
	return &Component{
		data:       data,
		logger:     logger,
		dispatcher: search.NewDispatcher(data, opts, logger),
		fetcher:    combined.NewFetcher(data, logger),
	}
}

// OnChange registers fn to receive a snapshot after every state change.
// fn may be called from several goroutines.
func (c *Component) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Init starts the loading aggregation and the search pipeline. Both run
// until Destroy or until ctx is done.
func (c *Component) Init(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctx != nil || c.destroyed {
		return
	}
	c.ctx, c.cancel = context.WithCancel(ctx)

	agg := loading.New(c.logger, c.data.CharactersLoader(), c.data.PlanetLoader())
	c.loadingSub = agg.Start(c.ctx, func(busy bool) {
		metrics.SetLoading(busy)
		c.update(func(s *State) { s.IsLoading = busy })
	})

	c.searchSub = stream.Subscribe(c.ctx, c.dispatcher.Results().Async(resultsBuffer), stream.Observer[[]starwars.Record]{
		Next: func(records []starwars.Record) {
			c.update(func(s *State) { s.Results = records })
		},
		Error: func(err error) {
			c.logger.Error("search stopped", "error", err)
			c.update(func(s *State) { s.SearchErr = err })
		},
	})
}

// ChangeCharactersInput feeds the new search box value into the search pipeline.
func (c *Component) ChangeCharactersInput(ev InputEvent) {
	c.dispatcher.Submit(ev.Value)
}

// LoadCharactersAndPlanets starts a combined load. A load still in flight
// is released and its outcome ignored.
func (c *Component) LoadCharactersAndPlanets() {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	c.mu.Lock()
	ctx, ok := c.ctx, c.ctx != nil && !c.destroyed
	c.mu.Unlock()
	if !ok {
		return
	}

	c.combinedSub.Unsubscribe()
	c.update(func(s *State) { s.CombinedErr = nil })

	c.combinedSub = stream.Subscribe(ctx, c.fetcher.LoadCombined(), stream.Observer[[]starwars.Record]{
		Next: func(records []starwars.Record) {
			c.update(func(s *State) { s.Combined = records })
		},
		Error: func(err error) {
			c.update(func(s *State) { s.CombinedErr = err })
		},
	})
}

// Destroy releases every subscription. No state change is reported after
// it returns. It is safe to call more than once.
func (c *Component) Destroy() {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	loadingSub, searchSub, cancel := c.loadingSub, c.searchSub, c.cancel
	c.mu.Unlock()

	// Outside mu: a callback may be waiting on it.
	loadingSub.Unsubscribe()
	searchSub.Unsubscribe()
	c.combinedSub.Unsubscribe()
	c.dispatcher.Close()
	if cancel != nil {
		cancel()
	}
}

// Snapshot returns a copy of the current state.
func (c *Component) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Component) update(mutate func(*State)) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	mutate(&c.state)
	snapshot, notify := c.state, c.onChange
	c.mu.Unlock()

	if notify != nil {
		notify(snapshot)
	}
}
