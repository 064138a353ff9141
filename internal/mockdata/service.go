// Package mockdata is an in-memory Star Wars data source with simulated
// request latency.
package mockdata

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"starsearch/internal/starwars"
	"starsearch/pkg/stream"
)

// Options sets the simulated latency of each request kind.
type Options struct {
	SearchLatency     time.Duration
	CharactersLatency time.Duration
	PlanetsLatency    time.Duration
}

// Service serves a fixed data set.
type Service struct {
	opts   Options
	logger *slog.Logger

	characters *starwars.Loader
	planets    *starwars.Loader
}

var _ starwars.DataService = (*Service)(nil)

// New creates a Service. Both loaders start at false.
func New(opts Options, logger *slog.Logger) *Service {
	return &Service{
		opts:       opts,
		logger:     logger,
		characters: starwars.NewLoader(),
		planets:    starwars.NewLoader(),
	}
}

// SearchCharacters returns the characters whose name contains term,
// case-insensitively. It drives the characters loader.
func (s *Service) SearchCharacters(term string) stream.Stream[[]starwars.Record] {
	needle := strings.ToLower(term)
	return s.fetch("search", s.characters, s.opts.SearchLatency, func() []starwars.Record {
		var found []starwars.Record
		for _, c := range characters {
			if strings.Contains(strings.ToLower(c.Name), needle) {
				found = append(found, c)
			}
		}
		return found
	})
}

// Characters returns every character.
func (s *Service) Characters() stream.Stream[[]starwars.Record] {
	return s.fetch("characters", s.characters, s.opts.CharactersLatency, func() []starwars.Record {
		return append([]starwars.Record(nil), characters...)
	})
}

// Planets returns every planet.
func (s *Service) Planets() stream.Stream[[]starwars.Record] {
	return s.fetch("planets", s.planets, s.opts.PlanetsLatency, func() []starwars.Record {
		return append([]starwars.Record(nil), planets...)
	})
}

// CharactersLoader is true while a characters request is in flight.
func (s *Service) CharactersLoader() stream.Stream[bool] {
	return s.characters.Signal()
}

// PlanetLoader is true while a planets request is in flight.
func (s *Service) PlanetLoader() stream.Stream[bool] {
	return s.planets.Signal()
}

// Close completes both loader signals.
func (s *Service) Close() {
	s.characters.Close()
	s.planets.Close()
}

func (s *Service) fetch(
	kind string,
	l *starwars.Loader,
	latency time.Duration,
	produce func() []starwars.Record,
) stream.Stream[[]starwars.Record] {
	return stream.FromFunc(func(ctx context.Context) ([]starwars.Record, error) {
		l.Begin()
		defer l.End()

		s.logger.Debug("mock request started", "kind", kind, "latency", latency)
		timer := time.NewTimer(latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			s.logger.Debug("mock request cancelled", "kind", kind)
			return nil, ctx.Err()
		}

		records := produce()
		s.logger.Debug("mock request finished", "kind", kind, "count", len(records))
		return records, nil
	})
}
