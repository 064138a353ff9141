// Package combined joins the characters and planets fetches into one list.
package combined

import (
	"log/slog"

	"starsearch/internal/metrics"
	"starsearch/internal/starwars"
	"starsearch/pkg/stream"
)

// Source provides the two one-shot fetches.
type Source interface {
	Characters() stream.Stream[[]starwars.Record]
	Planets() stream.Stream[[]starwars.Record]
}

// Fetcher runs both fetches concurrently and emits their concatenation.
type Fetcher struct {
	source Source
	logger *slog.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(source Source, logger *slog.Logger) *Fetcher {
	return &Fetcher{source: source, logger: logger}
}

// LoadCombined returns a single-shot stream: once both fetches have
// completed it emits all characters followed by all planets, then completes.
// If either fetch fails, the stream fails right away and the other fetch is
// cancelled.
func (f *Fetcher) LoadCombined() stream.Stream[[]starwars.Record] {
	joined := stream.ForkJoin(f.source.Characters(), f.source.Planets())

	return stream.Map(Concat).Apply(joined).Via(stream.Finalize[[]starwars.Record](func(err error) {
		metrics.RecordCombined(err)
		switch metrics.Outcome(err) {
		case metrics.OutcomeFailure:
			f.logger.Warn("combined load failed", "error", err)
		case metrics.OutcomeCancelled:
			f.logger.Debug("combined load cancelled")
		default:
			f.logger.Debug("combined load finished")
		}
	}))
}

// Concat flattens parts in order.
func Concat(parts [][]starwars.Record) []starwars.Record {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	all := make([]starwars.Record, 0, n)
	for _, p := range parts {
		all = append(all, p...)
	}
	return all
}
