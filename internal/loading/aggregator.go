// Package loading derives one busy flag from several loading signals.
package loading

import (
	"context"
	"log/slog"

	"starsearch/pkg/stream"
)

// Aggregator combines loading signals with the "all true" rule.
type Aggregator struct {
	signals []stream.Stream[bool]
	logger  *slog.Logger
}

// New creates an Aggregator over signals.
func New(logger *slog.Logger, signals ...stream.Stream[bool]) *Aggregator {
	return &Aggregator{signals: signals, logger: logger}
}

// Start subscribes to the combination of all signals and calls update with
// AllTrue of their latest values on every emission, once each signal has
// emitted at least once. update is never called concurrently and never
// after the returned subscription has been released.
//
// A failing signal ends the aggregation; the failure is logged and reported
// by the subscription's Err.
func (a *Aggregator) Start(ctx context.Context, update func(bool)) *stream.Subscription {
	combined := stream.Map(AllTrue).Apply(stream.CombineLatest(a.signals...))

	return stream.Subscribe(ctx, combined, stream.Observer[bool]{
		Next: update,
		Error: func(err error) {
			a.logger.Error("loading aggregation stopped", "error", err)
		},
	})
}

// AllTrue reports whether every value is true. It is true for no values.
func AllTrue(values []bool) bool {
	for _, v := range values {
		if !v {
			return false
		}
	}
	return true
}
