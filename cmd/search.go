package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"starsearch/internal/search"
	"starsearch/internal/starwars"
	"starsearch/pkg/stream"
)

var searchGap time.Duration

var searchCmd = &cobra.Command{
	Use:   "search TERM...",
	Short: "Look up characters for each term",
	Long: `Feed terms through the search pipeline as if they were typed, then print
every lookup result as it arrives.

Terms shorter than search.min_term_length are dropped. Terms submitted closer
together than search.debounce collapse into the last one; --gap controls the
pause between terms (default: the debounce window plus 100ms).`,
	Example: `  starsearch search luke vader
  starsearch search --gap 0 luk luke luke\ s   # only "luke s" is looked up`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().DurationVar(&searchGap, "gap", -1, "pause between terms (negative: debounce window + 100ms)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stopMetrics := startMetrics()
	defer stopMetrics()

	data := newDataService()
	defer data.Close()

	opts := searchOptions()
	gap := searchGap
	if gap < 0 {
		gap = opts.Debounce + 100*time.Millisecond
	}

	d := search.NewDispatcher(data, opts, log)
	p := newPrinter(cmd.OutOrStdout())

	lookups := 0
	sub := stream.Subscribe(ctx, d.Results(), stream.Observer[[]starwars.Record]{
		Next: func(records []starwars.Record) {
			lookups++
			p.Header("Result %d (%d records)", lookups, len(records))
			p.Records(records)
		},
	})
	defer sub.Unsubscribe()

	for i, term := range args {
		if i > 0 && gap > 0 {
			select {
			case <-time.After(gap):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		log.Debug("submitting term", "term", term)
		d.Submit(term)
	}
	d.Close()

	if err := sub.Wait(); err != nil {
		p.Error("search failed: %v", err)
		return fmt.Errorf("search: %w", err)
	}
	if lookups == 0 {
		p.Info("No lookups dispatched (terms need at least %d characters).", minTermLength(opts))
	}
	return nil
}

func minTermLength(opts search.Options) int {
	if opts.MinTermLength == 0 {
		return search.DefaultMinTermLength
	}
	return opts.MinTermLength
}
