package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"starsearch/internal/combined"
	"starsearch/internal/loading"
	"starsearch/pkg/stream"
)

var combinedCmd = &cobra.Command{
	Use:   "combined",
	Short: "Load characters and planets into one list",
	Long: `Fetch characters and planets concurrently and print them as one list,
characters first. Nothing is printed unless both fetches succeed. While the
fetches run, the aggregate loading state is reported.`,
	Args: cobra.NoArgs,
	RunE: runCombined,
}

func init() {
	rootCmd.AddCommand(combinedCmd)
}

func runCombined(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stopMetrics := startMetrics()
	defer stopMetrics()

	data := newDataService()
	defer data.Close()

	p := newPrinter(cmd.OutOrStdout())

	busy := loading.New(log, data.CharactersLoader(), data.PlanetLoader())
	loadingSub := busy.Start(ctx, func(all bool) {
		log.Debug("loading state changed", "loading", all)
	})
	defer loadingSub.Unsubscribe()

	start := time.Now()
	lists, err := stream.Collect(ctx, combined.NewFetcher(data, log).LoadCombined())
	if err != nil {
		p.Error("combined load failed: %v", err)
		return fmt.Errorf("combined: %w", err)
	}

	for _, records := range lists {
		p.Header("Characters and planets (%d records, %s)", len(records), time.Since(start).Round(time.Millisecond))
		p.Records(records)
	}
	return nil
}
