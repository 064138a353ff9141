// Package cmd contains all CLI commands for starsearch
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"starsearch/internal/config"
	"starsearch/internal/logger"
	"starsearch/internal/mockdata"
	"starsearch/internal/search"
	"starsearch/internal/starwars"
	"starsearch/internal/swapi"
)

var (
	cfgFile string
	verbose bool
	noColor bool
	cfg     *config.Config
	log     *slog.Logger
	version = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "starsearch",
	Short: "Reactive Star Wars search",
	Long: `starsearch looks up Star Wars characters as you type and loads
characters and planets side by side.

Example usage:
  starsearch                       # Interactive search screen
  starsearch search luke vader     # Look up terms and print the results
  starsearch combined              # Load characters and planets once
  starsearch --config dev.yaml tui # Use a specific config file`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .starsearch.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		noColor = true
	}
}

// initConfig loads the configuration and sets up the logger.
func initConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err = logger.New(logger.Options{
		Level:  logLevel(),
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	log.Debug("configuration loaded",
		"source", cfg.Source.Kind,
		"debounce", cfg.Search.Debounce,
		"min_term_length", cfg.Search.MinTermLength,
	)
	return nil
}

func logLevel() string {
	if verbose {
		return "debug"
	}
	return cfg.Logging.Level
}

// dataService is a starwars.DataService that can be shut down.
type dataService interface {
	starwars.DataService
	Close()
}

// newDataService builds the configured data collaborator.
func newDataService() dataService {
	if cfg.Source.Kind == config.SourceSWAPI {
		return swapi.NewClient(swapi.Options{
			BaseURL:   cfg.SWAPI.BaseURL,
			Timeout:   cfg.SWAPI.Timeout,
			RateLimit: cfg.SWAPI.RateLimit,
			Burst:     cfg.SWAPI.Burst,
		}, log.With("source", config.SourceSWAPI))
	}
	return mockdata.New(mockdata.Options{
		SearchLatency:     cfg.Mock.SearchLatency,
		CharactersLatency: cfg.Mock.CharactersLatency,
		PlanetsLatency:    cfg.Mock.PlanetsLatency,
	}, log.With("source", config.SourceMock))
}

func searchOptions() search.Options {
	return search.Options{
		Debounce:      cfg.Search.Debounce,
		MinTermLength: cfg.Search.MinTermLength,
	}
}

// startMetrics serves /metrics when metrics.listen is set. The returned
// function stops the server.
func startMetrics() func() {
	if cfg.Metrics.Listen == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              cfg.Metrics.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("metrics server listening", "addr", cfg.Metrics.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
