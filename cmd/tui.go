package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"starsearch/internal/component"
	"starsearch/internal/logger"
	"starsearch/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive search screen",
	Long: `Open the interactive search screen.

Type at least four letters to look up characters. Press enter (or ctrl+l)
to load characters and planets together; esc quits.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The screen owns the terminal from here on.
	screenLog, closeLog, err := screenLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	log = screenLog

	stopMetrics := startMetrics()
	defer stopMetrics()

	data := newDataService()
	defer data.Close()

	comp := component.New(data, searchOptions(), log)
	return tui.Run(ctx, comp)
}

// screenLogger writes to logging.file, or nowhere when it is unset.
func screenLogger() (*slog.Logger, func(), error) {
	if cfg.Logging.File == "" {
		return logger.Discard(), func() {}, nil
	}

	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	l, err := logger.New(logger.Options{
		Level:  logLevel(),
		Format: cfg.Logging.Format,
		Writer: f,
	})
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	return l, func() { _ = f.Close() }, nil
}
