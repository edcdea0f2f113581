package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/foldersync/foldersync/pkg/configuration"
	"github.com/foldersync/foldersync/pkg/logging"
	"github.com/foldersync/foldersync/pkg/reconciliation/cycle"
	"github.com/foldersync/foldersync/pkg/reconciliation/snapshotstore"
)

// terminationSignals are the signals that cancel the running cycle: the
// executor finishes its in-flight action and stops before the next one (never
// mid-action), the cancelled cycle leaves the prior snapshot in place, and an
// interval loop exits instead of starting another cycle.
var terminationSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

var runConfiguration struct {
	config   string
	interval time.Duration
	logLevel logLevelFlag
}

var runCommand = &cobra.Command{
	Use:          "run",
	Short:        "Run one reconcile cycle, or repeat at a fixed interval",
	RunE:         runMain,
	SilenceUsage: true,
}

func init() {
	flags := runCommand.Flags()
	flags.SortFlags = false
	flags.StringVarP(&runConfiguration.config, "config", "c", "foldersync.yml", "path to the YAML configuration file")
	flags.DurationVar(&runConfiguration.interval, "interval", 0, "if non-zero, repeat the cycle at this interval until interrupted")
	flags.Var(&runConfiguration.logLevel, "log-level", "override the configured logging.level (disabled, error, warn, info, debug)")
}

func runMain(command *cobra.Command, arguments []string) error {
	config, err := configuration.Load(runConfiguration.config)
	if err != nil {
		return fmt.Errorf("unable to load configuration: %w", err)
	}

	level, ok := logging.NameToLevel(config.Logging.Level)
	if !ok {
		level = logging.LevelInfo
	}
	if runConfiguration.logLevel.set {
		level = runConfiguration.logLevel.level
	}
	output, closeOutput, err := logOutput(config.Logging.FilePath)
	if err != nil {
		return fmt.Errorf("unable to open log output: %w", err)
	}
	defer closeOutput()
	logger := logging.NewRoot(level, output)

	store, err := snapshotstore.Open(config.SnapshotPath, logger.Sublogger("snapshot"))
	if err != nil {
		return fmt.Errorf("unable to open snapshot store: %w", err)
	}
	defer store.Close()

	orchestrator := cycle.New(config, store, nil, logger.Sublogger("cycle"))

	ctx, stop := signal.NotifyContext(context.Background(), terminationSignals...)
	defer stop()

	if runConfiguration.interval <= 0 {
		return runAndReport(ctx, orchestrator)
	}

	ticker := time.NewTicker(runConfiguration.interval)
	defer ticker.Stop()

	for {
		if err := runAndReport(ctx, orchestrator); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func runAndReport(ctx context.Context, orchestrator *cycle.Orchestrator) error {
	report, err := orchestrator.RunOnce(ctx)
	if err != nil {
		return fmt.Errorf("cycle failed: %w", err)
	}
	if report.Cancelled {
		warning("cycle cancelled before completion")
	}
	fmt.Printf("%d action(s) planned, %d conflict(s), %d error(s)\n",
		report.ActionsPlanned, len(report.Conflicts), len(report.Errors))
	return nil
}

// logOutput opens the configured log destination, falling back to standard
// error when no file path is configured. The returned close function is a
// no-op for standard error, which the caller must not close.
func logOutput(path string) (*os.File, func() error, error) {
	if path == "" {
		return os.Stderr, func() error { return nil }, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}
