package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/foldersync/foldersync/pkg/configuration"
	"github.com/foldersync/foldersync/pkg/logging"
	"github.com/foldersync/foldersync/pkg/reconciliation/core"
)

var purgeConfiguration struct {
	config    string
	olderThan time.Duration
}

var purgeCommand = &cobra.Command{
	Use:          "purge",
	Short:        "Remove quarantined files older than a retention window",
	RunE:         purgeMain,
	SilenceUsage: true,
}

func init() {
	flags := purgeCommand.Flags()
	flags.SortFlags = false
	flags.StringVarP(&purgeConfiguration.config, "config", "c", "foldersync.yml", "path to the YAML configuration file")
	flags.DurationVar(&purgeConfiguration.olderThan, "older-than", 30*24*time.Hour, "purge quarantined files older than this duration")
}

func purgeMain(command *cobra.Command, arguments []string) error {
	config, err := configuration.Load(purgeConfiguration.config)
	if err != nil {
		return fmt.Errorf("unable to load configuration: %w", err)
	}

	logger := logging.NewRoot(logging.LevelInfo, os.Stderr)
	now := time.Now()
	fmt.Printf("purging quarantined files from before %s\n", humanize.Time(now.Add(-purgeConfiguration.olderThan)))

	for _, root := range []string{config.LeftRoot, config.RightRoot} {
		purged, err := core.PurgeQuarantine(root, purgeConfiguration.olderThan, now, logger.Sublogger("purge"))
		if err != nil {
			return fmt.Errorf("unable to purge quarantine under %q: %w", root, err)
		}
		fmt.Printf("%s: purged %d file(s)\n", root, purged)
	}
	return nil
}
