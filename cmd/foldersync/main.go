// Command foldersync reconciles two directory trees against their shared
// synchronization history and applies the resulting actions.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCommand = &cobra.Command{
	Use:   "foldersync",
	Short: "Bidirectional folder synchronization via discrete reconcile cycles",
}

func init() {
	cobra.EnableCommandSorting = false
	rootCommand.AddCommand(
		runCommand,
		purgeCommand,
		versionCommand,
	)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
