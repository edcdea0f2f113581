package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foldersync/foldersync/pkg/foldersync"
)

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(command *cobra.Command, arguments []string) {
		fmt.Println(foldersync.Version)
	},
}
