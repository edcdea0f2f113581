// Package foldersync holds identifying constants shared by the CLI and its
// subcommands.
package foldersync

// Version is the release version reported by `foldersync version`.
const Version = "0.1.0"
