package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/foldersync/foldersync/pkg/logging"
)

// logLevelFlag binds --log-level directly to a pflag.Value so an invalid
// name is rejected at flag-parse time rather than silently downgraded to
// logging.LevelInfo later.
type logLevelFlag struct {
	set   bool
	level logging.Level
}

var _ pflag.Value = (*logLevelFlag)(nil)

func (f *logLevelFlag) String() string {
	if !f.set {
		return ""
	}
	return f.level.String()
}

func (f *logLevelFlag) Set(name string) error {
	level, ok := logging.NameToLevel(name)
	if !ok {
		return fmt.Errorf("unrecognized log level %q", name)
	}
	f.level, f.set = level, true
	return nil
}

func (f *logLevelFlag) Type() string {
	return "level"
}
