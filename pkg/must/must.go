// Package must contains best-effort cleanup helpers for operations whose
// failure is not actionable at the call site but is still worth a log line.
package must

import (
	"io"
	"os"

	"github.com/foldersync/foldersync/pkg/logging"
)

// Close closes c and logs a warning if it fails.
func Close(c io.Closer, logger *logging.Logger) {
	if err := c.Close(); err != nil {
		logger.Warnf("unable to close: %v", err)
	}
}

// OSRemove removes the named file and logs a warning if it fails.
func OSRemove(path string, logger *logging.Logger) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warnf("unable to remove %q: %v", path, err)
	}
}
