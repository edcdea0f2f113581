package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/foldersync/foldersync/pkg/logging"
	"github.com/foldersync/foldersync/pkg/must"
)

// temporaryNamePrefix is the file name prefix used for intermediate
// temporary files created during atomic writes and case-change renames.
const temporaryNamePrefix = ".foldersync-tmp-"

// WriteFileAtomic writes data to path using an intermediate temporary file
// that is swapped into place with a rename, so that readers never observe a
// partially written file. It backs conflict-artifact writes
// (WriteConflictArtifact) and encoding.MarshalAndSave; the snapshot store
// does not use it (it replaces its table inside a SQLite transaction).
func WriteFileAtomic(path string, data []byte, permissions os.FileMode, logger *logging.Logger) error {
	dir := filepath.Dir(path)

	temporary, err := os.CreateTemp(dir, temporaryNamePrefix)
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}

	if _, err := temporary.Write(data); err != nil {
		must.Close(temporary, logger)
		must.OSRemove(temporary.Name(), logger)
		return fmt.Errorf("unable to write temporary file: %w", err)
	}

	if err := temporary.Close(); err != nil {
		must.OSRemove(temporary.Name(), logger)
		return fmt.Errorf("unable to close temporary file: %w", err)
	}

	if err := os.Chmod(temporary.Name(), permissions); err != nil {
		must.OSRemove(temporary.Name(), logger)
		return fmt.Errorf("unable to set temporary file permissions: %w", err)
	}

	if err := os.Rename(temporary.Name(), path); err != nil {
		must.OSRemove(temporary.Name(), logger)
		return fmt.Errorf("unable to rename temporary file into place: %w", err)
	}

	return nil
}
