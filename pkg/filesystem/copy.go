package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/foldersync/foldersync/pkg/logging"
	"github.com/foldersync/foldersync/pkg/must"
)

// defaultFilePermissions is used for newly created files when the source's
// own permissions aren't otherwise meaningful to preserve (the engine
// tracks attributes as a separate bitmask, not POSIX mode bits).
const defaultFilePermissions = 0o644

// TimeFromUnixSeconds converts the float64 Unix-seconds representation used
// throughout the reconciliation engine (spec.md §3 "Entity: ScanEntry") into
// a time.Time suitable for os.Chtimes.
func TimeFromUnixSeconds(seconds float64) time.Time {
	return time.Unix(0, int64(seconds*1e9))
}

// EnsureParentDir creates the parent directory of path if it doesn't exist.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("unable to create parent directory %q: %w", dir, err)
	}
	return nil
}

// CopyFilePreserving copies srcPath to dstPath via a temporary file swapped
// into place with a rename (mirroring WriteFileAtomic), then restores the
// given modification time and attribute bitmask on the destination. Copying
// a path to itself is a no-op, per spec.md §4.6 "Copy".
func CopyFilePreserving(srcPath, dstPath string, modTimeSeconds float64, attributes uint32, logger *logging.Logger) error {
	srcAbs, err := filepath.Abs(srcPath)
	if err == nil {
		if dstAbs, err2 := filepath.Abs(dstPath); err2 == nil && srcAbs == dstAbs {
			return nil
		}
	}

	if err := EnsureParentDir(dstPath); err != nil {
		return err
	}

	source, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("unable to open source file: %w", err)
	}
	defer must.Close(source, logger)

	temporary, err := os.CreateTemp(filepath.Dir(dstPath), temporaryNamePrefix)
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}

	if _, err := io.Copy(temporary, source); err != nil {
		must.Close(temporary, logger)
		must.OSRemove(temporary.Name(), logger)
		return fmt.Errorf("unable to copy file contents: %w", err)
	}

	if err := temporary.Close(); err != nil {
		must.OSRemove(temporary.Name(), logger)
		return fmt.Errorf("unable to close temporary file: %w", err)
	}

	if err := os.Chmod(temporary.Name(), defaultFilePermissions); err != nil {
		must.OSRemove(temporary.Name(), logger)
		return fmt.Errorf("unable to set temporary file permissions: %w", err)
	}

	if err := os.Rename(temporary.Name(), dstPath); err != nil {
		must.OSRemove(temporary.Name(), logger)
		return fmt.Errorf("unable to rename temporary file into place: %w", err)
	}

	modTime := TimeFromUnixSeconds(modTimeSeconds)
	if err := os.Chtimes(dstPath, modTime, modTime); err != nil {
		logger.Warnf("unable to restore modification time on %q: %v", dstPath, err)
	}

	if err := SetAttributes(dstPath, attributes); err != nil {
		logger.Warnf("unable to restore attributes on %q: %v", dstPath, err)
	}

	if _, err := os.Stat(dstPath); err != nil {
		return fmt.Errorf("destination %q missing after copy: %w", dstPath, err)
	}

	return nil
}

// WriteConflictArtifact writes data to path (creating parent directories)
// with the given modification time restored, used for conflict artifacts
// captured by the reconciler (spec.md §4.6 "ClashCreate", "CaseConflict",
// "RenameConflict").
func WriteConflictArtifact(path string, data []byte, modTimeSeconds float64, logger *logging.Logger) error {
	if err := EnsureParentDir(path); err != nil {
		return err
	}
	if err := WriteFileAtomic(path, data, defaultFilePermissions, logger); err != nil {
		return err
	}
	modTime := TimeFromUnixSeconds(modTimeSeconds)
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		logger.Warnf("unable to restore modification time on conflict artifact %q: %v", path, err)
	}
	return nil
}
