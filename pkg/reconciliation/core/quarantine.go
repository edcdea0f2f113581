package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/foldersync/foldersync/pkg/logging"
)

// PurgeQuarantine removes soft-deleted files under root's quarantine
// directory whose modification time is older than olderThan, returning the
// number of files purged. Supplemented from
// `original_source/remote_office_sync/soft_delete.py`'s
// `purge_old_deleted_files`, which the distilled spec dropped.
func PurgeQuarantine(root string, olderThan time.Duration, now time.Time, logger *logging.Logger) (int, error) {
	quarantineDir := filepath.Join(root, quarantineDirName)

	entries, err := os.ReadDir(quarantineDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("unable to read quarantine directory %q: %w", quarantineDir, err)
	}

	threshold := now.Add(-olderThan)
	purged := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(quarantineDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			logger.Warnf("unable to stat quarantined file %q: %v", path, err)
			continue
		}
		if info.ModTime().After(threshold) {
			continue
		}
		if err := os.Remove(path); err != nil {
			logger.Warnf("unable to purge quarantined file %q: %v", path, err)
			continue
		}
		purged++
	}

	logger.Infof("purged %d quarantined file(s) older than %s from %q", purged, olderThan, quarantineDir)
	return purged, nil
}
