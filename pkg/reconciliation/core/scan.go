package core

import (
	"os"
	"path"
	"path/filepath"

	"github.com/foldersync/foldersync/pkg/filesystem"
	"github.com/foldersync/foldersync/pkg/logging"
)

// Scan walks root and produces a mapping from relative path to ScanEntry,
// per spec.md §4.2. Regular files and empty directories are included;
// symbolic links are not traversed: a link is recorded with its own
// os.Lstat metadata and never recursed through. A path that cannot be
// stat()ed is omitted with a warning rather than failing the scan.
func Scan(root string, filter *IgnoreFilter, logger *logging.Logger) (map[string]ScanEntry, error) {
	entries := make(map[string]ScanEntry)
	if err := scanDirectory(root, "", filter, entries, logger); err != nil {
		return nil, err
	}
	return entries, nil
}

// scanDirectory recursively scans dir (an absolute path), recording entries
// under keys relative to the original scan root (relativePrefix). It
// returns only an error; scanSubdirectory wraps it to report whether dir
// turned out to be non-empty after ignore filtering, so the caller can
// decide whether to record dir itself as an empty-directory sentinel.
func scanDirectory(dir, relativePrefix string, filter *IgnoreFilter, entries map[string]ScanEntry, logger *logging.Logger) error {
	items, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, item := range items {
		name := item.Name()
		absolutePath := filepath.Join(dir, name)
		relativePath := path.Join(relativePrefix, name)

		if item.Type()&os.ModeSymlink != 0 {
			// The OS default is respected: we record the link's own stat
			// (not followed for traversal purposes) but never descend
			// through it.
			info, statErr := os.Lstat(absolutePath)
			if statErr != nil {
				logger.Warnf("unable to stat %q: %v", relativePath, statErr)
				continue
			}
			if filter.IgnoreFile(relativePath) {
				continue
			}
			attrs, _ := filesystem.Attributes(absolutePath)
			entries[relativePath] = ScanEntry{
				Path:       relativePath,
				ModTime:    float64(info.ModTime().UnixNano()) / 1e9,
				Size:       info.Size(),
				Attributes: attrs,
			}
			continue
		}

		if item.IsDir() {
			if filter.IgnoreDirectory(name) {
				continue
			}
			childNonEmpty, err := scanSubdirectory(absolutePath, relativePath, filter, entries, logger)
			if err != nil {
				logger.Warnf("unable to scan directory %q: %v", relativePath, err)
				continue
			}
			if !childNonEmpty {
				attrs, _ := filesystem.Attributes(absolutePath)
				entries[relativePath] = ScanEntry{
					Path:       relativePath,
					ModTime:    statModTime(absolutePath, logger),
					Size:       directorySize,
					Attributes: attrs,
				}
			}
			continue
		}

		if filter.IgnoreFile(relativePath) {
			continue
		}

		info, statErr := item.Info()
		if statErr != nil {
			logger.Warnf("unable to stat %q: %v", relativePath, statErr)
			continue
		}
		attrs, _ := filesystem.Attributes(absolutePath)
		entries[relativePath] = ScanEntry{
			Path:       relativePath,
			ModTime:    float64(info.ModTime().UnixNano()) / 1e9,
			Size:       info.Size(),
			Attributes: attrs,
		}
	}

	return nil
}

// scanSubdirectory is scanDirectory plus a bubbled-up emptiness result,
// split out so the top-level Scan can distinguish "root itself is empty"
// (which is never recorded as a sentinel; only non-root empty directories
// are) from a nested empty directory.
func scanSubdirectory(dir, relativePrefix string, filter *IgnoreFilter, entries map[string]ScanEntry, logger *logging.Logger) (bool, error) {
	before := len(entries)
	if err := scanDirectory(dir, relativePrefix, filter, entries, logger); err != nil {
		return false, err
	}
	return len(entries) > before, nil
}

func statModTime(path string, logger *logging.Logger) float64 {
	info, err := os.Stat(path)
	if err != nil {
		logger.Warnf("unable to stat %q: %v", path, err)
		return 0
	}
	return float64(info.ModTime().UnixNano()) / 1e9
}
