package core

import "github.com/foldersync/foldersync/pkg/filesystem"

// Attribute bitmask values (spec.md §3), re-exported so callers outside
// pkg/filesystem don't need to import it directly.
const (
	AttributeHidden   = filesystem.AttributeHidden
	AttributeReadOnly = filesystem.AttributeReadOnly
	AttributeArchive  = filesystem.AttributeArchive
)

// directorySize is the sentinel size recorded for an empty-directory entry.
const directorySize = -1

// ScanEntry is a single side's view of a path, as produced by the scanner
// (spec.md §3 "Entity: ScanEntry").
type ScanEntry struct {
	// Path is the forward-slash relative path from the scan root,
	// preserving on-disk casing (spec.md I1).
	Path string
	// ModTime is the modification time in floating-point seconds since the
	// epoch.
	ModTime float64
	// Size is the file size in bytes, or directorySize (-1) for an empty
	// directory sentinel.
	Size int64
	// Attributes is the platform attribute bitmask (0 where unsupported).
	Attributes uint32
}

// IsDirectory reports whether the entry represents an (empty) directory
// sentinel.
func (e ScanEntry) IsDirectory() bool {
	return e.Size == directorySize
}
