package core

import (
	"os"
	"os/user"
	"path"
	"strings"
	"time"
)

// currentUsername returns the OS-reported current user, or "unknown" if it
// cannot be determined (spec.md §6 "Conflict artifact naming").
func currentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return sanitizeForFilename(u.Username)
	}
	if name := os.Getenv("USER"); name != "" {
		return sanitizeForFilename(name)
	}
	if name := os.Getenv("USERNAME"); name != "" {
		return sanitizeForFilename(name)
	}
	return "unknown"
}

// sanitizeForFilename strips path separators from a username so it can't
// escape the conflict artifact's directory.
func sanitizeForFilename(s string) string {
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}

// splitStemExt splits a basename into its stem and extension, where the
// extension includes the leading dot (or is empty if there is none).
func splitStemExt(basename string) (stem, ext string) {
	if idx := strings.LastIndexByte(basename, '.'); idx > 0 {
		return basename[:idx], basename[idx:]
	}
	return basename, ""
}

// conflictArtifactName builds a conflict artifact basename, per spec.md §6:
// "<stem>.CONFLICT.<user>.<YYYYMMDD_HHMMSS><ext>".
func conflictArtifactName(originalBasename string, at time.Time) string {
	stem, ext := splitStemExt(originalBasename)
	timestamp := at.UTC().Format("20060102_150405")
	return stem + ".CONFLICT." + currentUsername() + "." + timestamp + ext
}

// conflictArtifactPath places the artifact in the original file's directory
// (spec.md: "The conflict artifact must live in the original file's
// directory, not at the root").
func conflictArtifactPath(originalRelativePath string, at time.Time) string {
	dir := path.Dir(originalRelativePath)
	name := conflictArtifactName(path.Base(originalRelativePath), at)
	if dir == "." {
		return name
	}
	return path.Join(dir, name)
}

// quarantineName builds the quarantine basename, per spec.md §6:
// "YYYYMMDD_HHMMSS_<basename>".
func quarantineName(originalBasename string, at time.Time) string {
	return at.UTC().Format("20060102_150405") + "_" + originalBasename
}
