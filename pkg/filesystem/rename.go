package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SameCaseInsensitivePath reports whether a and b denote the same path
// modulo case, which is the condition under which a direct rename is at risk
// of being silently ignored on a case-insensitive (but case-preserving)
// backend.
func SameCaseInsensitivePath(a, b string) bool {
	return strings.EqualFold(filepath.Clean(a), filepath.Clean(b))
}

// RenameCasePreserving renames oldPath to newPath. When the two paths are
// identical except for case, a direct os.Rename is not trustworthy on
// case-insensitive backends (some implementations treat it as a no-op since
// they consider the source and destination the same file). To force the
// change, the rename is routed through a temporary name first.
//
// This implements the correctness requirement from spec.md §9: "after
// RenameR(old_case, new_case) the directory listing must show new_case."
func RenameCasePreserving(oldPath, newPath string) error {
	if oldPath == newPath {
		return nil
	}

	if !SameCaseInsensitivePath(oldPath, newPath) {
		return os.Rename(oldPath, newPath)
	}

	dir := filepath.Dir(oldPath)
	hop := filepath.Join(dir, temporaryNamePrefix+uuid.NewString())

	if err := os.Rename(oldPath, hop); err != nil {
		return fmt.Errorf("unable to rename to temporary hop name: %w", err)
	}
	if err := os.Rename(hop, newPath); err != nil {
		return fmt.Errorf("unable to rename from temporary hop name: %w", err)
	}
	return nil
}
