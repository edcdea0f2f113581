//go:build !windows

package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// platformAttributes implements Attributes for POSIX systems, where there is
// no first-class hidden/archive bit. Hidden is inferred from the leading-dot
// naming convention and ReadOnly from the owner write bit; Archive has no
// POSIX equivalent and is always clear.
func platformAttributes(path string) (uint32, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, err
	}

	var attrs uint32
	if strings.HasPrefix(filepath.Base(path), ".") {
		attrs |= AttributeHidden
	}
	if !info.IsDir() && readOnlyFromMode(info.Mode()) {
		attrs |= AttributeReadOnly
	}
	return attrs, nil
}

// platformSetAttributes implements SetAttributes for POSIX systems. Hidden
// and Archive have no POSIX representation and are silently ignored;
// ReadOnly toggles the owner write bit.
func platformSetAttributes(path string, attrs uint32) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return nil
	}

	mode := info.Mode()
	if attrs&AttributeReadOnly != 0 {
		mode &^= 0o200
	} else {
		mode |= 0o200
	}
	return os.Chmod(path, mode)
}
