package filesystem

import "os"

// Attribute bitmask values, per spec.md §3 ("platform attribute bitmask").
const (
	// AttributeHidden indicates a hidden file or directory.
	AttributeHidden = 0x01
	// AttributeReadOnly indicates a read-only file.
	AttributeReadOnly = 0x02
	// AttributeArchive indicates the archive bit (set whenever content is
	// modified; meaningful mainly on FAT/SMB-style filesystems).
	AttributeArchive = 0x04
)

// Attributes probes the platform-specific attribute bitmask for path. On
// platforms/filesystems without the concept it returns 0, per spec.md §4.6
// ("On systems without the concept, silently succeeds").
func Attributes(path string) (uint32, error) {
	return platformAttributes(path)
}

// SetAttributes applies the given attribute bitmask to path. Bits this
// platform doesn't support are silently ignored.
func SetAttributes(path string, attrs uint32) error {
	return platformSetAttributes(path, attrs)
}

// readOnlyFromMode derives whether the POSIX mode bits indicate a read-only
// file for the owner, used as the POSIX fallback for AttributeReadOnly.
func readOnlyFromMode(mode os.FileMode) bool {
	return mode&0o200 == 0
}
