//go:build windows

package filesystem

import (
	"golang.org/x/sys/windows"
)

// platformAttributes implements Attributes for Windows, where Hidden,
// ReadOnly, and Archive all have native bits.
func platformAttributes(path string) (uint32, error) {
	pointer, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}

	native, err := windows.GetFileAttributes(pointer)
	if err != nil {
		return 0, err
	}

	var attrs uint32
	if native&windows.FILE_ATTRIBUTE_HIDDEN != 0 {
		attrs |= AttributeHidden
	}
	if native&windows.FILE_ATTRIBUTE_READONLY != 0 {
		attrs |= AttributeReadOnly
	}
	if native&windows.FILE_ATTRIBUTE_ARCHIVE != 0 {
		attrs |= AttributeArchive
	}
	return attrs, nil
}

// platformSetAttributes implements SetAttributes for Windows.
func platformSetAttributes(path string, attrs uint32) error {
	pointer, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}

	native, err := windows.GetFileAttributes(pointer)
	if err != nil {
		return err
	}

	native &^= windows.FILE_ATTRIBUTE_HIDDEN | windows.FILE_ATTRIBUTE_READONLY | windows.FILE_ATTRIBUTE_ARCHIVE
	if attrs&AttributeHidden != 0 {
		native |= windows.FILE_ATTRIBUTE_HIDDEN
	}
	if attrs&AttributeReadOnly != 0 {
		native |= windows.FILE_ATTRIBUTE_READONLY
	}
	if attrs&AttributeArchive != 0 {
		native |= windows.FILE_ATTRIBUTE_ARCHIVE
	}
	if native == 0 {
		native = windows.FILE_ATTRIBUTE_NORMAL
	}

	return windows.SetFileAttributes(pointer, native)
}
