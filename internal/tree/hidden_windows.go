//go:build windows

package tree

import (
	"golang.org/x/sys/windows"
)

// isHidden honours both the dot convention and the hidden attribute.
func isHidden(path, name string) bool {
	if isDotName(name) {
		return true
	}
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}
