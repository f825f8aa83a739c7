//go:build windows

package xlsxlog

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/sys/windows"
)

// isFileBusy reports whether err means the file is locked by another
// process, typically a spreadsheet viewer holding the log file open.
func isFileBusy(err error) bool {
	if err == nil {
		return false
	}
	if os.IsPermission(err) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case windows.ERROR_SHARING_VIOLATION, windows.ERROR_LOCK_VIOLATION, windows.ERROR_ACCESS_DENIED:
			return true
		}
	}
	return false
}
