//go:build !windows

package xlsxlog

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// isFileBusy reports whether err means the file is locked by another
// process.
func isFileBusy(err error) bool {
	if err == nil {
		return false
	}
	if os.IsPermission(err) {
		return true
	}
	return errors.Is(err, unix.EACCES) ||
		errors.Is(err, unix.EAGAIN) ||
		errors.Is(err, unix.EBUSY) ||
		errors.Is(err, unix.ETXTBSY)
}
