//go:build !windows

package xlsxlog

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"golang.org/x/sys/unix"
)

func TestIsFileBusy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"permission path error", &fs.PathError{Op: "open", Path: "x.xlsx", Err: unix.EACCES}, true},
		{"wrapped eagain", fmt.Errorf("save: %w", unix.EAGAIN), true},
		{"wrapped ebusy", fmt.Errorf("save: %w", unix.EBUSY), true},
		{"unrelated error", errors.New("disk full"), false},
		{"not exist", &fs.PathError{Op: "open", Path: "x.xlsx", Err: unix.ENOENT}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isFileBusy(tt.err); got != tt.want {
				t.Errorf("isFileBusy(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
