//go:build windows

package neighbors

import (
	"bytes"
	"fmt"
	"os/exec"
)

const platformSupported = true

// Snapshot reads the local neighbor table using 'arp -a'. A subprocess
// launch failure or nonzero exit is reported as an error, distinct from
// an empty table.
func Snapshot() ([]Device, error) {
	cmd := exec.Command("arp", "-a")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute arp -a: %w", err)
	}
	return parseTable(bytes.NewReader(output)), nil
}
