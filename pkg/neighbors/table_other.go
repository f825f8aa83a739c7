//go:build !windows && !darwin

package neighbors

const platformSupported = false

// Snapshot is not implemented on this platform.
func Snapshot() ([]Device, error) {
	return nil, ErrUnsupportedPlatform
}
