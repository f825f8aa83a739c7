// Package neighbors reads the operating system's neighbor/ARP table and
// turns it into a list of devices seen on the local segment. Reading is
// passive; the agent never probes the network itself.
package neighbors

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrUnsupportedPlatform is returned by Snapshot on platforms without a
// neighbor-table reader.
var ErrUnsupportedPlatform = errors.New("neighbor table scanning is not supported on this platform")

// Device is a single neighbor-table entry. MAC keeps the separator style
// the platform command emitted (hyphens on Windows, colons elsewhere);
// it has already been validated with net.ParseMAC.
type Device struct {
	IP  net.IP
	MAC string
}

// Supported reports whether the current platform has a neighbor-table
// reader.
func Supported() bool {
	return platformSupported
}

// FilterOptions controls which raw table entries survive filtering.
// Each field maps to one of the behavior variants of the scanner.
type FilterOptions struct {
	// SubnetPrefix restricts devices to those whose IP starts with the
	// given prefix, e.g. "192.168.1.". Empty disables the restriction.
	SubnetPrefix string
	// ExcludeBroadcast drops entries with the broadcast hardware
	// address ff:ff:ff:ff:ff:ff (any separator style, any case).
	ExcludeBroadcast bool
}

// Filter applies opts to devices, preserving input order and duplicates.
func Filter(devices []Device, opts FilterOptions) []Device {
	var kept []Device
	for _, device := range devices {
		if opts.ExcludeBroadcast && isBroadcastMAC(device.MAC) {
			continue
		}
		if opts.SubnetPrefix != "" && !strings.HasPrefix(device.IP.String(), opts.SubnetPrefix) {
			continue
		}
		kept = append(kept, device)
	}
	return kept
}

// Prefix24 returns the first three octets of an IPv4 address with a
// trailing dot, e.g. "192.168.1.", for use as a FilterOptions.SubnetPrefix.
func Prefix24(ip net.IP) string {
	ip4 := ip.To4()
	if ip4 == nil {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d.", ip4[0], ip4[1], ip4[2])
}

func isBroadcastMAC(mac string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(mac, "-", ":"))
	return normalized == "ff:ff:ff:ff:ff:ff"
}
