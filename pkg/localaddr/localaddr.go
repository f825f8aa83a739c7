// Package localaddr resolves the scanning machine's own addresses so the
// agent can log itself alongside discovered devices.
package localaddr

import (
	"fmt"
	"net"
	"os"
	"strings"
)

// IP resolves the machine's own hostname through the system resolver and
// returns the first IPv4 address. The error propagates when the host has
// no resolvable address.
func IP() (net.IP, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("failed to get hostname: %w", err)
	}

	addrs, err := net.LookupIP(hostname)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", hostname, err)
	}

	for _, addr := range addrs {
		if ip4 := addr.To4(); ip4 != nil {
			return ip4, nil
		}
	}
	return nil, fmt.Errorf("no IPv4 address for %s", hostname)
}

// HardwareID returns the MAC address of the first non-loopback interface
// that carries one, formatted as uppercase colon-separated octets.
// This is a stable identifier for the host, not necessarily the MAC of
// the interface actually used for networking.
func HardwareID() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", fmt.Errorf("failed to list interfaces: %w", err)
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if len(iface.HardwareAddr) == 0 {
			continue
		}
		return FormatMAC(iface.HardwareAddr), nil
	}
	return "", fmt.Errorf("no interface with a hardware address found")
}

// FormatMAC renders a hardware address as uppercase colon-separated hex
// octets, e.g. "AA:BB:CC:DD:EE:FF".
func FormatMAC(mac net.HardwareAddr) string {
	return strings.ToUpper(mac.String())
}
