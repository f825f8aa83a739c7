package neighbors

import (
	"bufio"
	"io"
	"net"
	"regexp"
	"strings"
)

// A device line starts with optional whitespace followed by a dotted
// quad. Header and interface lines never match.
var dottedQuadRe = regexp.MustCompile(`^\s*\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

// parseTable parses columnar neighbor-table output where each device
// line starts with an IP address followed by its hardware address, the
// format emitted by 'arp -a' on Windows:
//
//	Interface: 192.168.1.100 --- 0xa
//	  Internet Address      Physical Address      Type
//	  192.168.1.1           aa-bb-cc-dd-ee-ff     dynamic
//
// Lines whose IP or MAC token does not validate are dropped so malformed
// platform output never reaches the log file. Order and duplicates of
// valid lines are preserved.
func parseTable(r io.Reader) []Device {
	var devices []Device

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !dottedQuadRe.MatchString(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		ip := net.ParseIP(fields[0])
		if ip == nil || ip.To4() == nil {
			continue
		}
		if _, err := net.ParseMAC(fields[1]); err != nil {
			continue
		}

		devices = append(devices, Device{IP: ip, MAC: fields[1]})
	}
	return devices
}

// parseDarwinTable parses 'arp -a' output on macOS:
//
//	hostname (192.168.1.1) at aa:bb:cc:dd:ee:ff [ethernet] on en0
//
// Incomplete entries and lines that do not validate are dropped.
func parseDarwinTable(r io.Reader) []Device {
	var devices []Device

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		ipStart := strings.Index(line, "(")
		ipEnd := strings.Index(line, ")")
		if ipStart == -1 || ipEnd == -1 || ipStart >= ipEnd {
			continue
		}
		ipStr := line[ipStart+1 : ipEnd]

		atIndex := strings.Index(line, " at ")
		if atIndex == -1 {
			continue
		}
		rest := line[atIndex+4:]
		macStr := rest
		if spaceIdx := strings.IndexAny(rest, " ["); spaceIdx != -1 {
			macStr = rest[:spaceIdx]
		}
		macStr = strings.TrimSpace(macStr)
		if macStr == "" || macStr == "(incomplete)" {
			continue
		}

		ip := net.ParseIP(ipStr)
		if ip == nil || ip.To4() == nil {
			continue
		}
		if _, err := net.ParseMAC(macStr); err != nil {
			continue
		}

		devices = append(devices, Device{IP: ip, MAC: macStr})
	}
	return devices
}
