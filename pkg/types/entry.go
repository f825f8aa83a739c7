package types

import (
	"time"
)

// TimestampLayout is the wall-clock format written to the log file.
const TimestampLayout = "2006-01-02 15:04:05"

// Unknown is substituted for any hostname or vendor that could not be resolved.
const Unknown = "Unknown"

// Header is the fixed first row of every log file.
var Header = []string{"Time", "IP", "MAC", "Hostname", "Vendor"}

// LogEntry represents one enriched device observation to persist
type LogEntry struct {
	Timestamp string
	IP        string
	MAC       string
	Hostname  string
	Vendor    string
}

// NewLogEntry builds an entry for a device, substituting Unknown for
// empty hostname or vendor values.
func NewLogEntry(ts time.Time, ip, mac, hostname, vendor string) LogEntry {
	if hostname == "" {
		hostname = Unknown
	}
	if vendor == "" {
		vendor = Unknown
	}
	return LogEntry{
		Timestamp: ts.Format(TimestampLayout),
		IP:        ip,
		MAC:       mac,
		Hostname:  hostname,
		Vendor:    vendor,
	}
}

// Row returns the entry as a spreadsheet row matching Header order.
func (e LogEntry) Row() []string {
	return []string{e.Timestamp, e.IP, e.MAC, e.Hostname, e.Vendor}
}

// Validate checks if the entry has all required fields populated
func (e *LogEntry) Validate() error {
	if e.Timestamp == "" {
		return &ValidationError{Field: "timestamp", Message: "timestamp is required"}
	}
	if e.IP == "" {
		return &ValidationError{Field: "ip", Message: "ip is required"}
	}
	if e.MAC == "" {
		return &ValidationError{Field: "mac", Message: "mac is required"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
