package runner

import (
	"context"
	"path/filepath"
	"runtime"
	"time"

	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"
	fileutil "github.com/projectdiscovery/utils/file"
	"github.com/rs/xid"
	"github.com/shirou/gopsutil/v3/host"

	"github.com/bmavalos/netlog-agent/pkg/enrich"
	"github.com/bmavalos/netlog-agent/pkg/localaddr"
	"github.com/bmavalos/netlog-agent/pkg/neighbors"
	"github.com/bmavalos/netlog-agent/pkg/types"
	"github.com/bmavalos/netlog-agent/pkg/xlsxlog"
)

// Runner contains the internal logic of the program
type Runner struct {
	options  *Options
	enricher *enrich.Enricher
	writer   *xlsxlog.Writer
}

// NewRunner instance
func NewRunner(options *Options) (*Runner, error) {
	if options.Interval <= 0 {
		gologger.Warning().Msgf("Invalid scan interval %d, falling back to %d seconds", options.Interval, DefaultInterval)
		options.Interval = DefaultInterval
	}

	if !fileutil.FolderExists(options.LogDir) {
		if err := fileutil.CreateFolder(options.LogDir); err != nil {
			return nil, errorutil.NewWithErr(err).Msgf("could not create log directory %s", options.LogDir)
		}
	}

	vendors := enrich.NewVendorClient(options.VendorURL, time.Duration(options.VendorTimeout)*time.Second, options.VendorRetries)
	hostnames := enrich.NewHostnameResolver(0)

	return &Runner{
		options:  options,
		enricher: enrich.NewEnricher(hostnames, vendors),
		writer:   xlsxlog.NewWriter(time.Duration(options.SaveRetryInterval) * time.Second),
	}, nil
}

// Run executes the scan loop until ctx is cancelled. On a platform
// without a neighbor-table reader it prints a message and returns nil,
// so the process exits cleanly.
func (r *Runner) Run(ctx context.Context) error {
	r.printHostInfo()

	if !neighbors.Supported() {
		gologger.Info().Msgf("Neighbor table scanning is not implemented on %s", runtime.GOOS)
		return nil
	}

	runID := xid.New().String()
	gologger.Info().Msgf("Starting scan loop %s with a %ds interval", runID, r.options.Interval)

	ticker := time.NewTicker(time.Duration(r.options.Interval) * time.Second)
	defer ticker.Stop()

	for {
		if err := r.runCycle(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			gologger.Error().Msgf("Scan cycle failed: %s", err)
		}

		gologger.Info().Msgf("Waiting %d seconds before the next scan...", r.options.Interval)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Close the runner instance
func (r *Runner) Close() {}

// printHostInfo logs the machine and platform the agent runs on.
func (r *Runner) printHostInfo() {
	info, err := host.Info()
	if err != nil {
		gologger.Info().Msgf("Running the scan on: %s", runtime.GOOS)
		return
	}
	gologger.Info().Msgf("Running the scan on: %s (%s %s)", info.Hostname, info.Platform, info.PlatformVersion)
}

// runCycle performs one scan-enrich-append pass. The log file name is
// recomputed every cycle, so writes roll over to a new file when the
// interval crosses midnight.
func (r *Runner) runCycle(ctx context.Context) error {
	localIP, err := localaddr.IP()
	if err != nil {
		return errorutil.NewWithErr(err).Msgf("could not resolve the local address")
	}
	gologger.Info().Msgf("Scanning network | local IP %s", localIP)

	devices, err := neighbors.Snapshot()
	if err != nil {
		return errorutil.NewWithErr(err).Msgf("could not read the neighbor table")
	}

	filterOpts := neighbors.FilterOptions{ExcludeBroadcast: r.options.ExcludeBroadcast}
	if r.options.SubnetFilter {
		filterOpts.SubnetPrefix = neighbors.Prefix24(localIP)
	}
	devices = neighbors.Filter(devices, filterOpts)
	gologger.Info().Msgf("Found %d devices in the neighbor table", len(devices))

	// One timestamp per batch, shared by every row of this cycle.
	timestamp := time.Now()

	var entries []types.LogEntry
	if r.options.IncludeSelf {
		if entry, ok := r.selfEntry(ctx, timestamp, localIP.String()); ok {
			entries = append(entries, entry)
		}
	}
	for _, device := range devices {
		ip := device.IP.String()
		entries = append(entries, types.NewLogEntry(timestamp, ip, device.MAC,
			r.enricher.Hostname(ctx, ip),
			r.enricher.Vendor(ctx, device.MAC)))
	}

	path := filepath.Join(r.options.LogDir, xlsxlog.FileName(timestamp))
	if err := r.writer.Append(ctx, path, entries); err != nil {
		return err
	}
	gologger.Info().Msgf("Information logged to %s (%d rows)", path, len(entries))
	return nil
}

// selfEntry builds the synthetic row for the local machine.
func (r *Runner) selfEntry(ctx context.Context, ts time.Time, localIP string) (types.LogEntry, bool) {
	mac, err := localaddr.HardwareID()
	if err != nil {
		gologger.Warning().Msgf("Could not determine the local hardware address: %s", err)
		return types.LogEntry{}, false
	}
	return types.NewLogEntry(ts, localIP, mac,
		r.enricher.Hostname(ctx, localIP),
		r.enricher.Vendor(ctx, mac)), true
}
