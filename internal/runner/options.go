package runner

import (
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	envutil "github.com/projectdiscovery/utils/env"

	"github.com/bmavalos/netlog-agent/pkg/enrich"
	"github.com/bmavalos/netlog-agent/pkg/version"
)

var (
	DefaultLogDir    = envutil.GetEnvOrDefault("NETLOG_LOG_DIR", ".")
	DefaultVendorURL = envutil.GetEnvOrDefault("NETLOG_VENDOR_URL", enrich.DefaultVendorURL)
)

// DefaultInterval is the wait in seconds between scan cycles.
const DefaultInterval = 60

// Options contains the configuration options for the scan loop.
type Options struct {
	Interval          int
	LogDir            string
	SaveRetryInterval int

	IncludeSelf      bool
	SubnetFilter     bool
	ExcludeBroadcast bool

	VendorURL     string
	VendorTimeout int
	VendorRetries int

	Verbose bool
	Silent  bool
	NoColor bool
	Version bool
}

// ParseOptions parses the command line flags provided by a user
func ParseOptions() *Options {
	options := &Options{}
	flagSet := goflags.NewFlagSet()

	flagSet.SetDescription(`netlog-agent periodically reads the OS neighbor/ARP table and appends enriched device rows to a daily xlsx log file`)

	flagSet.CreateGroup("scan", "Scan",
		flagSet.IntVar(&options.Interval, "interval", DefaultInterval, "seconds to wait between scan cycles"),
		flagSet.BoolVarP(&options.IncludeSelf, "include-self", "self", true, "log the local machine as an extra row each cycle"),
		flagSet.BoolVarP(&options.SubnetFilter, "subnet-filter", "sf", false, "only log devices sharing the local /24 subnet"),
		flagSet.BoolVarP(&options.ExcludeBroadcast, "exclude-broadcast", "eb", true, "drop neighbor entries with the broadcast MAC"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&options.LogDir, "log-dir", "ld", DefaultLogDir, "directory for the daily xlsx log files"),
		flagSet.IntVarP(&options.SaveRetryInterval, "save-retry-interval", "sri", 5, "seconds to wait between save attempts while the log file is open elsewhere"),
	)

	flagSet.CreateGroup("vendor", "Vendor lookup",
		flagSet.StringVarP(&options.VendorURL, "vendor-url", "vu", DefaultVendorURL, "MAC vendor directory base url"),
		flagSet.IntVarP(&options.VendorTimeout, "vendor-timeout", "vt", 10, "timeout in seconds for a single vendor lookup"),
		flagSet.IntVarP(&options.VendorRetries, "vendor-retries", "vr", enrich.DefaultVendorRetries, "retries for failed vendor lookups"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVar(&options.Version, "version", false, "show version of the project"),
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "show verbose output"),
		flagSet.BoolVar(&options.Silent, "silent", false, "show minimal output"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable output content coloring (ANSI escape codes)"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}

	options.configureOutput()

	showBanner()

	if options.Version {
		gologger.Info().Msgf("Current Version: %s\n", version.GetVersion())
		os.Exit(0)
	}

	return options
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}
