package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile    = flag.String("log-file", "", "Also write logs to this file")
	flagJSONLog    = flag.Bool("json-log", false, "Write logs as JSON")
	flagCenter     = flag.String("center", "", "Center estimator: median, median-polys, bounds, surface, volume")
	flagPerPolygon = flag.Bool("per-polygon", false, "Include per-polygon data in reports")
	flagFormat     = flag.String("format", "", "Report format: text or yaml")
	flagPrecision  = flag.Int("precision", -1, "Decimal places in text reports")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments: the subcommand and its arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via -config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagJSONLog {
		cfg.Logging.Format = "json"
	}
	if *flagCenter != "" {
		cfg.Kernel.Center = *flagCenter
	}
	if *flagPerPolygon {
		cfg.Kernel.PerPolygon = true
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagPrecision >= 0 {
		cfg.Output.Precision = *flagPrecision
	}
}
