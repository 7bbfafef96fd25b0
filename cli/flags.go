package main

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
	JSON       bool
	Locale     string
	Verbose    bool
	Quiet      bool
	LogFile    string
	LogFormat  string
	LogLevel   string
	Journal    bool
	Trace      bool
}

var globalFlags GlobalFlags

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&globalFlags.ConfigFile, "config", "", "config file (default is $HOME/.config/fileprops/config.yaml)")
	f.BoolVar(&globalFlags.JSON, "json", false, "print JSON instead of text")
	f.StringVar(&globalFlags.Locale, "locale", "", "display language: en, zh")
	f.BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "verbose output")
	f.BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "suppress non-error output")
	f.StringVar(&globalFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	f.StringVar(&globalFlags.LogFormat, "log-format", "", "log format: text, json")
	f.StringVar(&globalFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	f.BoolVar(&globalFlags.Journal, "journal", false, "record batch runs in the journal")
	f.BoolVar(&globalFlags.Trace, "trace", false, "print OpenTelemetry spans to stderr")
}
