package main

import (
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/ankit-chaubey/fileprops/core/config"
	"github.com/ankit-chaubey/fileprops/core/document/wordhost"
	"github.com/spf13/cobra"
)

// SystemInfo describes the host for support requests.
type SystemInfo struct {
	OS         string `json:"os"`
	Release    string `json:"release"`
	Arch       string `json:"arch"`
	Processor  string `json:"processor"`
	CPUs       int    `json:"cpus"`
	Hostname   string `json:"hostname"`
	GoVersion  string `json:"go_version"`
	WordHost   string `json:"word_host"`
	ConfigFile string `json:"config_file"`
}

func collectSystemInfo() SystemInfo {
	info := SystemInfo{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		CPUs:      runtime.NumCPU(),
		GoVersion: runtime.Version(),
		WordHost:  "unavailable",
	}
	info.Release, info.Processor = platformRelease()
	info.Hostname, _ = os.Hostname()
	if h, err := wordhost.Probe(); err == nil {
		info.WordHost = h.Name()
	}
	if globalFlags.ConfigFile != "" {
		info.ConfigFile = globalFlags.ConfigFile
	} else {
		info.ConfigFile, _ = config.DefaultConfigPath()
	}
	return info
}

func newSysinfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sysinfo",
		Short: "Show operating system and runtime information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := collectSystemInfo()
			if globalFlags.JSON {
				newFlagPrinter(cmd).PrintValue(info)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Operating system:\t%s %s\n", info.OS, info.Release)
			fmt.Fprintf(w, "Architecture:\t%s\n", info.Arch)
			fmt.Fprintf(w, "Processor:\t%s (%d CPUs)\n", info.Processor, info.CPUs)
			fmt.Fprintf(w, "Hostname:\t%s\n", info.Hostname)
			fmt.Fprintf(w, "Go version:\t%s\n", info.GoVersion)
			fmt.Fprintf(w, "Word host:\t%s\n", info.WordHost)
			fmt.Fprintf(w, "Config file:\t%s\n", info.ConfigFile)
			return w.Flush()
		},
	}
}
