//go:build windows

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

func platformRelease() (release, processor string) {
	v := windows.RtlGetVersion()
	release = fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
	return release, os.Getenv("PROCESSOR_IDENTIFIER")
}
