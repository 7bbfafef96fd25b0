//go:build windows

package fsinfo

import (
	"os"
	"syscall"
	"time"
)

func fileTimes(path string, info os.FileInfo) Times {
	d, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return Times{Created: info.ModTime(), Accessed: info.ModTime()}
	}
	return Times{
		Created:  time.Unix(0, d.CreationTime.Nanoseconds()),
		Accessed: time.Unix(0, d.LastAccessTime.Nanoseconds()),
	}
}
