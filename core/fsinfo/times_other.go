//go:build !linux && !darwin && !windows

package fsinfo

import "os"

// fileTimes has no portable birth or access time here; the modification time
// stands in for both.
func fileTimes(path string, info os.FileInfo) Times {
	return Times{Created: info.ModTime(), Accessed: info.ModTime()}
}
