//go:build linux

package fsinfo

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// fileTimes uses statx for the birth time. Filesystems that do not record it
// report the inode change time instead.
func fileTimes(path string, info os.FileInfo) Times {
	var stx unix.Statx_t
	mask := unix.STATX_BTIME | unix.STATX_ATIME | unix.STATX_CTIME
	if err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, mask, &stx); err != nil {
		return Times{Created: info.ModTime(), Accessed: info.ModTime()}
	}

	t := Times{Accessed: statxTime(stx.Atime)}
	if stx.Mask&unix.STATX_BTIME != 0 {
		t.Created = statxTime(stx.Btime)
	} else {
		t.Created = statxTime(stx.Ctime)
	}
	return t
}

func statxTime(ts unix.StatxTimestamp) time.Time {
	return time.Unix(ts.Sec, int64(ts.Nsec))
}
