//go:build darwin

package fsinfo

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func fileTimes(path string, info os.FileInfo) Times {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return Times{Created: info.ModTime(), Accessed: info.ModTime()}
	}
	return Times{
		Created:  time.Unix(st.Btim.Unix()),
		Accessed: time.Unix(st.Atim.Unix()),
	}
}
