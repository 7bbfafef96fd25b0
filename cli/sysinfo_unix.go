//go:build unix

package main

import (
	"golang.org/x/sys/unix"
)

// platformRelease returns the kernel release and machine name from uname.
func platformRelease() (release, processor string) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return "", ""
	}
	return unix.ByteSliceToString(u.Release[:]), unix.ByteSliceToString(u.Machine[:])
}
