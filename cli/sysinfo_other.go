//go:build !unix && !windows

package main

func platformRelease() (release, processor string) {
	return "", ""
}
