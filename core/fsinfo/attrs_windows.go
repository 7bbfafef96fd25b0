//go:build windows

package fsinfo

import (
	"os"

	"github.com/ankit-chaubey/fileprops/core"
	"golang.org/x/sys/windows"
)

func platformFields(s *core.Section, path string, info os.FileInfo) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return
	}
	mask, err := windows.GetFileAttributes(p)
	if err != nil {
		return
	}
	s.Add("", "Attributes", FormatAttributes(mask))
}
