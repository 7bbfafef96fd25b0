//go:build !unix && !windows

package fsinfo

import (
	"os"

	"github.com/ankit-chaubey/fileprops/core"
)

func platformFields(s *core.Section, path string, info os.FileInfo) {
	s.Add("", "Permissions", FormatFileMode(info.Mode()))
}
