//go:build unix

package fsinfo

import (
	"os"
	"os/user"
	"strconv"

	"github.com/ankit-chaubey/fileprops/core"
	"golang.org/x/sys/unix"
)

func platformFields(s *core.Section, path string, info os.FileInfo) {
	s.Add("", "Permissions", FormatFileMode(info.Mode()))

	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return
	}
	s.Add("", "Owner", userName(st.Uid))
	s.Add("", "Group", groupName(st.Gid))
}

// userName falls back to the numeric id when the uid has no account.
func userName(uid uint32) string {
	id := strconv.FormatUint(uint64(uid), 10)
	if u, err := user.LookupId(id); err == nil {
		return u.Username
	}
	return id
}

func groupName(gid uint32) string {
	id := strconv.FormatUint(uint64(gid), 10)
	if g, err := user.LookupGroupId(id); err == nil {
		return g.Name
	}
	return id
}
