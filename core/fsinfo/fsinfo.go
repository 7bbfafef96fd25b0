// Package fsinfo reads the basic filesystem properties reported for every
// file: name, absolute path, size, timestamps and platform attributes.
package fsinfo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ankit-chaubey/fileprops/core"
)

// Reader produces the basic section of a report.
type Reader struct{}

// New returns a Reader.
func New() *Reader {
	return &Reader{}
}

// View implements core.Viewer.
func (r *Reader) View(ctx context.Context, path string) core.Section {
	s := core.Section{Kind: core.SectionBasic}

	info, err := os.Stat(path)
	if err != nil {
		s.Err = &core.ExtractionError{Section: core.SectionBasic, Path: path, Err: err}
		return s
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	t := fileTimes(path, info)
	s.Add("", "FileName", info.Name())
	s.Add("", "Path", abs)
	s.Add("", "Size", core.FormatSize(info.Size()))
	s.Add("", "Created", core.FormatTimestamp(t.Created))
	s.Add("", "Modified", core.FormatTimestamp(info.ModTime()))
	s.Add("", "Accessed", core.FormatTimestamp(t.Accessed))
	platformFields(&s, path, info)
	return s
}

// Times holds the timestamps that os.FileInfo does not expose.
type Times struct {
	Created  time.Time
	Accessed time.Time
}

// Windows attribute bits decoded by DecodeAttributes.
const (
	AttrReadOnly  uint32 = 0x1
	AttrHidden    uint32 = 0x2
	AttrSystem    uint32 = 0x4
	AttrDirectory uint32 = 0x10
	AttrArchive   uint32 = 0x20
)

var attrNames = []struct {
	bit  uint32
	name string
}{
	{AttrReadOnly, "read-only"},
	{AttrHidden, "hidden"},
	{AttrSystem, "system"},
	{AttrDirectory, "directory"},
	{AttrArchive, "archive"},
}

// DecodeAttributes lists the names of the attribute bits set in mask.
// Bits outside the known set are ignored.
func DecodeAttributes(mask uint32) []string {
	var out []string
	for _, a := range attrNames {
		if mask&a.bit != 0 {
			out = append(out, a.name)
		}
	}
	return out
}

// FormatAttributes joins DecodeAttributes, or returns core.ValueNone.
func FormatAttributes(mask uint32) string {
	names := DecodeAttributes(mask)
	if len(names) == 0 {
		return core.ValueNone
	}
	return strings.Join(names, ", ")
}

// FormatFileMode renders mode as an ls-style permission string.
func FormatFileMode(mode os.FileMode) string {
	var b strings.Builder
	switch {
	case mode&os.ModeDir != 0:
		b.WriteByte('d')
	case mode&os.ModeSymlink != 0:
		b.WriteByte('l')
	default:
		b.WriteByte('-')
	}

	const rwx = "rwxrwxrwx"
	perm := mode.Perm()
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			b.WriteByte(rwx[i])
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
