// Package other handles files outside the supported categories. They cannot
// be stripped; when they carry audio tags those are listed read-only.
package other

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/ankit-chaubey/fileprops/core"
	"github.com/dhowden/tag"
)

// Handler implements core.Handler for CatOther.
type Handler struct{}

// New returns a Handler.
func New() *Handler { return &Handler{} }

func (h *Handler) Info() core.FormatInfo {
	return core.FormatInfo{
		Name:     "Other",
		Category: core.CatOther,
		CanView:  true,
		CanStrip: false,
		Notes:    "Basic properties only. ID3, MP4, FLAC and OGG tags are listed read-only.",
	}
}

// View always carries the unsupported note, plus any tags dhowden/tag finds.
func (h *Handler) View(ctx context.Context, path string) core.Section {
	s := core.Section{Kind: core.SectionTags, Note: core.NoteUnsupportedType}

	f, err := os.Open(path)
	if err != nil {
		s.Err = &core.ExtractionError{Section: core.SectionTags, Path: path, Err: err}
		return s
	}
	defer f.Close()

	// Most files have no tags; any read failure just means nothing to list.
	t, err := tag.ReadFrom(f)
	if err != nil {
		return s
	}

	group := string(t.Format())
	add := func(key, val string) {
		if val != "" {
			s.Add(group, key, val)
		}
	}
	add("FileType", string(t.FileType()))
	add("Title", t.Title())
	add("Artist", t.Artist())
	add("Album", t.Album())
	add("AlbumArtist", t.AlbumArtist())
	add("Composer", t.Composer())
	add("Genre", t.Genre())
	add("Comment", t.Comment())
	if t.Year() != 0 {
		add("Year", strconv.Itoa(t.Year()))
	}
	if track, total := t.Track(); track != 0 {
		add("TrackNumber", fraction(track, total))
	}
	if disc, total := t.Disc(); disc != 0 {
		add("DiscNumber", fraction(disc, total))
	}
	return s
}

func fraction(n, total int) string {
	if total == 0 {
		return strconv.Itoa(n)
	}
	return fmt.Sprintf("%d/%d", n, total)
}

// Strip always fails: these files are reported, never rewritten.
func (h *Handler) Strip(ctx context.Context, path string) error {
	return fmt.Errorf("%s: %w", path, core.ErrUnsupportedFormat)
}
