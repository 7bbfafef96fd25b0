// Package image handles metadata for raster images: JPEG, PNG, GIF and BMP.
package image

import (
	"context"
	stdimage "image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strconv"

	"github.com/ankit-chaubey/fileprops/core"
	_ "golang.org/x/image/bmp"
)

// JPEGQuality is the quality used when re-encoding JPEG files.
const JPEGQuality = 95

// Handler implements core.Handler for images.
type Handler struct {
	quality int
}

// New returns a Handler re-encoding JPEG at JPEGQuality.
func New() *Handler { return &Handler{quality: JPEGQuality} }

func (h *Handler) Info() core.FormatInfo {
	return core.FormatInfo{
		Name:       "Image",
		Category:   core.CatImage,
		Extensions: core.ExtensionsFor(core.CatImage),
		CanView:    true,
		CanStrip:   true,
		Notes:      "EXIF from JPEG APP1 and PNG eXIf. Strip re-encodes pixels.",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// View
// ──────────────────────────────────────────────────────────────────────────────

// View lists the EXIF tags of the primary image sorted by tag name, followed
// by the decoded pixel dimensions.
func (h *Handler) View(ctx context.Context, path string) core.Section {
	s := core.Section{Kind: core.SectionEXIF}
	fail := func(err error) core.Section {
		s.Err = &core.ExtractionError{Section: core.SectionEXIF, Path: path, Err: err}
		return s
	}

	f, err := os.Open(path)
	if err != nil {
		return fail(err)
	}
	defer f.Close()

	cfg, format, err := stdimage.DecodeConfig(f)
	if err != nil {
		return fail(err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fail(err)
	}

	tags, err := readEXIF(f, format)
	if err != nil {
		return fail(err)
	}
	for _, t := range tags {
		s.Add("", t.name, t.value)
	}
	if len(tags) == 0 {
		s.Note = core.NoteNoEXIF
	}

	s.Add("image", "Format", format)
	s.Add("image", "Width", strconv.Itoa(cfg.Width))
	s.Add("image", "Height", strconv.Itoa(cfg.Height))
	return s
}
