package image

import (
	"context"
	"fmt"
	stdimage "image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/ankit-chaubey/fileprops/core"
	"golang.org/x/image/bmp"
)

// ──────────────────────────────────────────────────────────────────────────────
// Strip
// ──────────────────────────────────────────────────────────────────────────────

// Strip decodes the pixels and writes them back without any metadata
// segments. GIF animations keep every frame.
func (h *Handler) Strip(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	enc, err := h.decode(path)
	if err != nil {
		return &core.ExtractionError{Section: core.SectionEXIF, Path: path, Err: err}
	}
	return core.ReplaceWith(path, func(w io.Writer) error {
		if err := enc(w); err != nil {
			return &core.WriteError{Path: path, Stage: core.StageTempWrite, Err: err}
		}
		return nil
	})
}

// decode reads path fully and returns the encoder that rewrites it.
func (h *Handler) decode(path string) (func(io.Writer) error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	_, format, err := stdimage.DecodeConfig(f)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	if format == "gif" {
		g, err := gif.DecodeAll(f)
		if err != nil {
			return nil, err
		}
		return func(w io.Writer) error { return gif.EncodeAll(w, g) }, nil
	}

	img, _, err := stdimage.Decode(f)
	if err != nil {
		return nil, err
	}
	switch format {
	case "jpeg":
		opts := &jpeg.Options{Quality: h.quality}
		return func(w io.Writer) error { return jpeg.Encode(w, img, opts) }, nil
	case "png":
		return func(w io.Writer) error { return png.Encode(w, img) }, nil
	case "bmp":
		return func(w io.Writer) error { return bmp.Encode(w, img) }, nil
	}
	return nil, fmt.Errorf("cannot re-encode %s images", format)
}
