package document

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ankit-chaubey/fileprops/core"
	"github.com/ankit-chaubey/fileprops/core/document/wordhost"
)

// DOCProperties are the built-in properties blanked on legacy .doc files.
var DOCProperties = []string{"Title", "Subject", "Author", "Keywords", "Comments"}

// DOCHandler implements core.Handler for legacy binary .doc files. Stripping
// needs a Word host; without one it fails with core.ErrHostUnavailable.
type DOCHandler struct {
	host wordhost.Host
}

// NewDOC returns a DOCHandler using host, which may be nil.
func NewDOC(host wordhost.Host) *DOCHandler { return &DOCHandler{host: host} }

func (h *DOCHandler) Info() core.FormatInfo {
	info := core.FormatInfo{
		Name:       "Word (.doc)",
		Category:   core.CatDOC,
		Extensions: core.ExtensionsFor(core.CatDOC),
		CanView:    true,
		CanStrip:   h.host != nil,
		Notes:      "No field extraction. Strip requires Microsoft Word (Windows).",
	}
	if h.host != nil {
		info.Notes = "No field extraction. Strip via " + h.host.Name() + "."
	}
	return info
}

func (h *DOCHandler) View(ctx context.Context, path string) core.Section {
	return core.Section{Kind: core.SectionWord, Note: core.NoteDOCUnsupported}
}

// Strip has the host blank DOCProperties on a copy of the file, then swaps
// the copy in.
func (h *DOCHandler) Strip(ctx context.Context, path string) error {
	if h.host == nil {
		return fmt.Errorf("%s: %w", path, core.ErrHostUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return core.ReplaceFile(path, func(tmp string) error {
		if err := copyFile(path, tmp); err != nil {
			return &core.WriteError{Path: path, Stage: core.StageTempWrite, Err: err}
		}
		if err := h.host.BlankProperties(ctx, tmp, DOCProperties); err != nil {
			return &core.ExtractionError{Section: core.SectionWord, Path: path, Err: err}
		}
		return nil
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
