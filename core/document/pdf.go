package document

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ankit-chaubey/fileprops/core"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// PDFHandler implements core.Handler for PDF files.
type PDFHandler struct{}

// NewPDF returns a PDFHandler. pdfcpu is kept from creating its user
// configuration directory.
func NewPDF() *PDFHandler {
	api.DisableConfigDir()
	return &PDFHandler{}
}

func (h *PDFHandler) Info() core.FormatInfo {
	return core.FormatInfo{
		Name:       "PDF",
		Category:   core.CatPDF,
		Extensions: core.ExtensionsFor(core.CatPDF),
		CanView:    true,
		CanStrip:   true,
		Notes:      "Info dict and XMP stream. The writer adds its own Producer and dates.",
	}
}

// ─── View ────────────────────────────────────────────────────────────────────

// View reports the version and page count, every non-empty Info entry in
// key order, then the size of each page in points.
func (h *PDFHandler) View(ctx context.Context, path string) core.Section {
	s := core.Section{Kind: core.SectionPDF}

	pdf, err := api.ReadContextFile(path)
	if err != nil {
		s.Err = &core.ExtractionError{Section: core.SectionPDF, Path: path, Err: err}
		return s
	}

	dims, err := pdf.PageDims()
	if err != nil {
		s.Err = &core.ExtractionError{Section: core.SectionPDF, Path: path, Err: err}
		return s
	}
	pages := pdf.PageCount
	if pages == 0 {
		pages = len(dims)
	}

	s.Add("", "Format", "PDF "+pdf.XRefTable.Version().String())
	s.Add("", "PageCount", strconv.Itoa(pages))

	info, err := infoEntries(pdf)
	if err != nil {
		s.Err = &core.ExtractionError{Section: core.SectionPDF, Path: path, Err: err}
		return s
	}
	for _, kv := range info {
		s.Add("metadata", kv[0], kv[1])
	}
	for i, d := range dims {
		s.Add("pages", fmt.Sprintf("Page %d", i+1), fmt.Sprintf("%.2f x %.2f", d.Width, d.Height))
	}
	return s
}

// infoEntries returns the non-empty entries of the Info dictionary sorted by
// key.
func infoEntries(pdf *model.Context) ([][2]string, error) {
	if pdf.Info == nil {
		return nil, nil
	}
	d, err := pdf.DereferenceDict(*pdf.Info)
	if err != nil || d == nil {
		return nil, err
	}

	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out [][2]string
	for _, k := range keys {
		o, err := pdf.Dereference(d[k])
		if err != nil || o == nil {
			continue
		}
		v := strings.TrimSpace(objectText(o))
		if v == "" {
			continue
		}
		if strings.HasSuffix(k, "Date") {
			if t, ok := types.DateTime(v, true); ok {
				v = core.FormatTimestamp(t)
			}
		}
		out = append(out, [2]string{k, v})
	}
	return out, nil
}

func objectText(o types.Object) string {
	switch v := o.(type) {
	case types.StringLiteral:
		if s, err := types.StringLiteralToString(v); err == nil {
			return s
		}
		return v.Value()
	case types.HexLiteral:
		if s, err := types.HexLiteralToString(v); err == nil {
			return s
		}
		return v.Value()
	case types.Name:
		return v.Value()
	default:
		return o.String()
	}
}

// ─── Strip ───────────────────────────────────────────────────────────────────

// Strip drops the Info dictionary and the catalog XMP stream and rewrites
// the whole document.
func (h *PDFHandler) Strip(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf, err := api.ReadContextFile(path)
	if err != nil {
		return &core.ExtractionError{Section: core.SectionPDF, Path: path, Err: err}
	}
	pdf.Info = nil
	if pdf.RootDict != nil {
		pdf.RootDict.Delete("Metadata")
	}

	return core.ReplaceWith(path, func(w io.Writer) error {
		if err := api.WriteContext(pdf, w); err != nil {
			return &core.WriteError{Path: path, Stage: core.StageTempWrite, Err: err}
		}
		return nil
	})
}
