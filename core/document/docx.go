// Package document handles metadata for PDF and Word documents.
package document

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ankit-chaubey/fileprops/core"
)

// OPC part names inside a .docx package.
const (
	corePropsPart = "docProps/core.xml"
	bodyPart      = "word/document.xml"
)

// DOCXHandler implements core.Handler for .docx files.
type DOCXHandler struct{}

// NewDOCX returns a DOCXHandler.
func NewDOCX() *DOCXHandler { return &DOCXHandler{} }

func (h *DOCXHandler) Info() core.FormatInfo {
	return core.FormatInfo{
		Name:       "Word (.docx)",
		Category:   core.CatDOCX,
		Extensions: core.ExtensionsFor(core.CatDOCX),
		CanView:    true,
		CanStrip:   true,
		Notes:      "Core properties in docProps/core.xml.",
	}
}

// ─── View ────────────────────────────────────────────────────────────────────

// OPC core properties XML. Tags without a namespace match the local name in
// any namespace (dc:, cp:, dcterms:).
type opcCoreProps struct {
	XMLName        xml.Name `xml:"coreProperties"`
	Title          string   `xml:"title"`
	Subject        string   `xml:"subject"`
	Creator        string   `xml:"creator"`
	Keywords       string   `xml:"keywords"`
	Description    string   `xml:"description"`
	LastModifiedBy string   `xml:"lastModifiedBy"`
	Revision       string   `xml:"revision"`
	Created        string   `xml:"created"`
	Modified       string   `xml:"modified"`
	LastPrinted    string   `xml:"lastPrinted"`
	Category       string   `xml:"category"`
}

func (h *DOCXHandler) View(ctx context.Context, path string) core.Section {
	s := core.Section{Kind: core.SectionWord}
	fail := func(err error) core.Section {
		s.Fields = nil
		s.Err = &core.ExtractionError{Section: core.SectionWord, Path: path, Err: err}
		return s
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return fail(fmt.Errorf("cannot open as ZIP: %w", err))
	}
	defer r.Close()

	var props opcCoreProps
	if data, err := readPart(&r.Reader, corePropsPart); err != nil {
		return fail(err)
	} else if data != nil {
		if err := xml.Unmarshal(data, &props); err != nil {
			return fail(fmt.Errorf("parse %s: %w", corePropsPart, err))
		}
	}

	text := func(name, v string) {
		if v == "" {
			v = core.ValueNone
		}
		s.Add("", name, v)
	}
	text("Title", props.Title)
	text("Subject", props.Subject)
	text("Author", props.Creator)
	text("Category", props.Category)
	text("Keywords", props.Keywords)
	text("Comments", props.Description)
	text("LastModifiedBy", props.LastModifiedBy)
	text("Revision", props.Revision)
	text("Created", w3cdtf(props.Created))
	text("Modified", w3cdtf(props.Modified))
	text("LastPrinted", w3cdtf(props.LastPrinted))

	body, err := readPart(&r.Reader, bodyPart)
	if err != nil {
		return fail(err)
	}
	if body == nil {
		return fail(fmt.Errorf("%s missing", bodyPart))
	}
	counts, err := countBody(body)
	if err != nil {
		return fail(fmt.Errorf("parse %s: %w", bodyPart, err))
	}
	s.Add("", "Paragraphs", strconv.Itoa(counts.paragraphs))
	s.Add("", "Tables", strconv.Itoa(counts.tables))
	return s
}

// readPart returns the content of the named part, or nil if absent.
func readPart(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, nil
}

// w3cdtf formats a dcterms date in local time, keeping unparseable input.
func w3cdtf(v string) string {
	if v == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return core.FormatTimestamp(t)
	}
	return v
}

type bodyCounts struct {
	paragraphs int
	tables     int
}

// countBody counts the w:p and w:tbl elements that are direct children of
// w:body. Paragraphs nested in tables are not counted.
func countBody(data []byte) (bodyCounts, error) {
	var c bodyCounts
	dec := xml.NewDecoder(bytes.NewReader(data))
	depth, bodyDepth := 0, -1
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return c, nil
		}
		if err != nil {
			return c, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case bodyDepth < 0 && t.Name.Local == "body":
				bodyDepth = depth
			case depth == bodyDepth+1 && bodyDepth > 0:
				switch t.Name.Local {
				case "p":
					c.paragraphs++
				case "tbl":
					c.tables++
				}
			}
		case xml.EndElement:
			if depth == bodyDepth {
				bodyDepth = -1
			}
			depth--
		}
	}
}

// ─── Strip ───────────────────────────────────────────────────────────────────

// strippedCoreElements are removed from core.xml by Strip.
var strippedCoreElements = map[string]bool{
	"title":          true,
	"subject":        true,
	"creator":        true,
	"category":       true,
	"keywords":       true,
	"description":    true,
	"lastModifiedBy": true,
}

// Strip rewrites the package with the identifying core properties removed.
// Every other part is copied without recompression.
func (h *DOCXHandler) Strip(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return &core.ExtractionError{Section: core.SectionWord, Path: path, Err: fmt.Errorf("cannot open as ZIP: %w", err)}
	}
	defer r.Close()

	var cleaned []byte
	if data, err := readPart(&r.Reader, corePropsPart); err != nil {
		return &core.ExtractionError{Section: core.SectionWord, Path: path, Err: err}
	} else if data != nil {
		if cleaned, err = removeCoreElements(data); err != nil {
			return &core.ExtractionError{Section: core.SectionWord, Path: path, Err: fmt.Errorf("parse %s: %w", corePropsPart, err)}
		}
	}

	return core.ReplaceWith(path, func(out io.Writer) error {
		if err := writePackage(out, &r.Reader, cleaned); err != nil {
			return &core.WriteError{Path: path, Stage: core.StageTempWrite, Err: err}
		}
		return nil
	})
}

func writePackage(out io.Writer, r *zip.Reader, coreXML []byte) error {
	w := zip.NewWriter(out)
	for _, f := range r.File {
		if f.Name != corePropsPart || coreXML == nil {
			if err := w.Copy(f); err != nil {
				return err
			}
			continue
		}
		fw, err := w.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   f.Method,
			Modified: f.Modified,
		})
		if err != nil {
			return err
		}
		if _, err := fw.Write(coreXML); err != nil {
			return err
		}
	}
	return w.Close()
}

// removeCoreElements cuts the stripped elements out of core.xml byte for
// byte, so the declaration, namespaces and remaining entries are untouched.
func removeCoreElements(data []byte) ([]byte, error) {
	type span struct{ start, end int64 }
	var cuts []span

	dec := xml.NewDecoder(bytes.NewReader(data))
	depth := 0
	for {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 1 && strippedCoreElements[t.Name.Local] {
				if err := dec.Skip(); err != nil {
					return nil, err
				}
				cuts = append(cuts, span{start, dec.InputOffset()})
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	out := make([]byte, 0, len(data))
	prev := int64(0)
	for _, c := range cuts {
		out = append(out, data[prev:c.start]...)
		prev = c.end
	}
	return append(out, data[prev:]...), nil
}
