package document

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ankit-chaubey/fileprops/core"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

const testXMP = `<?xpacket begin="" id="W5M0MpCehiHzreSzNTczkc9d"?><x:xmpmeta xmlns:x="adobe:ns:meta/"></x:xmpmeta><?xpacket end="w"?>`

// writePDF writes a two-page PDF with an Info dictionary and an XMP stream,
// computing the xref offsets as it goes.
func writePDF(t *testing.T, path string) {
	t.Helper()
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R /Metadata 6 0 R >>",
		"<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 /Resources << >> >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>",
		"<< /Title (Report) /Author (Jane) /Subject (Numbers) /Keywords (q3) /Creator (Writer) /CreationDate (D:20240102030405Z) >>",
		fmt.Sprintf("<< /Type /Metadata /Subtype /XML /Length %d >>\nstream\n%s\nendstream", len(testXMP), testXMP),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, o := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 5 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestPDF_View(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paper.pdf")
	writePDF(t, path)

	s := NewPDF().View(context.Background(), path)
	if s.Err != nil {
		t.Fatalf("View() error = %v", s.Err)
	}
	if s.Fields[0].Name != "Format" || s.Fields[0].Value != "PDF 1.4" {
		t.Errorf("Format = %+v", s.Fields[0])
	}
	if got := field(t, s, "PageCount"); got != "2" {
		t.Errorf("PageCount = %q", got)
	}
	for name, want := range map[string]string{"Title": "Report", "Author": "Jane", "Keywords": "q3"} {
		if got := field(t, s, name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
	if got := field(t, s, "Page 1"); got != "612.00 x 792.00" {
		t.Errorf("Page 1 = %q", got)
	}
	if got := field(t, s, "Page 2"); got != "595.00 x 842.00" {
		t.Errorf("Page 2 = %q", got)
	}
}

func TestPDF_Strip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paper.pdf")
	writePDF(t, path)
	h := NewPDF()
	ctx := context.Background()

	if err := h.Strip(ctx, path); err != nil {
		t.Fatalf("Strip() error = %v", err)
	}
	s := h.View(ctx, path)
	if s.Err != nil {
		t.Fatalf("View() after strip error = %v", s.Err)
	}
	for _, name := range []string{"Title", "Author", "Subject", "Keywords", "Creator"} {
		if v, ok := s.Lookup(name); ok {
			t.Errorf("%s = %q still present", name, v)
		}
	}
	if got := field(t, s, "PageCount"); got != "2" {
		t.Errorf("PageCount = %q after strip", got)
	}

	pdf, err := api.ReadContextFile(path)
	if err != nil {
		t.Fatalf("ReadContextFile() error = %v", err)
	}
	if _, ok := pdf.RootDict["Metadata"]; ok {
		t.Error("catalog still references an XMP stream")
	}

	// Idempotent
	if err := h.Strip(ctx, path); err != nil {
		t.Fatalf("second Strip() error = %v", err)
	}
	if got := field(t, h.View(ctx, path), "PageCount"); got != "2" {
		t.Errorf("PageCount = %q after second strip", got)
	}
}

func TestPDF_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	original := []byte("%PDF-1.4\ngarbage")
	os.WriteFile(path, original, 0644)
	h := NewPDF()

	if s := h.View(context.Background(), path); s.Err == nil {
		t.Error("View() should fail")
	}
	if err := h.Strip(context.Background(), path); core.Code(err) != core.CodeExtraction {
		t.Errorf("Strip() error = %v", err)
	}
	got, _ := os.ReadFile(path)
	if !bytes.Equal(got, original) {
		t.Error("original modified")
	}
}
