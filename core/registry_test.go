package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type stubViewer struct{ kind SectionKind }

func (v stubViewer) View(ctx context.Context, path string) Section {
	s := Section{Kind: v.kind}
	s.Add("", "FileName", filepath.Base(path))
	return s
}

type stubHandler struct {
	info     FormatInfo
	viewErr  error
	panicky  bool
	stripErr error
	stripped []string
}

func (h *stubHandler) View(ctx context.Context, path string) Section {
	if h.panicky {
		panic("corrupt")
	}
	s := Section{Kind: SectionEXIF, Err: h.viewErr}
	if h.viewErr == nil {
		s.Add("", "Make", "Acme")
	}
	return s
}

func (h *stubHandler) Strip(ctx context.Context, path string) error {
	h.stripped = append(h.stripped, path)
	return h.stripErr
}

func (h *stubHandler) Info() FormatInfo { return h.info }

func writeTemp(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRegistry_Inspect(t *testing.T) {
	img := &stubHandler{info: FormatInfo{Category: CatImage, CanView: true, CanStrip: true}}
	r := NewRegistry(stubViewer{SectionBasic}, nil, img)

	path := writeTemp(t, "a.jpg")
	rep, err := r.Inspect(context.Background(), path)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if len(rep.Sections) != 2 || rep.Sections[0].Kind != SectionBasic || rep.Sections[1].Kind != SectionEXIF {
		t.Fatalf("sections = %+v", rep.Sections)
	}
	if v, ok := rep.Section(SectionEXIF).Lookup("Make"); !ok || v != "Acme" {
		t.Errorf("Make = %q, %v", v, ok)
	}
}

func TestRegistry_InspectSectionFailureIsContained(t *testing.T) {
	img := &stubHandler{info: FormatInfo{Category: CatImage}, panicky: true}
	r := NewRegistry(stubViewer{SectionBasic}, nil, img)

	rep, err := r.Inspect(context.Background(), writeTemp(t, "bad.png"))
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	basic := rep.Section(SectionBasic)
	if basic == nil || basic.Err != nil || len(basic.Fields) == 0 {
		t.Errorf("basic section should survive: %+v", basic)
	}
	exif := rep.Section(SectionEXIF)
	var ee *ExtractionError
	if exif == nil || !errors.As(exif.Err, &ee) {
		t.Fatalf("exif section should carry an ExtractionError: %+v", exif)
	}
}

func TestRegistry_InspectMissing(t *testing.T) {
	r := NewRegistry(stubViewer{SectionBasic}, nil)
	_, err := r.Inspect(context.Background(), filepath.Join(t.TempDir(), "gone.jpg"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
}

func TestRegistry_Strip(t *testing.T) {
	img := &stubHandler{info: FormatInfo{Category: CatImage, CanStrip: true}}
	r := NewRegistry(stubViewer{SectionBasic}, nil, img)
	ctx := context.Background()

	path := writeTemp(t, "a.jpg")
	if err := r.Strip(ctx, path); err != nil {
		t.Fatalf("Strip() error = %v", err)
	}
	if len(img.stripped) != 1 || img.stripped[0] != path {
		t.Errorf("handler calls = %v", img.stripped)
	}

	if err := r.Strip(ctx, writeTemp(t, "a.xyz")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Strip(other) error = %v, want ErrUnsupportedFormat", err)
	}
	if err := r.Strip(ctx, filepath.Join(t.TempDir(), "missing.jpg")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Strip(missing) error = %v, want ErrFileNotFound", err)
	}
}

func TestRegistry_Formats(t *testing.T) {
	img := &stubHandler{info: FormatInfo{Name: "Image", Category: CatImage, CanView: true}}
	r := NewRegistry(nil, nil, img)

	formats := r.Formats()
	if len(formats) != len(Categories) {
		t.Fatalf("Formats() returned %d entries, want %d", len(formats), len(Categories))
	}
	if formats[0].Name != "Image" || !formats[0].CanView {
		t.Errorf("formats[0] = %+v", formats[0])
	}
	if formats[1].Category != CatPDF || formats[1].CanView {
		t.Errorf("unregistered category should report no capabilities: %+v", formats[1])
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, CodeOK},
		{fmt.Errorf("x: %w", ErrFileNotFound), CodeFileNotFound},
		{ErrUnsupportedFormat, CodeUnsupportedFormat},
		{fmt.Errorf("doc: %w", ErrHostUnavailable), CodeHostUnavailable},
		{context.Canceled, CodeCanceled},
		{&WriteError{Path: "p", Stage: StageTempWrite, Err: errors.New("disk full")}, CodeWrite},
		{&ExtractionError{Section: SectionPDF, Path: "p", Err: errors.New("bad xref")}, CodeExtraction},
		{errors.New("other"), CodeInternal},
	}
	for _, tt := range tests {
		if got := Code(tt.err); got != tt.want {
			t.Errorf("Code(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestPrinter_Text(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Writer: &buf, ErrWriter: &buf, Labels: LabelsFor(LocaleZH)}

	rep := &Report{Path: "a.docx", Category: CatDOCX, Sections: []Section{
		{Kind: SectionWord, Fields: []Field{{Name: "Title", Value: ValueNone}}},
		{Kind: SectionEXIF, Note: NoteNoEXIF},
	}}
	p.PrintReport(rep)

	out := buf.String()
	for _, want := range []string{"── Word信息 ──", "标题:", "无", "(无EXIF信息)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{JSON: true, Writer: &buf, ErrWriter: &buf, Labels: LabelsFor(LocaleEN)}

	rep := &Report{Path: "a.jpg", Category: CatImage, Sections: []Section{
		{Kind: SectionEXIF, Err: &ExtractionError{Section: SectionEXIF, Path: "a.jpg", Err: errors.New("bad")}},
	}}
	p.PrintReport(rep)

	var got JSONReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.Path != "a.jpg" || len(got.Sections) != 1 || got.Sections[0].Code != CodeExtraction {
		t.Errorf("unexpected report: %+v", got)
	}
}

func TestParseLocale(t *testing.T) {
	for in, want := range map[string]Locale{"": LocaleEN, "en_US": LocaleEN, "zh_CN.UTF-8": LocaleZH} {
		if got, err := ParseLocale(in); err != nil || got != want {
			t.Errorf("ParseLocale(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLocale("fr"); err == nil {
		t.Error("ParseLocale(fr) should fail")
	}
}
