package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Category
	}{
		{"photo.jpg", CatImage},
		{"PHOTO.JPEG", CatImage},
		{"a/b/c.Png", CatImage},
		{"anim.gif", CatImage},
		{"scan.BMP", CatImage},
		{"paper.pdf", CatPDF},
		{"Report.DOCX", CatDOCX},
		{"old.doc", CatDOC},
		{"song.mp3", CatOther},
		{"noext", CatOther},
		{"archive.tar.gz", CatOther},
		{".jpg", CatImage},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Classify(tt.path); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	for _, exts := range [][]string{
		{".jpg", ".JPG", ".Jpg", ".jPG"},
		{".docx", ".DOCX", ".DocX"},
		{".pdf", ".PDF", ".Pdf"},
	} {
		want := Classify("f" + exts[0])
		for _, e := range exts[1:] {
			if got := Classify("f" + e); got != want {
				t.Errorf("Classify(f%s) = %v, want %v", e, got, want)
			}
		}
	}
}

func TestExtensionsFor(t *testing.T) {
	got := ExtensionsFor(CatImage)
	if len(got) != 5 || got[0] != ".jpg" {
		t.Errorf("ExtensionsFor(image) = %v", got)
	}
	if got := ExtensionsFor(CatOther); len(got) != 0 {
		t.Errorf("ExtensionsFor(other) = %v, want none", got)
	}
}

func TestParseCategory(t *testing.T) {
	if c, err := ParseCategory("DOCX"); err != nil || c != CatDOCX {
		t.Errorf("ParseCategory(DOCX) = %v, %v", c, err)
	}
	if _, err := ParseCategory("video"); err == nil {
		t.Error("ParseCategory(video) should fail")
	}
}

func TestNewRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.pdf")
	if err := os.WriteFile(path, []byte("12345"), 0644); err != nil {
		t.Fatal(err)
	}

	rec, err := NewRecord(path)
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	if rec.Category != CatPDF || rec.SizeBytes != 5 || rec.Selected {
		t.Errorf("NewRecord() = %+v", rec)
	}

	_, err = NewRecord(path + ".missing")
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("NewRecord(missing) error = %v, want ErrFileNotFound", err)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0.00 B"},
		{1, "1.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
		{1024 * 1024 * 1024 * 1024, "1.00 TB"},
		{2048 * 1024 * 1024 * 1024 * 1024, "2048.00 TB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.n); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(time.Time{}); got != "" {
		t.Errorf("FormatTimestamp(zero) = %q", got)
	}
	ts := time.Date(2024, 3, 5, 7, 8, 9, 0, time.Local)
	if got := FormatTimestamp(ts); got != "2024-03-05 07:08:09" {
		t.Errorf("FormatTimestamp() = %q", got)
	}
}
