package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Category enumerates every handled file category.
type Category string

const (
	CatImage Category = "image"
	CatPDF   Category = "pdf"
	CatDOCX  Category = "docx"
	CatDOC   Category = "doc"
	CatOther Category = "other"
)

// Categories lists all categories in display order.
var Categories = []Category{CatImage, CatPDF, CatDOCX, CatDOC, CatOther}

// extMap maps lowercase extensions to categories.
var extMap = map[string]Category{
	".jpg":  CatImage,
	".jpeg": CatImage,
	".png":  CatImage,
	".gif":  CatImage,
	".bmp":  CatImage,

	".pdf": CatPDF,

	".docx": CatDOCX,
	".doc":  CatDOC,
}

// Classify returns the category of path from its extension alone.
// Anything unrecognised is CatOther; callers decide whether to skip it.
func Classify(path string) Category {
	ext := strings.ToLower(filepath.Ext(path))
	if c, ok := extMap[ext]; ok {
		return c
	}
	return CatOther
}

// ExtensionsFor returns the extensions mapped to c.
func ExtensionsFor(c Category) []string {
	var out []string
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".pdf", ".docx", ".doc"} {
		if extMap[ext] == c {
			out = append(out, ext)
		}
	}
	return out
}

// ParseCategory converts a category name back to a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == strings.ToLower(s) {
			return c, nil
		}
	}
	return CatOther, fmt.Errorf("unknown category %q", s)
}

// NewRecord stats path and returns a FileRecord for a batch list.
func NewRecord(path string) (FileRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileRecord{}, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return FileRecord{}, err
	}
	return FileRecord{
		Path:      path,
		Category:  Classify(path),
		SizeBytes: info.Size(),
	}, nil
}
