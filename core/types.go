// Package core defines the shared types, interfaces, and handler registry
// for fileprops.
package core

import (
	"context"
	"time"
)

// Field represents a single reported property.
type Field struct {
	Group string // Sub-heading inside a section (e.g. "metadata", "pages"); empty for none
	Name  string // Canonical field name (e.g. "FileName", "Make", "Title")
	Value string // String representation of the value
}

// SectionKind names the kind of a report section.
type SectionKind string

const (
	SectionBasic SectionKind = "basic"
	SectionEXIF  SectionKind = "exif"
	SectionPDF   SectionKind = "pdf"
	SectionWord  SectionKind = "word"
	SectionTags  SectionKind = "tags"
)

// Placeholder values and notes shared by the handlers. Printers translate
// them; the core never emits localized text.
const (
	ValueNone           = "none"
	NoteNoEXIF          = "no EXIF"
	NoteDOCUnsupported  = "detailed properties of legacy .doc files require a Word automation host"
	NoteUnsupportedType = "unsupported file type for metadata extraction"
	MessageStripped     = "metadata removed"
	MessageRead         = "properties read"
)

// Section is the output of one extractor. A failed extraction keeps its
// error here instead of aborting the rest of the report.
type Section struct {
	Kind   SectionKind
	Fields []Field
	Note   string // Human-oriented remark, e.g. "no EXIF"
	Err    error
}

// Add appends a field to the section.
func (s *Section) Add(group, name, value string) {
	s.Fields = append(s.Fields, Field{Group: group, Name: name, Value: value})
}

// Lookup returns the value of the first field with the given name.
func (s *Section) Lookup(name string) (string, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Report holds all properties read from a single file, in display order.
type Report struct {
	Path     string
	Category Category
	Sections []Section
}

// Section returns the first section of the given kind, or nil.
func (r *Report) Section(kind SectionKind) *Section {
	for i := range r.Sections {
		if r.Sections[i].Kind == kind {
			return &r.Sections[i]
		}
	}
	return nil
}

// Outcome is the per-file result of a batch operation.
type Outcome struct {
	Path     string
	Category Category
	Success  bool
	Message  string
	Err      error
	Report   *Report // set for view operations
	Elapsed  time.Duration
}

// FileRecord is an entry of a batch working list.
type FileRecord struct {
	Path      string
	Category  Category
	SizeBytes int64
	Selected  bool
}

// FormatInfo describes what a category handler supports.
type FormatInfo struct {
	Name       string   // "Image"
	Category   Category // CatImage
	Extensions []string // [".jpg", ".jpeg", ...]
	CanView    bool
	CanStrip   bool
	Notes      string // Any caveats or notes
}

// Handler is the interface every category must implement.
type Handler interface {
	// View reads the category-specific properties of path.
	View(ctx context.Context, path string) Section
	// Strip removes the category-specific metadata of path, replacing the
	// file atomically.
	Strip(ctx context.Context, path string) error
	// Info returns the handler capabilities.
	Info() FormatInfo
}
