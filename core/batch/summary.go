package batch

import (
	"path/filepath"

	"github.com/ankit-chaubey/fileprops/core"
)

// Summary statuses reported for images.
const (
	StatusEXIFPresent = "EXIF present"
	StatusUnreadable  = "unreadable"
)

// summaryLines is how many fields of a PDF or Word section a summary keeps.
const summaryLines = 5

// Summarize condenses a report for the batch view: name, path and size,
// then the EXIF status of an image or the first fields of a PDF or Word
// section.
func Summarize(rep *core.Report) []core.Field {
	out := []core.Field{{Name: "FileName", Value: filepath.Base(rep.Path)}, {Name: "Path", Value: rep.Path}}
	if basic := rep.Section(core.SectionBasic); basic != nil {
		if v, ok := basic.Lookup("Size"); ok {
			out = append(out, core.Field{Name: "Size", Value: v})
		}
	}

	switch rep.Category {
	case core.CatImage:
		s := rep.Section(core.SectionEXIF)
		status := core.NoteNoEXIF
		switch {
		case s == nil || s.Err != nil:
			status = StatusUnreadable
		case s.Note == "":
			status = StatusEXIFPresent
		}
		out = append(out, core.Field{Name: "Status", Value: status})
	case core.CatPDF, core.CatDOCX, core.CatDOC:
		kind := core.SectionWord
		if rep.Category == core.CatPDF {
			kind = core.SectionPDF
		}
		s := rep.Section(kind)
		switch {
		case s == nil || s.Err != nil:
			out = append(out, core.Field{Name: "Status", Value: StatusUnreadable})
		case len(s.Fields) == 0 && s.Note != "":
			out = append(out, core.Field{Name: "Status", Value: s.Note})
		default:
			n := len(s.Fields)
			if n > summaryLines {
				n = summaryLines
			}
			out = append(out, s.Fields[:n]...)
		}
	}
	return out
}
