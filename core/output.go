package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Printer handles all display output for the command line.
type Printer struct {
	JSON      bool
	Verbose   bool
	Quiet     bool
	Writer    io.Writer
	ErrWriter io.Writer
	Labels    *Labels
}

// NewPrinter creates a Printer writing to stdout and stderr.
func NewPrinter(jsonMode, verbose bool, loc Locale) *Printer {
	return &Printer{
		JSON:      jsonMode,
		Verbose:   verbose,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Labels:    LabelsFor(loc),
	}
}

// JSONField is the wire form of a Field.
type JSONField struct {
	Group string `json:"group,omitempty"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// JSONSection is the wire form of a Section.
type JSONSection struct {
	Kind   SectionKind `json:"kind"`
	Fields []JSONField `json:"fields"`
	Note   string      `json:"note,omitempty"`
	Error  string      `json:"error,omitempty"`
	Code   string      `json:"code,omitempty"`
}

// JSONReport is the wire form of a Report.
type JSONReport struct {
	Path     string        `json:"file"`
	Category Category      `json:"category"`
	Sections []JSONSection `json:"sections"`
}

// JSONOutcome is the wire form of an Outcome.
type JSONOutcome struct {
	Path      string      `json:"file"`
	Category  Category    `json:"category"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Code      string      `json:"code"`
	ElapsedMS int64       `json:"elapsed_ms"`
	Report    *JSONReport `json:"report,omitempty"`
}

// ToJSON converts r to its wire form.
func (r *Report) ToJSON() *JSONReport {
	out := &JSONReport{Path: r.Path, Category: r.Category, Sections: []JSONSection{}}
	for _, s := range r.Sections {
		js := JSONSection{Kind: s.Kind, Fields: []JSONField{}, Note: s.Note}
		for _, f := range s.Fields {
			js.Fields = append(js.Fields, JSONField{Group: f.Group, Name: f.Name, Value: f.Value})
		}
		if s.Err != nil {
			js.Error = s.Err.Error()
			js.Code = Code(s.Err)
		}
		out.Sections = append(out.Sections, js)
	}
	return out
}

// ToJSON converts o to its wire form.
func (o Outcome) ToJSON() JSONOutcome {
	out := JSONOutcome{
		Path:      o.Path,
		Category:  o.Category,
		Success:   o.Success,
		Message:   o.Message,
		Code:      Code(o.Err),
		ElapsedMS: o.Elapsed.Milliseconds(),
	}
	if o.Report != nil {
		out.Report = o.Report.ToJSON()
	}
	return out
}

// PrintReport renders a Report to the configured output.
func (p *Printer) PrintReport(r *Report) {
	if p.JSON {
		p.printJSON(r.ToJSON())
		return
	}
	p.printText(r)
}

func (p *Printer) printText(r *Report) {
	l := p.Labels
	fmt.Fprintf(p.Writer, "%s: %s\n", l.T("file"), r.Path)
	fmt.Fprintf(p.Writer, "%s: %s\n", l.T("category"), r.Category)

	for _, s := range r.Sections {
		fmt.Fprintln(p.Writer)
		fmt.Fprintf(p.Writer, "── %s ──\n", l.Section(s.Kind))
		if s.Err != nil {
			fmt.Fprintf(p.Writer, "  ✗ %v\n", s.Err)
			continue
		}
		group := ""
		for _, f := range s.Fields {
			if f.Group != group {
				group = f.Group
				fmt.Fprintf(p.Writer, "  [%s]\n", group)
			}
			fmt.Fprintf(p.Writer, "  %-30s %s\n", l.Field(f.Name)+":", l.T(f.Value))
		}
		if s.Note != "" {
			fmt.Fprintf(p.Writer, "  (%s)\n", l.T(s.Note))
		}
	}
}

// PrintOutcome prints the result of a single strip.
func (p *Printer) PrintOutcome(o Outcome) {
	if p.JSON {
		p.printJSON(o.ToJSON())
		return
	}
	if o.Success {
		p.PrintSuccess(fmt.Sprintf("%s: %s", o.Path, p.Labels.T(o.Message)))
		return
	}
	fmt.Fprintf(p.Writer, "✗ %s: %s\n", o.Path, o.Message)
}

// PrintOutcomes prints every outcome of a batch followed by the totals.
func (p *Printer) PrintOutcomes(outcomes []Outcome, processed int) {
	ok := 0
	for _, o := range outcomes {
		if o.Success {
			ok++
		}
	}
	if p.JSON {
		type batchJSON struct {
			Processed int           `json:"processed"`
			Succeeded int           `json:"succeeded"`
			Failed    int           `json:"failed"`
			Outcomes  []JSONOutcome `json:"outcomes"`
		}
		out := batchJSON{Processed: processed, Succeeded: ok, Failed: len(outcomes) - ok}
		for _, o := range outcomes {
			out.Outcomes = append(out.Outcomes, o.ToJSON())
		}
		p.printJSON(out)
		return
	}
	for _, o := range outcomes {
		if o.Report != nil && o.Success {
			continue
		}
		p.PrintOutcome(o)
	}
	l := p.Labels
	fmt.Fprintf(p.Writer, "%s: %d  %s: %d  %s: %d\n",
		l.T("processed"), processed, l.T("succeeded"), ok, l.T("failed"), len(outcomes)-ok)
}

// PrintFormats prints the capability table of every category.
func (p *Printer) PrintFormats(formats []FormatInfo) {
	if p.JSON {
		p.printJSON(formats)
		return
	}
	fmt.Fprintf(p.Writer, "%-8s %-6s %-6s %-28s %s\n", "FORMAT", "VIEW", "STRIP", "EXTENSIONS", "NOTES")
	for _, f := range formats {
		exts := ""
		for i, e := range f.Extensions {
			if i > 0 {
				exts += " "
			}
			exts += e
		}
		fmt.Fprintf(p.Writer, "%-8s %-6s %-6s %-28s %s\n", f.Category, yesNo(f.CanView), yesNo(f.CanStrip), exts, f.Notes)
	}
}

// PrintSummary prints the condensed fields of one batch-view report. JSON
// mode carries full reports in the outcomes instead.
func (p *Printer) PrintSummary(fields []Field) {
	if p.JSON {
		return
	}
	for _, f := range fields {
		fmt.Fprintf(p.Writer, "%s: %s\n", p.Labels.Field(f.Name), p.Labels.T(f.Value))
	}
	fmt.Fprintln(p.Writer)
}

// PrintLines prints preformatted lines.
func (p *Printer) PrintLines(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(p.Writer, line)
	}
}

// PrintValue writes v as indented JSON regardless of mode.
func (p *Printer) PrintValue(v interface{}) {
	p.printJSON(v)
}

func (p *Printer) printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(p.Writer, string(b))
}

// PrintSuccess prints a success message.
func (p *Printer) PrintSuccess(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.Writer, "✓ "+msg)
}

// PrintInfo prints an info line (suppressed in JSON and quiet mode).
func (p *Printer) PrintInfo(msg string) {
	if !p.JSON && !p.Quiet {
		fmt.Fprintln(p.Writer, msg)
	}
}

// PrintError prints err to the error stream, as a {code, message} object in
// JSON mode.
func (p *Printer) PrintError(err error) {
	if p.JSON {
		b, _ := json.Marshal(map[string]string{"code": Code(err), "message": err.Error()})
		fmt.Fprintln(p.ErrWriter, string(b))
		return
	}
	fmt.Fprintln(p.ErrWriter, "✗ Error: "+err.Error())
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
