// Package display turns generation and inspection results into flat rows
// that the text and terminal renderers lay out.
package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/generate"
	"github.com/arthur-debert/cutter/pkg/schema"
)

// Variable is one schema variable as shown by inspect
type Variable struct {
	Name    string
	Kind    string
	Default string
	Help    string
	// Notes are short markers: "secret", "ask_if ...", "validated", "choices ..."
	Notes []string
}

// Entry is a created path in the generation report
type Entry struct {
	Path  string
	IsDir bool
}

// Report is the generation summary
type Report struct {
	OutputDir string
	Template  string
	Remote    bool
	Entries   []Entry
	Hooks     []string
}

// NewReport builds the report for a generation result. Entries are sorted
// so directories come right before their contents.
func NewReport(r *generate.Result) Report {
	rep := Report{
		OutputDir: r.OutputDir,
		Template:  r.Template,
		Remote:    r.Remote,
		Hooks:     r.Hooks,
	}
	for _, d := range r.Dirs {
		rep.Entries = append(rep.Entries, Entry{Path: d, IsDir: true})
	}
	for _, f := range r.Files {
		rep.Entries = append(rep.Entries, Entry{Path: f})
	}
	sort.SliceStable(rep.Entries, func(i, j int) bool {
		return rep.Entries[i].Path < rep.Entries[j].Path
	})
	return rep
}

// Counts returns the number of directories and files
func (r Report) Counts() (dirs, files int) {
	for _, e := range r.Entries {
		if e.IsDir {
			dirs++
		} else {
			files++
		}
	}
	return dirs, files
}

// Variables flattens a schema into rows in declaration order
func Variables(s *schema.Schema) []Variable {
	if s == nil {
		return nil
	}
	rows := make([]Variable, 0, len(s.Variables))
	for _, v := range s.Variables {
		row := Variable{Name: v.Name, Kind: string(v.Kind), Help: v.Help}
		if v.HasDefault && v.Secret == nil {
			row.Default = formatDefault(v.Default)
		}
		if len(v.Choices) > 0 {
			row.Notes = append(row.Notes, "choices "+strings.Join(v.Choices, "|"))
		}
		if v.AskIf != "" {
			row.Notes = append(row.Notes, "ask_if "+v.AskIf)
		}
		if v.Validation != nil {
			row.Notes = append(row.Notes, "validated")
		}
		if v.Secret != nil {
			row.Notes = append(row.Notes, "secret")
		}
		rows = append(rows, row)
	}
	return rows
}

func formatDefault(v any) string {
	if l, ok := v.([]string); ok {
		return "[" + strings.Join(l, ", ") + "]"
	}
	return fmt.Sprint(v)
}

// DetailKeys returns the error detail keys worth showing, sorted. Hook
// output is left out since the hook already wrote it to the terminal.
func DetailKeys(details map[string]interface{}) []string {
	keys := make([]string, 0, len(details))
	for k := range details {
		if k == "output" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ErrorMessage is the error's message followed by its cause, without the
// code prefix
func ErrorMessage(ce *errors.CutterError) string {
	if ce.Wrapped != nil {
		return ce.Message + ": " + ce.Wrapped.Error()
	}
	return ce.Message
}
