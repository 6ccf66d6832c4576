package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/cutter/pkg/generate"
)

// TextRenderer writes results as plain text
type TextRenderer struct {
	w io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// RenderReport lists every created path under the output directory
func (r *TextRenderer) RenderReport(rep Report) error {
	var b strings.Builder
	dirs, files := rep.Counts()
	fmt.Fprintf(&b, "Generated %s from %s (%d files, %d directories)\n", rep.OutputDir, rep.Template, files, dirs)
	for _, e := range rep.Entries {
		if e.IsDir {
			fmt.Fprintf(&b, "  %s/\n", e.Path)
		} else {
			fmt.Fprintf(&b, "  %s\n", e.Path)
		}
	}
	for _, h := range rep.Hooks {
		fmt.Fprintf(&b, "Ran hook %s\n", h)
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// RenderInspect describes a template: variables, hooks, ignore rules and
// its README as raw text
func (r *TextRenderer) RenderInspect(res *generate.InspectResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Template: %s\n", res.Template)
	if res.Schema != nil {
		fmt.Fprintf(&b, "Schema:   %s (%s)\n", res.Schema.Source, res.Schema.Version)
	}

	rows := Variables(res.Schema)
	fmt.Fprintf(&b, "\nVariables (%d):\n", len(rows))
	for _, v := range rows {
		b.WriteString(VariableLine(v))
		b.WriteString("\n")
		if v.Help != "" {
			fmt.Fprintf(&b, "      %s\n", v.Help)
		}
	}

	if paths := res.Hooks.Paths(); len(paths) > 0 {
		b.WriteString("\nHooks:\n")
		for _, p := range paths {
			fmt.Fprintf(&b, "  %s\n", p)
		}
	}

	if len(res.Ignore) > 0 {
		b.WriteString("\nIgnore rules:\n")
		for _, rule := range res.Ignore {
			fmt.Fprintf(&b, "  %s\n", rule.String())
		}
	}

	if res.Readme != "" {
		b.WriteString("\n")
		b.WriteString(res.Readme)
		if !strings.HasSuffix(res.Readme, "\n") {
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// VariableLine formats a variable as "  name (kind) = default  [notes]"
func VariableLine(v Variable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s (%s)", v.Name, v.Kind)
	if v.Default != "" {
		fmt.Fprintf(&b, " = %s", v.Default)
	}
	if len(v.Notes) > 0 {
		fmt.Fprintf(&b, "  [%s]", strings.Join(v.Notes, "; "))
	}
	return b.String()
}
