// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/cutter/pkg/cobrax/topics"
	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/generate"
	"github.com/arthur-debert/cutter/pkg/ui/display"
	"github.com/arthur-debert/cutter/pkg/ui/output/styles"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output: pterm prefixes for status lines,
// the lipgloss theme for everything else and glamour for READMEs
type Renderer struct {
	output   io.Writer
	markdown topics.Renderer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{
		output:   w,
		markdown: topics.NewGlamourRenderer(),
	}, nil
}

// RenderResult renders generation and inspection results
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *generate.Result:
		return r.renderReport(display.NewReport(v))
	case *generate.InspectResult:
		return r.renderInspect(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderReport(rep display.Report) error {
	path := styles.GetStyle("FilePath")
	muted := styles.GetStyle("Muted")

	var b strings.Builder
	for _, e := range rep.Entries {
		if e.IsDir {
			fmt.Fprintf(&b, "  %s\n", path.Render(e.Path+"/"))
		} else {
			fmt.Fprintf(&b, "  %s\n", e.Path)
		}
	}
	if _, err := io.WriteString(r.output, b.String()); err != nil {
		return err
	}

	for _, h := range rep.Hooks {
		pterm.Info.WithWriter(r.output).Printfln("Ran hook %s", muted.Render(h))
	}
	dirs, files := rep.Counts()
	pterm.Success.WithWriter(r.output).Printfln("Generated %s %s",
		path.Render(rep.OutputDir),
		muted.Render(fmt.Sprintf("(%d files, %d directories)", files, dirs)))
	return nil
}

func (r *Renderer) renderInspect(res *generate.InspectResult) error {
	header := styles.GetStyle("Header")
	name := styles.GetStyle("Variable")
	kind := styles.GetStyle("Kind")
	def := styles.GetStyle("Default")
	muted := styles.GetStyle("Muted")

	var b strings.Builder
	b.WriteString(header.Render(res.Template))
	b.WriteString("\n")

	rows := display.Variables(res.Schema)
	fmt.Fprintf(&b, "Variables %s\n", muted.Render(fmt.Sprintf("(%d)", len(rows))))
	for _, v := range rows {
		fmt.Fprintf(&b, "  %s %s", name.Render(v.Name), kind.Render(v.Kind))
		if v.Default != "" {
			fmt.Fprintf(&b, " = %s", def.Render(v.Default))
		}
		if len(v.Notes) > 0 {
			fmt.Fprintf(&b, "  %s", muted.Render(strings.Join(v.Notes, "; ")))
		}
		b.WriteString("\n")
		if v.Help != "" {
			fmt.Fprintf(&b, "      %s\n", muted.Render(v.Help))
		}
	}

	if paths := res.Hooks.Paths(); len(paths) > 0 {
		b.WriteString("\nHooks\n")
		for _, p := range paths {
			fmt.Fprintf(&b, "  %s\n", styles.GetStyle("FilePath").Render(p))
		}
	}

	if len(res.Ignore) > 0 {
		b.WriteString("\nIgnore rules\n")
		for _, rule := range res.Ignore {
			fmt.Fprintf(&b, "  %s %s\n", rule.String(), muted.Render(rule.Source))
		}
	}

	if res.Readme != "" {
		b.WriteString("\n")
		b.WriteString(r.markdown.Render(res.Readme, ".md"))
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error with its code and details
func (r *Renderer) RenderError(err error) error {
	var ce *errors.CutterError
	if !stderrors.As(err, &ce) {
		pterm.Error.WithWriter(r.output).Println(err.Error())
		return nil
	}

	pterm.Error.WithWriter(r.output).Printfln("%s %s",
		display.ErrorMessage(ce), styles.GetStyle("ErrorCode").Render("["+string(ce.Code)+"]"))
	detail := styles.GetStyle("Detail")
	for _, k := range display.DetailKeys(ce.Details) {
		fmt.Fprintln(r.output, detail.Render(fmt.Sprintf("%s: %v", k, ce.Details[k])))
	}
	return nil
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	pterm.Info.WithWriter(r.output).Println(msg)
	return nil
}
