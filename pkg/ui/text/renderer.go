// Package text provides plain text output without any styling
package text

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/generate"
	"github.com/arthur-debert/cutter/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
	text   *display.TextRenderer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{
		output: output,
		text:   display.NewTextRenderer(output),
	}, nil
}

// RenderResult renders generation and inspection results as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *generate.Result:
		return r.text.RenderReport(display.NewReport(v))
	case *generate.InspectResult:
		return r.text.RenderInspect(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error and its details, one per line
func (r *Renderer) RenderError(err error) error {
	if _, werr := fmt.Fprintf(r.output, "Error: %v\n", err); werr != nil {
		return werr
	}
	var ce *errors.CutterError
	if !stderrors.As(err, &ce) {
		return nil
	}
	for _, k := range display.DetailKeys(ce.Details) {
		if _, werr := fmt.Fprintf(r.output, "  %s: %v\n", k, ce.Details[k]); werr != nil {
			return werr
		}
	}
	return nil
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
