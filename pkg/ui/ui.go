// Package ui renders generation and inspection results, and errors, as
// styled terminal output, plain text or JSON.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/cutter/pkg/ui/json"
	"github.com/arthur-debert/cutter/pkg/ui/terminal"
	"github.com/arthur-debert/cutter/pkg/ui/text"
)

// Renderer is implemented by the terminal, text and json packages
type Renderer interface {
	// RenderResult renders a *generate.Result or *generate.InspectResult
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer returns the renderer for format. FormatAuto picks terminal
// output only when output is a terminal.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		file, _ := output.(*os.File)
		return NewRenderer(DetectFormat(file), output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
