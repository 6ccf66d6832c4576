// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	stderrors "errors"
	"io"

	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/ui/display"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	output  io.Writer
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) (*Renderer, error) {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{
		output:  output,
		encoder: encoder,
	}, nil
}

// RenderResult renders any result type as JSON
func (r *Renderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(result)
}

type errorObject struct {
	Error    string                 `json:"error"`
	Code     string                 `json:"code,omitempty"`
	Category string                 `json:"category,omitempty"`
	Details  map[string]interface{} `json:"details,omitempty"`
}

// RenderError renders an error as JSON, with its code and details when it
// carries them
func (r *Renderer) RenderError(err error) error {
	obj := errorObject{Error: err.Error()}
	var ce *errors.CutterError
	if stderrors.As(err, &ce) {
		obj.Error = display.ErrorMessage(ce)
		obj.Code = string(ce.Code)
		obj.Category = string(ce.Category())
		obj.Details = ce.Details
	}
	return r.encoder.Encode(obj)
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	messageObj := map[string]string{
		"message": msg,
	}
	return r.encoder.Encode(messageObj)
}

