// Package schema loads a template's variable schema.
//
// The schema lives in the template root as YAML or JSON. Both are decoded
// through yaml.v3 nodes so that question order is preserved exactly as
// written:
//
//	schemaVersion: v1
//	questions:
//	  project_name:
//	    type: string
//	    help: Project name
//	  project_slug:
//	    type: string
//	    default: ${slugify(project_name)}
package schema

import (
	"github.com/arthur-debert/cutter/pkg/logging"
	"github.com/arthur-debert/cutter/pkg/types"
)

var log = logging.GetLogger("schema")

// SupportedVersions lists the accepted schemaVersion values
var SupportedVersions = []string{"v1"}

// Schema is a parsed schema document
type Schema struct {
	Version   string         `json:"version"`
	Source    string         `json:"source"`
	Variables []VariableSpec `json:"variables"`
}

// VariableSpec declares one template variable
type VariableSpec struct {
	Name string     `json:"name"`
	Kind types.Kind `json:"kind"`
	Help string     `json:"help,omitempty"`

	// Default is a string (possibly a template), bool, int or []string.
	Default    any  `json:"default,omitempty"`
	HasDefault bool `json:"has_default"`

	// Choices constrains choice variables and multi-select lists
	Choices []string `json:"choices,omitempty"`

	Validation *Validation `json:"validation,omitempty"`

	// AskIf is a condition; when false the variable takes its default unprompted
	AskIf string `json:"ask_if,omitempty"`

	Secret *Secret `json:"secret,omitempty"`
}

// Validation is a condition evaluated with the candidate value bound under
// the variable's own name, plus the message shown when it is false
type Validation struct {
	Condition    string `json:"condition"`
	ErrorMessage string `json:"error_message"`
}

// Secret marks masked input, optionally asked twice
type Secret struct {
	Confirm       bool   `json:"confirm"`
	MismatchError string `json:"mismatch_error,omitempty"`
}

// Lookup returns the variable with the given name
func (s *Schema) Lookup(name string) (VariableSpec, bool) {
	for _, v := range s.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return VariableSpec{}, false
}

// Names returns variable names in declaration order
func (s *Schema) Names() []string {
	out := make([]string, len(s.Variables))
	for i, v := range s.Variables {
		out[i] = v.Name
	}
	return out
}
