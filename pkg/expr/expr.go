// Package expr evaluates the expressions and string templates that appear in
// schema defaults, validation conditions, ask_if guards, file names and file
// contents.
//
// The default engine is HCL native syntax: templates interpolate with
// ${name} and support %{if cond}...%{endif} and %{for x in xs}...%{endfor};
// expressions are plain HCL expressions such as `age >= 18 && name != ""`.
// Use $${ to emit a literal ${.
package expr

import (
	"github.com/arthur-debert/cutter/pkg/types"
)

// Evaluator renders templates and evaluates expressions against answers.
// Referencing a name absent from the bindings is an error.
type Evaluator interface {
	// Render substitutes bindings into a template string
	Render(template string, bindings *types.Answers) (string, error)
	// Evaluate returns the Go value of an expression
	Evaluate(expression string, bindings *types.Answers) (any, error)
	// EvaluateBool evaluates an expression that must yield a boolean
	EvaluateBool(expression string, bindings *types.Answers) (bool, error)
}
