// Package resolver turns a schema and optional pre-supplied values into a
// complete, type-checked Answers collection.
//
// Variables are resolved strictly in declaration order. Defaults, help
// texts, ask_if guards and validation conditions only see variables
// declared before them; a reference to a later one fails as an unknown
// variable.
package resolver

import (
	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/expr"
	"github.com/arthur-debert/cutter/pkg/logging"
	"github.com/arthur-debert/cutter/pkg/schema"
	"github.com/arthur-debert/cutter/pkg/types"
)

var log = logging.GetLogger("resolver")

// Question is what a Prompter shows for one variable
type Question struct {
	Name    string
	Help    string
	Kind    types.Kind
	Choices []string

	Default    any
	HasDefault bool

	Secret *schema.Secret

	// Problem is the rendered validation message from the previous attempt
	Problem string
}

// Prompter obtains a value from the user. The returned value must match
// the question's kind: string, bool, int or []string.
type Prompter interface {
	Ask(q Question) (any, error)
}

// Resolver resolves variables against an evaluator and an optional prompter.
// Without a prompter resolution is non-interactive.
type Resolver struct {
	eval     expr.Evaluator
	prompter Prompter
}

func New(eval expr.Evaluator, prompter Prompter) *Resolver {
	return &Resolver{eval: eval, prompter: prompter}
}

// Interactive reports whether the resolver prompts for values
func (r *Resolver) Interactive() bool {
	return r.prompter != nil
}

// Resolve produces frozen Answers for specs. Supplied values take precedence
// over defaults and prompting and are never coerced between kinds.
func (r *Resolver) Resolve(specs []schema.VariableSpec, supplied map[string]any) (*types.Answers, error) {
	done := logging.LogOperationStart(log, "resolve")
	defer done()

	declared := make(map[string]bool, len(specs))
	for _, s := range specs {
		declared[s.Name] = true
	}
	for name := range supplied {
		if !declared[name] {
			log.Warn().Str("variable", name).Msg("Ignoring supplied value for undeclared variable")
		}
	}

	answers := types.NewAnswers()
	for _, spec := range specs {
		value, origin, err := r.resolveOne(spec, answers, supplied)
		if err != nil {
			return nil, err
		}
		answers.Set(spec.Name, value)

		ev := log.Debug().Str("variable", spec.Name).Str("origin", origin)
		if spec.Secret == nil {
			ev = ev.Str("value", describe(value))
		}
		ev.Msg("Resolved variable")
	}

	answers.Freeze()
	return answers, nil
}

func (r *Resolver) resolveOne(spec schema.VariableSpec, answers *types.Answers, supplied map[string]any) (any, string, error) {
	if raw, ok := supplied[spec.Name]; ok {
		value, err := CheckValue(spec, raw)
		if err != nil {
			return nil, "", err
		}
		if err := r.enforce(spec, value, answers); err != nil {
			return nil, "", err
		}
		return value, "supplied", nil
	}

	def, hasDefault, err := r.defaultFor(spec, answers)
	if err != nil {
		return nil, "", err
	}

	if spec.AskIf != "" {
		ask, err := r.eval.EvaluateBool(spec.AskIf, answers)
		if err != nil {
			return nil, "", withVariable(err, spec.Name)
		}
		if !ask {
			value := spec.Kind.Zero()
			if hasDefault {
				value = def
			}
			if err := r.enforce(spec, value, answers); err != nil {
				return nil, "", err
			}
			return value, "skipped", nil
		}
	}

	if r.prompter == nil {
		if !hasDefault {
			return nil, "", errors.Newf(errors.ErrMissingValue, "no value for %q: it has no default and prompting is disabled", spec.Name).
				WithDetail("variable", spec.Name)
		}
		if err := r.enforce(spec, def, answers); err != nil {
			return nil, "", err
		}
		return def, "default", nil
	}

	value, err := r.prompt(spec, def, hasDefault, answers)
	if err != nil {
		return nil, "", err
	}
	return value, "prompt", nil
}

// prompt asks until the answer passes type checking and validation
func (r *Resolver) prompt(spec schema.VariableSpec, def any, hasDefault bool, answers *types.Answers) (any, error) {
	help, err := r.eval.Render(spec.Help, answers)
	if err != nil {
		return nil, withVariable(err, spec.Name)
	}

	q := Question{
		Name:       spec.Name,
		Help:       help,
		Kind:       spec.Kind,
		Choices:    spec.Choices,
		Default:    def,
		HasDefault: hasDefault,
		Secret:     spec.Secret,
	}

	for {
		raw, err := r.prompter.Ask(q)
		if err != nil {
			return nil, err
		}

		value, err := CheckValue(spec, raw)
		if err != nil {
			q.Problem = errorMessage(err)
			continue
		}

		msg, ok, err := r.validate(spec, value, answers)
		if err != nil {
			return nil, err
		}
		if ok {
			return value, nil
		}
		log.Debug().Str("variable", spec.Name).Str("problem", msg).Msg("Answer rejected, asking again")
		q.Problem = msg
	}
}

// defaultFor computes the default against the answers so far
func (r *Resolver) defaultFor(spec schema.VariableSpec, answers *types.Answers) (any, bool, error) {
	if !spec.HasDefault {
		return nil, false, nil
	}

	switch d := spec.Default.(type) {
	case string:
		if inner, ok := expr.Unwrap(d); ok && spec.Kind != types.KindString && spec.Kind != types.KindChoice {
			return r.typedDefault(spec, inner, answers)
		}
		rendered, err := r.eval.Render(d, answers)
		if err != nil {
			return nil, false, withVariable(err, spec.Name)
		}
		v, err := ParseValue(spec, rendered)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	case []string:
		out := make([]string, len(d))
		for i, item := range d {
			rendered, err := r.eval.Render(item, answers)
			if err != nil {
				return nil, false, withVariable(err, spec.Name)
			}
			out[i] = rendered
		}
		v, err := CheckValue(spec, out)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	default:
		v, err := CheckValue(spec, d)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}
}

// typedDefault evaluates a default written as a single interpolation, so
// "${port == 443}" yields a bool and "${split(",", csv)}" a list. A string
// result is parsed like rendered text.
func (r *Resolver) typedDefault(spec schema.VariableSpec, expression string, answers *types.Answers) (any, bool, error) {
	v, err := r.eval.Evaluate(expression, answers)
	if err != nil {
		return nil, false, withVariable(err, spec.Name)
	}
	if s, ok := v.(string); ok {
		v, err = ParseValue(spec, s)
	} else {
		v, err = CheckValue(spec, v)
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// validate evaluates the variable's condition with the candidate bound
// under its own name. It returns the rendered message when the check fails.
func (r *Resolver) validate(spec schema.VariableSpec, value any, answers *types.Answers) (string, bool, error) {
	if spec.Validation == nil {
		return "", true, nil
	}
	bindings := answers.With(spec.Name, value)

	ok, err := r.eval.EvaluateBool(spec.Validation.Condition, bindings)
	if err != nil {
		return "", false, withVariable(err, spec.Name)
	}
	if ok {
		return "", true, nil
	}

	msg, err := r.eval.Render(spec.Validation.ErrorMessage, bindings)
	if err != nil {
		return "", false, withVariable(err, spec.Name)
	}
	return msg, false, nil
}

// enforce validates a value that cannot be re-asked
func (r *Resolver) enforce(spec schema.VariableSpec, value any, answers *types.Answers) error {
	msg, ok, err := r.validate(spec, value, answers)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(errors.ErrValidationFailed, msg).
			WithDetail("variable", spec.Name)
	}
	return nil
}

func withVariable(err error, name string) error {
	if ce, ok := err.(*errors.CutterError); ok {
		if _, exists := ce.Details["in_variable"]; !exists {
			ce.WithDetail("in_variable", name)
		}
	}
	return err
}

func errorMessage(err error) string {
	if ce, ok := err.(*errors.CutterError); ok {
		return ce.Message
	}
	return err.Error()
}
