package expr

import (
	"strings"

	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/logging"
	"github.com/arthur-debert/cutter/pkg/types"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
)

var log = logging.GetLogger("expr")

// HCL evaluates HCL native-syntax expressions and templates
type HCL struct {
	functions map[string]function.Function
}

var _ Evaluator = (*HCL)(nil)

// NewHCL returns an evaluator with the standard function table
func NewHCL() *HCL {
	return &HCL{functions: Functions()}
}

// IsTemplate reports whether s contains interpolation or directive markers
func IsTemplate(s string) bool {
	return strings.Contains(s, "${") || strings.Contains(s, "%{")
}

// Unwrap returns the expression inside a template made of exactly one
// interpolation, such as "${base + 80}". Such a template can be evaluated
// for a typed value instead of being rendered to text.
func Unwrap(template string) (string, bool) {
	if !strings.HasPrefix(strings.TrimSpace(template), "${") {
		return "", false
	}
	parsed, diags := hclsyntax.ParseTemplate([]byte(template), "template", hcl.InitialPos)
	if diags.HasErrors() {
		return "", false
	}
	wrap, ok := parsed.(*hclsyntax.TemplateWrapExpr)
	if !ok {
		return "", false
	}
	rng := wrap.Wrapped.Range()
	return template[rng.Start.Byte:rng.End.Byte], true
}

// Render renders a template. Strings without markers are returned unchanged.
func (h *HCL) Render(template string, bindings *types.Answers) (string, error) {
	if !IsTemplate(template) {
		return template, nil
	}

	parsed, diags := hclsyntax.ParseTemplate([]byte(template), "template", hcl.InitialPos)
	if diags.HasErrors() {
		return "", errors.Wrap(diags, errors.ErrRenderFailed, "invalid template syntax").
			WithDetail("template", template)
	}

	val, err := h.eval(parsed, template, bindings)
	if err != nil {
		return "", err
	}

	str, convErr := convert.Convert(val, cty.String)
	if convErr != nil || str.IsNull() || !str.IsKnown() {
		return "", errors.Newf(errors.ErrRenderFailed, "template produced a %s, not a string", val.Type().FriendlyName()).
			WithDetail("template", template)
	}
	return str.AsString(), nil
}

// Evaluate evaluates an expression and returns its Go value
func (h *HCL) Evaluate(expression string, bindings *types.Answers) (any, error) {
	parsed, diags := hclsyntax.ParseExpression([]byte(expression), "expression", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, errors.Wrap(diags, errors.ErrRenderFailed, "invalid expression syntax").
			WithDetail("expression", expression)
	}

	val, err := h.eval(parsed, expression, bindings)
	if err != nil {
		return nil, err
	}

	out, convErr := FromCtyValue(val)
	if convErr != nil {
		return nil, errors.Wrap(convErr, errors.ErrRenderFailed, "cannot use expression result").
			WithDetail("expression", expression)
	}
	return out, nil
}

// EvaluateBool evaluates a condition. A condition written as a template
// (containing ${) is rendered first and must produce "true" or "false".
func (h *HCL) EvaluateBool(expression string, bindings *types.Answers) (bool, error) {
	var val cty.Value
	if IsTemplate(expression) {
		s, err := h.Render(expression, bindings)
		if err != nil {
			return false, err
		}
		val = cty.StringVal(strings.TrimSpace(s))
	} else {
		parsed, diags := hclsyntax.ParseExpression([]byte(expression), "condition", hcl.InitialPos)
		if diags.HasErrors() {
			return false, errors.Wrap(diags, errors.ErrRenderFailed, "invalid condition syntax").
				WithDetail("expression", expression)
		}
		var err error
		if val, err = h.eval(parsed, expression, bindings); err != nil {
			return false, err
		}
	}

	b, err := convert.Convert(val, cty.Bool)
	if err != nil || b.IsNull() || !b.IsKnown() {
		return false, errors.Newf(errors.ErrRenderFailed, "condition must be a bool, got %s", val.Type().FriendlyName()).
			WithDetail("expression", expression)
	}
	return b.True(), nil
}

func (h *HCL) eval(e hclsyntax.Expression, src string, bindings *types.Answers) (cty.Value, error) {
	vars, err := h.variables(bindings)
	if err != nil {
		return cty.NilVal, err
	}

	for _, traversal := range e.Variables() {
		name := traversal.RootName()
		if _, ok := vars[name]; !ok {
			log.Debug().Str("variable", name).Str("source", src).Msg("Reference to undefined variable")
			return cty.NilVal, errors.Newf(errors.ErrUndefinedVariable, "unknown variable %q", name).
				WithDetail("variable", name).
				WithDetail("expression", src)
		}
	}

	ctx := &hcl.EvalContext{Variables: vars, Functions: h.functions}
	val, diags := e.Value(ctx)
	if diags.HasErrors() {
		return cty.NilVal, errors.Wrap(diags, errors.ErrRenderFailed, "evaluation failed").
			WithDetail("expression", src)
	}
	return val, nil
}

func (h *HCL) variables(bindings *types.Answers) (map[string]cty.Value, error) {
	vars := make(map[string]cty.Value, bindings.Len())
	for _, name := range bindings.Names() {
		v, _ := bindings.Get(name)
		cv, err := ToCtyValue(v)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "cannot bind variable %q", name)
		}
		vars[name] = cv
	}
	return vars, nil
}
