package resolver

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/schema"
	"github.com/arthur-debert/cutter/pkg/types"
)

// CheckValue type-checks a supplied value against the variable's kind and
// normalises its Go representation. It never converts between kinds.
func CheckValue(spec schema.VariableSpec, v any) (any, error) {
	mismatch := func() error {
		return errors.Newf(errors.ErrTypeMismatch, "variable %q expects %s, got %T", spec.Name, spec.Kind, v).
			WithDetail("variable", spec.Name).
			WithDetail("kind", string(spec.Kind))
	}

	switch spec.Kind {
	case types.KindString:
		s, ok := v.(string)
		if !ok {
			return nil, mismatch()
		}
		return s, nil

	case types.KindChoice:
		s, ok := v.(string)
		if !ok {
			return nil, mismatch()
		}
		if !slices.Contains(spec.Choices, s) {
			return nil, notAChoice(spec, s)
		}
		return s, nil

	case types.KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, mismatch()
		}
		return b, nil

	case types.KindInt:
		switch n := v.(type) {
		case int:
			return n, nil
		case int64:
			return int(n), nil
		case float64:
			if n != math.Trunc(n) || math.IsInf(n, 0) {
				return nil, mismatch()
			}
			return int(n), nil
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return int(i), nil
			}
			f, err := n.Float64()
			if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
				return nil, mismatch()
			}
			return int(f), nil
		}
		return nil, mismatch()

	case types.KindList:
		var out []string
		switch l := v.(type) {
		case []string:
			out = append([]string{}, l...)
		case []any:
			out = make([]string, 0, len(l))
			for _, item := range l {
				s, ok := item.(string)
				if !ok {
					return nil, mismatch()
				}
				out = append(out, s)
			}
		default:
			return nil, mismatch()
		}
		if len(spec.Choices) > 0 {
			for _, s := range out {
				if !slices.Contains(spec.Choices, s) {
					return nil, notAChoice(spec, s)
				}
			}
		}
		return out, nil
	}

	return nil, errors.Newf(errors.ErrInternal, "variable %q has unknown kind %q", spec.Name, spec.Kind)
}

// ParseValue converts text into the variable's kind. It is used for
// rendered defaults and for name=value pairs given on the command line.
func ParseValue(spec schema.VariableSpec, s string) (any, error) {
	switch spec.Kind {
	case types.KindBool:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "y", "on", "1":
			return true, nil
		case "false", "no", "n", "off", "0":
			return false, nil
		}
		return nil, errors.Newf(errors.ErrTypeMismatch, "variable %q expects bool, got %q", spec.Name, s).
			WithDetail("variable", spec.Name)

	case types.KindInt:
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, errors.Newf(errors.ErrTypeMismatch, "variable %q expects int, got %q", spec.Name, s).
				WithDetail("variable", spec.Name)
		}
		return n, nil

	case types.KindList:
		out := []string{}
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return CheckValue(spec, out)

	case types.KindChoice:
		return CheckValue(spec, s)
	}
	return s, nil
}

func notAChoice(spec schema.VariableSpec, s string) error {
	return errors.Newf(errors.ErrTypeMismatch, "variable %q: %q is not one of %s", spec.Name, s, strings.Join(spec.Choices, ", ")).
		WithDetail("variable", spec.Name).
		WithDetail("choices", spec.Choices)
}

func describe(v any) string {
	if l, ok := v.([]string); ok {
		return strings.Join(l, ", ")
	}
	return fmt.Sprint(v)
}
