package expr

import (
	"strings"
	"unicode"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Functions returns the function table available to every expression
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"lower":         stdlib.LowerFunc,
		"upper":         stdlib.UpperFunc,
		"title":         stdlib.TitleFunc,
		"trimspace":     stdlib.TrimSpaceFunc,
		"trim":          stdlib.TrimFunc,
		"trimprefix":    stdlib.TrimPrefixFunc,
		"trimsuffix":    stdlib.TrimSuffixFunc,
		"chomp":         stdlib.ChompFunc,
		"indent":        stdlib.IndentFunc,
		"replace":       stdlib.ReplaceFunc,
		"regex_replace": stdlib.RegexReplaceFunc,
		"regex":         stdlib.RegexFunc,
		"split":         stdlib.SplitFunc,
		"join":          stdlib.JoinFunc,
		"contains":      stdlib.ContainsFunc,
		"length":        stdlib.LengthFunc,
		"strlen":        stdlib.StrlenFunc,
		"substr":        stdlib.SubstrFunc,
		"reverse":       stdlib.ReverseFunc,
		"format":        stdlib.FormatFunc,
		"coalesce":      stdlib.CoalesceFunc,
		"concat":        stdlib.ConcatFunc,
		"jsonencode":    stdlib.JSONEncodeFunc,
		"slugify":       caseFunc(func(w []string) string { return strings.Join(lowerAll(w), "-") }),
		"kebab":         caseFunc(func(w []string) string { return strings.Join(lowerAll(w), "-") }),
		"snake":         caseFunc(func(w []string) string { return strings.Join(lowerAll(w), "_") }),
		"camel":         caseFunc(camel),
		"pascal":        caseFunc(pascal),
	}
}

func caseFunc(join func([]string) string) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "str", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			return cty.StringVal(join(words(args[0].AsString()))), nil
		},
	})
}

// words splits s on non-alphanumerics and lower-to-upper transitions:
// "My HTTPServer_v2" -> [My HTTP Server v2]
func words(s string) []string {
	var out []string
	var cur []rune
	rs := []rune(s)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return out
}

func lowerAll(w []string) []string {
	out := make([]string, len(w))
	for i, s := range w {
		out[i] = strings.ToLower(s)
	}
	return out
}

func capitalize(s string) string {
	rs := []rune(strings.ToLower(s))
	if len(rs) == 0 {
		return s
	}
	rs[0] = unicode.ToUpper(rs[0])
	return string(rs)
}

func pascal(w []string) string {
	var b strings.Builder
	for _, s := range w {
		b.WriteString(capitalize(s))
	}
	return b.String()
}

func camel(w []string) string {
	if len(w) == 0 {
		return ""
	}
	return strings.ToLower(w[0]) + pascal(w[1:])
}
