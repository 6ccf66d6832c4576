package generate

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/resolver"
	"github.com/arthur-debert/cutter/pkg/schema"
)

// LoadAnswers reads a pre-supplied answers document: one JSON object
// mapping variable names to values. Numbers are kept as json.Number so
// that integral checks stay exact.
func LoadAnswers(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrAnswersInvalid, "answers document is not valid JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.ErrAnswersInvalid, "answers document has content after the JSON object")
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrAnswersInvalid, "answers document must be a JSON object")
	}
	return obj, nil
}

// ParseSet splits name=value pairs
func ParseSet(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Newf(errors.ErrAnswersInvalid, "invalid --set value %q, expected name=value", p).
				WithDetail("value", p)
		}
		out[name] = value
	}
	return out, nil
}

// mergeSet parses command-line values by kind and layers them over the
// answers document
func mergeSet(s *schema.Schema, answers map[string]any, set map[string]string) (map[string]any, error) {
	merged := make(map[string]any, len(answers)+len(set))
	for k, v := range answers {
		merged[k] = v
	}
	for name, raw := range set {
		spec, ok := s.Lookup(name)
		if !ok {
			log.Warn().Str("variable", name).Msg("Ignoring --set for undeclared variable")
			continue
		}
		v, err := resolver.ParseValue(spec, raw)
		if err != nil {
			return nil, err
		}
		merged[name] = v
	}
	return merged, nil
}
