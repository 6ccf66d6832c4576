package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/expr"
	"github.com/arthur-debert/cutter/pkg/types"
	"gopkg.in/yaml.v3"
)

// Load reads the first schema file from fileNames that exists in templateDir
func Load(templateDir string, fileNames []string) (*Schema, error) {
	for _, name := range fileNames {
		path := filepath.Join(templateDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to read schema").
				WithDetail("path", path)
		}
		log.Debug().Str("path", path).Msg("Loading schema")
		return Parse(data, path)
	}

	return nil, errors.Newf(errors.ErrConfigNotFound, "no schema file found in %s", templateDir).
		WithDetail("path", templateDir).
		WithDetail("candidates", fileNames)
}

// Parse decodes a YAML or JSON schema document
func Parse(data []byte, source string) (*Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "schema is not valid YAML or JSON").
			WithDetail("path", source)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, invalid(source, nil, "schema is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, invalid(source, root, "schema must be a mapping")
	}

	s := &Schema{Source: source}
	var questions *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "schemaVersion":
			s.Version = val.Value
		case "questions":
			questions = val
		default:
			log.Warn().Str("key", key.Value).Str("path", source).Msg("Ignoring unknown top-level schema key")
		}
	}

	if s.Version == "" {
		return nil, invalid(source, root, "schemaVersion is required")
	}
	if !slices.Contains(SupportedVersions, s.Version) {
		return nil, invalid(source, root, "unsupported schemaVersion %q", s.Version)
	}
	if questions == nil {
		return nil, invalid(source, root, "questions is required")
	}
	if questions.Kind != yaml.MappingNode {
		return nil, invalid(source, questions, "questions must be a mapping")
	}

	seen := make(map[string]bool)
	for i := 0; i+1 < len(questions.Content); i += 2 {
		key, val := questions.Content[i], questions.Content[i+1]
		name := key.Value
		if name == "" {
			return nil, invalid(source, key, "variable name must not be empty")
		}
		if seen[name] {
			return nil, invalid(source, key, "duplicate variable %q", name)
		}
		seen[name] = true

		spec, err := parseVariable(name, val, source)
		if err != nil {
			return nil, err
		}
		s.Variables = append(s.Variables, spec)
	}

	log.Debug().
		Str("path", source).
		Int("variables", len(s.Variables)).
		Msg("Schema parsed")
	return s, nil
}

func parseVariable(name string, node *yaml.Node, source string) (VariableSpec, error) {
	spec := VariableSpec{Name: name}
	if node.Kind != yaml.MappingNode {
		return spec, invalid(source, node, "variable %q must be a mapping", name)
	}

	var typeName string
	var defaultNode *yaml.Node
	multiselect := false

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "type":
			typeName = val.Value
		case "help":
			spec.Help = val.Value
		case "default":
			defaultNode = val
		case "choices":
			choices, err := stringSeq(val)
			if err != nil {
				return spec, invalid(source, val, "variable %q: choices %v", name, err)
			}
			spec.Choices = choices
		case "multiselect":
			b, err := boolScalar(val)
			if err != nil {
				return spec, invalid(source, val, "variable %q: multiselect %v", name, err)
			}
			multiselect = b
		case "ask_if":
			spec.AskIf = val.Value
		case "secret":
			secret, err := parseSecret(val)
			if err != nil {
				return spec, invalid(source, val, "variable %q: secret %v", name, err)
			}
			spec.Secret = secret
		case "validation":
			v, err := parseValidation(val)
			if err != nil {
				return spec, invalid(source, val, "variable %q: %v", name, err)
			}
			spec.Validation = v
		default:
			log.Warn().Str("variable", name).Str("key", key.Value).Msg("Ignoring unknown variable key")
		}
	}

	if typeName == "" {
		return spec, invalid(source, node, "variable %q: type is required", name)
	}
	kind, err := types.ParseKind(typeName)
	if err != nil {
		return spec, invalid(source, node, "variable %q: %v", name, err)
	}

	// A string with choices is a single choice, or a list when multiselect.
	if kind == types.KindString && len(spec.Choices) > 0 {
		kind = types.KindChoice
		if multiselect {
			kind = types.KindList
		}
	}
	spec.Kind = kind

	if kind == types.KindChoice && len(spec.Choices) == 0 {
		return spec, invalid(source, node, "variable %q: choice requires a non-empty choices list", name)
	}
	if len(spec.Choices) > 0 && kind != types.KindChoice && kind != types.KindList {
		return spec, invalid(source, node, "variable %q: choices are only valid for choice and list variables", name)
	}

	if defaultNode != nil && !isNull(defaultNode) {
		def, err := decodeDefault(kind, defaultNode)
		if err != nil {
			return spec, invalid(source, defaultNode, "variable %q: default %v", name, err)
		}
		if err := checkChoices(spec.Choices, def); err != nil {
			return spec, invalid(source, defaultNode, "variable %q: default %v", name, err)
		}
		spec.Default = def
		spec.HasDefault = true
	}

	return spec, nil
}

// checkChoices rejects literal defaults outside the declared choices
func checkChoices(choices []string, def any) error {
	if len(choices) == 0 {
		return nil
	}
	var values []string
	switch d := def.(type) {
	case string:
		if expr.IsTemplate(d) {
			return nil
		}
		values = []string{d}
	case []string:
		values = d
	}
	for _, v := range values {
		if !slices.Contains(choices, v) {
			return fmt.Errorf("%q is not one of %v", v, choices)
		}
	}
	return nil
}

func parseValidation(node *yaml.Node) (*Validation, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("validation must be a mapping")
	}
	v := &Validation{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case "condition":
			v.Condition = node.Content[i+1].Value
		case "error_message":
			v.ErrorMessage = node.Content[i+1].Value
		}
	}
	if v.Condition == "" {
		return nil, fmt.Errorf("validation.condition is required")
	}
	if v.ErrorMessage == "" {
		return nil, fmt.Errorf("validation.error_message is required")
	}
	return v, nil
}

func parseSecret(node *yaml.Node) (*Secret, error) {
	if node.Kind == yaml.ScalarNode {
		b, err := boolScalar(node)
		if err != nil || !b {
			return nil, err
		}
		return &Secret{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("must be a bool or a mapping")
	}
	s := &Secret{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "confirm":
			b, err := boolScalar(val)
			if err != nil {
				return nil, err
			}
			s.Confirm = b
		case "mismatch_error", "mistmatch_err":
			s.MismatchError = val.Value
		}
	}
	return s, nil
}

// decodeDefault decodes typed literals. Templates are kept as strings and
// are rendered and parsed into the kind at resolve time.
func decodeDefault(kind types.Kind, node *yaml.Node) (any, error) {
	switch kind {
	case types.KindList:
		if node.Kind == yaml.ScalarNode && node.Tag == "!!str" && expr.IsTemplate(node.Value) {
			return node.Value, nil
		}
		return stringSeq(node)
	case types.KindBool:
		if node.Kind == yaml.ScalarNode && node.Tag == "!!str" && expr.IsTemplate(node.Value) {
			return node.Value, nil
		}
		return boolScalar(node)
	case types.KindInt:
		if node.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("must be an integer")
		}
		if node.Tag == "!!str" && expr.IsTemplate(node.Value) {
			return node.Value, nil
		}
		if node.Tag != "!!int" {
			return nil, fmt.Errorf("must be an integer, got %q", node.Value)
		}
		n, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("must be an integer, got %q", node.Value)
		}
		return int(n), nil
	default:
		if node.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("must be a scalar")
		}
		return node.Value, nil
	}
}

func stringSeq(node *yaml.Node) ([]string, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("must be a list")
	}
	out := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("must contain only scalars")
		}
		out = append(out, item.Value)
	}
	return out, nil
}

func boolScalar(node *yaml.Node) (bool, error) {
	if node.Kind != yaml.ScalarNode || node.Tag != "!!bool" {
		return false, fmt.Errorf("must be true or false")
	}
	var b bool
	if err := node.Decode(&b); err != nil {
		return false, err
	}
	return b, nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}
