package types

import "fmt"

// Kind is the declared type of a template variable
type Kind string

const (
	KindString Kind = "string"
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindList   Kind = "list"
	KindChoice Kind = "choice"
)

var kindAliases = map[string]Kind{
	"string":  KindString,
	"str":     KindString,
	"bool":    KindBool,
	"boolean": KindBool,
	"int":     KindInt,
	"integer": KindInt,
	"list":    KindList,
	"choice":  KindChoice,
}

// ParseKind resolves a schema type name, accepting the common aliases
func ParseKind(name string) (Kind, error) {
	if k, ok := kindAliases[name]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown type %q", name)
}

// Zero returns the zero value of the kind
func (k Kind) Zero() any {
	switch k {
	case KindBool:
		return false
	case KindInt:
		return 0
	case KindList:
		return []string{}
	default:
		return ""
	}
}
