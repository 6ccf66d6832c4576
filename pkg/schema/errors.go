package schema

import (
	"fmt"

	"github.com/arthur-debert/cutter/pkg/errors"
	"gopkg.in/yaml.v3"
)

func invalid(source string, node *yaml.Node, format string, args ...interface{}) error {
	err := errors.Newf(errors.ErrConfigInvalid, format, args...).WithDetail("path", source)
	if node != nil && node.Line > 0 {
		err.WithDetail("line", node.Line)
		err.Message = fmt.Sprintf("%s:%d: %s", source, node.Line, err.Message)
	}
	return err
}
