package hooks

import (
	"encoding/json"
	"path/filepath"

	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/types"
)

type payload struct {
	TemplateDir string         `json:"template_dir"`
	OutputDir   string         `json:"output_dir"`
	Answers     *types.Answers `json:"answers"`
}

// Payload builds the JSON document a hook reads from stdin. Directories
// are made absolute and answers keep declaration order.
func Payload(rc types.RenderContext) ([]byte, error) {
	p := payload{Answers: rc.Answers}
	if p.Answers == nil {
		p.Answers = types.NewAnswers()
	}

	var err error
	if p.TemplateDir, err = filepath.Abs(rc.TemplateDir); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot resolve template directory")
	}
	if p.OutputDir, err = filepath.Abs(rc.OutputDir); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot resolve output directory")
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode hook payload")
	}
	return data, nil
}
