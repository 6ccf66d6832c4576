package generate

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/cutter/pkg/config"
	"github.com/arthur-debert/cutter/pkg/hooks"
	"github.com/arthur-debert/cutter/pkg/ignore"
	"github.com/arthur-debert/cutter/pkg/schema"
	"github.com/arthur-debert/cutter/pkg/source"
)

// ReadmeNames are tried in order when inspecting a template
var ReadmeNames = []string{"README.md", "readme.md", "README"}

// InspectOptions selects the template to describe
type InspectOptions struct {
	Template string
	Settings *config.Settings
	Fetcher  source.Fetcher
}

// InspectResult describes a template without generating anything
type InspectResult struct {
	Template string                  `json:"template"`
	Schema   *schema.Schema          `json:"schema"`
	Settings config.TemplateSettings `json:"settings"`
	// Hooks holds hook paths relative to the template root
	Hooks  hooks.Hooks   `json:"hooks"`
	Ignore []ignore.Rule `json:"ignore"`
	Readme string        `json:"readme,omitempty"`
}

// Inspect loads a template's schema, settings, hooks and README
func Inspect(ctx context.Context, opts InspectOptions) (*InspectResult, error) {
	settings, err := settingsOf(Options{Settings: opts.Settings})
	if err != nil {
		return nil, err
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = source.GitFetcher{Depth: settings.Source.CloneDepth}
	}

	tmpl, err := source.Resolve(ctx, opts.Template, fetcher)
	if err != nil {
		return nil, err
	}
	defer tmpl.Cleanup()

	l, err := load(tmpl.Dir, *settings)
	if err != nil {
		return nil, err
	}

	h := hooks.Locate(tmpl.Dir, l.settings.Hooks.Dir)
	result := &InspectResult{
		Template: opts.Template,
		Schema:   l.schema,
		Settings: l.template,
		Hooks:    hooks.Hooks{Pre: relTo(tmpl.Dir, h.Pre), Post: relTo(tmpl.Dir, h.Post)},
		Ignore:   l.matcher.Rules(),
	}
	for _, name := range ReadmeNames {
		if data, err := os.ReadFile(filepath.Join(tmpl.Dir, name)); err == nil {
			result.Readme = string(data)
			break
		}
	}
	return result, nil
}

func relTo(base, p string) string {
	if p == "" {
		return ""
	}
	if rel, err := filepath.Rel(base, p); err == nil {
		return filepath.ToSlash(rel)
	}
	return p
}
