package config

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/cutter/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
)

// TemplateSettings are read from a template's .cutter.toml
type TemplateSettings struct {
	Suffix   string   `toml:"suffix" json:"suffix,omitempty"`
	HooksDir string   `toml:"hooks_dir" json:"hooks_dir,omitempty"`
	Ignore   []string `toml:"ignore" json:"ignore,omitempty"`
}

// LoadTemplateSettings reads the settings file from templateDir.
// A missing file yields zero settings.
func LoadTemplateSettings(templateDir, fileName string) (TemplateSettings, error) {
	if fileName == "" {
		return TemplateSettings{}, nil
	}
	configPath := filepath.Join(templateDir, fileName)
	logger := log.With().Str("configPath", configPath).Logger()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return TemplateSettings{}, nil
		}
		return TemplateSettings{}, errors.Wrap(err, errors.ErrFileAccess, "failed to read template settings").
			WithDetail("path", configPath)
	}

	var ts TemplateSettings
	if err := toml.Unmarshal(data, &ts); err != nil {
		return TemplateSettings{}, errors.Wrap(err, errors.ErrConfigInvalid, "failed to parse template settings").
			WithDetail("path", configPath)
	}

	logger.Debug().
		Str("suffix", ts.Suffix).
		Str("hooks_dir", ts.HooksDir).
		Int("ignore_rules", len(ts.Ignore)).
		Msg("Template settings loaded")

	return ts, nil
}

// Apply returns a copy of s with the template's overrides applied
func (ts TemplateSettings) Apply(s Settings) Settings {
	if ts.Suffix != "" {
		s.Template.Suffix = ts.Suffix
	}
	if ts.HooksDir != "" {
		s.Hooks.Dir = ts.HooksDir
	}
	return s
}
