package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var log = logging.GetLogger("config")

const envPrefix = "CUTTER_"

// Settings is cutter's effective tool configuration
type Settings struct {
	Template TemplateConfig `koanf:"template"`
	Hooks    HooksConfig    `koanf:"hooks"`
	Source   SourceConfig   `koanf:"source"`
	Output   OutputConfig   `koanf:"output"`
}

type TemplateConfig struct {
	Suffix       string   `koanf:"suffix"`
	SchemaFiles  []string `koanf:"schema_files"`
	IgnoreFile   string   `koanf:"ignore_file"`
	SettingsFile string   `koanf:"settings_file"`
}

type HooksConfig struct {
	Dir         string        `koanf:"dir"`
	Timeout     time.Duration `koanf:"timeout"`
	SkipConfirm bool          `koanf:"skip_confirm"`
}

type SourceConfig struct {
	CloneDepth int `koanf:"clone_depth"`
}

type OutputConfig struct {
	Color string `koanf:"color"`
	// Theme is a YAML file laid over the built-in terminal theme
	Theme string `koanf:"theme"`
}

// LoadOptions controls where settings come from.
// An empty ConfigFile means $XDG_CONFIG_HOME/cutter/config.toml.
// Overrides are dotted keys applied last, typically from command-line flags.
type LoadOptions struct {
	ConfigFile string
	Overrides  map[string]interface{}
}

// UserConfigPath returns the default location of the user settings file
func UserConfigPath() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, "cutter", "config.toml")
}

// LoadSettings merges defaults, the user file, environment and overrides
func LoadSettings(opts LoadOptions) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to load default settings")
	}

	path := opts.ConfigFile
	explicit := path != ""
	if !explicit {
		path = UserConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrSettingsLoad, "failed to load settings from %s", path).
				WithDetail("path", path)
		}
		log.Debug().Str("path", path).Msg("Loaded user settings")
	} else if explicit {
		return nil, errors.Wrapf(err, errors.ErrSettingsLoad, "settings file %s not readable", path).
			WithDetail("path", path)
	}

	err := k.Load(env.Provider(envPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to load environment settings")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to apply overrides")
		}
	}

	return unmarshal(k)
}

// envKey maps CUTTER_HOOKS_SKIP_CONFIRM to hooks.skip_confirm.
// Only the first underscore separates the section.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
}

func unmarshal(k *koanf.Koanf) (*Settings, error) {
	var cfg Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to decode settings")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *Settings) validate() error {
	if s.Template.Suffix == "" {
		return errors.New(errors.ErrSettingsLoad, "template.suffix must not be empty")
	}
	if len(s.Template.SchemaFiles) == 0 {
		return errors.New(errors.ErrSettingsLoad, "template.schema_files must list at least one file")
	}
	if s.Hooks.Timeout < 0 {
		return errors.New(errors.ErrSettingsLoad, "hooks.timeout must not be negative")
	}
	switch s.Output.Color {
	case "auto", "always", "never":
	default:
		return errors.Newf(errors.ErrSettingsLoad, "output.color must be auto, always or never, got %q", s.Output.Color)
	}
	return nil
}
