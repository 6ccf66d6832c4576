// Test Type: Unit Test
// Description: Tests for layered tool settings and per-template settings

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/cutter/pkg/config"
	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoadSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		isolate(t)

		s, err := config.LoadSettings(config.LoadOptions{})
		require.NoError(t, err)

		assert.Equal(t, ".tmpl", s.Template.Suffix)
		assert.Equal(t, []string{"cutter.yaml", "cutter.yml", "cutter.json"}, s.Template.SchemaFiles)
		assert.Equal(t, ".cutterignore", s.Template.IgnoreFile)
		assert.Equal(t, ".cutter.toml", s.Template.SettingsFile)
		assert.Equal(t, "hooks", s.Hooks.Dir)
		assert.Equal(t, 5*time.Minute, s.Hooks.Timeout)
		assert.False(t, s.Hooks.SkipConfirm)
		assert.Equal(t, 1, s.Source.CloneDepth)
		assert.Equal(t, "auto", s.Output.Color)
	})

	t.Run("user_file_overrides_defaults", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "cutter", "config.toml")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(`
[template]
suffix = ".jinja"

[hooks]
timeout = "30s"
`), 0644))

		s, err := config.LoadSettings(config.LoadOptions{})
		require.NoError(t, err)

		assert.Equal(t, ".jinja", s.Template.Suffix)
		assert.Equal(t, 30*time.Second, s.Hooks.Timeout)
		assert.Equal(t, ".cutterignore", s.Template.IgnoreFile, "untouched keys keep defaults")
	})

	t.Run("environment_overrides_file", func(t *testing.T) {
		isolate(t)
		t.Setenv("CUTTER_HOOKS_SKIP_CONFIRM", "true")
		t.Setenv("CUTTER_TEMPLATE_SCHEMA_FILES", "a.yaml,b.json")

		s, err := config.LoadSettings(config.LoadOptions{})
		require.NoError(t, err)

		assert.True(t, s.Hooks.SkipConfirm)
		assert.Equal(t, []string{"a.yaml", "b.json"}, s.Template.SchemaFiles)
	})

	t.Run("overrides_win", func(t *testing.T) {
		isolate(t)
		t.Setenv("CUTTER_HOOKS_SKIP_CONFIRM", "false")

		s, err := config.LoadSettings(config.LoadOptions{
			Overrides: map[string]interface{}{"hooks.skip_confirm": true},
		})
		require.NoError(t, err)
		assert.True(t, s.Hooks.SkipConfirm)
	})

	t.Run("explicit_missing_file_fails", func(t *testing.T) {
		isolate(t)

		_, err := config.LoadSettings(config.LoadOptions{ConfigFile: "/nonexistent/cutter.toml"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSettingsLoad))
	})

	t.Run("invalid_color", func(t *testing.T) {
		isolate(t)
		t.Setenv("CUTTER_OUTPUT_COLOR", "sometimes")

		_, err := config.LoadSettings(config.LoadOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "output.color")
	})
}

func TestLoadTemplateSettings(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantError bool
		validate  func(t *testing.T, ts config.TemplateSettings)
	}{
		{
			name: "all_fields",
			content: `
suffix = ".j2"
hooks_dir = "scripts"
ignore = ["*.bak", "docs/"]
`,
			validate: func(t *testing.T, ts config.TemplateSettings) {
				assert.Equal(t, ".j2", ts.Suffix)
				assert.Equal(t, "scripts", ts.HooksDir)
				assert.Equal(t, []string{"*.bak", "docs/"}, ts.Ignore)
			},
		},
		{
			name:    "empty_file",
			content: "",
			validate: func(t *testing.T, ts config.TemplateSettings) {
				assert.Empty(t, ts.Suffix)
				assert.Empty(t, ts.Ignore)
			},
		},
		{
			name:      "invalid_toml",
			content:   `[broken`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, ".cutter.toml"), []byte(tt.content), 0644))

			ts, err := config.LoadTemplateSettings(dir, ".cutter.toml")
			if tt.wantError {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
				return
			}
			require.NoError(t, err)
			tt.validate(t, ts)
		})
	}

	t.Run("missing_file", func(t *testing.T) {
		ts, err := config.LoadTemplateSettings(t.TempDir(), ".cutter.toml")
		require.NoError(t, err)
		assert.Equal(t, config.TemplateSettings{}, ts)
	})
}

func TestTemplateSettingsApply(t *testing.T) {
	isolate(t)
	base, err := config.LoadSettings(config.LoadOptions{})
	require.NoError(t, err)

	got := config.TemplateSettings{Suffix: ".j2"}.Apply(*base)
	assert.Equal(t, ".j2", got.Template.Suffix)
	assert.Equal(t, "hooks", got.Hooks.Dir)
	assert.Equal(t, ".tmpl", base.Template.Suffix, "base is not mutated")
}

func TestGenerateConfigContent(t *testing.T) {
	content := config.GenerateConfigContent()

	assert.Contains(t, content, "[template]")
	assert.Contains(t, content, `# suffix = ".tmpl"`)
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "[") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "#"), "line should be commented: %q", line)
	}
}
