// Test Type: Unit Test
// Description: Tests for the embedded terminal theme and user overlays

package styles_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/cutter/pkg/ui/output/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedThemeDefinesRendererStyles(t *testing.T) {
	names := styles.Names()
	for _, name := range []string{
		"Header", "Success", "Error", "ErrorCode", "Warning", "Muted",
		"FilePath", "Variable", "Kind", "Default", "Detail",
	} {
		assert.Contains(t, names, name)
	}
}

func TestGetStyle(t *testing.T) {
	assert.True(t, styles.GetStyle("Error").GetBold())
	assert.True(t, styles.GetStyle("Kind").GetItalic())
	assert.Equal(t, 2, styles.GetStyle("Detail").GetPaddingLeft())

	unknown := styles.GetStyle("NoSuchStyle")
	assert.Equal(t, "plain", unknown.Render("plain"))
}

func TestOverlay(t *testing.T) {
	t.Cleanup(styles.Reset)

	t.Run("replaces_named_styles_only", func(t *testing.T) {
		require.NoError(t, styles.Overlay([]byte(`colors:
  pink:
    light: "#FF00FF"
    dark: "#FF87FF"
styles:
  Variable:
    underline: true
    foreground: pink
`)))
		v := styles.GetStyle("Variable")
		assert.True(t, v.GetUnderline())
		assert.False(t, v.GetBold(), "a replaced style does not inherit embedded attributes")
		assert.True(t, styles.GetStyle("Error").GetBold(), "untouched styles survive")
	})

	t.Run("undefined_colour", func(t *testing.T) {
		err := styles.Overlay([]byte("styles:\n  Header:\n    foreground: nope\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope")
	})

	t.Run("invalid_yaml", func(t *testing.T) {
		assert.Error(t, styles.Overlay([]byte("colors: [")))
	})
}

func TestLoadFile(t *testing.T) {
	t.Cleanup(styles.Reset)

	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("styles:\n  Header:\n    italic: true\n"), 0644))
	require.NoError(t, styles.LoadFile(path))
	assert.True(t, styles.GetStyle("Header").GetItalic())

	styles.Reset()
	assert.False(t, styles.GetStyle("Header").GetItalic())

	assert.Error(t, styles.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}
