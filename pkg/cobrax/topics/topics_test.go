// Test Type: Unit Test
// Description: Tests for file-based help topics on a Cobra command tree

package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"schema.md":        {Data: []byte("# Schema\n\nQuestions in order.")},
		"hooks.txt":        {Data: []byte("Hooks run with a JSON payload")},
		"option-set.md":    {Data: []byte("name=value pairs")},
		"nested/ignore.md": {Data: []byte("gitignore rules")},
		"notes.json":       {Data: []byte("{}")},
	}
}

func TestScanTopics(t *testing.T) {
	tests := []struct {
		name       string
		extensions []string
		want       []string
	}{
		{"default_extensions", nil, []string{"hooks", "ignore", "option-set", "schema"}},
		{"custom_extensions", []string{".md"}, []string{"ignore", "option-set", "schema"}},
		{"json_only", []string{".json"}, []string{"notes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := NewWithOptions(testFS(), Options{Extensions: tt.extensions})
			require.NoError(t, tm.scanTopics())
			assert.Equal(t, tt.want, tm.ListTopics())
		})
	}
}

func TestGetTopic(t *testing.T) {
	tm := New(testFS())
	require.NoError(t, tm.scanTopics())

	tests := []struct {
		name  string
		query string
		found bool
		path  string
	}{
		{"exact", "schema", true, "schema.md"},
		{"nested_file", "ignore", true, "nested/ignore.md"},
		{"flag_style", "--set", true, "option-set.md"},
		{"short_flag_style", "-set", true, "option-set.md"},
		{"missing", "nothing", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic, ok := tm.GetTopic(tt.query)
			assert.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.path, topic.Path)
			}
		})
	}
}

func TestNilFS(t *testing.T) {
	tm := New(nil)
	require.NoError(t, tm.scanTopics())
	assert.Empty(t, tm.ListTopics())
}

func runHelp(t *testing.T, args ...string) string {
	t.Helper()
	root := &cobra.Command{Use: "cutter", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "inspect", Short: "Describe a template", Run: func(*cobra.Command, []string) {}})
	require.NoError(t, Initialize(root, testFS()))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestHelpCommand(t *testing.T) {
	t.Run("topic", func(t *testing.T) {
		assert.Equal(t, "Hooks run with a JSON payload", runHelp(t, "help", "hooks"))
	})

	t.Run("topic_list", func(t *testing.T) {
		out := runHelp(t, "help", "topics")
		assert.Contains(t, out, "General topics:")
		assert.Contains(t, out, "  schema")
		assert.Contains(t, out, "Option topics:")
		assert.Contains(t, out, "  --set")
		assert.Contains(t, out, "cutter help <topic>")
	})

	t.Run("command_help_falls_through", func(t *testing.T) {
		assert.Contains(t, runHelp(t, "help", "inspect"), "Describe a template")
	})
}

func TestPlainAndGlamourRenderers(t *testing.T) {
	assert.Equal(t, "# x", (&PlainRenderer{}).Render("# x", ".md"))
	g := &GlamourRenderer{Style: "notty", Width: 40}
	assert.Equal(t, "plain text", g.Render("plain text", ".txt"))
	assert.Contains(t, g.Render("# Title\n\nbody", ".md"), "Title")
}
