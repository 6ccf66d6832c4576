// Test Type: Unit Test
// Description: Tests for output format and colour mode selection

package ui_test

import (
	"os"
	"testing"

	"github.com/arthur-debert/cutter/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		name     string
		format   ui.Format
		expected string
	}{
		{
			name:     "auto format",
			format:   ui.FormatAuto,
			expected: "auto",
		},
		{
			name:     "terminal format",
			format:   ui.FormatTerminal,
			expected: "term",
		},
		{
			name:     "text format",
			format:   ui.FormatText,
			expected: "text",
		},
		{
			name:     "json format",
			format:   ui.FormatJSON,
			expected: "json",
		},
		{
			name:     "unknown format",
			format:   ui.Format(999),
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{
			name:     "parse auto",
			input:    "auto",
			expected: ui.FormatAuto,
			wantErr:  false,
		},
		{
			name:     "parse empty string as auto",
			input:    "",
			expected: ui.FormatAuto,
			wantErr:  false,
		},
		{
			name:     "parse term",
			input:    "term",
			expected: ui.FormatTerminal,
			wantErr:  false,
		},
		{
			name:     "parse terminal",
			input:    "terminal",
			expected: ui.FormatTerminal,
			wantErr:  false,
		},
		{
			name:     "parse text",
			input:    "text",
			expected: ui.FormatText,
			wantErr:  false,
		},
		{
			name:     "parse plain",
			input:    "plain",
			expected: ui.FormatText,
			wantErr:  false,
		},
		{
			name:     "parse json",
			input:    "json",
			expected: ui.FormatJSON,
			wantErr:  false,
		},
		{
			name:     "parse invalid format",
			input:    "invalid",
			expected: ui.FormatAuto,
			wantErr:  true,
		},
		{
			name:     "parse uppercase term",
			input:    "TERM",
			expected: ui.FormatTerminal,
			wantErr:  false,
		},
		{
			name:     "parse mixed case JSON",
			input:    "Json",
			expected: ui.FormatJSON,
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "unknown format")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, format)
			}
		})
	}
}

func pipeWriter(t *testing.T) *os.File {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	return w
}

func TestDetectFormat(t *testing.T) {
	t.Run("no_color_env", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(pipeWriter(t)))
	})

	t.Run("pipe_is_text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(pipeWriter(t)))
	})
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ui.ColorMode
		wantErr bool
	}{
		{"", ui.ColorAuto, false},
		{"auto", ui.ColorAuto, false},
		{"ALWAYS", ui.ColorAlways, false},
		{"never", ui.ColorNever, false},
		{"sometimes", ui.ColorAuto, true},
	}
	for _, tt := range tests {
		t.Run("mode_"+tt.in, func(t *testing.T) {
			got, err := ui.ParseColorMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFormat(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	w := pipeWriter(t)

	tests := []struct {
		name   string
		format ui.Format
		mode   ui.ColorMode
		want   ui.Format
	}{
		{"auto_on_pipe", ui.FormatAuto, ui.ColorAuto, ui.FormatText},
		{"always_forces_terminal", ui.FormatAuto, ui.ColorAlways, ui.FormatTerminal},
		{"never_forces_text", ui.FormatAuto, ui.ColorNever, ui.FormatText},
		{"explicit_json_kept", ui.FormatJSON, ui.ColorAlways, ui.FormatJSON},
		{"explicit_terminal_kept", ui.FormatTerminal, ui.ColorNever, ui.FormatTerminal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ui.ResolveFormat(tt.format, tt.mode, w))
		})
	}
}
