// Package styles holds cutter's terminal theme.
//
// Styles have semantic names (Header, Error, FilePath, ...) and adaptive
// colours for light and dark terminals. The default theme is an embedded
// YAML file; a user theme given through output.theme is laid over it, so it
// only needs to name what it changes.
package styles

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef is an adaptive colour
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is one named style. Foreground and Background name a colour
// from the theme's colors section.
type StyleDef struct {
	Bold        bool   `yaml:"bold,omitempty"`
	Italic      bool   `yaml:"italic,omitempty"`
	Underline   bool   `yaml:"underline,omitempty"`
	Foreground  string `yaml:"foreground,omitempty"`
	Background  string `yaml:"background,omitempty"`
	MarginTop   int    `yaml:"marginTop,omitempty"`
	MarginBot   int    `yaml:"marginBottom,omitempty"`
	PaddingLeft int    `yaml:"paddingLeft,omitempty"`
}

// Theme is the YAML document
type Theme struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedTheme []byte

var (
	mu       sync.RWMutex
	base     Theme
	registry map[string]lipgloss.Style
)

func init() {
	if err := yaml.Unmarshal(embeddedTheme, &base); err != nil {
		panic(fmt.Sprintf("embedded theme is invalid: %v", err))
	}
	registry = build(base)
}

// Names lists the styles the current theme defines
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}

// GetStyle returns the named style, or an unstyled one for unknown names
func GetStyle(name string) lipgloss.Style {
	mu.RLock()
	defer mu.RUnlock()
	if style, ok := registry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// LoadFile overlays the theme at path on the embedded one
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read theme %s: %w", path, err)
	}
	return Overlay(data)
}

// Overlay parses a theme document and merges it over the embedded theme.
// Colours and styles it names replace the embedded ones wholesale.
func Overlay(data []byte) error {
	var user Theme
	if err := yaml.Unmarshal(data, &user); err != nil {
		return fmt.Errorf("cannot parse theme: %w", err)
	}

	merged := Theme{
		Colors: make(map[string]ColorDef, len(base.Colors)+len(user.Colors)),
		Styles: make(map[string]StyleDef, len(base.Styles)+len(user.Styles)),
	}
	for k, v := range base.Colors {
		merged.Colors[k] = v
	}
	for k, v := range user.Colors {
		merged.Colors[k] = v
	}
	for k, v := range base.Styles {
		merged.Styles[k] = v
	}
	for k, v := range user.Styles {
		if v.Foreground != "" {
			if _, ok := merged.Colors[v.Foreground]; !ok {
				return fmt.Errorf("style %s uses undefined colour %q", k, v.Foreground)
			}
		}
		merged.Styles[k] = v
	}

	mu.Lock()
	registry = build(merged)
	mu.Unlock()
	return nil
}

// Reset restores the embedded theme
func Reset() {
	mu.Lock()
	registry = build(base)
	mu.Unlock()
}

func build(t Theme) map[string]lipgloss.Style {
	out := make(map[string]lipgloss.Style, len(t.Styles))
	for name, def := range t.Styles {
		out[name] = buildStyle(def, t.Colors)
	}
	return out
}

func buildStyle(def StyleDef, colors map[string]ColorDef) lipgloss.Style {
	style := lipgloss.NewStyle().
		Bold(def.Bold).
		Italic(def.Italic).
		Underline(def.Underline)

	if c, ok := colors[def.Foreground]; ok {
		style = style.Foreground(lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Dark})
	}
	if c, ok := colors[def.Background]; ok {
		style = style.Background(lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Dark})
	}
	if def.MarginTop > 0 {
		style = style.MarginTop(def.MarginTop)
	}
	if def.MarginBot > 0 {
		style = style.MarginBottom(def.MarginBot)
	}
	if def.PaddingLeft > 0 {
		style = style.PaddingLeft(def.PaddingLeft)
	}
	return style
}
