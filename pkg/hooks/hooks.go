// Package hooks locates and runs a template's pre- and post-generation
// scripts.
//
// A hook is any executable in the template's hooks directory named
// pre_gen_project or post_gen_project, optionally with an extension
// (pre_gen_project.py). Hooks receive one JSON document on stdin:
//
//	{"template_dir": "...", "output_dir": "...", "answers": {...}}
//
// Nothing runs before the user has confirmed the hooks, unless confirmation
// is bypassed. A single confirmation covers both hooks.
package hooks

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	PreGenProject  = "pre_gen_project"
	PostGenProject = "post_gen_project"
)

// Hooks holds the resolved hook paths; an empty path means the slot is unused
type Hooks struct {
	Pre  string `json:"pre,omitempty"`
	Post string `json:"post,omitempty"`
}

// Paths returns the present hook paths, pre first
func (h Hooks) Paths() []string {
	var out []string
	if h.Pre != "" {
		out = append(out, h.Pre)
	}
	if h.Post != "" {
		out = append(out, h.Post)
	}
	return out
}

// Empty reports whether neither slot is populated
func (h Hooks) Empty() bool {
	return h.Pre == "" && h.Post == ""
}

// Locate finds the hooks under templateDir/hooksDir. An exact file name
// wins over one with an extension; among extensions the first in lexical
// order is used.
func Locate(templateDir, hooksDir string) Hooks {
	if hooksDir == "" {
		return Hooks{}
	}
	dir := filepath.Join(templateDir, hooksDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("dir", dir).Msg("Cannot read hooks directory")
		}
		return Hooks{}
	}

	find := func(stem string) string {
		candidate := ""
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			if name == stem {
				return filepath.Join(dir, name)
			}
			if candidate == "" && strings.TrimSuffix(name, filepath.Ext(name)) == stem {
				candidate = filepath.Join(dir, name)
			}
		}
		return candidate
	}

	h := Hooks{Pre: find(PreGenProject), Post: find(PostGenProject)}
	log.Debug().Str("pre", h.Pre).Str("post", h.Post).Msg("Located hooks")
	return h
}
