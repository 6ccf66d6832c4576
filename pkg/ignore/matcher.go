package ignore

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher evaluates an ordered rule set. It is immutable once built.
type Matcher struct {
	rules []Rule
}

// New concatenates rule sets in order; later rules take precedence
func New(sets ...[]Rule) *Matcher {
	var all []Rule
	for _, s := range sets {
		all = append(all, s...)
	}
	return &Matcher{rules: all}
}

// Rules returns a copy of the compiled rules
func (m *Matcher) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// Excluded reports whether relPath, relative to the template root, is
// excluded. A path below an excluded directory is excluded as well and
// cannot be re-included.
func (m *Matcher) Excluded(relPath string, isDir bool) bool {
	if m == nil || len(m.rules) == 0 {
		return false
	}
	p := strings.Trim(filepath.ToSlash(relPath), "/")
	if p == "" || p == "." {
		return false
	}

	parts := strings.Split(p, "/")
	for i := 1; i < len(parts); i++ {
		if m.decide(strings.Join(parts[:i], "/"), true) {
			return true
		}
	}
	return m.decide(p, isDir)
}

func (m *Matcher) decide(p string, isDir bool) bool {
	excluded := false
	base := path.Base(p)
	for _, r := range m.rules {
		if r.DirOnly && !isDir {
			continue
		}
		target := base
		if r.Anchored {
			target = p
		}
		if ok, _ := doublestar.Match(r.Pattern, target); ok {
			excluded = !r.Negate
		}
	}
	return excluded
}
