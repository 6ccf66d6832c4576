// Package ignore decides which template paths are excluded from generation.
//
// Rules follow gitignore conventions: one pattern per line, # comments,
// ! to re-include, a trailing / to match directories only and a leading or
// inner / to anchor the pattern at the template root. Unanchored patterns
// match the base name at any depth. Globs use doublestar syntax, so **
// crosses directory boundaries. The last matching rule wins.
package ignore

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/logging"
	"github.com/bmatcuk/doublestar/v4"
)

var log = logging.GetLogger("ignore")

// SourceImplicit names rules that cutter adds on its own
const SourceImplicit = "implicit"

// Rule is one compiled ignore pattern
type Rule struct {
	Pattern  string `json:"pattern"`
	Negate   bool   `json:"negate,omitempty"`
	DirOnly  bool   `json:"dir_only,omitempty"`
	Anchored bool   `json:"anchored,omitempty"`
	Source   string `json:"source"`
	Line     int    `json:"line,omitempty"`
}

// String renders the rule in its normalised pattern form
func (r Rule) String() string {
	s := r.Pattern
	if r.Anchored {
		s = "/" + s
	}
	if r.DirOnly {
		s += "/"
	}
	if r.Negate {
		s = "!" + s
	}
	return s
}

// ParseRules reads rules from r. source names the origin in errors.
func ParseRules(r io.Reader, source string) ([]Rule, error) {
	var rules []Rule
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		rule, ok, err := parseLine(scanner.Text(), source, lineNo)
		if err != nil {
			return nil, err
		}
		if ok {
			rules = append(rules, rule)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to read ignore rules").
			WithDetail("path", source)
	}
	return rules, nil
}

// ParsePatterns compiles a list of patterns, one per entry
func ParsePatterns(patterns []string, source string) ([]Rule, error) {
	return ParseRules(strings.NewReader(strings.Join(patterns, "\n")), source)
}

// LoadFile parses an ignore file. A missing file yields no rules.
func LoadFile(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to open ignore file").
			WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()

	rules, err := ParseRules(f, path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("rules", len(rules)).Msg("Loaded ignore file")
	return rules, nil
}

// Implicit returns the rules every template gets: its own control files,
// the hooks directory and version-control metadata
func Implicit(schemaFiles []string, ignoreFile, hooksDir, settingsFile string) []Rule {
	var rules []Rule
	add := func(pattern string, anchored, dirOnly bool) {
		if pattern == "" {
			return
		}
		rules = append(rules, Rule{
			Pattern:  pattern,
			Anchored: anchored,
			DirOnly:  dirOnly,
			Source:   SourceImplicit,
		})
	}

	for _, name := range schemaFiles {
		add(name, true, false)
	}
	add(ignoreFile, true, false)
	add(settingsFile, true, false)
	add(strings.Trim(hooksDir, "/"), true, true)
	for _, vcs := range []string{".git", ".hg", ".svn"} {
		add(vcs, false, false)
	}
	add(".DS_Store", false, false)
	return rules
}

func parseLine(raw, source string, lineNo int) (Rule, bool, error) {
	line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
	if line == "" || strings.HasPrefix(line, "#") {
		return Rule{}, false, nil
	}

	rule := Rule{Source: source, Line: lineNo}
	switch {
	case strings.HasPrefix(line, `\#`), strings.HasPrefix(line, `\!`):
		line = line[1:]
	case strings.HasPrefix(line, "!"):
		rule.Negate = true
		line = line[1:]
	}

	if strings.HasSuffix(line, "/") {
		rule.DirOnly = true
		line = strings.TrimRight(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		rule.Anchored = true
		line = strings.TrimLeft(line, "/")
	}
	if strings.Contains(line, "/") {
		rule.Anchored = true
	}

	if line == "" {
		return Rule{}, false, errors.Newf(errors.ErrIgnorePattern, "%s:%d: empty pattern %q", source, lineNo, raw).
			WithDetail("path", source).
			WithDetail("line", lineNo)
	}
	if !doublestar.ValidatePattern(line) {
		return Rule{}, false, errors.Newf(errors.ErrIgnorePattern, "%s:%d: invalid pattern %q", source, lineNo, raw).
			WithDetail("path", source).
			WithDetail("line", lineNo)
	}

	rule.Pattern = line
	return rule, true, nil
}
