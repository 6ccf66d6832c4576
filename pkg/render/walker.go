package render

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/expr"
	"github.com/arthur-debert/cutter/pkg/ignore"
	"github.com/arthur-debert/cutter/pkg/logging"
	"github.com/arthur-debert/cutter/pkg/types"
)

var log = logging.GetLogger("render.walker")

// DefaultSuffix marks files whose content is rendered
const DefaultSuffix = ".tmpl"

// Options tune a Walker
type Options struct {
	// Suffix marks files whose content is rendered; it is stripped from the output name
	Suffix string
	// Force allows writing into an existing output directory
	Force bool
}

// Report lists what a walk produced, as slash-separated paths relative to
// the output directory, in creation order
type Report struct {
	Dirs  []string `json:"dirs"`
	Files []string `json:"files"`
}

// Walker renders a template tree
type Walker struct {
	eval    expr.Evaluator
	matcher *ignore.Matcher
	opts    Options
}

func New(eval expr.Evaluator, matcher *ignore.Matcher, opts Options) *Walker {
	if opts.Suffix == "" {
		opts.Suffix = DefaultSuffix
	}
	return &Walker{eval: eval, matcher: matcher, opts: opts}
}

// Preflight checks the output root before anything is written. An existing
// root is an error unless force is set.
func Preflight(outputDir string, force bool) error {
	info, err := os.Stat(outputDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect output directory %s", outputDir).
			WithDetail("path", outputDir)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrOutputExists, "output path %s exists and is not a directory", outputDir).
			WithDetail("path", outputDir)
	}
	if !force {
		return errors.Newf(errors.ErrOutputExists, "output directory %s already exists", outputDir).
			WithDetail("path", outputDir)
	}
	log.Info().Str("path", outputDir).Msg("Output directory exists, overwriting generated files")
	return nil
}

// walk is the state of a single Walk call
type walk struct {
	*Walker
	rc types.RenderContext

	// nested is the template-relative path of the output directory when it
	// lives inside the template root
	nested   string
	made     map[string]bool
	produced map[string]string
	report   *Report
}

// Walk renders rc.TemplateDir into rc.OutputDir. The answers must be
// complete; Preflight is expected to have run.
func (w *Walker) Walk(rc types.RenderContext) (*Report, error) {
	done := logging.LogOperationStart(log, "walk")
	defer done()

	nested, err := nestedOutput(rc.TemplateDir, rc.OutputDir)
	if err != nil {
		return nil, err
	}

	state := &walk{
		Walker:   w,
		rc:       rc,
		nested:   nested,
		made:     map[string]bool{},
		produced: map[string]string{},
		report:   &Report{Dirs: []string{}, Files: []string{}},
	}
	if err := state.ensureDir(""); err != nil {
		return state.report, err
	}
	if err := state.walkDir("", ""); err != nil {
		return state.report, err
	}

	log.Info().
		Int("files", len(state.report.Files)).
		Int("dirs", len(state.report.Dirs)).
		Str("output", rc.OutputDir).
		Msg("Template rendered")
	return state.report, nil
}

// walkDir renders the template directory srcRel into the output directory dstRel
func (s *walk) walkDir(srcRel, dstRel string) error {
	full := filepath.Join(s.rc.TemplateDir, filepath.FromSlash(srcRel))
	entries, err := os.ReadDir(full)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read template directory %s", full).
			WithDetail("path", full)
	}
	if len(entries) == 0 && srcRel != "" {
		return s.ensureDir(dstRel)
	}

	for _, e := range entries {
		entry := types.TemplateEntry{
			RelPath: path.Join(srcRel, e.Name()),
			RawName: e.Name(),
			IsDir:   e.IsDir(),
		}
		if e.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(full, e.Name())); err == nil {
				entry.IsDir = info.IsDir()
			}
		}

		if entry.RelPath == s.nested {
			log.Debug().Str("path", entry.RelPath).Msg("Skipping output directory inside template")
			continue
		}
		if s.matcher.Excluded(entry.RelPath, entry.IsDir) {
			log.Trace().Str("path", entry.RelPath).Bool("dir", entry.IsDir).Msg("Ignored")
			continue
		}

		name, ok, err := s.renderName(entry)
		if err != nil {
			return err
		}
		if !ok {
			log.Debug().Str("path", entry.RelPath).Msg("Name rendered empty, entry dropped")
			continue
		}

		dst := path.Join(dstRel, name)
		if entry.IsDir {
			if err := s.walkDir(entry.RelPath, dst); err != nil {
				return err
			}
			continue
		}
		if err := s.writeFile(entry, dst); err != nil {
			return err
		}
	}
	return nil
}

// renderName renders an entry's base name. ok is false when the entry is
// conditionally excluded.
func (s *walk) renderName(entry types.TemplateEntry) (string, bool, error) {
	name, err := s.eval.Render(entry.RawName, s.rc.Answers)
	if err != nil {
		return "", false, atPath(err, entry.RelPath)
	}
	if strings.TrimSpace(name) == "" {
		return "", false, nil
	}
	if name == "." || name == ".." || strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return "", false, errors.Newf(errors.ErrRenderFailed, "%s: name renders to %q, which is not a single path element", entry.RelPath, name).
			WithDetail("path", entry.RelPath)
	}
	return name, true, nil
}

func (s *walk) writeFile(entry types.TemplateEntry, dst string) error {
	src := filepath.Join(s.rc.TemplateDir, filepath.FromSlash(entry.RelPath))
	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", src).WithDetail("path", entry.RelPath)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", src).WithDetail("path", entry.RelPath)
	}

	if name := path.Base(dst); strings.HasSuffix(name, s.opts.Suffix) {
		if !utf8.Valid(data) {
			return errors.Newf(errors.ErrNotText, "%s is marked for rendering but is not UTF-8 text", entry.RelPath).
				WithDetail("path", entry.RelPath)
		}
		out, err := s.eval.Render(string(data), s.rc.Answers)
		if err != nil {
			return atPath(err, entry.RelPath)
		}
		stripped := strings.TrimSuffix(name, s.opts.Suffix)
		if strings.TrimSpace(stripped) == "" {
			return errors.Newf(errors.ErrRenderFailed, "%s: name is empty once %s is removed", entry.RelPath, s.opts.Suffix).
				WithDetail("path", entry.RelPath)
		}
		dst = path.Join(path.Dir(dst), stripped)
		data = []byte(out)
	}

	if prev, dup := s.produced[dst]; dup {
		return errors.Newf(errors.ErrRenderFailed, "%s and %s both produce %s", prev, entry.RelPath, dst).
			WithDetail("path", entry.RelPath)
	}
	s.produced[dst] = entry.RelPath

	if err := s.ensureDir(path.Dir(dst)); err != nil {
		return err
	}

	target := filepath.Join(s.rc.OutputDir, filepath.FromSlash(dst))
	if fi, err := os.Lstat(target); err == nil && fi.IsDir() {
		return errors.Newf(errors.ErrFileWrite, "cannot write %s: a directory is in the way", target).
			WithDetail("path", dst)
	}
	if err := writeAtomic(target, info.Mode().Perm(), data); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", target).
			WithDetail("path", dst)
	}

	s.report.Files = append(s.report.Files, dst)
	log.Debug().Str("from", entry.RelPath).Str("to", dst).Int("bytes", len(data)).Msg("Wrote file")
	return nil
}

// ensureDir creates the output directory rel and its parents once per walk
func (s *walk) ensureDir(rel string) error {
	if rel == "." {
		rel = ""
	}
	if s.made[rel] {
		return nil
	}
	if rel != "" {
		if err := s.ensureDir(path.Dir(rel)); err != nil {
			return err
		}
	}

	target := filepath.Join(s.rc.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(target, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", target).
			WithDetail("path", rel)
	}
	s.made[rel] = true
	if rel != "" {
		s.report.Dirs = append(s.report.Dirs, rel)
	}
	return nil
}

// nestedOutput returns the template-relative location of outputDir when it
// is inside templateDir, or "" otherwise
func nestedOutput(templateDir, outputDir string) (string, error) {
	tAbs, err := filepath.Abs(templateDir)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "cannot resolve template directory")
	}
	oAbs, err := filepath.Abs(outputDir)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "cannot resolve output directory")
	}
	rel, err := filepath.Rel(tAbs, oAbs)
	if err != nil {
		return "", nil
	}
	if rel == "." {
		return "", errors.Newf(errors.ErrFileWrite, "output directory %s is the template directory", outputDir).
			WithDetail("path", outputDir)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

// atPath attaches the template path to a rendering error
func atPath(err error, rel string) error {
	ce, ok := err.(*errors.CutterError)
	if !ok {
		return errors.Wrapf(err, errors.ErrRenderFailed, "%s", rel).WithDetail("path", rel)
	}
	if _, exists := ce.Details["path"]; !exists {
		ce.Message = rel + ": " + ce.Message
		ce.WithDetail("path", rel)
	}
	return ce
}
