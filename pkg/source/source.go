// Package source turns a template identifier into a local directory.
//
// A local path is used in place. A remote identifier (an https, http, git
// or ssh URL, an scp-style git@host:path address, or the gh:owner/repo
// shorthand) is fetched into a temporary directory that Template.Cleanup
// removes.
package source

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/logging"
)

var log = logging.GetLogger("source")

// Fetcher downloads a remote template into a fresh local directory owned
// by the caller
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Template is a template available on the local filesystem
type Template struct {
	Dir    string
	Remote bool
	// Origin is the identifier the template was resolved from
	Origin string

	cleanup func()
}

// Cleanup removes a fetched template. It is a no-op for local templates
// and safe to call more than once.
func (t *Template) Cleanup() {
	if t == nil || t.cleanup == nil {
		return
	}
	t.cleanup()
	t.cleanup = nil
}

var remoteSchemes = map[string]bool{
	"https": true,
	"http":  true,
	"git":   true,
	"ssh":   true,
}

// IsRemote reports whether spec names a remote template
func IsRemote(spec string) bool {
	if strings.HasPrefix(spec, "gh:") || strings.HasPrefix(spec, "git@") {
		return true
	}
	u, err := url.Parse(spec)
	if err != nil {
		return false
	}
	return remoteSchemes[strings.ToLower(u.Scheme)] && u.Host != ""
}

// CloneURL expands shorthands into a URL a git client accepts
func CloneURL(spec string) string {
	if rest, ok := strings.CutPrefix(spec, "gh:"); ok {
		return "https://github.com/" + strings.TrimSuffix(rest, ".git") + ".git"
	}
	return spec
}

// Resolve makes spec available locally. Remote templates need a fetcher.
func Resolve(ctx context.Context, spec string, f Fetcher) (*Template, error) {
	if spec == "" {
		return nil, errors.New(errors.ErrTemplateNotFound, "no template given")
	}

	if IsRemote(spec) {
		if f == nil {
			return nil, errors.Newf(errors.ErrTemplateFetch, "cannot fetch remote template %s", spec).
				WithDetail("template", spec)
		}
		target := CloneURL(spec)
		log.Info().Str("template", spec).Str("url", target).Msg("Fetching remote template")

		dir, err := f.Fetch(ctx, target)
		if err != nil {
			if ce, ok := err.(*errors.CutterError); ok {
				return nil, ce
			}
			return nil, errors.Wrapf(err, errors.ErrTemplateFetch, "cannot fetch template %s", spec).
				WithDetail("template", spec)
		}
		return &Template{
			Dir:    dir,
			Remote: true,
			Origin: spec,
			cleanup: func() {
				if err := os.RemoveAll(dir); err != nil {
					log.Warn().Err(err).Str("dir", dir).Msg("Cannot remove fetched template")
				}
			},
		}, nil
	}

	abs, err := filepath.Abs(spec)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateNotFound, "invalid template path %s", spec).
			WithDetail("template", spec)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateNotFound, "template %s does not exist", spec).
			WithDetail("template", spec)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrTemplateNotFound, "template %s is not a directory", spec).
			WithDetail("template", spec)
	}

	log.Debug().Str("dir", abs).Msg("Using local template")
	return &Template{Dir: abs, Origin: spec}, nil
}
