package source

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/cutter/pkg/errors"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitFetcher clones templates with go-git
type GitFetcher struct {
	// Depth limits history; zero clones everything
	Depth int
	// Ref selects a branch or tag; empty means the remote's default branch
	Ref string
	// Progress receives the remote's progress messages when set
	Progress io.Writer
}

var _ Fetcher = GitFetcher{}

func (g GitFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for _, ref := range g.candidates() {
		dir, err := os.MkdirTemp("", "cutter-template-*")
		if err != nil {
			return "", errors.Wrap(err, errors.ErrTemplateFetch, "cannot create a directory for the template")
		}

		opts := &git.CloneOptions{
			URL:      url,
			Depth:    g.Depth,
			Progress: g.Progress,
		}
		if ref != "" {
			opts.ReferenceName = ref
			opts.SingleBranch = true
		}

		_, err = git.PlainCloneContext(ctx, dir, false, opts)
		if err == nil {
			log.Debug().Str("url", url).Str("ref", string(ref)).Str("dir", dir).Msg("Template cloned")
			return dir, nil
		}

		_ = os.RemoveAll(dir)
		lastErr = err
		log.Debug().Err(err).Str("url", url).Str("ref", string(ref)).Msg("Clone attempt failed")
		if ctx.Err() != nil {
			break
		}
	}

	e := errors.Wrapf(lastErr, errors.ErrTemplateFetch, "cannot clone %s", url).WithDetail("url", url)
	if g.Ref != "" {
		e.WithDetail("ref", g.Ref)
	}
	return "", e
}

// candidates lists the references to try: a bare name may be a branch or a tag
func (g GitFetcher) candidates() []plumbing.ReferenceName {
	switch {
	case g.Ref == "":
		return []plumbing.ReferenceName{""}
	case strings.HasPrefix(g.Ref, "refs/"):
		return []plumbing.ReferenceName{plumbing.ReferenceName(g.Ref)}
	default:
		return []plumbing.ReferenceName{
			plumbing.NewBranchReferenceName(g.Ref),
			plumbing.NewTagReferenceName(g.Ref),
		}
	}
}
