package hooks

import (
	"context"
	stderrors "errors"
	"path/filepath"

	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/logging"
	"github.com/arthur-debert/cutter/pkg/types"
)

var log = logging.GetLogger("hooks.runner")

// Confirmer asks the user to approve running the hooks listed in req.Items
type Confirmer interface {
	Confirm(req types.ConfirmationRequest) (bool, error)
}

// Invocation describes one hook process
type Invocation struct {
	Path  string
	Dir   string
	Stdin []byte
	Env   []string
}

// ExitResult is the outcome of a hook process that was started
type ExitResult struct {
	Code   int
	Output []byte
}

// Executor runs a hook. An error means the process could not be run to
// completion at all; a non-zero exit is reported through ExitResult.
type Executor interface {
	Run(ctx context.Context, inv Invocation) (ExitResult, error)
}

// Runner gates and runs hooks
type Runner struct {
	exec        Executor
	confirm     Confirmer
	skipConfirm bool
	approved    bool
}

// NewRunner creates a runner. A nil confirmer declines every request
// unless skipConfirm is set.
func NewRunner(exec Executor, confirm Confirmer, skipConfirm bool) *Runner {
	return &Runner{exec: exec, confirm: confirm, skipConfirm: skipConfirm}
}

// Gate obtains one confirmation covering every present hook. It must
// succeed before RunPre or RunPost will run anything.
func (r *Runner) Gate(h Hooks) error {
	paths := h.Paths()
	if len(paths) == 0 {
		r.approved = true
		return nil
	}
	if r.skipConfirm {
		log.Info().Strs("hooks", paths).Msg("Hook confirmation bypassed")
		r.approved = true
		return nil
	}
	if r.confirm == nil {
		return errors.New(errors.ErrHooksDecline, "template hooks need confirmation but none can be requested").
			WithDetail("hooks", paths)
	}

	ok, err := r.confirm.Confirm(types.ConfirmationRequest{
		ID:          "hooks",
		Title:       "Run template hooks",
		Description: "This template runs the following scripts on your machine",
		Items:       paths,
		Default:     false,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrHooksDecline, "could not confirm template hooks").
			WithDetail("hooks", paths)
	}
	if !ok {
		log.Info().Strs("hooks", paths).Msg("Hooks declined")
		return errors.New(errors.ErrHooksDecline, "template hooks were declined").
			WithDetail("hooks", paths)
	}

	r.approved = true
	return nil
}

// RunPre runs the pre-generation hook from the template directory. The
// output directory may not exist yet.
func (r *Runner) RunPre(ctx context.Context, h Hooks, rc types.RenderContext) error {
	return r.run(ctx, PreGenProject, h.Pre, rc.TemplateDir, rc)
}

// RunPost runs the post-generation hook from the output directory
func (r *Runner) RunPost(ctx context.Context, h Hooks, rc types.RenderContext) error {
	return r.run(ctx, PostGenProject, h.Post, rc.OutputDir, rc)
}

func (r *Runner) run(ctx context.Context, slot, path, dir string, rc types.RenderContext) error {
	if path == "" {
		return nil
	}
	if !r.approved {
		return errors.Newf(errors.ErrInternal, "%s hook has not been confirmed", slot).
			WithDetail("hook", slot)
	}

	stdin, err := Payload(rc)
	if err != nil {
		return err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot resolve hook working directory")
	}

	logger := log.With().Str("hook", slot).Str("path", path).Logger()
	logger.Info().Str("dir", absDir).Msg("Running hook")

	res, err := r.exec.Run(ctx, Invocation{
		Path:  path,
		Dir:   absDir,
		Stdin: stdin,
		Env: []string{
			"CUTTER_HOOK=" + slot,
			"CUTTER_TEMPLATE_DIR=" + mustAbs(rc.TemplateDir),
			"CUTTER_OUTPUT_DIR=" + mustAbs(rc.OutputDir),
		},
	})
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
			return errors.Wrapf(err, errors.ErrHookFailed, "%s hook did not finish", slot).
				WithDetail("hook", slot).
				WithDetail("path", path).
				WithDetail("output", string(res.Output))
		}
		return errors.Wrapf(err, errors.ErrHookSpawn, "cannot run %s hook %s", slot, path).
			WithDetail("hook", slot).
			WithDetail("path", path)
	}

	if res.Code != 0 {
		logger.Error().Int("exit_code", res.Code).Msg("Hook failed")
		return errors.Newf(errors.ErrHookFailed, "%s hook exited with status %d", slot, res.Code).
			WithDetail("hook", slot).
			WithDetail("path", path).
			WithDetail("exit_code", res.Code).
			WithDetail("output", string(res.Output))
	}

	logger.Debug().Int("output_bytes", len(res.Output)).Msg("Hook finished")
	return nil
}

func mustAbs(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
