package cli

import (
	"context"
	"io"
	"os"

	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/generate"
	"github.com/arthur-debert/cutter/pkg/source"
	"github.com/arthur-debert/cutter/pkg/ui/prompt"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// generateFlags are the root command's own flags
type generateFlags struct {
	force          bool
	skipHooksCheck bool
	answers        string
	set            []string
	nonInteractive bool
	ref            string
}

func (g *generateFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVarP(&g.force, "force", "f", false, MsgFlagForce)
	f.BoolVar(&g.skipHooksCheck, "skip-hooks-check", false, MsgFlagSkipHooksCheck)
	f.StringVar(&g.answers, "answers", "", MsgFlagAnswers)
	f.StringArrayVar(&g.set, "set", nil, MsgFlagSet)
	f.BoolVar(&g.nonInteractive, "non-interactive", false, MsgFlagNonInteractive)
	f.StringVar(&g.ref, "ref", "", MsgFlagRef)
}

// generateArgs accepts no arguments (show help) or exactly two
func generateArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || len(args) == 2 {
		return nil
	}
	return errors.Newf(errors.ErrUsage, MsgErrArgs, len(args))
}

func (a *app) runGenerate(ctx context.Context, template, outputDir string, g generateFlags) error {
	// piped stdin still prompts, one line per question, unless it carries
	// the answers document
	interactive := !g.nonInteractive
	if g.answers == "-" && !g.nonInteractive {
		if isTerminal(a.streams.In) {
			return errors.New(errors.ErrUsage, MsgErrAnswersStdin)
		}
		interactive = false
	}

	answers, err := a.readAnswers(g.answers)
	if err != nil {
		return err
	}
	set, err := generate.ParseSet(g.set)
	if err != nil {
		return err
	}

	opts := generate.Options{
		Template:        template,
		OutputDir:       outputDir,
		Force:           g.force,
		SkipHookConfirm: g.skipHooksCheck,
		Answers:         answers,
		Set:             set,
		Interactive:     interactive,
		Settings:        a.settings,
		Fetcher: source.GitFetcher{
			Depth:    a.settings.Source.CloneDepth,
			Ref:      g.ref,
			Progress: a.progress(),
		},
		Stdout: a.streams.Err,
		Stderr: a.streams.Err,
	}
	if interactive {
		asker := prompt.New(a.streams.In, a.streams.Err)
		opts.Prompter = asker
		opts.Confirmer = asker
	} else if g.answers != "-" && !isTerminal(a.streams.In) {
		// with --non-interactive, hooks can still be confirmed from piped input
		opts.Confirmer = prompt.NewLine(a.streams.In, a.streams.Err)
	}

	log.Info().
		Str("template", template).
		Str("output", outputDir).
		Bool("interactive", interactive).
		Bool("force", g.force).
		Msg("Generating project")

	result, err := generate.Run(ctx, opts)
	if result != nil && err != nil {
		log.Warn().Int("files", len(result.Files)).Msg("Generation stopped after writing files")
	}
	if err != nil {
		return err
	}

	r, err := a.renderer()
	if err != nil {
		return err
	}
	return r.RenderResult(result)
}

// readAnswers loads --answers from a file or stdin
func (a *app) readAnswers(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	if path == "-" {
		return generate.LoadAnswers(a.streams.In)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrAnswersInvalid, "cannot open answers file %s", path).
			WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()
	return generate.LoadAnswers(f)
}

// progress shows clone progress from -v up
func (a *app) progress() io.Writer {
	if a.verbosity > 0 {
		return a.streams.Err
	}
	return nil
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// usageArgs reports argument errors as usage errors
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return errors.Wrap(err, errors.ErrUsage, "invalid arguments")
		}
		return nil
	}
}
