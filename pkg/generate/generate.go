package generate

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/cutter/pkg/config"
	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/expr"
	"github.com/arthur-debert/cutter/pkg/hooks"
	"github.com/arthur-debert/cutter/pkg/ignore"
	"github.com/arthur-debert/cutter/pkg/logging"
	"github.com/arthur-debert/cutter/pkg/render"
	"github.com/arthur-debert/cutter/pkg/resolver"
	"github.com/arthur-debert/cutter/pkg/schema"
	"github.com/arthur-debert/cutter/pkg/source"
	"github.com/arthur-debert/cutter/pkg/types"
)

var log = logging.GetLogger("generate")

// Options holds the parameters of one run and its collaborators. Nil
// collaborators get defaults: settings from LoadSettings, the HCL
// evaluator, a git fetcher and a process executor.
type Options struct {
	// Template is a local path or a remote identifier
	Template  string
	OutputDir string
	Force     bool

	// SkipHookConfirm runs hooks without asking
	SkipHookConfirm bool

	// Answers are pre-supplied values, typically from LoadAnswers
	Answers map[string]any
	// Set holds name=value pairs from the command line; they are parsed
	// according to each variable's kind and win over Answers
	Set map[string]string

	// Interactive enables prompting; it needs a Prompter
	Interactive bool

	Settings  *config.Settings
	Evaluator expr.Evaluator
	Prompter  resolver.Prompter
	Confirmer hooks.Confirmer
	Fetcher   source.Fetcher
	Executor  hooks.Executor

	// Stdout and Stderr receive hook output; nil means the process streams
	Stdout io.Writer
	Stderr io.Writer
}

// Result describes a run. Paths in Files and Dirs are relative to OutputDir.
type Result struct {
	Template    string   `json:"template"`
	TemplateDir string   `json:"template_dir"`
	Remote      bool     `json:"remote"`
	OutputDir   string   `json:"output_dir"`
	Dirs        []string `json:"dirs"`
	Files       []string `json:"files"`
	// Hooks lists the hook scripts that ran to completion
	Hooks []string `json:"hooks"`
}

// Run generates opts.OutputDir from opts.Template. When the failure happens
// after the tree walk started, the partial Result is returned with the error.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := log.With().Str("template", opts.Template).Str("output", opts.OutputDir).Logger()
	logger.Info().Bool("force", opts.Force).Bool("interactive", opts.Interactive).Msg("Starting generation")

	if opts.OutputDir == "" {
		return nil, errors.New(errors.ErrConfigInvalid, "no output directory given")
	}
	settings, err := settingsOf(opts)
	if err != nil {
		return nil, err
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = source.GitFetcher{Depth: settings.Source.CloneDepth}
	}
	tmpl, err := source.Resolve(ctx, opts.Template, fetcher)
	if err != nil {
		return nil, err
	}
	defer tmpl.Cleanup()

	loaded, err := load(tmpl.Dir, *settings)
	if err != nil {
		return nil, err
	}
	eff := loaded.settings

	eval := opts.Evaluator
	if eval == nil {
		eval = expr.NewHCL()
	}

	supplied, err := mergeSet(loaded.schema, opts.Answers, opts.Set)
	if err != nil {
		return nil, err
	}

	var prompter resolver.Prompter
	if opts.Interactive {
		prompter = opts.Prompter
		if prompter == nil {
			logger.Warn().Msg("Interactive run without a prompter, resolving non-interactively")
		}
	}
	answers, err := resolver.New(eval, prompter).Resolve(loaded.schema.Variables, supplied)
	if err != nil {
		return nil, err
	}

	outputDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot resolve output directory").
			WithDetail("path", opts.OutputDir)
	}
	if err := render.Preflight(outputDir, opts.Force); err != nil {
		return nil, err
	}

	rc := types.RenderContext{TemplateDir: tmpl.Dir, OutputDir: outputDir, Answers: answers}
	result := &Result{
		Template:    opts.Template,
		TemplateDir: tmpl.Dir,
		Remote:      tmpl.Remote,
		OutputDir:   outputDir,
		Dirs:        []string{},
		Files:       []string{},
		Hooks:       []string{},
	}

	h := hooks.Locate(tmpl.Dir, eff.Hooks.Dir)
	runner := hooks.NewRunner(executorOf(opts, eff), opts.Confirmer, opts.SkipHookConfirm || eff.Hooks.SkipConfirm)
	if err := runner.Gate(h); err != nil {
		return nil, err
	}

	if err := runner.RunPre(ctx, h, rc); err != nil {
		return nil, err
	}
	if h.Pre != "" {
		result.Hooks = append(result.Hooks, h.Pre)
	}

	walker := render.New(eval, loaded.matcher, render.Options{Suffix: eff.Template.Suffix, Force: opts.Force})
	report, err := walker.Walk(rc)
	if report != nil {
		result.Dirs = report.Dirs
		result.Files = report.Files
	}
	if err != nil {
		return result, err
	}

	if err := runner.RunPost(ctx, h, rc); err != nil {
		return result, err
	}
	if h.Post != "" {
		result.Hooks = append(result.Hooks, h.Post)
	}

	logger.Info().Int("files", len(result.Files)).Msg("Generation complete")
	return result, nil
}

func settingsOf(opts Options) (*config.Settings, error) {
	if opts.Settings != nil {
		return opts.Settings, nil
	}
	return config.LoadSettings(config.LoadOptions{})
}

func executorOf(opts Options, eff config.Settings) hooks.Executor {
	if opts.Executor != nil {
		return opts.Executor
	}
	p := hooks.ProcessExecutor{Timeout: eff.Hooks.Timeout, Stdout: opts.Stdout, Stderr: opts.Stderr}
	if p.Stdout == nil {
		p.Stdout = os.Stdout
	}
	if p.Stderr == nil {
		p.Stderr = os.Stderr
	}
	return p
}

// loaded is everything read from a template before answers are resolved
type loaded struct {
	settings config.Settings
	template config.TemplateSettings
	schema   *schema.Schema
	matcher  *ignore.Matcher
}

// load reads the template settings, the schema and the ignore rules
func load(templateDir string, settings config.Settings) (*loaded, error) {
	ts, err := config.LoadTemplateSettings(templateDir, settings.Template.SettingsFile)
	if err != nil {
		return nil, err
	}
	eff := ts.Apply(settings)

	sch, err := schema.Load(templateDir, eff.Template.SchemaFiles)
	if err != nil {
		return nil, err
	}

	implicit := ignore.Implicit(eff.Template.SchemaFiles, eff.Template.IgnoreFile, eff.Hooks.Dir, eff.Template.SettingsFile)
	var fromFile []ignore.Rule
	if eff.Template.IgnoreFile != "" {
		if fromFile, err = ignore.LoadFile(filepath.Join(templateDir, eff.Template.IgnoreFile)); err != nil {
			return nil, err
		}
	}
	fromSettings, err := ignore.ParsePatterns(ts.Ignore, eff.Template.SettingsFile)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("variables", len(sch.Variables)).
		Int("ignore_file_rules", len(fromFile)).
		Int("settings_rules", len(fromSettings)).
		Msg("Template loaded")

	return &loaded{
		settings: eff,
		template: ts,
		schema:   sch,
		matcher:  ignore.New(implicit, fromSettings, fromFile),
	}, nil
}
