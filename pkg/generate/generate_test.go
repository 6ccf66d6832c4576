// Test Type: Integration Test
// Description: End-to-end tests for the generation pipeline

package generate_test

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/cutter/pkg/config"
	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/generate"
	"github.com/arthur-debert/cutter/pkg/hooks"
	"github.com/arthur-debert/cutter/pkg/resolver"
	"github.com/arthur-debert/cutter/pkg/testutil"
	"github.com/arthur-debert/cutter/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settings() *config.Settings {
	return &config.Settings{
		Template: config.TemplateConfig{
			Suffix:       ".tmpl",
			SchemaFiles:  []string{"cutter.yaml", "cutter.yml", "cutter.json"},
			IgnoreFile:   ".cutterignore",
			SettingsFile: ".cutter.toml",
		},
		Hooks:  config.HooksConfig{Dir: "hooks", Timeout: time.Minute},
		Source: config.SourceConfig{CloneDepth: 1},
		Output: config.OutputConfig{Color: "never"},
	}
}

type failingPrompter struct{}

func (failingPrompter) Ask(q resolver.Question) (any, error) {
	return nil, stderrors.New("unexpected prompt for " + q.Name)
}

type queuePrompter struct{ answers []any }

func (p *queuePrompter) Ask(resolver.Question) (any, error) {
	v := p.answers[0]
	p.answers = p.answers[1:]
	return v, nil
}

type confirmer struct {
	answer bool
	calls  int
}

func (c *confirmer) Confirm(types.ConfirmationRequest) (bool, error) {
	c.calls++
	return c.answer, nil
}

// recordingExecutor records hook runs and what the output looked like at the time
type recordingExecutor struct {
	codes        map[string]int
	calls        []hooks.Invocation
	outputExists []bool
	outputDir    string
}

func (e *recordingExecutor) Run(_ context.Context, inv hooks.Invocation) (hooks.ExitResult, error) {
	e.calls = append(e.calls, inv)
	_, err := os.Stat(e.outputDir)
	e.outputExists = append(e.outputExists, err == nil)
	return hooks.ExitResult{Code: e.codes[filepath.Base(inv.Path)], Output: []byte("hook output")}, nil
}

const slugSchema = `  project_name:
    type: string
    help: Project name
  project_slug:
    type: string
    default: ${lower(replace(project_name, " ", "_"))}
`

func slugTemplate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteSchema(t, dir, slugSchema)
	testutil.CreateFileTree(t, dir, testutil.FileTree{
		"${project_slug}": testutil.FileTree{
			"README.md.tmpl": "# ${project_name}\n",
		},
	})
	return dir
}

func TestRunDerivesDefaultsFromAnswersDocument(t *testing.T) {
	tmpl := slugTemplate(t)
	out := filepath.Join(t.TempDir(), "out")

	supplied, err := generate.LoadAnswers(strings.NewReader(`{"project_name": "My Project"}`))
	require.NoError(t, err)

	result, err := generate.Run(context.Background(), generate.Options{
		Template:    tmpl,
		OutputDir:   out,
		Answers:     supplied,
		Interactive: true,
		Prompter:    failingPrompter{},
		Settings:    settings(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"my_project/", "my_project/README.md"}, testutil.ListTree(t, out))
	assert.Equal(t, "# My Project\n", testutil.ReadFile(t, filepath.Join(out, "my_project", "README.md")))
	assert.Equal(t, []string{"my_project/README.md"}, result.Files)
	assert.Equal(t, out, result.OutputDir)
	assert.Empty(t, result.Hooks)
}

func TestRunValidationFailureMessage(t *testing.T) {
	tmpl := t.TempDir()
	testutil.WriteSchema(t, tmpl, `  age:
    type: int
    validation:
      condition: age >= 18 && age <= 130
      error_message: "${age} is not an adult age"
`)
	testutil.CreateFile(t, tmpl, "age.txt.tmpl", "${age}")
	out := filepath.Join(t.TempDir(), "out")

	supplied, err := generate.LoadAnswers(strings.NewReader(`{"age": 7}`))
	require.NoError(t, err)

	_, err = generate.Run(context.Background(), generate.Options{
		Template:  tmpl,
		OutputDir: out,
		Answers:   supplied,
		Settings:  settings(),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrValidationFailed))
	var ce *errors.CutterError
	require.True(t, stderrors.As(err, &ce))
	assert.Equal(t, "7 is not an adult age", ce.Message)
	assert.Equal(t, errors.ExitUser, errors.Classify(err))
	assert.NoDirExists(t, out)
}

func TestRunPostHookFailureKeepsFiles(t *testing.T) {
	tmpl := slugTemplate(t)
	testutil.CreateFileTree(t, tmpl, testutil.FileTree{
		"hooks": testutil.FileTree{"post_gen_project": ""},
	})
	out := filepath.Join(t.TempDir(), "out")
	exec := &recordingExecutor{codes: map[string]int{"post_gen_project": 1}, outputDir: out}

	result, err := generate.Run(context.Background(), generate.Options{
		Template:        tmpl,
		OutputDir:       out,
		Answers:         map[string]any{"project_name": "Demo"},
		SkipHookConfirm: true,
		Executor:        exec,
		Settings:        settings(),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHookFailed))
	assert.True(t, errors.IsCategory(err, errors.CategoryHook))
	assert.Equal(t, "hook output", errors.GetErrorDetails(err)["output"])

	require.NotNil(t, result)
	assert.Equal(t, []string{"demo/README.md"}, result.Files)
	assert.FileExists(t, filepath.Join(out, "demo", "README.md"), "no rollback")
	assert.NotContains(t, testutil.ListTree(t, out), "hooks/", "hooks directory is never copied")
}

func TestRunPostHookFailureWithRealScript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts need a POSIX shell")
	}
	tmpl := slugTemplate(t)
	testutil.CreateFileTree(t, tmpl, testutil.FileTree{
		"hooks": testutil.FileTree{
			"post_gen_project": testutil.Executable("#!/bin/sh\ncat > payload.json\nexit 1\n"),
		},
	})
	out := filepath.Join(t.TempDir(), "out")

	_, err := generate.Run(context.Background(), generate.Options{
		Template:  tmpl,
		OutputDir: out,
		Answers:   map[string]any{"project_name": "Demo"},
		Confirmer: &confirmer{answer: true},
		Settings:  settings(),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHookFailed))
	assert.Equal(t, 1, errors.GetErrorDetails(err)["exit_code"])
	assert.FileExists(t, filepath.Join(out, "demo", "README.md"))
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(out, "payload.json")), `"answers":{"project_name":"Demo","project_slug":"demo"}`)
}

func TestRunHookOrdering(t *testing.T) {
	tmpl := slugTemplate(t)
	testutil.CreateFileTree(t, tmpl, testutil.FileTree{
		"hooks": testutil.FileTree{"pre_gen_project": "", "post_gen_project": ""},
	})
	out := filepath.Join(t.TempDir(), "out")
	exec := &recordingExecutor{outputDir: out}
	c := &confirmer{answer: true}

	result, err := generate.Run(context.Background(), generate.Options{
		Template:  tmpl,
		OutputDir: out,
		Answers:   map[string]any{"project_name": "Demo"},
		Confirmer: c,
		Executor:  exec,
		Settings:  settings(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, c.calls, "one confirmation for both hooks")
	require.Len(t, exec.calls, 2)
	assert.Equal(t, "pre_gen_project", filepath.Base(exec.calls[0].Path))
	assert.Equal(t, []bool{false, true}, exec.outputExists, "pre runs before output exists")
	assert.Equal(t, tmpl, exec.calls[0].Dir)
	assert.Equal(t, out, exec.calls[1].Dir)
	assert.Len(t, result.Hooks, 2)
}

func TestRunHooksDeclined(t *testing.T) {
	tmpl := slugTemplate(t)
	testutil.CreateFileTree(t, tmpl, testutil.FileTree{
		"hooks": testutil.FileTree{"post_gen_project": ""},
	})
	out := filepath.Join(t.TempDir(), "out")
	exec := &recordingExecutor{outputDir: out}

	_, err := generate.Run(context.Background(), generate.Options{
		Template:  tmpl,
		OutputDir: out,
		Answers:   map[string]any{"project_name": "Demo"},
		Confirmer: &confirmer{answer: false},
		Executor:  exec,
		Settings:  settings(),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHooksDecline))
	assert.Empty(t, exec.calls)
	assert.NoDirExists(t, out)
}

func TestRunOutputExists(t *testing.T) {
	tmpl := slugTemplate(t)
	out := t.TempDir()
	testutil.CreateFile(t, out, "mine.txt", "keep")
	args := generate.Options{
		Template:  tmpl,
		OutputDir: out,
		Answers:   map[string]any{"project_name": "Demo"},
		Settings:  settings(),
	}

	_, err := generate.Run(context.Background(), args)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutputExists))
	assert.Equal(t, []string{"mine.txt"}, testutil.ListTree(t, out))

	args.Force = true
	_, err = generate.Run(context.Background(), args)
	require.NoError(t, err)
	assert.Equal(t, []string{"demo/", "demo/README.md", "mine.txt"}, testutil.ListTree(t, out))
}

func TestRunTwiceWithForceIsIdempotent(t *testing.T) {
	tmpl := slugTemplate(t)
	testutil.CreateFileTree(t, tmpl, testutil.FileTree{
		"static.bin": "\x00\x01",
		"%{if project_name == \"x\"}never%{endif}": testutil.FileTree{"a": "a"},
	})
	out := filepath.Join(t.TempDir(), "out")
	args := generate.Options{
		Template:  tmpl,
		OutputDir: out,
		Answers:   map[string]any{"project_name": "Demo"},
		Force:     true,
		Settings:  settings(),
	}

	_, err := generate.Run(context.Background(), args)
	require.NoError(t, err)
	first := testutil.ListTree(t, out)
	firstReadme := testutil.ReadFile(t, filepath.Join(out, "demo", "README.md"))

	_, err = generate.Run(context.Background(), args)
	require.NoError(t, err)
	assert.Equal(t, first, testutil.ListTree(t, out))
	assert.Equal(t, firstReadme, testutil.ReadFile(t, filepath.Join(out, "demo", "README.md")))
	assert.Equal(t, "\x00\x01", testutil.ReadFile(t, filepath.Join(out, "static.bin")))
}

func TestRunTemplateSettingsAndIgnoreFile(t *testing.T) {
	tmpl := t.TempDir()
	testutil.WriteSchema(t, tmpl, "  name:\n    type: string\n    default: app\n")
	testutil.CreateFileTree(t, tmpl, testutil.FileTree{
		".cutter.toml":  "suffix = \".j2\"\nhooks_dir = \"scripts\"\nignore = [\"*.bak\"]\n",
		".cutterignore": "docs/\n",
		"main.go.j2":    "package ${name}\n",
		"old.bak":       "x",
		"docs":          testutil.FileTree{"a.md": "a"},
		"scripts":       testutil.FileTree{"post_gen_project": ""},
		".git":          testutil.FileTree{"HEAD": "ref"},
	})
	out := filepath.Join(t.TempDir(), "out")
	exec := &recordingExecutor{outputDir: out}

	_, err := generate.Run(context.Background(), generate.Options{
		Template:        tmpl,
		OutputDir:       out,
		SkipHookConfirm: true,
		Executor:        exec,
		Settings:        settings(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"main.go"}, testutil.ListTree(t, out))
	assert.Equal(t, "package app\n", testutil.ReadFile(t, filepath.Join(out, "main.go")))
	require.Len(t, exec.calls, 1)
	assert.Equal(t, filepath.Join(tmpl, "scripts", "post_gen_project"), exec.calls[0].Path)
}

func TestRunSetValues(t *testing.T) {
	tmpl := t.TempDir()
	testutil.WriteSchema(t, tmpl, `  name:
    type: string
  port:
    type: int
  debug:
    type: bool
    default: false
`)
	testutil.CreateFile(t, tmpl, "conf.txt.tmpl", "${name}:${port + 1}:${debug}")
	out := filepath.Join(t.TempDir(), "out")

	set, err := generate.ParseSet([]string{"port=8079", "debug=yes", "unknown=1"})
	require.NoError(t, err)

	_, err = generate.Run(context.Background(), generate.Options{
		Template:  tmpl,
		OutputDir: out,
		Answers:   map[string]any{"name": "svc", "port": 1},
		Set:       set,
		Settings:  settings(),
	})
	require.NoError(t, err)
	assert.Equal(t, "svc:8080:true", testutil.ReadFile(t, filepath.Join(out, "conf.txt")))

	t.Run("bad_value", func(t *testing.T) {
		_, err := generate.Run(context.Background(), generate.Options{
			Template:  tmpl,
			OutputDir: filepath.Join(t.TempDir(), "out"),
			Answers:   map[string]any{"name": "svc"},
			Set:       map[string]string{"port": "eighty"},
			Settings:  settings(),
		})
		assert.True(t, errors.IsErrorCode(err, errors.ErrTypeMismatch))
	})
}

func TestRunInteractive(t *testing.T) {
	tmpl := slugTemplate(t)
	out := filepath.Join(t.TempDir(), "out")

	_, err := generate.Run(context.Background(), generate.Options{
		Template:    tmpl,
		OutputDir:   out,
		Interactive: true,
		Prompter:    &queuePrompter{answers: []any{"Hello World", "hello"}},
		Settings:    settings(),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"hello/", "hello/README.md"}, testutil.ListTree(t, out))
}

func TestRunNonInteractiveMissingValue(t *testing.T) {
	_, err := generate.Run(context.Background(), generate.Options{
		Template:  slugTemplate(t),
		OutputDir: filepath.Join(t.TempDir(), "out"),
		Settings:  settings(),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingValue))
}

type copyFetcher struct {
	from    string
	fetched string
	urls    []string
}

func (f *copyFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	dir, err := os.MkdirTemp("", "cutter-test-*")
	if err != nil {
		return "", err
	}
	err = filepath.Walk(f.from, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(f.from, p)
		target := filepath.Join(dir, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, info.Mode())
	})
	f.fetched = dir
	return dir, err
}

func TestRunRemoteTemplateIsCleanedUp(t *testing.T) {
	f := &copyFetcher{from: slugTemplate(t)}
	out := filepath.Join(t.TempDir(), "out")

	result, err := generate.Run(context.Background(), generate.Options{
		Template:  "gh:acme/slug",
		OutputDir: out,
		Answers:   map[string]any{"project_name": "Demo"},
		Fetcher:   f,
		Settings:  settings(),
	})
	require.NoError(t, err)
	assert.True(t, result.Remote)
	assert.Equal(t, []string{"https://github.com/acme/slug.git"}, f.urls)
	assert.FileExists(t, filepath.Join(out, "demo", "README.md"))
	assert.NoDirExists(t, f.fetched)

	t.Run("cleaned_up_on_failure", func(t *testing.T) {
		f := &copyFetcher{from: slugTemplate(t)}
		_, err := generate.Run(context.Background(), generate.Options{
			Template:  "gh:acme/slug",
			OutputDir: filepath.Join(t.TempDir(), "out"),
			Fetcher:   f,
			Settings:  settings(),
		})
		require.Error(t, err)
		assert.NoDirExists(t, f.fetched)
	})
}

func TestRunSourceErrors(t *testing.T) {
	_, err := generate.Run(context.Background(), generate.Options{
		Template:  filepath.Join(t.TempDir(), "missing"),
		OutputDir: filepath.Join(t.TempDir(), "out"),
		Settings:  settings(),
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))

	_, err = generate.Run(context.Background(), generate.Options{
		Template:  t.TempDir(),
		OutputDir: filepath.Join(t.TempDir(), "out"),
		Settings:  settings(),
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigNotFound), "template without schema")
}
