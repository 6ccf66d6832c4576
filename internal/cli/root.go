// Package cli wires cutter's commands onto cobra.
package cli

import (
	"context"
	"embed"
	"io"
	"io/fs"
	"os"

	"github.com/arthur-debert/cutter/internal/version"
	"github.com/arthur-debert/cutter/pkg/cobrax/topics"
	"github.com/arthur-debert/cutter/pkg/config"
	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/logging"
	"github.com/arthur-debert/cutter/pkg/ui"
	"github.com/arthur-debert/cutter/pkg/ui/output/styles"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// Streams are the process streams a command talks to. In must be a file
// so prompting can tell whether it is a terminal.
type Streams struct {
	In  *os.File
	Out io.Writer
	Err io.Writer
}

// app holds global flag values and what is derived from them
type app struct {
	streams   Streams
	verbosity int
	config    string
	format    string
	color     string

	settings *config.Settings
	output   ui.Format
}

// NewRootCmd creates the command tree bound to the given streams
func NewRootCmd(streams Streams) *cobra.Command {
	initTemplateFormatting()

	a := &app{streams: streams}
	var g generateFlags

	rootCmd := &cobra.Command{
		Use:     "cutter [flags] TEMPLATE OUTPUT_DIR",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    generateArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.runGenerate(cmd.Context(), args[0], args[1], g)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.Err)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrUsage, "invalid flags")
	})

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&a.config, "config", "", MsgFlagConfig)
	pf.StringVar(&a.format, "format", "auto", MsgFlagFormat)
	pf.StringVar(&a.color, "color", "", MsgFlagColor)

	g.register(rootCmd)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInspectCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	sub, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		_ = topics.InitializeWithOptions(rootCmd, sub, topics.Options{
			Extensions: []string{".md"},
			Renderer:   markdownRenderer(streams.Out),
		})
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == "help" {
			c.GroupID = "misc"
		}
	}

	return rootCmd
}

// setup loads settings and settles the output format
func (a *app) setup() error {
	overrides := map[string]interface{}{}
	if a.color != "" {
		overrides["output.color"] = a.color
	}
	settings, err := config.LoadSettings(config.LoadOptions{ConfigFile: a.config, Overrides: overrides})
	if err != nil {
		return err
	}
	a.settings = settings

	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return errors.Newf(errors.ErrConfigInvalid, MsgErrUnknownFormat, a.format).WithDetail("flag", "format")
	}
	mode, err := ui.ParseColorMode(settings.Output.Color)
	if err != nil {
		return errors.Wrap(err, errors.ErrSettingsLoad, "invalid output.color")
	}
	if settings.Output.Theme != "" {
		if err := styles.LoadFile(settings.Output.Theme); err != nil {
			return errors.Wrap(err, errors.ErrSettingsLoad, "invalid output.theme").
				WithDetail("path", settings.Output.Theme)
		}
	}
	out, _ := a.streams.Out.(*os.File)
	a.output = ui.ResolveFormat(format, mode, out)
	log.Debug().Str("format", a.output.String()).Msg("Output format selected")
	return nil
}

func (a *app) renderer() (ui.Renderer, error) {
	return ui.NewRenderer(a.output, a.streams.Out)
}

// Execute runs cutter with args and returns the process exit code. Errors
// are rendered on the error stream in the selected output format.
func Execute(ctx context.Context, args []string, streams Streams) int {
	rootCmd := NewRootCmd(streams)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return int(errors.ExitOK)
	}

	format := ui.FormatText
	if f, perr := ui.ParseFormat(flagValue(rootCmd, "format")); perr == nil && f != ui.FormatAuto {
		format = f
	} else if f, ok := streams.Err.(*os.File); ok {
		format = ui.DetectFormat(f)
	}
	if r, rerr := ui.NewRenderer(format, streams.Err); rerr == nil {
		_ = r.RenderError(err)
	}

	code := errors.Classify(err)
	log.Debug().Err(err).Int("exit_code", int(code)).Msg("Command failed")
	return int(code)
}

func flagValue(cmd *cobra.Command, name string) string {
	f := cmd.PersistentFlags().Lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}
