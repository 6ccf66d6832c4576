package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Generate a project from a template"
	MsgInspectShort    = "Show a template's variables, hooks and README"
	MsgConfigShort     = "Print the default settings file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig         = "Settings file (default $XDG_CONFIG_HOME/cutter/config.toml)"
	MsgFlagFormat         = "Output format: auto, term, text or json"
	MsgFlagColor          = "Colour output: auto, always or never"
	MsgFlagForce          = "Generate into an existing output directory, overwriting files"
	MsgFlagSkipHooksCheck = "Run template hooks without asking"
	MsgFlagAnswers        = "JSON file of pre-supplied answers, or - for stdin"
	MsgFlagSet            = "Set a variable as name=value (repeatable)"
	MsgFlagNonInteractive = "Never prompt; every variable needs a value or a default"
	MsgFlagRef            = "Branch or tag to check out for a git template"
	MsgFlagPath           = "Print the settings file location instead"

	// Version output
	MsgVersionFormat = "cutter version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Errors
	MsgErrArgs          = "expected TEMPLATE and OUTPUT_DIR, got %d argument(s)"
	MsgErrAnswersStdin  = "--answers - and interactive prompts both need stdin; add --non-interactive"
	MsgErrUnknownFormat = "unknown output format %q"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/inspect-long.txt
	msgInspectLongRaw string
	MsgInspectLong    = strings.TrimSpace(msgInspectLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)
)
