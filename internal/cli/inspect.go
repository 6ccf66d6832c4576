package cli

import (
	"github.com/arthur-debert/cutter/pkg/generate"
	"github.com/arthur-debert/cutter/pkg/source"
	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:     "inspect TEMPLATE",
		Short:   MsgInspectShort,
		Long:    MsgInspectLong,
		Example: "  cutter inspect ./templates/service\n  cutter inspect --format json gh:acme/service-template",
		Args:    usageArgs(cobra.ExactArgs(1)),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := generate.Inspect(cmd.Context(), generate.InspectOptions{
				Template: args[0],
				Settings: a.settings,
				Fetcher: source.GitFetcher{
					Depth:    a.settings.Source.CloneDepth,
					Ref:      ref,
					Progress: a.progress(),
				},
			})
			if err != nil {
				return err
			}
			r, err := a.renderer()
			if err != nil {
				return err
			}
			return r.RenderResult(result)
		},
	}
	cmd.Flags().StringVar(&ref, "ref", "", MsgFlagRef)
	return cmd
}
