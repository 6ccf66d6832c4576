package cli

import (
	"fmt"

	"github.com/arthur-debert/cutter/pkg/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		Example: "  cutter config > \"$(cutter config --path)\"",
		Args:    usageArgs(cobra.NoArgs),
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showPath {
				path := a.config
				if path == "" {
					path = config.UserConfigPath()
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
				return err
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.GenerateConfigContent())
			return err
		},
	}
	cmd.Flags().BoolVar(&showPath, "path", false, MsgFlagPath)
	return cmd
}
