package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/rpcdoc"
)

func newVersionCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if verbose {
				Writef(cmd.OutOrStdout(), "%s\n", rpcdoc.BuildInfo())
				return nil
			}
			Writef(cmd.OutOrStdout(), "rpcdoc v%s\n", rpcdoc.Version())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include commit, build time and Go version")
	return cmd
}
