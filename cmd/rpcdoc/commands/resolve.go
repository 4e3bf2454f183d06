package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResolveCommand(a *app) *cobra.Command {
	var (
		expand bool
		format string
	)
	cmd := &cobra.Command{
		Use:   "resolve <file|-> <pointer>",
		Short: "Print the value a same-document JSON pointer addresses",
		Long: `Resolve follows a pointer such as "#/components/schemas/Block" and prints the
raw value it addresses.

With --expand the value is treated as a schema and every nested "$ref" is
inlined. References that loop back are printed as stubs with "circular": true;
references that cannot be followed are stubs with an "error" field.`,
		Example: `  rpcdoc resolve openrpc.json '#/components/errors/InvalidParams'
  rpcdoc resolve openrpc.json '#/components/schemas/Block' --expand --format yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != FormatJSON && format != FormatYAML {
				return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatJSON, FormatYAML)
			}
			s, err := a.loadStore(args[0])
			if err != nil {
				return err
			}

			pointer := args[1]
			if expand {
				return OutputStructured(cmd.OutOrStdout(), s.ResolveSchemaRef(pointer), format)
			}
			v, err := s.ResolveReference(pointer)
			if err != nil {
				return err
			}
			return OutputStructured(cmd.OutOrStdout(), v, format)
		},
	}
	cmd.Flags().BoolVarP(&expand, "expand", "e", false, "expand the target as a schema")
	cmd.Flags().StringVar(&format, "format", FormatJSON, "output format: json or yaml")
	return cmd
}
