package commands

import (
	"github.com/spf13/cobra"
)

func newMethodsCommand(a *app) *cobra.Command {
	var (
		search string
		format string
	)
	cmd := &cobra.Command{
		Use:   "methods <file|->",
		Short: "List the methods of an OpenRPC document",
		Long: `Methods lists every concrete method with its summary. Method entries that are
themselves references are skipped.

--search keeps methods whose name or summary contains the query, ignoring case.`,
		Example: `  rpcdoc methods openrpc.json
  rpcdoc methods openrpc.json --search balance
  rpcdoc methods openrpc.json --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ValidateOutputFormat(format); err != nil {
				return err
			}
			s, err := a.loadStore(args[0])
			if err != nil {
				return err
			}

			found := s.Search(search)
			w := cmd.OutOrStdout()
			if format != FormatText {
				return OutputStructured(w, found, format)
			}

			width := 0
			for _, m := range found {
				width = max(width, len(m.Name))
			}
			for _, m := range found {
				if m.Description == "" {
					Writef(w, "%s\n", m.Name)
					continue
				}
				Writef(w, "%-*s  %s\n", width, m.Name, m.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive filter on method name or summary")
	cmd.Flags().StringVar(&format, "format", FormatText, "output format: text, json, or yaml")
	return cmd
}
