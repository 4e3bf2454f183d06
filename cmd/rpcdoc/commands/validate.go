package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erraggy/rpcdoc/openrpc"
	"github.com/erraggy/rpcdoc/rpcerrors"
)

type violationOutput struct {
	Path    string `json:"path" yaml:"path"`
	Pointer string `json:"pointer,omitempty" yaml:"pointer,omitempty"`
	Message string `json:"message" yaml:"message"`
}

type validateOutput struct {
	Source     string            `json:"source" yaml:"source"`
	Valid      bool              `json:"valid" yaml:"valid"`
	OpenRPC    string            `json:"openrpc,omitempty" yaml:"openrpc,omitempty"`
	Title      string            `json:"title,omitempty" yaml:"title,omitempty"`
	Version    string            `json:"version,omitempty" yaml:"version,omitempty"`
	Methods    int               `json:"methods" yaml:"methods"`
	Violations []violationOutput `json:"violations,omitempty" yaml:"violations,omitempty"`
}

func newValidateCommand(a *app) *cobra.Command {
	var (
		format string
		quiet  bool
	)
	cmd := &cobra.Command{
		Use:   "validate <file|->",
		Short: "Check that an OpenRPC document is structurally valid",
		Long: `Validate reports every structural violation in the document at once: missing
or mistyped required fields, malformed method entries, and "$ref" values that
are not same-document pointers.

Exit status is 1 when the document is invalid.`,
		Example: `  rpcdoc validate openrpc.json
  cat openrpc.yaml | rpcdoc validate -
  rpcdoc validate --format json openrpc.json | jq '.valid'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ValidateOutputFormat(format); err != nil {
				return err
			}

			out := validateOutput{Source: FormatSpecPath(args[0])}
			doc, err := openrpc.ParseWithOptions(a.parseOptions(args[0])...)
			var verr *rpcerrors.ValidationError
			switch {
			case errors.As(err, &verr):
				for _, v := range verr.Violations {
					out.Violations = append(out.Violations, violationOutput{Path: v.Path, Pointer: v.Pointer, Message: v.Message})
				}
			case err != nil:
				return err
			default:
				out.Valid = true
				out.OpenRPC = doc.OpenRPC
				out.Methods = len(doc.ConcreteMethods())
				if doc.Info != nil {
					out.Title = doc.Info.Title
					out.Version = doc.Info.Version
				}
			}

			w := cmd.OutOrStdout()
			switch {
			case format != FormatText:
				if err := OutputStructured(w, out, format); err != nil {
					return err
				}
			case quiet:
			case out.Valid:
				Writef(w, "%s is valid\n", out.Source)
				Writef(w, "OpenRPC: %s\nTitle: %s\nVersion: %s\nMethods: %d\n", out.OpenRPC, out.Title, out.Version, out.Methods)
			default:
				Writef(w, "%s is invalid:\n", out.Source)
				for _, v := range out.Violations {
					Writef(w, "  - %s: %s\n", v.Path, v.Message)
				}
			}

			if !out.Valid {
				return fmt.Errorf("validation failed with %d violation(s)", len(out.Violations))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", FormatText, "output format: text, json, or yaml")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing in text mode; rely on the exit status")
	return cmd
}
