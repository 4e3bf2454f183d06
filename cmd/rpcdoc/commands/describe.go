package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erraggy/rpcdoc/openrpc"
	"github.com/erraggy/rpcdoc/store"
)

func newDescribeCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "describe <file|-> <method>",
		Short: "Show one method with its references resolved",
		Long: `Describe resolves the params, result, errors, tags and examples of one method
and expands their schemas. References that cannot be resolved are listed as
problems instead of failing the command.`,
		Example: `  rpcdoc describe openrpc.json eth/getBalance
  rpcdoc describe openrpc.json eth/getBalance --format yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ValidateOutputFormat(format); err != nil {
				return err
			}
			s, err := a.loadStore(args[0])
			if err != nil {
				return err
			}
			d, err := s.DescribeMethod(args[1])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if format != FormatText {
				return OutputStructured(w, d, format)
			}
			renderMethod(w, d)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", FormatText, "output format: text, json, or yaml")
	return cmd
}

func renderMethod(w io.Writer, d *store.DescribedMethod) {
	Writef(w, "%s\n", d.Name)
	if d.Deprecated {
		Writef(w, "  (deprecated)\n")
	}
	if d.Summary != "" {
		Writef(w, "  %s\n", d.Summary)
	}
	if d.Description != "" {
		Writef(w, "\n%s\n", d.Description)
	}
	if len(d.Tags) > 0 {
		names := make([]string, len(d.Tags))
		for i, t := range d.Tags {
			names[i] = t.Name
		}
		Writef(w, "\nTags: %s\n", strings.Join(names, ", "))
	}

	Writef(w, "\nParams:\n")
	if len(d.Params) == 0 {
		Writef(w, "  (none)\n")
	}
	for _, p := range d.Params {
		renderDescriptor(w, p)
	}

	if d.Result != nil {
		Writef(w, "\nResult:\n")
		renderDescriptor(w, d.Result)
	}

	if len(d.Errors) > 0 {
		Writef(w, "\nErrors:\n")
		for _, e := range d.Errors {
			Writef(w, "  %v  %s\n", e.Code, e.Message)
		}
	}

	if len(d.Examples) > 0 {
		Writef(w, "\nExamples:\n")
		for _, ex := range d.Examples {
			Writef(w, "  %s\n", ex.Name)
			for _, p := range ex.Params {
				Writef(w, "    param %s = %v\n", p.Name, p.Value)
			}
			if ex.Result != nil {
				Writef(w, "    result = %v\n", ex.Result.Value)
			}
		}
	}

	if len(d.Problems) > 0 {
		Writef(w, "\nProblems:\n")
		for _, p := range d.Problems {
			Writef(w, "  - %s\n", p)
		}
	}
}

func renderDescriptor(w io.Writer, cd *openrpc.ContentDescriptor) {
	line := "  " + cd.Name
	if t := schemaLabel(cd.Schema); t != "" {
		line += ": " + t
	}
	if cd.Required {
		line += " (required)"
	}
	if cd.Summary != "" {
		line += "  " + cd.Summary
	}
	Writef(w, "%s\n", line)
}

// schemaLabel is a one-word description of s for text output.
func schemaLabel(s *openrpc.Schema) string {
	switch {
	case s == nil:
		return ""
	case s.IsBool():
		return fmt.Sprint(*s.Bool)
	case s.Circular:
		return "circular " + s.Ref
	case s.Error != "":
		return s.Error + " " + s.Ref
	case s.Type != nil:
		switch t := s.Type.(type) {
		case string:
			return t
		case []any:
			parts := make([]string, len(t))
			for i, p := range t {
				parts[i] = fmt.Sprint(p)
			}
			return strings.Join(parts, "|")
		}
	case len(s.OneOf) > 0:
		return "oneOf"
	case len(s.AnyOf) > 0:
		return "anyOf"
	case len(s.AllOf) > 0:
		return "allOf"
	case len(s.Enum) > 0:
		return "enum"
	}
	return "any"
}
