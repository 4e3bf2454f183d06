package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/erraggy/rpcdoc/methodtree"
)

func newTreeCommand(a *app) *cobra.Command {
	var (
		open   []string
		all    bool
		path   string
		format string
	)
	cmd := &cobra.Command{
		Use:   "tree <file|->",
		Short: "Show the method namespace tree",
		Long: `Tree splits method names on "/" and shows the resulting folders. Folders are
closed unless named with --open (by full path, e.g. "eth" or "eth/debug") or
--all is given. Closed folders hide their contents.`,
		Example: `  rpcdoc tree openrpc.json
  rpcdoc tree openrpc.json --open eth --open eth/debug
  rpcdoc tree openrpc.json --all --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ValidateOutputFormat(format); err != nil {
				return err
			}
			if all && len(open) > 0 {
				return fmt.Errorf("cannot use both --open and --all")
			}
			s, err := a.loadStore(args[0])
			if err != nil {
				return err
			}

			tree := s.MethodTree()
			expanded := methodtree.NewExpanded(open...)
			if all {
				expanded = methodtree.ExpandAll(tree)
			}
			view := methodtree.Materialize(tree, expanded)
			if path != "" {
				if view = view.Find(path); view == nil {
					return fmt.Errorf("no folder or method at path %q", path)
				}
			}

			w := cmd.OutOrStdout()
			switch format {
			case FormatJSON:
				return OutputStructured(w, view, format)
			case FormatYAML:
				plain, err := toPlain(view)
				if err != nil {
					return err
				}
				return OutputStructured(w, plain, format)
			}
			if path != "" {
				renderNode(w, view, 0)
				return nil
			}
			for _, child := range view.Children() {
				renderNode(w, child, 0)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&open, "open", nil, "full path of a folder to open (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "open every folder")
	cmd.Flags().StringVar(&path, "path", "", "show only the subtree at this full path")
	cmd.Flags().StringVar(&format, "format", FormatText, "output format: text, json, or yaml")
	return cmd
}

// renderNode prints n indented by depth. Folders are marked "+" when closed
// and "-" when open; only open folders print their children.
func renderNode(w io.Writer, n *methodtree.Node, depth int) {
	indent := fmt.Sprintf("%*s", depth*2, "")
	label := n.Name
	if n.Method != nil && n.Method.Summary != "" {
		label += "  " + n.Method.Summary
	}

	if !n.IsFolder() {
		Writef(w, "%s  %s\n", indent, label)
		return
	}
	marker := "+"
	if n.IsOpen {
		marker = "-"
	}
	Writef(w, "%s%s %s/\n", indent, marker, label)
	if !n.IsOpen {
		return
	}
	for _, child := range n.Children() {
		renderNode(w, child, depth+1)
	}
}

// toPlain converts v to generic maps and slices through its JSON form, for
// types whose only custom encoding is MarshalJSON.
func toPlain(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
