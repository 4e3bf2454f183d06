package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/rpcdoc/methodtree"
	"github.com/erraggy/rpcdoc/store"
)

type listMethodsInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OpenRPC document to list"`
	Query  string    `json:"query,omitempty"  jsonschema:"Case-insensitive substring matched against method names and summaries"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N results"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum results to return (default 100)"`
}

type listMethodsOutput struct {
	Total    int                      `json:"total"`
	Matched  int                      `json:"matched"`
	Returned int                      `json:"returned"`
	Methods  []store.SearchableMethod `json:"methods,omitempty"`
}

func handleListMethods(_ context.Context, _ *mcp.CallToolRequest, input listMethodsInput) (*mcp.CallToolResult, listMethodsOutput, error) {
	loaded, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), listMethodsOutput{}, nil
	}
	loaded.mu.Lock()
	defer loaded.mu.Unlock()

	matched := loaded.store.Search(input.Query)
	paged := paginate(matched, input.Offset, input.Limit)
	return nil, listMethodsOutput{
		Total:    len(loaded.store.Methods()),
		Matched:  len(matched),
		Returned: len(paged),
		Methods:  paged,
	}, nil
}

type methodTreeInput struct {
	Spec specInput `json:"spec"           jsonschema:"The OpenRPC document whose methods form the tree"`
	Open []string  `json:"open,omitempty" jsonschema:"Full paths of folders to mark open, e.g. eth or eth/debug"`
	All  bool      `json:"all,omitempty"  jsonschema:"Open every folder"`
	Path string    `json:"path,omitempty" jsonschema:"Return only the subtree rooted at this full path"`
}

type methodTreeOutput struct {
	Open []string         `json:"open,omitempty"`
	Tree *methodtree.Node `json:"tree"`
}

func handleMethodTree(_ context.Context, _ *mcp.CallToolRequest, input methodTreeInput) (*mcp.CallToolResult, any, error) {
	if input.All && len(input.Open) > 0 {
		return errResult(fmt.Errorf("cannot use both open and all")), nil, nil
	}

	loaded, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}
	loaded.mu.Lock()
	defer loaded.mu.Unlock()

	tree := loaded.store.MethodTree()
	open := methodtree.NewExpanded(input.Open...)
	if input.All {
		open = methodtree.ExpandAll(tree)
	}
	view := methodtree.Materialize(tree, open)
	if input.Path != "" {
		view = view.Find(input.Path)
		if view == nil {
			return errResult(fmt.Errorf("no folder or method at path %q", input.Path)), nil, nil
		}
	}
	return nil, methodTreeOutput{Open: open.Paths(), Tree: view}, nil
}
