package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type resolveRefInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OpenRPC document the pointer refers into"`
	Ref    string    `json:"ref"              jsonschema:"Same-document JSON pointer, e.g. #/components/schemas/Block"`
	Expand bool      `json:"expand,omitempty" jsonschema:"Treat the target as a schema and expand every nested $ref"`
}

type resolveRefOutput struct {
	Ref      string `json:"ref"`
	Expanded bool   `json:"expanded"`
	Value    any    `json:"value"`
}

func handleResolveRef(_ context.Context, _ *mcp.CallToolRequest, input resolveRefInput) (*mcp.CallToolResult, any, error) {
	if input.Ref == "" {
		return errResult(fmt.Errorf("ref is required")), nil, nil
	}

	loaded, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}
	loaded.mu.Lock()
	defer loaded.mu.Unlock()

	if input.Expand {
		return nil, resolveRefOutput{
			Ref:      input.Ref,
			Expanded: true,
			Value:    loaded.store.ResolveSchemaRef(input.Ref),
		}, nil
	}
	v, err := loaded.store.ResolveReference(input.Ref)
	if err != nil {
		return errResult(err), nil, nil
	}
	return nil, resolveRefOutput{Ref: input.Ref, Value: v}, nil
}

type describeMethodInput struct {
	Spec specInput `json:"spec" jsonschema:"The OpenRPC document containing the method"`
	Name string    `json:"name" jsonschema:"Full method name, e.g. eth/getBalance"`
}

func handleDescribeMethod(_ context.Context, _ *mcp.CallToolRequest, input describeMethodInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return errResult(fmt.Errorf("name is required")), nil, nil
	}

	loaded, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}
	loaded.mu.Lock()
	defer loaded.mu.Unlock()

	described, err := loaded.store.DescribeMethod(input.Name)
	if err != nil {
		return errResult(err), nil, nil
	}
	return nil, described, nil
}
