package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/rpcdoc/internal/maputil"
	"github.com/erraggy/rpcdoc/rpcerrors"
)

type parseInput struct {
	Spec specInput `json:"spec"           jsonschema:"The OpenRPC document to parse"`
	Full bool      `json:"full,omitempty" jsonschema:"Return the full document as YAML in addition to the summary"`
}

type parseSummaryServer struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url"`
}

type parseViolation struct {
	Path    string `json:"path"`
	Pointer string `json:"pointer,omitempty"`
	Message string `json:"message"`
}

type parseOutput struct {
	Valid                  bool                 `json:"valid"`
	Violations             []parseViolation     `json:"violations,omitempty"`
	OpenRPC                string               `json:"openrpc,omitempty"`
	Title                  string               `json:"title,omitempty"`
	Version                string               `json:"version,omitempty"`
	Description            string               `json:"description,omitempty"`
	MethodCount            int                  `json:"method_count"`
	ReferenceMethodCount   int                  `json:"reference_method_count"`
	SchemaCount            int                  `json:"schema_count"`
	ContentDescriptorCount int                  `json:"content_descriptor_count"`
	ErrorCount             int                  `json:"error_count"`
	Servers                []parseSummaryServer `json:"servers,omitempty"`
	Tags                   []string             `json:"tags,omitempty"`
	Components             []string             `json:"components,omitempty"`
	FullDocument           string               `json:"full_document,omitempty"`
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	loaded, err := input.Spec.resolve()
	if err != nil {
		var verr *rpcerrors.ValidationError
		if errors.As(err, &verr) {
			output := parseOutput{Violations: make([]parseViolation, 0, len(verr.Violations))}
			for _, v := range verr.Violations {
				output.Violations = append(output.Violations, parseViolation{Path: v.Path, Pointer: v.Pointer, Message: v.Message})
			}
			return nil, output, nil
		}
		return errResult(err), parseOutput{}, nil
	}
	loaded.mu.Lock()
	defer loaded.mu.Unlock()

	doc := loaded.store.Document()
	output := parseOutput{
		Valid:       true,
		OpenRPC:     doc.OpenRPC,
		MethodCount: len(loaded.store.Methods()),
	}
	for _, m := range doc.Methods {
		if m.IsRef() {
			output.ReferenceMethodCount++
		}
	}
	if doc.Info != nil {
		output.Title = doc.Info.Title
		output.Version = doc.Info.Version
		output.Description = doc.Info.Description
	}
	for _, s := range doc.Servers {
		if s != nil {
			output.Servers = append(output.Servers, parseSummaryServer{Name: s.Name, URL: s.URL})
		}
	}
	if c := doc.Components; c != nil {
		output.SchemaCount = len(c.Schemas)
		output.ContentDescriptorCount = len(c.ContentDescriptors)
		output.ErrorCount = len(c.Errors)
		output.Tags = maputil.SortedKeys(c.Tags)
	}
	output.Components = loaded.store.ComponentPointers()

	if input.Full {
		data, err := yaml.Marshal(doc.Raw)
		if err != nil {
			return errResult(err), parseOutput{}, nil
		}
		output.FullDocument = string(data)
	}

	return nil, output, nil
}
