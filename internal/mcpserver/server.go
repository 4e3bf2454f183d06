// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes rpcdoc capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/rpcdoc"
	"github.com/erraggy/rpcdoc/internal/config"
	"github.com/erraggy/rpcdoc/openrpc"
)

const serverInstructions = `rpcdoc MCP server: browses OpenRPC documents. Lists and searches methods, renders the method namespace tree, resolves same-document $ref pointers and describes methods with every reference resolved.

Every tool takes a spec object with exactly one of file (a path on disk) or content (inline JSON or YAML).

Configuration: settings come from rpcdoc.yaml or RPCDOC_* environment variables.
- RPCDOC_MCP_CACHE_SIZE (default: 10): loaded documents kept per session; 0 disables caching
- RPCDOC_MCP_CACHE_TTL (default: 15m): how long a loaded document stays cached
- RPCDOC_EXPAND_MAX_DEPTH (default: 100): longest reference chain followed when expanding schemas

Caching: file entries use path+mtime as key (auto-invalidated on change); content entries use a SHA-256 hash. A background sweeper removes expired entries every 60s.`

// logger receives diagnostics from every document the server loads.
var logger openrpc.Logger = openrpc.NopLogger{}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled. A nil app config uses the defaults.
func Run(ctx context.Context, app *config.Config, log openrpc.Logger) error {
	if app == nil {
		app = config.Default()
	}
	cfg = newServerConfig(app)
	logger = openrpc.LoggerOrNop(log)
	docCache.configure(cfg.CacheMaxSize)
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "rpcdoc", Version: rpcdoc.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	logger.Info("mcp server starting", "cache_size", cfg.CacheMaxSize, "cache_ttl", cfg.CacheTTL)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Parse and validate an OpenRPC document. Returns a structural summary: title, version, OpenRPC version, method and component counts, servers and tags. A document that fails validation returns every violation with its path. Use full=true only for small documents.",
	}, handleParse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_methods",
		Description: "List the methods of an OpenRPC document with their summaries. Use query for a case-insensitive substring search over method names and summaries. Use offset/limit to paginate.",
	}, handleListMethods)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "method_tree",
		Description: "Render the method namespace tree. Method names are split on '/' into folders. Folders listed in open (full paths such as eth or eth/debug) are marked open; all=true opens every folder. Use path to return only one subtree.",
	}, handleMethodTree)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_ref",
		Description: "Resolve a same-document JSON pointer such as #/components/schemas/Block. Returns the raw value at the pointer. With expand=true the target is treated as a schema and every nested $ref is expanded; cycles become stubs with circular=true.",
	}, handleResolveRef)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "describe_method",
		Description: "Describe one method by its full name (for example eth/getBalance): params, result, errors, tags and examples with every reference resolved and schemas expanded. Local resolution failures are listed under problems.",
	}, handleDescribeMethod)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
