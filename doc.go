// Package rpcdoc provides tools for browsing OpenRPC API descriptions.
//
// rpcdoc loads an OpenRPC document, validates its structure, follows its
// same-document "$ref" pointers and arranges its methods into a navigable
// namespace tree. It is the engine behind an API documentation viewer: it
// does no rendering itself, but produces fully (or, on cycles, partially)
// dereferenced values ready for display.
//
// # Overview
//
// The library consists of these packages:
//
//   - openrpc: Load and validate documents; the typed document model
//   - resolve: Resolve JSON pointers and expand schema references
//   - methodtree: Build the method namespace tree and overlay open folders
//   - store: Hold one loaded document and answer queries about it
//   - rpcerrors: Typed errors shared by all packages
//
// # Quick Start
//
// Load a document and list its methods:
//
//	import "github.com/erraggy/rpcdoc/store"
//
//	s, err := store.Load(openrpc.WithFilePath("openrpc.json"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, m := range s.SearchableMethodData() {
//		fmt.Println(m.Name, m.Description)
//	}
//
// Resolve a method's parameters with their schemas expanded:
//
//	described, err := s.DescribeMethod("eth/getBalance")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, p := range described.Params {
//		fmt.Println(p.Name, p.Schema.Type)
//	}
//
// Render the method tree with one folder open:
//
//	open := methodtree.ToggleFolder("eth", methodtree.Expanded{})
//	view := methodtree.Materialize(s.MethodTree(), open)
//
// # References and cycles
//
// Only same-document pointers ("#/components/schemas/Block") are followed.
// Schema expansion never fails: a reference that cannot be resolved becomes a
// stub with its Error field set, and a reference that loops back to a schema
// already being expanded on the same path becomes a stub with Circular set.
// Content descriptor, error and example references are checked for the
// expected shape and fail with *rpcerrors.ShapeError when they do not match.
//
// # Command-Line Tool
//
// The rpcdoc command exposes the library from the shell, as an HTTP API and
// as an MCP server:
//
//	rpcdoc validate openrpc.json
//	rpcdoc methods openrpc.json --search balance
//	rpcdoc tree openrpc.json --all
//	rpcdoc resolve openrpc.json '#/components/schemas/Block' --expand
//	rpcdoc describe openrpc.json eth/getBalance
//	rpcdoc serve openrpc.json
//	rpcdoc mcp
package rpcdoc
